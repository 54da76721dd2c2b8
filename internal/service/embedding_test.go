package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateEmbeddingIsDeterministic(t *testing.T) {
	a := GenerateEmbedding("Tortilla de patatas")
	b := GenerateEmbedding("Tortilla de patatas")

	assert.Equal(t, a, b)
}

func TestGenerateEmbeddingCountsRunesWordsVowels(t *testing.T) {
	v := GenerateEmbedding("Café")

	assert.Equal(t, []float32{4, 1, 2}, v.Slice())
}
