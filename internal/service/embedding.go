package service

import (
	"strings"
	"unicode/utf8"

	pgvector "github.com/pgvector/pgvector-go"
)

// vowelRunes includes the accented vowels common in Spanish titles so
// accented and unaccented spellings land near each other.
const vowelRunes = "aeiouáéíóúü"

// GenerateEmbedding maps text onto a small deterministic vector of rune
// count, word count and vowel count. Identical text always lands on the
// same point, so exact-title queries rank their recipe first.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels float32
	for _, r := range text {
		if strings.ContainsRune(vowelRunes, r) {
			vowels++
		}
	}
	runes := float32(utf8.RuneCountInString(text))
	words := float32(len(strings.Fields(text)))
	return pgvector.NewVector([]float32{runes, words, vowels})
}
