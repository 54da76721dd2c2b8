package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebox/backend/internal/models"
)

func TestEstimateNutrition(t *testing.T) {
	llm := &stubCompleter{completion: `{"calories": 320, "protein": 12.5, "carbs": 30, "fat": 17, "fiber": 4, "sugar": 3, "sodium": 450}`}
	svc := NewNutritionService(llm)

	recipe := newTestRecipe("Tortilla")
	facts, err := svc.EstimateNutrition(context.Background(), recipe)
	require.NoError(t, err)

	assert.Equal(t, 320.0, facts.Calories)
	assert.Equal(t, 12.5, facts.Protein)
	assert.Contains(t, llm.lastUser, "Tortilla")
	assert.Contains(t, llm.lastUser, "ingrediente")
}

func TestEstimateNutritionNoIngredients(t *testing.T) {
	svc := NewNutritionService(&stubCompleter{})

	_, err := svc.EstimateNutrition(context.Background(), &models.Recipe{Title: "Vacía"})

	var llmErr *LLMError
	assert.ErrorAs(t, err, &llmErr)
}

func TestEstimateNutritionBadJSON(t *testing.T) {
	svc := NewNutritionService(&stubCompleter{completion: "not json"})

	_, err := svc.EstimateNutrition(context.Background(), newTestRecipe("Tortilla"))

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestFillNutritionAppliesFacts(t *testing.T) {
	llm := &stubCompleter{completion: `{"calories": 200, "protein": 10, "carbs": 20, "fat": 8, "fiber": 2, "sugar": 1, "sodium": 300}`}
	svc := NewNutritionService(llm)

	recipe := newTestRecipe("Tortilla")
	svc.FillNutrition(context.Background(), recipe)

	assert.Equal(t, 200.0, recipe.Calories)
	assert.Equal(t, 10.0, recipe.Protein)
	assert.True(t, recipe.HasNutrition())
}

func TestFillNutritionKeepsExistingValues(t *testing.T) {
	llm := &stubCompleter{completion: `{"calories": 999}`}
	svc := NewNutritionService(llm)

	recipe := newTestRecipe("Tortilla")
	recipe.Calories = 150
	svc.FillNutrition(context.Background(), recipe)

	assert.Equal(t, 150.0, recipe.Calories)
	assert.Empty(t, llm.lastUser)
}

func TestFillNutritionToleratesModelFailure(t *testing.T) {
	svc := NewNutritionService(&stubCompleter{err: &LLMError{Message: "down"}})

	recipe := newTestRecipe("Tortilla")
	svc.FillNutrition(context.Background(), recipe)

	assert.False(t, recipe.HasNutrition())
}
