package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tastebox/backend/internal/models"
)

const validCompletion = `{
	"title": "Tortilla de patatas",
	"description": "La clásica tortilla española.",
	"images": [{"url": "https://example.com/tortilla.jpg", "altText": "Tortilla", "order": 1}],
	"ingredients": [
		{"name": "patatas", "amount": "4", "unit": "ud"},
		{"name": "huevos", "amount": "6", "unit": null}
	],
	"instructions": [
		{"step": 1, "description": "Freír las patatas."},
		{"step": 2, "description": "Cuajar la tortilla."}
	],
	"prepTime": 15,
	"cookTime": 20,
	"servings": 4,
	"difficulty": "Medio",
	"recipeType": "Plato principal",
	"tags": ["española", " clásica "]
}`

func TestValidateCompletionAcceptsFullPayload(t *testing.T) {
	out, err := ValidateCompletion(validCompletion)
	require.NoError(t, err)

	assert.Equal(t, "Tortilla de patatas", out.Title)
	assert.Len(t, out.Images, 1)
	assert.Len(t, out.Ingredients, 2)
	assert.Equal(t, 1, out.Ingredients[0].Order)
	assert.Equal(t, 2, out.Ingredients[1].Order)
	assert.Len(t, out.Instructions, 2)
	assert.Equal(t, 15, out.PrepTime)
	require.NotNil(t, out.CookTime)
	assert.Equal(t, 20, *out.CookTime)
	assert.Equal(t, []string{"española", "clásica"}, out.Tags)
}

func TestValidateCompletionRejectsNonJSON(t *testing.T) {
	_, err := ValidateCompletion("Sorry, I could not find a recipe on this page.")

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestValidateCompletionAppliesDefaults(t *testing.T) {
	out, err := ValidateCompletion(`{
		"title": "Gazpacho",
		"ingredients": [{"name": "tomate", "amount": "1", "unit": "kg"}],
		"instructions": [{"step": 1, "description": "Triturar."}],
		"prepTime": null,
		"cookTime": null,
		"servings": null,
		"difficulty": null
	}`)
	require.NoError(t, err)

	assert.Equal(t, DefaultPrepTime, out.PrepTime)
	assert.Nil(t, out.CookTime)
	assert.Equal(t, DefaultServings, out.Servings)
	assert.Equal(t, models.DifficultyMedium, out.Difficulty)
}

func TestValidateCompletionCollectsViolations(t *testing.T) {
	_, err := ValidateCompletion(`{
		"title": "   ",
		"images": [{"url": "/relative/path.jpg"}],
		"ingredients": [{"name": "", "amount": "1"}],
		"instructions": [{"step": 0, "description": "x"}],
		"prepTime": -5,
		"servings": 0,
		"difficulty": "Imposible"
	}`)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	fields := make(map[string]bool)
	for _, v := range valErr.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["title"])
	assert.True(t, fields["images[0].url"])
	assert.True(t, fields["ingredients[0].name"])
	assert.True(t, fields["instructions[0].step"])
	assert.True(t, fields["prepTime"])
	assert.True(t, fields["servings"])
	assert.True(t, fields["difficulty"])
}

func TestValidateCompletionTruncatesExtraImages(t *testing.T) {
	out, err := ValidateCompletion(`{
		"title": "Paella",
		"images": [
			{"url": "https://example.com/1.jpg"},
			{"url": "https://example.com/2.jpg"},
			{"url": "https://example.com/3.jpg"},
			{"url": "https://example.com/4.jpg"},
			{"url": "https://example.com/5.jpg"}
		],
		"ingredients": [{"name": "arroz", "amount": "400", "unit": "g"}],
		"instructions": [{"step": 1, "description": "Cocinar."}]
	}`)
	require.NoError(t, err)

	require.Len(t, out.Images, models.MaxRecipeImages)
	assert.Equal(t, "https://example.com/1.jpg", out.Images[0].URL)
	assert.Equal(t, "https://example.com/3.jpg", out.Images[2].URL)
}

func TestValidateCompletionRenumbersDuplicateImageOrders(t *testing.T) {
	out, err := ValidateCompletion(`{
		"title": "Paella",
		"images": [
			{"url": "https://example.com/a.jpg", "order": 2},
			{"url": "https://example.com/b.jpg", "order": 2}
		],
		"ingredients": [{"name": "arroz", "amount": "400", "unit": "g"}],
		"instructions": [{"step": 1, "description": "Cocinar."}]
	}`)

	require.NoError(t, err)
	require.Len(t, out.Images, 2)
	assert.Equal(t, "https://example.com/a.jpg", out.Images[0].URL)
	assert.Equal(t, 1, out.Images[0].Order)
	assert.Equal(t, 2, out.Images[1].Order)
}

func TestValidateCompletionRejectsInvalidImageOrder(t *testing.T) {
	_, err := ValidateCompletion(`{
		"title": "Paella",
		"images": [{"url": "https://example.com/1.jpg", "order": 7}],
		"ingredients": [{"name": "arroz", "amount": "400", "unit": "g"}],
		"instructions": [{"step": 1, "description": "Cocinar."}]
	}`)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "images[0].order", valErr.Violations[0].Field)
}

func TestValidationErrorMessageListsFields(t *testing.T) {
	err := &ValidationError{Violations: []FieldViolation{
		{Field: "title", Message: "required non-empty string"},
		{Field: "servings", Message: "must be a number >= 1 or null"},
	}}

	msg := err.Error()
	assert.Contains(t, msg, "title: required non-empty string")
	assert.Contains(t, msg, "servings: must be a number >= 1 or null")
	assert.False(t, errors.Is(err, ErrNotFound))
}
