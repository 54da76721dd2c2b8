package service

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/tastebox/backend/internal/models"
)

// Defaults applied when the model reports null for a scalar field.
// cookTime deliberately has no default: an unknown cook time stays absent.
const (
	DefaultPrepTime = 30
	DefaultServings = 4
)

// ExtractedRecipe is the normalized output of the validator. It is never
// persisted directly; it becomes a Recipe only on user confirmation.
type ExtractedRecipe struct {
	Title        string               `json:"title"`
	Description  string               `json:"description,omitempty"`
	Images       []models.RecipeImage `json:"images"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Instructions []models.Instruction `json:"instructions"`
	PrepTime     int                  `json:"prep_time"`
	CookTime     *int                 `json:"cook_time,omitempty"`
	Servings     int                  `json:"servings"`
	Difficulty   string               `json:"difficulty"`
	RecipeType   string               `json:"recipe_type,omitempty"`
	Tags         []string             `json:"tags"`
}

// completionPayload mirrors the JSON the model is instructed to produce.
// Every scalar is a pointer so that null and absence survive decoding.
type completionPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Images      []struct {
		URL     *string `json:"url"`
		AltText *string `json:"altText"`
		Order   *int    `json:"order"`
	} `json:"images"`
	Ingredients []struct {
		Name   *string `json:"name"`
		Amount *string `json:"amount"`
		Unit   *string `json:"unit"`
	} `json:"ingredients"`
	Instructions []struct {
		Step        *int    `json:"step"`
		Description *string `json:"description"`
	} `json:"instructions"`
	PrepTime   *float64 `json:"prepTime"`
	CookTime   *float64 `json:"cookTime"`
	Servings   *float64 `json:"servings"`
	Difficulty *string  `json:"difficulty"`
	RecipeType *string  `json:"recipeType"`
	Tags       []string `json:"tags"`
}

// ValidateCompletion parses the raw model completion and checks every
// field against the extraction schema. This is the single trust boundary
// between the model and the rest of the system: nothing unvalidated may
// reach persistence.
func ValidateCompletion(completion string) (*ExtractedRecipe, error) {
	var payload completionPayload
	if err := json.Unmarshal([]byte(completion), &payload); err != nil {
		return nil, &ParseError{Err: err}
	}

	var violations []FieldViolation
	addViolation := func(field, msg string) {
		violations = append(violations, FieldViolation{Field: field, Message: msg})
	}

	out := &ExtractedRecipe{}

	if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
		addViolation("title", "required non-empty string")
	} else {
		out.Title = strings.TrimSpace(*payload.Title)
	}

	if payload.Description != nil {
		out.Description = strings.TrimSpace(*payload.Description)
	}

	// Only the first 3 image entries survive; anything beyond is dropped.
	images := payload.Images
	if len(images) > models.MaxRecipeImages {
		images = images[:models.MaxRecipeImages]
	}
	for i, img := range images {
		field := fmt.Sprintf("images[%d]", i)
		if img.URL == nil || !isAbsoluteURL(*img.URL) {
			addViolation(field+".url", "must be an absolute URL")
			continue
		}
		order := i + 1
		if img.Order != nil {
			if *img.Order < 1 || *img.Order > models.MaxRecipeImages {
				addViolation(field+".order", "must be between 1 and 3")
				continue
			}
			order = *img.Order
		}
		stored := models.RecipeImage{URL: *img.URL, Order: order}
		if img.AltText != nil {
			stored.AltText = strings.TrimSpace(*img.AltText)
		}
		out.Images = append(out.Images, stored)
	}
	// The model may repeat an order value; keep its ordering intent but
	// renumber so orders are unique 1..k.
	sort.SliceStable(out.Images, func(a, b int) bool { return out.Images[a].Order < out.Images[b].Order })
	for i := range out.Images {
		out.Images[i].Order = i + 1
	}

	for i, ing := range payload.Ingredients {
		field := fmt.Sprintf("ingredients[%d]", i)
		if ing.Name == nil || strings.TrimSpace(*ing.Name) == "" {
			addViolation(field+".name", "required non-empty string")
			continue
		}
		if ing.Amount == nil || strings.TrimSpace(*ing.Amount) == "" {
			addViolation(field+".amount", "required non-empty string")
			continue
		}
		stored := models.Ingredient{
			Name:   strings.TrimSpace(*ing.Name),
			Amount: strings.TrimSpace(*ing.Amount),
			Order:  i + 1,
		}
		if ing.Unit != nil {
			stored.Unit = strings.TrimSpace(*ing.Unit)
		}
		out.Ingredients = append(out.Ingredients, stored)
	}

	for i, ins := range payload.Instructions {
		field := fmt.Sprintf("instructions[%d]", i)
		if ins.Step == nil || *ins.Step < 1 {
			addViolation(field+".step", "must be a number >= 1")
			continue
		}
		if ins.Description == nil || strings.TrimSpace(*ins.Description) == "" {
			addViolation(field+".description", "required non-empty string")
			continue
		}
		out.Instructions = append(out.Instructions, models.Instruction{
			Step:        *ins.Step,
			Description: strings.TrimSpace(*ins.Description),
		})
	}

	out.PrepTime = DefaultPrepTime
	if payload.PrepTime != nil {
		if *payload.PrepTime < 1 {
			addViolation("prepTime", "must be a number >= 1 or null")
		} else {
			out.PrepTime = int(*payload.PrepTime)
		}
	}

	if payload.CookTime != nil {
		ct := int(*payload.CookTime)
		if ct < 0 {
			addViolation("cookTime", "must be a non-negative number or null")
		} else {
			out.CookTime = &ct
		}
	}

	out.Servings = DefaultServings
	if payload.Servings != nil {
		if *payload.Servings < 1 {
			addViolation("servings", "must be a number >= 1 or null")
		} else {
			out.Servings = int(*payload.Servings)
		}
	}

	out.Difficulty = models.DifficultyMedium
	if payload.Difficulty != nil {
		switch *payload.Difficulty {
		case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
			out.Difficulty = *payload.Difficulty
		default:
			addViolation("difficulty", fmt.Sprintf("must be one of %q, %q, %q or null",
				models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard))
		}
	}

	if payload.RecipeType != nil {
		out.RecipeType = strings.TrimSpace(*payload.RecipeType)
	}

	out.Tags = []string{}
	for _, tag := range payload.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out.Tags = append(out.Tags, tag)
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return out, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
