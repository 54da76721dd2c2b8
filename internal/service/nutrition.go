package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/tastebox/backend/internal/models"
)

const nutritionSystemPrompt = "You are a nutritionist. Estimate per-serving nutrition facts for recipes. Respond only with JSON."

// NutritionFacts is the per-serving estimate returned by the model.
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`
}

type NutritionService struct {
	llm Completer
}

func NewNutritionService(llm Completer) *NutritionService {
	return &NutritionService{llm: llm}
}

// EstimateNutrition asks the model for per-serving nutrition facts based on
// the recipe's ingredient list.
func (s *NutritionService) EstimateNutrition(ctx context.Context, recipe *models.Recipe) (*NutritionFacts, error) {
	if len(recipe.Ingredients) == 0 {
		return nil, &LLMError{Message: "recipe has no ingredients"}
	}

	var lines []string
	for _, ing := range recipe.Ingredients {
		line := strings.TrimSpace(fmt.Sprintf("%s %s %s", ing.Amount, ing.Unit, ing.Name))
		lines = append(lines, "- "+line)
	}

	prompt := fmt.Sprintf(`Estimate the per-serving nutrition facts for a recipe titled %q that serves %d.

Ingredients:
%s

Return a JSON object with exactly these numeric fields (grams, except calories in kcal and sodium in mg):
{"calories": 0, "protein": 0, "carbs": 0, "fat": 0, "fiber": 0, "sugar": 0, "sodium": 0}`,
		recipe.Title, recipe.Servings, strings.Join(lines, "\n"))

	content, err := s.llm.Complete(ctx, nutritionSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var facts NutritionFacts
	if err := json.Unmarshal([]byte(content), &facts); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &facts, nil
}

// FillNutrition estimates and applies nutrition facts to recipes that have
// none yet. Estimation failures are logged and leave the recipe unchanged.
func (s *NutritionService) FillNutrition(ctx context.Context, recipe *models.Recipe) {
	if recipe.HasNutrition() {
		return
	}
	facts, err := s.EstimateNutrition(ctx, recipe)
	if err != nil {
		log.Printf("[NutritionService] Skipping nutrition for %q: %v", recipe.Title, err)
		return
	}
	recipe.Calories = facts.Calories
	recipe.Protein = facts.Protein
	recipe.Carbs = facts.Carbs
	recipe.Fat = facts.Fat
	recipe.Fiber = facts.Fiber
	recipe.Sugar = facts.Sugar
	recipe.Sodium = facts.Sodium
}
