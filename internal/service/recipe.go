package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tastebox/backend/internal/models"
)

type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// validateRecipe checks client-supplied recipe fields against the data
// model invariants before anything reaches persistence.
func validateRecipe(recipe *models.Recipe) error {
	var violations []FieldViolation
	addViolation := func(field, msg string) {
		violations = append(violations, FieldViolation{Field: field, Message: msg})
	}

	if strings.TrimSpace(recipe.Title) == "" {
		addViolation("title", "required non-empty string")
	}

	if len(recipe.Images) > models.MaxRecipeImages {
		addViolation("images", fmt.Sprintf("at most %d images", models.MaxRecipeImages))
	} else {
		seenOrders := make(map[int]bool)
		for i, img := range recipe.Images {
			field := fmt.Sprintf("images[%d].order", i)
			if img.Order < 1 || img.Order > models.MaxRecipeImages {
				addViolation(field, "must be between 1 and 3")
				continue
			}
			if seenOrders[img.Order] {
				addViolation(field, "duplicate order")
			}
			seenOrders[img.Order] = true
		}
	}

	switch recipe.Difficulty {
	case "", models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard:
	default:
		addViolation("difficulty", "must be one of Fácil, Medio, Difícil")
	}

	for i, ins := range recipe.Instructions {
		if ins.Step < 1 {
			addViolation(fmt.Sprintf("instructions[%d].step", i), "must be a number >= 1")
		}
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// Create persists a recipe for the user. The embedding is derived from the
// title so keyword-less similarity search has something to rank against.
func (s *RecipeService) Create(ctx context.Context, recipe *models.Recipe, userID uuid.UUID) error {
	if err := validateRecipe(recipe); err != nil {
		return err
	}
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	recipe.UserID = userID
	if recipe.Difficulty == "" {
		recipe.Difficulty = models.DifficultyMedium
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title)
	return s.db.WithContext(ctx).Create(recipe).Error
}

// Get returns the user's recipe. Recipes owned by other users are
// indistinguishable from missing ones.
func (s *RecipeService) Get(ctx context.Context, recipeID, userID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List returns the user's recipes, newest first, optionally filtered by a
// keyword query and a tag.
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, query, tag string) ([]models.Recipe, error) {
	db := s.db.WithContext(ctx).Where("user_id = ?", userID)

	query = strings.TrimSpace(query)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	tag = strings.TrimSpace(tag)
	if tag != "" {
		if s.db.Dialector.Name() == "postgres" {
			db = db.Where("tags @> ?", `["`+tag+`"]`)
		} else {
			db = db.Where("tags LIKE ?", `%"`+tag+`"%`)
		}
	}

	var recipes []models.Recipe
	if err := db.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Search ranks the user's recipes by embedding distance to the query.
// Falls back to keyword listing on non-postgres databases.
func (s *RecipeService) Search(ctx context.Context, userID uuid.UUID, query string) ([]models.Recipe, error) {
	if s.db.Dialector.Name() != "postgres" {
		return s.List(ctx, userID, query, "")
	}

	embedding := GenerateEmbedding(query)
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{embedding}},
		}).
		Limit(50).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Update overwrites the mutable fields of the user's recipe.
func (s *RecipeService) Update(ctx context.Context, recipe *models.Recipe, userID uuid.UUID) error {
	if err := validateRecipe(recipe); err != nil {
		return err
	}
	existing, err := s.Get(ctx, recipe.ID, userID)
	if err != nil {
		return err
	}

	recipe.UserID = existing.UserID
	recipe.CreatedAt = existing.CreatedAt
	recipe.Embedding = GenerateEmbedding(recipe.Title)
	return s.db.WithContext(ctx).Save(recipe).Error
}

// Delete removes the user's recipe.
func (s *RecipeService) Delete(ctx context.Context, recipeID, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.Recipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
