package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// Difficulty values a recipe may carry. The labels are user-facing and
// therefore kept in Spanish.
const (
	DifficultyEasy   = "Fácil"
	DifficultyMedium = "Medio"
	DifficultyHard   = "Difícil"
)

// MaxRecipeImages is the maximum number of images a recipe may reference.
const MaxRecipeImages = 3

// RecipeImage is a stored image reference. Order is 1-based and unique
// within a recipe.
type RecipeImage struct {
	URL        string `json:"url"`
	StoredPath string `json:"stored_path,omitempty"`
	Order      int    `json:"order"`
	AltText    string `json:"alt_text,omitempty"`
}

// Ingredient holds a single recipe ingredient. Amount is free-form text.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit,omitempty"`
	Order  int    `json:"order"`
}

// ApplianceSettings are optional per-step settings for kitchen appliances.
type ApplianceSettings struct {
	Time        string `json:"time,omitempty"`
	Temperature string `json:"temperature,omitempty"`
	Speed       string `json:"speed,omitempty"`
}

// IsZero reports whether no setting is present.
func (a ApplianceSettings) IsZero() bool {
	return a.Time == "" && a.Temperature == "" && a.Speed == ""
}

// Instruction is a single preparation step. Steps are numbered
// sequentially from 1.
type Instruction struct {
	Step        int                `json:"step"`
	Description string             `json:"description"`
	Appliance   *ApplianceSettings `json:"appliance,omitempty"`
}

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	return scanJSONB(value, a)
}

// RecipeImageList stores the ordered image references as JSONB.
type RecipeImageList []RecipeImage

func (l RecipeImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *RecipeImageList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// IngredientList stores the ordered ingredients as JSONB.
type IngredientList []Ingredient

func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *IngredientList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

// InstructionList stores the ordered preparation steps as JSONB.
type InstructionList []Instruction

func (l InstructionList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

func (l *InstructionList) Scan(value interface{}) error {
	return scanJSONB(value, l)
}

func scanJSONB(value, dest interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}

	return json.Unmarshal(bytes, dest)
}

type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description,omitempty"`
	PrepTime     int              `json:"prep_time"`
	CookTime     *int             `json:"cook_time,omitempty"`
	Servings     int              `json:"servings"`
	Difficulty   string           `gorm:"size:20;not null;default:'Medio'" json:"difficulty"`
	RecipeType   string           `gorm:"size:50" json:"recipe_type,omitempty"`
	SourceURL    string           `gorm:"size:512" json:"source_url,omitempty"`
	Images       RecipeImageList  `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	Ingredients  IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions InstructionList  `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Calories     float64          `gorm:"type:float" json:"calories"`
	Protein      float64          `gorm:"type:float" json:"protein"`
	Carbs        float64          `gorm:"type:float" json:"carbs"`
	Fat          float64          `gorm:"type:float" json:"fat"`
	Fiber        float64          `gorm:"type:float" json:"fiber"`
	Sugar        float64          `gorm:"type:float" json:"sugar"`
	Sodium       float64          `gorm:"type:float" json:"sodium"`
	Embedding    pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
}

// IsApplianceSpecific reports whether any instruction carries appliance
// settings, marking the recipe as device-specific.
func (r *Recipe) IsApplianceSpecific() bool {
	for _, ins := range r.Instructions {
		if ins.Appliance != nil && !ins.Appliance.IsZero() {
			return true
		}
	}
	return false
}

// HasNutrition reports whether any nutrition value has been recorded.
func (r *Recipe) HasNutrition() bool {
	return r.Calories != 0 || r.Protein != 0 || r.Carbs != 0 || r.Fat != 0 ||
		r.Fiber != 0 || r.Sugar != 0 || r.Sodium != 0
}
