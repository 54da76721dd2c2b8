package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/tastebox/backend/internal/models"
)

// PDFService renders recipes into printable documents.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// RenderRecipe produces a single-recipe PDF document.
func (s *PDFService) RenderRecipe(recipe *models.Recipe) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(recipe.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(0, 10, tr(recipe.Title), "", "L", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	meta := fmt.Sprintf("Preparación: %d min", recipe.PrepTime)
	if recipe.CookTime != nil {
		meta += fmt.Sprintf("  |  Cocción: %d min", *recipe.CookTime)
	}
	meta += fmt.Sprintf("  |  Raciones: %d  |  Dificultad: %s", recipe.Servings, recipe.Difficulty)
	pdf.CellFormat(0, 6, tr(meta), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)

	if recipe.Description != "" {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(0, 5, tr(recipe.Description), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Ingredientes"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, ing := range recipe.Ingredients {
		line := strings.TrimSpace(fmt.Sprintf("%s %s %s", ing.Amount, ing.Unit, ing.Name))
		pdf.CellFormat(0, 6, tr("• "+line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Preparación"), "", 1, "L", false, 0, "")
	for _, step := range recipe.Instructions {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(10, 6, fmt.Sprintf("%d.", step.Step), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		text := step.Description
		if step.Appliance != nil && !step.Appliance.IsZero() {
			var parts []string
			if step.Appliance.Time != "" {
				parts = append(parts, step.Appliance.Time)
			}
			if step.Appliance.Temperature != "" {
				parts = append(parts, step.Appliance.Temperature)
			}
			if step.Appliance.Speed != "" {
				parts = append(parts, "vel "+step.Appliance.Speed)
			}
			if len(parts) > 0 {
				text += " [" + strings.Join(parts, ", ") + "]"
			}
		}
		pdf.MultiCell(0, 6, tr(text), "", "L", false)
		pdf.Ln(1)
	}

	if recipe.HasNutrition() {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, tr("Nutrición (por ración)"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		nutrition := fmt.Sprintf("%.0f kcal  |  Proteína %.1f g  |  Hidratos %.1f g  |  Grasa %.1f g",
			recipe.Calories, recipe.Protein, recipe.Carbs, recipe.Fat)
		pdf.CellFormat(0, 6, tr(nutrition), "", 1, "L", false, 0, "")
	}

	if len(recipe.Tags) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 5, tr(strings.Join(recipe.Tags, " · ")), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
