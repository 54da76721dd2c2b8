package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/tastebox/backend/internal/models"
)

// ImportStage tracks where a single import request is in the pipeline.
type ImportStage string

const (
	StagePending          ImportStage = "PENDING"
	StageFetching         ImportStage = "FETCHING"
	StageFetched          ImportStage = "FETCHED"
	StageExtracting       ImportStage = "EXTRACTING"
	StageExtracted        ImportStage = "EXTRACTED"
	StageImagesProcessing ImportStage = "IMAGES_PROCESSING"
	StagePreviewReady     ImportStage = "PREVIEW_READY"
	StageFailed           ImportStage = "FAILED"
)

const previewTTL = 24 * time.Hour

// RecipePreview is an extraction result held for user confirmation. It is
// stored in Redis and becomes a Recipe only when confirmed.
type RecipePreview struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	CreatedAt    time.Time            `json:"created_at"`
	Stage        ImportStage          `json:"stage"`
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
	SourceURL    string               `json:"source_url,omitempty"`
	Tags         []string             `json:"tags"`
}

// ContentFetcher retrieves page HTML for a URL.
type ContentFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Completer produces a chat completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ImageRetriever stores candidate images and returns the successes.
type ImageRetriever interface {
	RetrieveRecipeImages(ctx context.Context, candidates []models.RecipeImage) []models.RecipeImage
}

// Importer orchestrates the extraction pipeline: fetch, sanitize, prompt,
// complete, validate, retrieve images, assemble a preview.
type Importer struct {
	fetcher ContentFetcher
	llm     Completer
	images  ImageRetriever
	store   PreviewStore
}

// NewImporter creates a new Importer instance
func NewImporter(fetcher ContentFetcher, llm Completer, images ImageRetriever, store PreviewStore) *Importer {
	return &Importer{
		fetcher: fetcher,
		llm:     llm,
		images:  images,
		store:   store,
	}
}

// ImportFromURL runs the full pipeline for a source URL.
func (i *Importer) ImportFromURL(ctx context.Context, userID uuid.UUID, pageURL string) (*RecipePreview, error) {
	html, err := i.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", StageFetching, err)
	}

	return i.extract(ctx, userID, html, pageURL, PageMeta{})
}

// ImportFromHTML runs the pipeline for page HTML supplied directly by the
// browser extension or bookmarklet; the fetch stage is skipped. Page
// metadata scraped from the HTML backfills fields the model leaves empty.
func (i *Importer) ImportFromHTML(ctx context.Context, userID uuid.UUID, html, sourceURL, pageTitle string) (*RecipePreview, error) {
	meta := ExtractPageMeta(html)
	if pageTitle != "" {
		meta.Title = pageTitle
	}
	return i.extract(ctx, userID, html, sourceURL, meta)
}

func (i *Importer) extract(ctx context.Context, userID uuid.UUID, html, sourceURL string, meta PageMeta) (*RecipePreview, error) {
	sanitized := SanitizeHTML(html)
	if meta.Title != "" {
		// The title prefix counts against the same prompt budget as the
		// page content.
		sanitized = truncateForPrompt("Page title: " + meta.Title + " | " + sanitized)
	}
	prompt := BuildExtractionPrompt(sanitized)

	completion, err := i.llm.Complete(ctx, ExtractionSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", StageExtracting, err)
	}

	extracted, err := ValidateCompletion(completion)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", StageExtracted, err)
	}

	// Capture-path fallback: reuse images scraped from the page when the
	// model found none.
	if len(extracted.Images) == 0 && len(meta.Images) > 0 {
		extracted.Images = meta.Images
	}

	var stored []models.RecipeImage
	if len(extracted.Images) > 0 && i.images != nil {
		stored = i.images.RetrieveRecipeImages(ctx, extracted.Images)
	}

	preview := &RecipePreview{
		UserID:       userID.String(),
		Stage:        StagePreviewReady,
		Title:        extracted.Title,
		Description:  extracted.Description,
		Images:       stored,
		Ingredients:  extracted.Ingredients,
		Instructions: extracted.Instructions,
		PrepTime:     extracted.PrepTime,
		CookTime:     extracted.CookTime,
		Servings:     extracted.Servings,
		Difficulty:   extracted.Difficulty,
		RecipeType:   extracted.RecipeType,
		SourceURL:    sourceURL,
		Tags:         extracted.Tags,
	}

	if err := i.SavePreview(ctx, preview); err != nil {
		return nil, err
	}

	log.Printf("[Importer] Preview %s ready for user %s (%d ingredients, %d images)",
		preview.ID, preview.UserID, len(preview.Ingredients), len(preview.Images))
	return preview, nil
}

// SavePreview assigns the preview an id and persists it.
func (i *Importer) SavePreview(ctx context.Context, preview *RecipePreview) error {
	preview.ID = uuid.New().String()
	preview.CreatedAt = time.Now()
	return i.store.Save(ctx, preview)
}

// GetPreview retrieves a preview owned by the given user. A missing or
// expired preview and a foreign owner both surface as ErrNotFound.
func (i *Importer) GetPreview(ctx context.Context, userID uuid.UUID, id string) (*RecipePreview, error) {
	preview, err := i.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if preview.UserID != userID.String() {
		return nil, ErrNotFound
	}
	return preview, nil
}

// DeletePreview removes a preview from the store.
func (i *Importer) DeletePreview(ctx context.Context, id string) error {
	return i.store.Delete(ctx, id)
}

// ToRecipe converts a confirmed preview into a Recipe owned by the user.
func (p *RecipePreview) ToRecipe(userID uuid.UUID) *models.Recipe {
	return &models.Recipe{
		ID:           uuid.New(),
		Title:        p.Title,
		Description:  p.Description,
		PrepTime:     p.PrepTime,
		CookTime:     p.CookTime,
		Servings:     p.Servings,
		Difficulty:   p.Difficulty,
		RecipeType:   p.RecipeType,
		SourceURL:    p.SourceURL,
		Images:       models.RecipeImageList(p.Images),
		Ingredients:  models.IngredientList(p.Ingredients),
		Instructions: models.InstructionList(p.Instructions),
		Tags:         models.JSONBStringArray(p.Tags),
		UserID:       userID,
	}
}
