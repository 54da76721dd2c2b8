package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tastebox/backend/internal/models"
)

const imageFetchTimeout = 15 * time.Second

// BlobStore persists binary objects and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ImageService downloads extracted recipe images and stores them in blob
// storage.
type ImageService struct {
	store  BlobStore
	client *http.Client
}

// NewImageService creates a new ImageService instance
func NewImageService(store BlobStore) *ImageService {
	return &ImageService{
		store:  store,
		client: &http.Client{Timeout: imageFetchTimeout},
	}
}

// RetrieveRecipeImages downloads up to 3 candidate images and uploads them
// to blob storage. A failing candidate is skipped, never fatal: the import
// degrades to fewer images. Successes keep the candidate order and are
// renumbered 1..k.
func (s *ImageService) RetrieveRecipeImages(ctx context.Context, candidates []models.RecipeImage) []models.RecipeImage {
	if len(candidates) > models.MaxRecipeImages {
		candidates = candidates[:models.MaxRecipeImages]
	}

	results := make([]*models.RecipeImage, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func(idx int, cand models.RecipeImage) {
			defer wg.Done()
			stored, err := s.fetchAndStore(ctx, idx, cand)
			if err != nil {
				log.Printf("[ImageService] Skipping image %s: %v", cand.URL, err)
				return
			}
			results[idx] = stored
		}(i, candidate)
	}
	wg.Wait()

	images := make([]models.RecipeImage, 0, len(candidates))
	for _, r := range results {
		if r == nil {
			continue
		}
		r.Order = len(images) + 1
		images = append(images, *r)
	}
	return images
}

func (s *ImageService) fetchAndStore(ctx context.Context, idx int, candidate models.RecipeImage) (*models.RecipeImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, candidate.URL, nil)
	if err != nil {
		return nil, &FetchError{URL: candidate.URL, Err: err}
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: candidate.URL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: candidate.URL, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: candidate.URL, Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	ext := extensionForContentType(contentType)
	key := fmt.Sprintf("recipe-images/%d-%d.%s", time.Now().UnixNano(), idx, ext)

	publicURL, err := s.UploadImage(ctx, data, key, contentType)
	if err != nil {
		return nil, err
	}

	alt := candidate.AltText
	if alt == "" {
		alt = fmt.Sprintf("Imagen %d de la receta", idx+1)
	}

	return &models.RecipeImage{
		URL:        publicURL,
		StoredPath: key,
		AltText:    alt,
	}, nil
}

// UploadImage stores image data and returns the public URL.
func (s *ImageService) UploadImage(ctx context.Context, data []byte, key, contentType string) (string, error) {
	if s.store == nil {
		return "", fmt.Errorf("blob storage not configured")
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return s.store.Put(ctx, key, data, contentType)
}

// UploadProfilePhoto stores a user's profile photo and returns its public
// URL.
func (s *ImageService) UploadProfilePhoto(ctx context.Context, userID uuid.UUID, data []byte, contentType string) (string, error) {
	ext := extensionForContentType(contentType)
	key := fmt.Sprintf("profile-photos/%s-%s.%s", userID, uuid.New().String(), ext)
	return s.UploadImage(ctx, data, key, contentType)
}

func extensionForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return "jpg"
	}
}
