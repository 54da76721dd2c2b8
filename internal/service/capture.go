package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tastebox/backend/internal/models"
)

// PageMeta holds metadata scraped directly from the captured page. It is
// used to backfill fields the model left empty on the import-html path.
type PageMeta struct {
	Title  string
	Images []models.RecipeImage
}

// ExtractPageMeta pulls the page title and up to 3 absolute image URLs
// (og:image first, then inline <img> tags) out of raw HTML.
func ExtractPageMeta(raw string) PageMeta {
	var meta PageMeta

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return meta
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		meta.Title = strings.TrimSpace(og)
	} else {
		meta.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	seen := make(map[string]bool)
	addImage := func(src, alt string) {
		src = strings.TrimSpace(src)
		if len(meta.Images) >= models.MaxRecipeImages || !isAbsoluteURL(src) || seen[src] {
			return
		}
		seen[src] = true
		meta.Images = append(meta.Images, models.RecipeImage{
			URL:     src,
			Order:   len(meta.Images) + 1,
			AltText: strings.TrimSpace(alt),
		})
	}

	doc.Find(`meta[property="og:image"]`).Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("content"); ok {
			addImage(src, "")
		}
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		alt, _ := sel.Attr("alt")
		addImage(src, alt)
	})

	return meta
}
