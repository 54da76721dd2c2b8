package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"
	"unicode/utf8"
)

const fetchTimeout = 20 * time.Second

var errInvalidEncoding = errors.New("response body is not valid UTF-8")

// browser-like headers; several recipe sites reject obvious bot requests
const (
	fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	fetchAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
)

// Fetcher retrieves raw HTML for recipe source pages.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a bounded request deadline.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Fetch issues a single GET for the given URL and returns the body as
// UTF-8 text. No retries.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", fetchAccept)
	req.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: pageURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}

	if !utf8.Valid(body) {
		return "", &FetchError{URL: pageURL, Err: errInvalidEncoding}
	}

	return string(body), nil
}
