package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; Newsdeck/1.0)"

// Extracted is the readable part of a web page
type Extracted struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}

// HTTPExtractor fetches article pages and pulls the full text with trafilatura
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
}

// NewHTTPExtractor creates a new content extractor, empty userAgent uses the default one
func NewHTTPExtractor(timeout time.Duration, userAgent string) *HTTPExtractor {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTTPExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Extract retrieves the page and returns its main text
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (Extracted, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return Extracted{}, fmt.Errorf("parse URL: %w", err)
	}
	if (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return Extracted{}, fmt.Errorf("invalid URL: %q", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return Extracted{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return Extracted{}, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Extracted{}, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     parsedURL,
	}
	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return Extracted{}, fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil || strings.TrimSpace(result.ContentText) == "" {
		return Extracted{}, fmt.Errorf("no text content extracted from %s", urlStr)
	}

	return Extracted{
		URL:    urlStr,
		Title:  result.Metadata.Title,
		Author: result.Metadata.Author,
		Text:   strings.TrimSpace(result.ContentText),
	}, nil
}
