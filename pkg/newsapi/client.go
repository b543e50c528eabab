// Package newsapi implements a client for the newsapi.org v2 endpoints used by the feeds.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"

	"github.com/umputun/newsdeck/pkg/content"
	"github.com/umputun/newsdeck/pkg/domain"
)

// DefaultBaseURL is the public newsapi.org v2 endpoint
const DefaultBaseURL = "https://newsapi.org/v2"

// Params configures the client
type Params struct {
	BaseURL string
	APIKey  string
	Country string
	Timeout time.Duration
	Retries int // attempts for transport failures, response errors are never retried
}

// Client talks to newsapi.org
type Client struct {
	baseURL string
	country string
	retries int
	http    *http.Client
	cleaner *content.Cleaner
}

// response is the newsapi envelope for both success and error replies
type response struct {
	Status   string        `json:"status"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Articles []articleJSON `json:"articles"`
}

type articleJSON struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// errResponse terminates retries
var errResponse = errors.New("response error")

// New makes a client with defaults for empty params
func New(p Params) *Client {
	if p.BaseURL == "" {
		p.BaseURL = DefaultBaseURL
	}
	if p.Country == "" {
		p.Country = "us"
	}
	if p.Timeout <= 0 {
		p.Timeout = 30 * time.Second
	}
	if p.Retries <= 0 {
		p.Retries = 1
	}
	return &Client{
		baseURL: strings.TrimSuffix(p.BaseURL, "/"),
		country: p.Country,
		retries: p.Retries,
		cleaner: content.NewCleaner(),
		http: &http.Client{
			Timeout:   p.Timeout,
			Transport: &apiKeyTransport{apiKey: p.APIKey, next: http.DefaultTransport},
		},
	}
}

// FetchHeadlines returns top headlines for the configured country
func (c *Client) FetchHeadlines(ctx context.Context) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("country", c.country)
	return c.fetch(ctx, "top-headlines", q)
}

// FetchTopic returns articles matching the topic query
func (c *Client) FetchTopic(ctx context.Context, topic domain.TopicQuery) ([]domain.Article, error) {
	q := url.Values{}
	q.Set("q", topic.Query)
	if topic.Language != "" {
		q.Set("language", topic.Language)
	}
	if topic.ExcludeDomains != "" {
		q.Set("excludeDomains", topic.ExcludeDomains)
	}
	if topic.SortBy != "" {
		q.Set("sortBy", topic.SortBy)
	}
	return c.fetch(ctx, "everything", q)
}

func (c *Client) fetch(ctx context.Context, endpoint string, q url.Values) ([]domain.Article, error) {
	reqURL := c.baseURL + "/" + endpoint + "?" + q.Encode()

	var resp response
	retrier := repeater.NewBackoff(c.retries, 200*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		var err error
		resp, err = c.get(ctx, reqURL)
		return err
	}, errResponse)
	if err != nil {
		var re *domain.ResponseError
		if errors.As(err, &re) {
			return nil, re
		}
		var te *domain.TransportError
		if errors.As(err, &te) {
			return nil, te
		}
		return nil, &domain.TransportError{Err: err}
	}

	return c.articles(resp.Articles), nil
}

// get performs one request. Transport failures return *domain.TransportError,
// non-2xx replies return a *domain.ResponseError joined with errResponse.
func (c *Client) get(ctx context.Context, reqURL string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return response{}, errors.Join(errResponse, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return response{}, &domain.TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, 10*1024*1024))
	if err != nil {
		return response{}, &domain.TransportError{Err: fmt.Errorf("read body: %w", err)}
	}

	var resp response
	decodeErr := json.Unmarshal(body, &resp)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		re := &domain.ResponseError{StatusCode: httpResp.StatusCode, Code: resp.Code, Message: resp.Message}
		if decodeErr != nil || re.Message == "" {
			re.Message = errorText(httpResp.StatusCode, body)
		}
		return response{}, errors.Join(errResponse, re)
	}
	if decodeErr != nil {
		return response{}, errors.Join(errResponse,
			&domain.ResponseError{StatusCode: httpResp.StatusCode, Message: "malformed response: " + decodeErr.Error()})
	}
	if resp.Status == "error" {
		return response{}, errors.Join(errResponse,
			&domain.ResponseError{StatusCode: httpResp.StatusCode, Code: resp.Code, Message: resp.Message})
	}
	return resp, nil
}

// articles converts the batch, dropping records without a title and repeated titles
func (c *Client) articles(in []articleJSON) []domain.Article {
	res := make([]domain.Article, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, a := range in {
		title := strings.TrimSpace(a.Title)
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		res = append(res, domain.Article{
			Title:       title,
			PublishedAt: a.PublishedAt,
			URLToImage:  a.URLToImage,
			URL:         a.URL,
			SourceName:  a.Source.Name,
			Author:      a.Author,
			Description: c.cleaner.Clean(a.Description),
			Content:     c.cleaner.Clean(a.Content),
		})
	}
	return res
}

// errorText picks a short plain-text body or falls back to the status text
func errorText(code int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") && !strings.HasPrefix(text, "{") {
		return text
	}
	if st := http.StatusText(code); st != "" {
		return st
	}
	return fmt.Sprintf("unexpected status code %d", code)
}
