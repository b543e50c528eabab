package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/umputun/newsdeck/pkg/broadcast"
	"github.com/umputun/newsdeck/pkg/content"
	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/repository"
)

const (
	defaultWait = 10 * time.Second
	maxWait     = time.Minute
)

// articleJSON is the wire form of an article
type articleJSON struct {
	Title       string `json:"title"`
	PublishedAt string `json:"published_at,omitempty"`
	URLToImage  string `json:"url_to_image,omitempty"`
	URL         string `json:"url,omitempty"`
	Source      string `json:"source,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	Bookmarked  bool   `json:"bookmarked"`
}

type newsResponse struct {
	Feed     domain.FeedKind `json:"feed"`
	State    string          `json:"state"`
	Articles []articleJSON   `json:"articles"`
	Message  string          `json:"message,omitempty"`
}

type bookmarkRequest struct {
	Article    *articleJSON `json:"article,omitempty"`
	Title      string       `json:"title,omitempty"`
	Bookmarked bool         `json:"bookmarked"`
}

type articleDetail struct {
	articleJSON
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}

func toArticleJSON(a domain.CachedArticle) articleJSON {
	return articleJSON{
		Title:       a.Title,
		PublishedAt: a.PublishedAt,
		URLToImage:  a.URLToImage,
		URL:         a.URL,
		Source:      a.SourceName,
		Author:      a.Author,
		Description: a.Description,
		Content:     a.Content,
		Bookmarked:  a.IsBookmarked,
	}
}

func (a articleJSON) toCached() domain.CachedArticle {
	return domain.CachedArticle{
		Title:        a.Title,
		PublishedAt:  a.PublishedAt,
		URLToImage:   a.URLToImage,
		URL:          a.URL,
		SourceName:   a.Source,
		Author:       a.Author,
		Description:  a.Description,
		Content:      a.Content,
		IsBookmarked: a.Bookmarked,
	}
}

// statusHandler returns server status with the state of both feed caches
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := rest.JSON{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"feeds":   s.syncer.Status(),
	}

	if s.settings != nil {
		lastSync, err := s.settings.GetTime(r.Context(), repository.SettingHeadlinesSyncedAt)
		if err != nil {
			lgr.Printf("[WARN] failed to read last sync time: %v", err)
		}
		if !lastSync.IsZero() {
			status["last_sync"] = lastSync
		}
	}
	renderJSON(w, r, http.StatusOK, status)
}

// newsHandler requests a feed load and waits for the first terminal result.
// Responds 200 on success, 502 on error and 202 if the fetch did not finish within wait.
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseFeedKind(r.PathValue("feed"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	wait, err := parseWait(r.URL.Query().Get("wait"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.syncer.RequestLoad(kind); err != nil {
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	s.renderFeed(w, r, kind, wait)
}

// refreshFeedHandler drops the cache of one feed, starts a new fetch and waits for it like newsHandler
func (s *Server) refreshFeedHandler(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseFeedKind(r.PathValue("feed"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	wait, err := parseWait(r.URL.Query().Get("wait"))
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.syncer.Refresh(kind); err != nil {
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	s.renderFeed(w, r, kind, wait)
}

// renderFeed waits for a terminal result of the feed and renders it
func (s *Server) renderFeed(w http.ResponseWriter, r *http.Request, kind domain.FeedKind, wait time.Duration) {
	resp := newsResponse{Feed: kind, Articles: []articleJSON{}}
	var state domain.ResultState
	switch kind {
	case domain.FeedHeadline:
		res := awaitTerminal(r.Context(), s.syncer.Headlines(), wait)
		state, resp.Message = res.State, res.Message
		for _, a := range res.Data {
			resp.Articles = append(resp.Articles, toArticleJSON(a))
		}
	case domain.FeedGeneral:
		res := awaitTerminal(r.Context(), s.syncer.General(), wait)
		state, resp.Message = res.State, res.Message
		for _, a := range res.Data {
			resp.Articles = append(resp.Articles, toArticleJSON(a.ToCached(false)))
		}
	}
	resp.State = state.String()

	code := http.StatusAccepted
	switch state {
	case domain.StateSuccess:
		code = http.StatusOK
	case domain.StateError:
		code = http.StatusBadGateway
	}
	renderJSON(w, r, code, resp)
}

func (s *Server) refreshAllHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.syncer.RefreshAll(); err != nil {
		renderError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	renderJSON(w, r, http.StatusAccepted, rest.JSON{"status": "refreshing", "feeds": domain.AllFeeds})
}

// bookmarksHandler lists bookmarked articles from the store
func (s *Server) bookmarksHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.syncer.BookmarkedArticles(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get bookmarks: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	resp := make([]articleJSON, 0, len(articles))
	for _, a := range articles {
		resp = append(resp, toArticleJSON(a))
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"articles": resp})
}

// setBookmarkHandler toggles a bookmark. The article is either passed in full or looked up by title.
// The store write is asynchronous, the response carries the updated record.
func (s *Server) setBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	var req bookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}

	var article domain.CachedArticle
	switch {
	case req.Article != nil && strings.TrimSpace(req.Article.Title) != "":
		article = req.Article.toCached()
	case strings.TrimSpace(req.Title) != "":
		found, err := s.syncer.LookupArticle(r.Context(), req.Title)
		if err != nil {
			s.renderLookupError(w, r, err)
			return
		}
		article = found
	default:
		renderError(w, r, errors.New("article title is required"), http.StatusBadRequest)
		return
	}

	s.syncer.SetBookmark(&article, req.Bookmarked)
	renderJSON(w, r, http.StatusAccepted, toArticleJSON(article))
}

// articleHandler returns an article by title with its content cleaned for reading
func (s *Server) articleHandler(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		renderError(w, r, errors.New("title is required"), http.StatusBadRequest)
		return
	}

	article, err := s.syncer.LookupArticle(r.Context(), title)
	if err != nil {
		s.renderLookupError(w, r, err)
		return
	}

	body := article.Content
	if body == "" {
		body = article.Description
	}
	text, truncated := content.StripTruncation(s.cleaner.Clean(body))
	renderJSON(w, r, http.StatusOK, articleDetail{articleJSON: toArticleJSON(article), Text: text, Truncated: truncated})
}

// fullTextHandler extracts the complete article text from the publisher page
func (s *Server) fullTextHandler(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		renderError(w, r, errors.New("full text extraction disabled"), http.StatusNotFound)
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		renderError(w, r, errors.New("url is required"), http.StatusBadRequest)
		return
	}

	extracted, err := s.extractor.Extract(r.Context(), url)
	if err != nil {
		lgr.Printf("[WARN] failed to extract %s: %v", url, err)
		renderError(w, r, err, http.StatusBadGateway)
		return
	}
	renderJSON(w, r, http.StatusOK, extracted)
}

func (s *Server) renderLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		renderError(w, r, err, http.StatusNotFound)
		return
	}
	lgr.Printf("[ERROR] failed to look up article: %v", err)
	renderError(w, r, err, http.StatusInternalServerError)
}

// parseWait reads the wait parameter, defaults to defaultWait and is capped by maxWait
func parseWait(v string) (time.Duration, error) {
	if v == "" {
		return defaultWait, nil
	}
	wait, err := time.ParseDuration(v)
	if err != nil || wait < 0 {
		return 0, fmt.Errorf("invalid wait %q", v)
	}
	return min(wait, maxWait), nil
}

// awaitTerminal watches results until a terminal one arrives or wait expires.
// Returns the last seen result, Loading if nothing was published.
func awaitTerminal[T any](ctx context.Context, obs broadcast.Observable[domain.Result[T]], wait time.Duration) domain.Result[T] {
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	last := domain.Loading[T]()
	updates := obs.Watch(ctx)
	for {
		select {
		case res, ok := <-updates:
			if !ok {
				return last
			}
			last = res
			if res.IsTerminal() {
				return res
			}
		case <-ctx.Done():
			return last
		}
	}
}
