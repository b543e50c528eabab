package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/newsdeck/pkg/broadcast"
	"github.com/umputun/newsdeck/pkg/content"
	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/feedsync"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/syncer.go -pkg mocks -skip-ensure -fmt goimports . Syncer
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . Settings

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	syncer    Syncer
	extractor Extractor
	settings  Settings
	cleaner   *content.Cleaner
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetBaseURL() string
}

// Syncer is the feed coordinator as seen by the handlers
type Syncer interface {
	RequestLoad(kind domain.FeedKind) error
	Refresh(kind domain.FeedKind) error
	RefreshAll() error
	Headlines() broadcast.Observable[domain.Result[[]domain.CachedArticle]]
	General() broadcast.Observable[domain.Result[[]domain.Article]]
	SetBookmark(article *domain.CachedArticle, bookmarked bool)
	BookmarkedArticles(ctx context.Context) ([]domain.CachedArticle, error)
	LookupArticle(ctx context.Context, title string) (domain.CachedArticle, error)
	Status() []feedsync.FeedStatus
}

// Extractor pulls full article text from the article page
type Extractor interface {
	Extract(ctx context.Context, url string) (content.Extracted, error)
}

// Settings reads stored settings
type Settings interface {
	GetTime(ctx context.Context, key string) (time.Time, error)
}

// Params holds server dependencies. Extractor is optional, nil disables full text extraction.
type Params struct {
	Config    ConfigProvider
	Syncer    Syncer
	Extractor Extractor
	Settings  Settings
	Version   string
	Debug     bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:    p.Config,
		syncer:    p.Syncer,
		extractor: p.Extractor,
		settings:  p.Settings,
		cleaner:   content.NewCleaner(),
		version:   p.Version,
		debug:     p.Debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		// long enough for a news request waiting on the maximum fetch wait
		WriteTimeout: timeout + maxWait,
		IdleTimeout:  timeout,
	}
	httpServer := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newsdeck", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /news/{feed}", s.newsHandler)
		r.HandleFunc("POST /news/{feed}/refresh", s.refreshFeedHandler)
		r.HandleFunc("POST /refresh", s.refreshAllHandler)
		r.HandleFunc("GET /bookmarks", s.bookmarksHandler)
		r.HandleFunc("POST /bookmarks", s.setBookmarkHandler)
		r.HandleFunc("GET /article", s.articleHandler)
		r.HandleFunc("GET /article/full", s.fullTextHandler)
	})

	s.router.HandleFunc("GET /rss/bookmarks", s.bookmarksRSSHandler)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, rest.JSON{"error": errMsg})
}
