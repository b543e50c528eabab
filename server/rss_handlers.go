package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdeck/pkg/feed"
)

// bookmarksRSSHandler serves bookmarked articles as RSS feed
func (s *Server) bookmarksRSSHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.syncer.BookmarkedArticles(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get bookmarks for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(s.config.GetBaseURL())
	rss, err := generator.GenerateRSS(articles, feed.Channel{
		Title:       "Newsdeck - Bookmarks",
		Description: "Articles bookmarked in newsdeck",
		Path:        "/rss/bookmarks",
	})
	if err != nil {
		lgr.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
