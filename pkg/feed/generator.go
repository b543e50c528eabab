// Package feed renders stored articles as an RSS 2.0 feed.
package feed

import (
	"encoding/xml"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/umputun/newsdeck/pkg/content"
	"github.com/umputun/newsdeck/pkg/domain"
)

// Generator creates RSS feeds from articles
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Channel describes the feed being generated
type Channel struct {
	Title       string
	Description string
	Path        string // path of the feed itself, used for the atom self link
}

// GenerateRSS creates an RSS 2.0 feed from articles
func (g *Generator) GenerateRSS(articles []domain.CachedArticle, ch Channel) (string, error) {
	rssItems := make([]*RSSItem, 0, len(articles))
	for _, a := range articles {
		rssItems = append(rssItems, g.convertToRSSItem(a))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         ch.Title,
			Link:          g.baseURL + "/",
			Description:   ch.Description,
			AtomLink:      &AtomLink{Href: g.baseURL + ch.Path, Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func (g *Generator) convertToRSSItem(a domain.CachedArticle) *RSSItem {
	desc := a.Description
	if desc == "" {
		desc, _ = content.StripTruncation(a.Content)
	}

	item := &RSSItem{
		Title:       a.Title,
		Link:        a.URL,
		GUID:        RSSGUID{Value: a.URL, IsPermaLink: a.URL != ""},
		Description: desc,
		Author:      a.Author,
		Category:    a.SourceName,
	}
	if a.URL == "" {
		item.GUID.Value = a.Title
	}
	if ts, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		item.PubDate = ts.Format(time.RFC1123Z)
	}
	if a.URLToImage != "" {
		item.Enclosure = &Enclosure{URL: a.URLToImage, Type: imageType(a.URLToImage)}
	}
	return item
}

// imageType guesses the mime type from the image URL extension
func imageType(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if t := mime.TypeByExtension(path.Ext(u)); strings.HasPrefix(t, "image/") {
		return t
	}
	return "image/jpeg"
}
