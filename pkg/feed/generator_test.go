package feed

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/newsdeck/pkg/domain"
)

func TestGenerator_GenerateRSS(t *testing.T) {
	generator := NewGenerator("https://example.com/")
	generator.now = func() time.Time { return time.Date(2025, 7, 21, 12, 0, 0, 0, time.UTC) }

	articles := []domain.CachedArticle{
		{
			Title:        "Rates cut",
			PublishedAt:  "2025-07-21T10:00:00Z",
			URL:          "https://news.example.com/rates",
			URLToImage:   "https://img.example.com/rates.png?w=600",
			SourceName:   "BBC News",
			Author:       "Jane Doe",
			Description:  "Central bank cuts rates",
			IsBookmarked: true,
		},
		{
			Title:        "No link & no date",
			Content:      "Body text… [+200 chars]",
			IsBookmarked: true,
		},
	}

	rss, err := generator.GenerateRSS(articles, Channel{Title: "Newsdeck - Bookmarks", Description: "Saved articles", Path: "/rss/bookmarks"})
	require.NoError(t, err)

	assert.Contains(t, rss, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, rss, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, rss, `<title>Newsdeck - Bookmarks</title>`)
	assert.Contains(t, rss, `<link>https://example.com/</link>`)
	assert.Contains(t, rss, `<description>Saved articles</description>`)
	assert.Contains(t, rss, `<link xmlns="http://www.w3.org/2005/Atom" href="https://example.com/rss/bookmarks" rel="self" type="application/rss+xml"></link>`)
	assert.Contains(t, rss, `<lastBuildDate>Mon, 21 Jul 2025 12:00:00 +0000</lastBuildDate>`)

	assert.Contains(t, rss, `<title>Rates cut</title>`)
	assert.Contains(t, rss, `<guid isPermaLink="true">https://news.example.com/rates</guid>`)
	assert.Contains(t, rss, `<pubDate>Mon, 21 Jul 2025 10:00:00 +0000</pubDate>`)
	assert.Contains(t, rss, `<category>BBC News</category>`)
	assert.Contains(t, rss, `<enclosure url="https://img.example.com/rates.png?w=600" type="image/png" length="0"></enclosure>`)

	assert.Contains(t, rss, `<title>No link &amp; no date</title>`)
	assert.Contains(t, rss, `<guid isPermaLink="false">No link &amp; no date</guid>`)
	assert.Contains(t, rss, `<description>Body text</description>`, "truncation marker stripped")

	var parsed RSS
	require.NoError(t, xml.Unmarshal([]byte(rss), &parsed))
	require.Len(t, parsed.Channel.Items, 2)
	assert.Empty(t, parsed.Channel.Items[1].PubDate)
	assert.Nil(t, parsed.Channel.Items[1].Enclosure)
}

func TestGenerator_Empty(t *testing.T) {
	rss, err := NewGenerator("http://localhost:8080").GenerateRSS(nil, Channel{Title: "empty", Path: "/rss/bookmarks"})
	require.NoError(t, err)
	assert.Contains(t, rss, `<title>empty</title>`)
	assert.NotContains(t, rss, "<item>")
}

func TestImageType(t *testing.T) {
	assert.Equal(t, "image/png", imageType("https://x/a.png"))
	assert.Equal(t, "image/jpeg", imageType("https://x/a"))
	assert.Equal(t, "image/jpeg", imageType("https://x/a.html#frag"))
}
