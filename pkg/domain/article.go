package domain

// Article is a news article as delivered by the remote feed.
// The feed provides no numeric id, Title serves as the natural key.
type Article struct {
	Title       string
	PublishedAt string // ISO-8601, empty if absent
	URLToImage  string
	URL         string
	SourceName  string
	Author      string
	Description string
	Content     string // may end with a "[+N chars]" truncation marker
}

// CachedArticle is a persisted article, one row per unique title
type CachedArticle struct {
	Title        string
	PublishedAt  string
	URLToImage   string
	URL          string
	SourceName   string
	Author       string
	Description  string
	Content      string
	IsBookmarked bool
}

// ToCached converts a remote article to a cached record with the given bookmark state
func (a Article) ToCached(bookmarked bool) CachedArticle {
	return CachedArticle{
		Title:        a.Title,
		PublishedAt:  a.PublishedAt,
		URLToImage:   a.URLToImage,
		URL:          a.URL,
		SourceName:   a.SourceName,
		Author:       a.Author,
		Description:  a.Description,
		Content:      a.Content,
		IsBookmarked: bookmarked,
	}
}

// ToArticle drops the bookmark state
func (c CachedArticle) ToArticle() Article {
	return Article{
		Title:       c.Title,
		PublishedAt: c.PublishedAt,
		URLToImage:  c.URLToImage,
		URL:         c.URL,
		SourceName:  c.SourceName,
		Author:      c.Author,
		Description: c.Description,
		Content:     c.Content,
	}
}

// TopicQuery holds parameters of the topic ("everything") feed request
type TopicQuery struct {
	Query          string
	Language       string
	ExcludeDomains string
	SortBy         string
}
