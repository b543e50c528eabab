package domain

import "fmt"

// FeedKind identifies one of the two article feeds
type FeedKind string

// supported feeds
const (
	FeedHeadline FeedKind = "headline"
	FeedGeneral  FeedKind = "general"
)

// AllFeeds lists feeds in the order they are refreshed
var AllFeeds = []FeedKind{FeedHeadline, FeedGeneral}

// ParseFeedKind converts a string to FeedKind, "headlines" and "everything" are accepted as aliases
func ParseFeedKind(s string) (FeedKind, error) {
	switch s {
	case "headline", "headlines":
		return FeedHeadline, nil
	case "general", "everything":
		return FeedGeneral, nil
	default:
		return "", fmt.Errorf("unknown feed %q", s)
	}
}

// String returns feed name
func (f FeedKind) String() string { return string(f) }
