package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// truncationMarker matches the "[+1234 chars]" tail newsapi appends to shortened content
var truncationMarker = regexp.MustCompile(`\s*\[\+\d+\s+chars\]\s*$`)

var spaces = regexp.MustCompile(`[ \t]+`)

// Cleaner turns remote article text into plain text
type Cleaner struct {
	policy *bluemonday.Policy
}

// NewCleaner makes a cleaner stripping all markup
func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.StrictPolicy()}
}

// Clean removes tags, unescapes entities and collapses runs of spaces
func (c *Cleaner) Clean(s string) string {
	if s == "" {
		return ""
	}
	res := html.UnescapeString(c.policy.Sanitize(s))
	res = spaces.ReplaceAllString(res, " ")
	return strings.TrimSpace(res)
}

// StripTruncation removes the trailing "[+N chars]" marker, truncated reports if it was present
func StripTruncation(s string) (text string, truncated bool) {
	loc := truncationMarker.FindStringIndex(s)
	if loc == nil {
		return s, false
	}
	return strings.TrimRight(s[:loc[0]], " …"), true
}
