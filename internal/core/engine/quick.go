package engine

import (
	"net/url"
	"strings"

	"github.com/searchlens/searchlens/internal/core"
)

const googleSearchBase = "https://www.google.com/search?q="

// QuickSearchURL builds a single Google search URL for a free-text query.
// This is the degenerate one-platform case of template expansion.
func QuickSearchURL(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", core.ErrEmptyQuery
	}
	return googleSearchBase + url.QueryEscape(trimmed), nil
}
