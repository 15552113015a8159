package engine

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/searchlens/searchlens/internal/core"
)

// Expand substitutes a subject name into a URL pattern. Single-slot patterns
// receive the query-escaped full name; first/last patterns receive the first
// whitespace token and the joined remainder, each escaped independently.
//
// A single-token name against a first/last pattern fills the first slot with
// the full name and leaves the last slot empty.
func Expand(name, pattern string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", core.ErrEmptyQuery
	}

	if err := core.ValidatePattern(pattern); err != nil {
		return "", fmt.Errorf("expand template: %w", err)
	}

	if strings.Contains(pattern, core.PositionalSlot) {
		return strings.Replace(pattern, core.PositionalSlot, url.QueryEscape(trimmed), 1), nil
	}

	first, last := splitName(trimmed)
	expanded := strings.ReplaceAll(pattern, core.FirstSlot, url.QueryEscape(first))
	expanded = strings.ReplaceAll(expanded, core.LastSlot, url.QueryEscape(last))
	return expanded, nil
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name, ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
