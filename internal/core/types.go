package core

import (
	"errors"
	"time"
)

// Validation errors surfaced at the top of an operation. Per-record failures
// (template expansion, browser open) are captured inline and never abort a batch.
var (
	ErrEmptyQuery           = errors.New("query cannot be empty")
	ErrNoCategoriesSelected = errors.New("at least one category must be selected")
	ErrUnknownCategory      = errors.New("unknown category")
)

// PlatformTemplate is one URL pattern for a platform within a category.
// Templates are static configuration, defined once at startup and never mutated.
type PlatformTemplate struct {
	Category string `json:"category"`
	Platform string `json:"platform"`
	Pattern  string `json:"pattern"`
}

// SearchRecord is one expanded (category, platform, url) tuple. Records are
// immutable once created and collected in category-then-platform order.
type SearchRecord struct {
	Category    string    `json:"category"`
	Platform    string    `json:"platform"`
	URL         string    `json:"url,omitempty"`
	Err         string    `json:"error,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// OK reports whether the record carries a usable URL rather than an
// expansion error marker.
func (r SearchRecord) OK() bool {
	return r.Err == "" && r.URL != ""
}

// Investigation captures the outcome of a single generate invocation.
type Investigation struct {
	ID          string         `json:"id"`
	Subject     string         `json:"subject"`
	Categories  []string       `json:"categories"`
	Records     []SearchRecord `json:"records"`
	Errors      int            `json:"errors"`
	CompletedAt time.Time      `json:"completed_at"`
}

// OpenOutcome reports the result of dispatching one record to the browser.
type OpenOutcome struct {
	Record SearchRecord `json:"record"`
	Opened bool         `json:"opened"`
	Err    string       `json:"error,omitempty"`
}
