package engine

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/searchlens/searchlens/internal/core"
	"github.com/searchlens/searchlens/internal/core/registry"
)

// Launcher opens a URL in the operating system's default browser.
type Launcher interface {
	Open(url string) error
}

// Dispatcher expands platform templates for a subject and sequences browser
// openings. It carries no UI dependency; presentation layers consume the
// records and outcome channel it produces.
type Dispatcher struct {
	Registry *registry.Registry
	Launcher Launcher
	Clock    func() time.Time
	NewID    func() string
}

// Generate expands every template in the selected categories for the subject
// name. Categories iterate in caller order, platforms in registry order. A
// template that fails to expand yields an error-marked record; it never aborts
// the batch.
func (d *Dispatcher) Generate(name string, categories []string) (*core.Investigation, error) {
	subject := strings.TrimSpace(name)
	if subject == "" {
		return nil, core.ErrEmptyQuery
	}
	if len(categories) == 0 {
		return nil, core.ErrNoCategoriesSelected
	}

	reg := d.registry()
	selected := make([]string, 0, len(categories))
	for _, category := range categories {
		trimmed := strings.TrimSpace(category)
		if trimmed == "" {
			continue
		}
		if !reg.Has(trimmed) {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownCategory, trimmed)
		}
		selected = append(selected, trimmed)
	}
	if len(selected) == 0 {
		return nil, core.ErrNoCategoriesSelected
	}

	records := make([]core.SearchRecord, 0)
	failures := 0
	for _, category := range selected {
		templates, err := reg.TemplatesFor(category)
		if err != nil {
			return nil, err
		}
		for _, tmpl := range templates {
			record := core.SearchRecord{
				Category:    tmpl.Category,
				Platform:    tmpl.Platform,
				GeneratedAt: d.now(),
			}
			expanded, err := Expand(subject, tmpl.Pattern)
			if err != nil {
				record.Err = err.Error()
				failures++
			} else {
				record.URL = expanded
			}
			records = append(records, record)
		}
	}

	return &core.Investigation{
		ID:          d.newID(),
		Subject:     subject,
		Categories:  selected,
		Records:     records,
		Errors:      failures,
		CompletedAt: d.now(),
	}, nil
}

// OpenAll dispatches each openable record to the browser in generation order,
// sleeping delay between opens, and returns the number opened successfully.
// Error-marked records and URLs without an http(s) scheme are skipped; an
// opening failure for one record does not abort the rest. There is no
// cancellation once a batch open has started.
func (d *Dispatcher) OpenAll(records []core.SearchRecord, delay time.Duration) int {
	opened := 0
	for outcome := range d.OpenAllAsync(records, delay) {
		if outcome.Opened {
			opened++
		}
	}
	return opened
}

// OpenAllAsync dispatches records on a background worker and streams one
// outcome per openable record. The channel closes when the batch completes.
func (d *Dispatcher) OpenAllAsync(records []core.SearchRecord, delay time.Duration) <-chan core.OpenOutcome {
	outcomes := make(chan core.OpenOutcome)
	go func() {
		defer close(outcomes)
		first := true
		for _, record := range records {
			if !openable(record) {
				continue
			}
			if !first && delay > 0 {
				time.Sleep(delay)
			}
			first = false

			outcome := core.OpenOutcome{Record: record}
			if d.Launcher == nil {
				outcome.Err = "browser launcher is not configured"
			} else if err := d.Launcher.Open(record.URL); err != nil {
				outcome.Err = err.Error()
			} else {
				outcome.Opened = true
			}
			outcomes <- outcome
		}
	}()
	return outcomes
}

func openable(record core.SearchRecord) bool {
	if !record.OK() {
		return false
	}
	parsed, err := url.Parse(record.URL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

func (d *Dispatcher) registry() *registry.Registry {
	if d != nil && d.Registry != nil {
		return d.Registry
	}
	return registry.Default()
}

func (d *Dispatcher) now() time.Time {
	if d != nil && d.Clock != nil {
		return d.Clock()
	}
	return time.Now().UTC()
}

func (d *Dispatcher) newID() string {
	if d != nil && d.NewID != nil {
		return d.NewID()
	}
	return uuid.New().String()
}
