// Package registry holds the static platform template table used to generate
// search URLs. The table is loaded once from an embedded document at startup
// and never mutated; declaration order is the iteration order.
package registry

import (
	"fmt"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/searchlens/searchlens/internal/core"
)

//go:embed platforms.yaml
var platformsYAML []byte

// Category is an ordered group of platform templates.
type Category struct {
	Name      string
	Platforms []core.PlatformTemplate
}

type categoryDoc struct {
	Name      string `yaml:"name"`
	Platforms []struct {
		Name string `yaml:"name"`
		URL  string `yaml:"url"`
	} `yaml:"platforms"`
}

type registryDoc struct {
	Categories []categoryDoc `yaml:"categories"`
}

// Registry is an immutable, ordered category-to-templates table.
type Registry struct {
	categories []Category
	index      map[string]int
}

// New parses a registry document. Every template must carry either a single
// positional slot or named first/last slots, never both.
func New(data []byte) (*Registry, error) {
	var doc registryDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse platform registry: %w", err)
	}
	if len(doc.Categories) == 0 {
		return nil, fmt.Errorf("platform registry is empty")
	}

	r := &Registry{
		categories: make([]Category, 0, len(doc.Categories)),
		index:      make(map[string]int, len(doc.Categories)),
	}

	for _, cat := range doc.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("platform registry contains an unnamed category")
		}
		if _, exists := r.index[name]; exists {
			return nil, fmt.Errorf("duplicate category %q", name)
		}

		templates := make([]core.PlatformTemplate, 0, len(cat.Platforms))
		for _, p := range cat.Platforms {
			tmpl := core.PlatformTemplate{
				Category: name,
				Platform: strings.TrimSpace(p.Name),
				Pattern:  strings.TrimSpace(p.URL),
			}
			if tmpl.Platform == "" || tmpl.Pattern == "" {
				return nil, fmt.Errorf("category %q contains an incomplete platform entry", name)
			}
			if err := core.ValidatePattern(tmpl.Pattern); err != nil {
				return nil, fmt.Errorf("category %q platform %q: %w", name, tmpl.Platform, err)
			}
			templates = append(templates, tmpl)
		}
		if len(templates) == 0 {
			return nil, fmt.Errorf("category %q has no platforms", name)
		}

		r.index[name] = len(r.categories)
		r.categories = append(r.categories, Category{Name: name, Platforms: templates})
	}

	return r, nil
}

// Default returns the registry built from the embedded platform table.
func Default() *Registry {
	return defaultRegistry
}

var defaultRegistry = mustLoad()

func mustLoad() *Registry {
	r, err := New(platformsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded platform registry is invalid: %v", err))
	}
	return r
}

// Categories returns category names in declaration order.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.categories))
	for _, cat := range r.categories {
		names = append(names, cat.Name)
	}
	return names
}

// TemplatesFor returns the ordered platform templates for a category.
func (r *Registry) TemplatesFor(category string) ([]core.PlatformTemplate, error) {
	idx, ok := r.index[strings.TrimSpace(category)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownCategory, category)
	}
	return r.categories[idx].Platforms, nil
}

// Has reports whether the category exists.
func (r *Registry) Has(category string) bool {
	_, ok := r.index[strings.TrimSpace(category)]
	return ok
}

// PlatformCount returns the total number of templates across all categories.
func (r *Registry) PlatformCount() int {
	total := 0
	for _, cat := range r.categories {
		total += len(cat.Platforms)
	}
	return total
}
