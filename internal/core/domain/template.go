package domain

import (
	"fmt"
	"strings"
)

// Placeholder is the substitution marker templates use for the identifier.
const Placeholder = "{id}"

// Template is a URL pattern containing exactly one identifier placeholder.
type Template string

// Validate checks the template shape: an http(s) URL with exactly one
// placeholder occurrence.
func (t Template) Validate() error {
	s := string(t)
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("%w: %q must use http or https", ErrInvalidTemplate, s)
	}
	switch n := strings.Count(s, Placeholder); {
	case n == 0:
		return fmt.Errorf("%w: %q has no %s placeholder", ErrInvalidTemplate, s, Placeholder)
	case n > 1:
		return fmt.Errorf("%w: %q has %d %s placeholders, want exactly 1", ErrInvalidTemplate, s, n, Placeholder)
	}
	return nil
}

// Expand substitutes the identifier into the placeholder, producing a
// concrete candidate URL. Candidates are ephemeral: they exist only for
// the duration of one resolution call.
func (t Template) Expand(id Identifier) string {
	return strings.Replace(string(t), Placeholder, string(id), 1)
}

// TemplateGroup is an ordered sequence of URL templates representing one
// API generation. Groups are themselves ordered: during resolution,
// earlier groups take strict precedence over later ones.
type TemplateGroup struct {
	// Name labels the group (e.g. "primary", "secondary").
	Name string

	// Templates are tried in declared order.
	Templates []Template
}

// Validate checks every template in the group.
func (g TemplateGroup) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: group has no name", ErrInvalidTemplate)
	}
	for _, t := range g.Templates {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// DefaultTemplateGroups returns the built-in template configuration:
// the current-generation "primary" group followed by the legacy
// "secondary" group. Deployments point these at their own catalog
// service via the templates file.
func DefaultTemplateGroups() []TemplateGroup {
	return []TemplateGroup{
		{
			Name: "primary",
			Templates: []Template{
				"https://catalog.example.com/api/v2/products/{id}/specification.pdf",
				"https://catalog.example.com/api/v2/documents/{id}.pdf",
			},
		},
		{
			Name: "secondary",
			Templates: []Template{
				"https://catalog.example.com/api/v1/specs/{id}.pdf",
				"https://catalog.example.com/api/v1/pdf/spec_{id}.pdf",
			},
		},
	}
}
