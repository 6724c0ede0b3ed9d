package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
)

// TemplatesFilename is the name of the template configuration file.
const TemplatesFilename = "templates.toml"

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// TemplateStore is a file-based implementation of driven.TemplateStore
// using TOML. Template groups are stored in declaration order, which is
// the order the resolver probes them in.
type TemplateStore struct {
	mu       sync.RWMutex
	filePath string
	groups   []domain.TemplateGroup
}

// templatesFile is the on-disk TOML shape.
type templatesFile struct {
	Groups []templateGroupEntry `toml:"groups"`
}

type templateGroupEntry struct {
	Name      string   `toml:"name"`
	Templates []string `toml:"templates"`
}

// NewTemplateStore creates a TOML-backed template store under configDir.
// If configDir is empty, defaults to ~/.specfetch. A missing templates
// file is seeded with the built-in groups on first use.
func NewTemplateStore(configDir string) (*TemplateStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".specfetch")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &TemplateStore{
		filePath: filepath.Join(configDir, TemplatesFilename),
	}

	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		if err := s.WriteDefault(); err != nil {
			return nil, err
		}
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Load reads and validates the templates file, replacing the in-memory
// groups on success. A malformed file leaves the previous groups intact.
func (s *TemplateStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read templates file: %w", err)
	}

	var parsed templatesFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse %s: %w", TemplatesFilename, err)
	}

	if len(parsed.Groups) == 0 {
		return fmt.Errorf("%s: %w", TemplatesFilename, domain.ErrNoTemplates)
	}

	groups := make([]domain.TemplateGroup, 0, len(parsed.Groups))
	for _, entry := range parsed.Groups {
		group := domain.TemplateGroup{Name: entry.Name}
		for _, t := range entry.Templates {
			group.Templates = append(group.Templates, domain.Template(t))
		}
		if err := group.Validate(); err != nil {
			return fmt.Errorf("%s: %w", TemplatesFilename, err)
		}
		groups = append(groups, group)
	}

	s.mu.Lock()
	s.groups = groups
	s.mu.Unlock()
	return nil
}

// Groups returns the template groups in probe order. The returned slice
// is a copy; callers may not mutate store state through it.
func (s *TemplateStore) Groups(_ context.Context) ([]domain.TemplateGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.groups) == 0 {
		return nil, domain.ErrNoTemplates
	}

	out := make([]domain.TemplateGroup, len(s.groups))
	for i, g := range s.groups {
		templates := make([]domain.Template, len(g.Templates))
		copy(templates, g.Templates)
		out[i] = domain.TemplateGroup{Name: g.Name, Templates: templates}
	}
	return out, nil
}

// WriteDefault seeds the templates file with the built-in groups.
func (s *TemplateStore) WriteDefault() error {
	defaults := templatesFile{}
	for _, g := range domain.DefaultTemplateGroups() {
		entry := templateGroupEntry{Name: g.Name}
		for _, t := range g.Templates {
			entry.Templates = append(entry.Templates, string(t))
		}
		defaults.Groups = append(defaults.Groups, entry)
	}

	data, err := toml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("marshal default templates: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write templates file: %w", err)
	}
	return nil
}

// Path returns the templates file path.
func (s *TemplateStore) Path() string {
	return s.filePath
}
