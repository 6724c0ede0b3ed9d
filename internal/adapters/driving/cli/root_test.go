package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/logger"
)

// mockResolver implements driving.Resolver for command tests.
type mockResolver struct {
	ResolveFunc func(ctx context.Context, rawInput string) (*domain.Outcome, error)

	lastInput string
	listener  func(domain.ProbeResult)
	timeout   time.Duration
	groups    []domain.TemplateGroup
}

func (m *mockResolver) Resolve(ctx context.Context, rawInput string) (*domain.Outcome, error) {
	m.lastInput = rawInput
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, rawInput)
	}
	return foundOutcome("911401510832"), nil
}

func (m *mockResolver) SetProbeListener(fn func(domain.ProbeResult)) {
	m.listener = fn
}

func (m *mockResolver) SetTransferTimeout(d time.Duration) {
	m.timeout = d
}

func (m *mockResolver) SetGroups(groups []domain.TemplateGroup) {
	m.groups = groups
}

// mockSaver implements driven.FileSaver without touching the disk.
type mockSaver struct {
	SaveFunc func(ctx context.Context, doc *domain.Document) (string, error)

	dir   string
	saved *domain.Document
}

func (m *mockSaver) Save(ctx context.Context, doc *domain.Document) (string, error) {
	m.saved = doc
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, doc)
	}
	return "/downloads/" + doc.Filename, nil
}

func (m *mockSaver) SetDir(dir string) {
	m.dir = dir
}

// mockTemplateStore implements driven.TemplateStore.
type mockTemplateStore struct {
	GroupsFunc func(ctx context.Context) ([]domain.TemplateGroup, error)
}

func (m *mockTemplateStore) Groups(ctx context.Context) ([]domain.TemplateGroup, error) {
	if m.GroupsFunc != nil {
		return m.GroupsFunc(ctx)
	}
	return domain.DefaultTemplateGroups(), nil
}

// foundOutcome builds a successful outcome for id.
func foundOutcome(id domain.Identifier) *domain.Outcome {
	url := "https://catalog.example.com/api/v2/products/" + string(id) + "/specification.pdf"
	return &domain.Outcome{
		Status: domain.StatusFound,
		Document: &domain.Document{
			Identifier: id,
			SourceURL:  url,
			Filename:   id.Filename(),
			Payload:    []byte("%PDF-1.4 payload"),
			Retrieved:  time.Now(),
		},
		Trace: domain.Trace{
			{URL: url, Verified: true, Attempts: 1},
		},
	}
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous configuration.
func setupTestServices() func() {
	oldResolver := resolverService
	oldSaver := fileSaver
	oldStore := templateStore
	oldPath := templatesPath

	SetConfig(&Config{
		Resolver:      &mockResolver{},
		Saver:         &mockSaver{},
		Templates:     &mockTemplateStore{},
		TemplatesPath: "/home/user/.specfetch/templates.toml",
	})

	return func() {
		resolverService = oldResolver
		fileSaver = oldSaver
		templateStore = oldStore
		templatesPath = oldPath
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "specfetch", rootCmd.Use)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	assert.NotNil(t, flag, "verbose flag should exist")
	assert.Equal(t, "v", flag.Shorthand)
}

func TestRootCmd_VerboseFlagEnablesLogger(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() {
		verbose = false
		logger.SetVerbose(false)
	}()

	rootCmd.SetArgs([]string{"--verbose", "version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestSetConfig(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	resolver := &mockResolver{}
	saver := &mockSaver{}
	store := &mockTemplateStore{}

	SetConfig(&Config{
		Resolver:      resolver,
		Saver:         saver,
		Templates:     store,
		TemplatesPath: "/etc/specfetch/templates.toml",
	})

	assert.Equal(t, resolver, resolverService)
	assert.Equal(t, saver, fileSaver)
	assert.Equal(t, store, templateStore)
	assert.Equal(t, "/etc/specfetch/templates.toml", templatesPath)
}

func TestSetConfig_NilIsIgnored(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	before := resolverService
	SetConfig(nil)

	assert.Equal(t, before, resolverService)
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version, "empty version is ignored")
}
