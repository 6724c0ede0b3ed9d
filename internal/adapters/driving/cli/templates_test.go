package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
)

func TestTemplatesCmd_Use(t *testing.T) {
	assert.Equal(t, "templates", templatesCmd.Use)
}

func TestTemplatesListCmd_PrintsGroups(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"templates", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "primary (2 templates)")
	assert.Contains(t, buf.String(), "secondary (2 templates)")
	assert.Contains(t, buf.String(), "{id}")
	assert.Contains(t, buf.String(), "Total: 4 candidates across 2 groups")
}

func TestTemplatesListCmd_StoreNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	templateStore = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"templates", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "template store not configured")
}

func TestTemplatesListCmd_StoreError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	templateStore = &mockTemplateStore{
		GroupsFunc: func(_ context.Context) ([]domain.TemplateGroup, error) {
			return nil, errors.New("config unreadable")
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"templates", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load templates")
}

func TestTemplatesPathCmd_PrintsPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"templates", "path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "/home/user/.specfetch/templates.toml")
}

func TestTemplatesPathCmd_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	templatesPath = ""

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"templates", "path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "template store not configured")
}
