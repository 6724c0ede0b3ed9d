// Package filesystem persists retrieved documents to the local
// filesystem. It is the hosting environment's implementation of the
// save-as-file capability.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
)

// ErrUnsafeFilename is returned when a document filename would escape
// the output directory.
var ErrUnsafeFilename = errors.New("filesystem: unsafe filename")

// Ensure Saver implements the interface.
var _ driven.FileSaver = (*Saver)(nil)

// Saver writes document payloads into a single output directory.
type Saver struct {
	dir string
}

// NewSaver creates a saver rooted at dir. An empty dir means the
// current working directory.
func NewSaver(dir string) *Saver {
	if dir == "" {
		dir = "."
	}
	return &Saver{dir: dir}
}

// Dir returns the output directory.
func (s *Saver) Dir() string {
	return s.dir
}

// SetDir redirects subsequent saves to dir. An empty dir is ignored.
func (s *Saver) SetDir(dir string) {
	if dir != "" {
		s.dir = dir
	}
}

// Save writes the document under its filename and returns the absolute
// path of the written file. The payload lands via a temporary file and
// rename, so a crash mid-write never leaves a truncated document at the
// final path.
func (s *Saver) Save(_ context.Context, doc *domain.Document) (string, error) {
	if doc == nil {
		return "", errors.New("filesystem: nil document")
	}
	if err := checkFilename(doc.Filename); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	destPath := filepath.Join(s.dir, doc.Filename)
	tmpPath := destPath + ".tmp"

	if err := os.WriteFile(tmpPath, doc.Payload, 0644); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename temp file: %w", err)
	}

	abs, err := filepath.Abs(destPath)
	if err != nil {
		// The file is written; fall back to the relative path.
		return destPath, nil
	}
	return abs, nil
}

// checkFilename rejects names that traverse out of the output directory.
func checkFilename(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrUnsafeFilename)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrUnsafeFilename, name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrUnsafeFilename, name)
	}
	return nil
}
