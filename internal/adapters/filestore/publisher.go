// Package filestore publishes rendered artifacts to a filesystem.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPerm  os.FileMode = 0o755
	filePerm os.FileMode = 0o644
)

// Publisher implements ports.ArtifactPublisher.
type Publisher struct {
	fs afero.Fs
}

// New creates a Publisher writing to fsys.
func New(fsys afero.Fs) *Publisher {
	return &Publisher{fs: fsys}
}

// Publish creates the parent directory of path if needed and writes data,
// replacing any previous artifact.
func (p *Publisher) Publish(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := p.fs.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	if err := afero.WriteFile(p.fs, path, data, filePerm); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether an artifact is present at path.
func (p *Publisher) Exists(path string) bool {
	info, err := p.fs.Stat(path)
	return err == nil && !info.IsDir()
}
