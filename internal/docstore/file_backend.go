package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// FileBackend stores every collection as <dir>/<collection>.json.
type FileBackend struct {
	dir  string
	perm fs.FileMode
}

// NewFileBackend creates the data directory if needed and returns a backend rooted at it.
func NewFileBackend(dir string, perm fs.FileMode) (*FileBackend, error) {
	if dir == "" {
		return nil, errors.New("data directory is required")
	}
	if perm == 0 {
		perm = 0o644
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileBackend{dir: dir, perm: perm}, nil
}

// Kind implements Backend.
func (b *FileBackend) Kind() string { return "file" }

// Path returns the file backing a collection.
func (b *FileBackend) Path(collection string) string {
	return filepath.Join(b.dir, collection+".json")
}

// Load implements Backend.
func (b *FileBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.Path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return data, nil
}

// Save implements Backend. The document goes to a pending file in the data
// directory that atomically replaces the target once it is synced.
func (b *FileBackend) Save(ctx context.Context, collection string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pending, err := renameio.NewPendingFile(b.Path(collection),
		renameio.WithTempDir(b.dir),
		renameio.WithStaticPermissions(b.perm),
	)
	if err != nil {
		return fmt.Errorf("create pending file for %s: %w", collection, err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}

// Ping implements Backend by checking that the data directory is accessible.
func (b *FileBackend) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(b.dir)
	if err != nil {
		return fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", b.dir)
	}
	return nil
}

// Close implements Backend. Files are opened per call, so there is nothing to release.
func (b *FileBackend) Close() error { return nil }
