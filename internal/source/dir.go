package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir serves documents from a directory on disk.
type Dir struct {
	root string
}

// NewDir returns a source rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Root returns the directory documents are read from.
func (d *Dir) Root() string { return d.root }

func (d *Dir) Fetch(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	clean, err := ValidateName(name)
	if err != nil {
		return "", fmt.Errorf("%q: %w", name, err)
	}
	b, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(clean)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read %s: %w", clean, ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", clean, err)
	}
	return string(b), nil
}
