package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local writes reports into a directory on the local filesystem and returns
// the absolute file path as the identifier.
type Local struct {
	dir string
}

// NewLocal creates a local sink rooted at dir.
func NewLocal(dir string) *Local {
	if dir == "" {
		dir = "."
	}
	return &Local{dir: dir}
}

// Store writes data to dir/name, creating the directory if needed.
func (l *Local) Store(_ context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(l.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
