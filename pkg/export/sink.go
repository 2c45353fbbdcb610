package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Result tells the caller where a document ended up, or that the export was
// abandoned before anything was written.
type Result struct {
	Canceled bool   `json:"canceled"`
	FilePath string `json:"file_path,omitempty"`
}

// FileSink persists finished documents under a fixed directory.
type FileSink struct {
	dir string
}

// NewFileSink creates a sink writing into dir, creating it when needed.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: dir}
}

// Dir returns the output directory.
func (s *FileSink) Dir() string {
	return s.dir
}

// Save writes data as <sanitized base>.<ext>. A context canceled before the
// write yields a canceled Result rather than an error.
func (s *FileSink) Save(ctx context.Context, base, ext string, data []byte) (Result, error) {
	if len(data) == 0 {
		return Result{}, ErrEmptyDocument
	}
	if ctx.Err() != nil {
		return Result{Canceled: true}, nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("export: failed to create output dir: %w", err)
	}

	path := filepath.Join(s.dir, FileName(base, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Result{}, fmt.Errorf("export: failed to write %s: %w", path, err)
	}
	return Result{FilePath: path}, nil
}
