// Package report persists analysis reports as indented JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	consts "github.com/khanhnv2901/p2psec/internal/shared/constants"
	apperrors "github.com/khanhnv2901/p2psec/internal/shared/errors"
	"github.com/khanhnv2901/p2psec/internal/shared/security"
)

// Writer stores reports under a single directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, consts.DefaultDirPerm); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the directory reports are written to.
func (w *Writer) Dir() string {
	return w.dir
}

// Write marshals v with two-space indentation to filename inside the writer's
// directory and returns the absolute path written. Filenames that resolve
// outside the directory are rejected.
func (w *Writer) Write(filename string, v any) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", apperrors.ErrEmptyReportPath
	}

	path, err := security.ResolveWithin(w.dir, filename)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrSerializationFailed, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.DefaultFilePerm)
	if err != nil {
		return "", fmt.Errorf("open report file: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}

	return path, nil
}

// WriteToPath splits path into directory and filename and writes v there.
func WriteToPath(path string, v any) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", apperrors.ErrEmptyReportPath
	}
	w, err := NewWriter(filepath.Dir(path))
	if err != nil {
		return "", err
	}
	return w.Write(filepath.Base(path), v)
}
