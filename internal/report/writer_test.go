package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/khanhnv2901/p2psec/internal/shared/errors"
	"github.com/khanhnv2901/p2psec/internal/shared/security"
)

type sample struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestWriterWritesIndentedJSON(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}

	path, err := w.Write("out.json", sample{Name: "run", Score: 80})
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if filepath.Dir(path) != mustAbs(t, dir) {
		t.Fatalf("expected report inside %s, got %s", dir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"name\": \"run\"") {
		t.Fatalf("expected two-space indentation, got:\n%s", data)
	}

	var got sample
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if got.Score != 80 {
		t.Errorf("expected score 80, got %d", got.Score)
	}
}

func TestWriterOverwritesExistingReport(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}

	if _, err := w.Write("out.json", sample{Name: strings.Repeat("x", 256)}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	path, err := w.Write("out.json", sample{Name: "short"})
	if err != nil {
		t.Fatalf("second write: %v", err)
	}

	var got sample
	data, _ := os.ReadFile(path)
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("file was not truncated: %v", err)
	}
	if got.Name != "short" {
		t.Errorf("expected overwritten name, got %q", got.Name)
	}
}

func TestWriterRejectsEscapingFilename(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}

	_, err = w.Write("../escape.json", sample{})
	if !errors.Is(err, security.ErrPathEscape) {
		t.Fatalf("expected ErrPathEscape, got %v", err)
	}
}

func TestWriterRejectsEmptyFilename(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}
	if _, err := w.Write("  ", sample{}); !errors.Is(err, apperrors.ErrEmptyReportPath) {
		t.Fatalf("expected ErrEmptyReportPath, got %v", err)
	}
}

func TestWriterSerializationError(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter returned error: %v", err)
	}
	_, err = w.Write("bad.json", map[string]any{"ch": make(chan int)})
	if !errors.Is(err, apperrors.ErrSerializationFailed) {
		t.Fatalf("expected ErrSerializationFailed, got %v", err)
	}
}

func TestWriteToPathCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reports", "security.json")

	written, err := WriteToPath(path, sample{Name: "nested"})
	if err != nil {
		t.Fatalf("WriteToPath returned error: %v", err)
	}
	if written != mustAbs(t, path) {
		t.Fatalf("expected %s, got %s", path, written)
	}
	if _, err := os.Stat(written); err != nil {
		t.Fatalf("report not written: %v", err)
	}
}

func TestWriteToPathFailsWhenDirectoryIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("create blocker: %v", err)
	}

	if _, err := WriteToPath(filepath.Join(blocker, "report.json"), sample{}); err == nil {
		t.Fatal("expected error when parent path is a regular file")
	}
}

func mustAbs(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.Abs(p)
	if err != nil {
		t.Fatalf("abs %s: %v", p, err)
	}
	return abs
}
