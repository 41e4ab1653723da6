package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrPathEscape indicates the resolved path would leave the output directory.
	ErrPathEscape = errors.New("path escapes base directory")
	// ErrEmptyBase is returned when no output directory is given.
	ErrEmptyBase = errors.New("base directory is required")
)

// ResolveWithin joins elems under base and returns the absolute result,
// refusing anything that lands outside base. Report files are only written
// through paths resolved here.
func ResolveWithin(base string, elems ...string) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", ErrEmptyBase
	}

	root, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve base path: %w", err)
	}

	target, err := filepath.Abs(filepath.Join(append([]string{root}, elems...)...))
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}

	rel, err := filepath.Rel(root, target)
	if err != nil {
		return "", fmt.Errorf("relativize path: %w", err)
	}
	if rel == "." {
		return "", fmt.Errorf("%w: %s resolves to the directory itself", ErrPathEscape, target)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, target)
	}

	return target, nil
}
