package cmdutil

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/seedsync/pkg/errors"
)

// ParseYear parses the year argument.
func ParseYear(arg string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || year <= 0 {
		return 0, errors.NewValidationError("year", arg, "must be a positive integer year")
	}
	return year, nil
}

// ResolveDir returns the canonical form of dir (absolute, symlinks
// resolved) after checking that it exists and is a directory.
func ResolveDir(field, dir string) (string, error) {
	if dir == "" {
		return "", errors.NewValidationError(field, dir, "is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.NewValidationError(field, dir, err.Error())
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.NewValidationError(field, dir, err.Error())
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.NewValidationError(field, dir, err.Error())
	}
	if !info.IsDir() {
		return "", errors.NewValidationError(field, dir, "is not a directory")
	}
	return resolved, nil
}

// EnsureOutside rejects a root directory that is the seed directory or lies
// inside it. Both paths must already be canonical.
func EnsureOutside(rootDir, seedDir string) error {
	rel, err := filepath.Rel(seedDir, rootDir)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return errors.NewValidationError("root_dir", rootDir, "must not be inside the seed directory "+seedDir)
	}
	return nil
}
