package projects

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/agentstation/seedsync/pkg/errors"
)

// nonWord matches runs of anything that is not a letter, digit or underscore.
// Letters and digits are Unicode-aware to match Postgres' \W in a UTF8 database.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Normalize returns the directory name for a project phase.
// Hyphens in the phase number become underscores, every run of non-word
// characters in the project name collapses to a single underscore, and the two
// parts are joined with an underscore. No trimming or case folding is applied.
func Normalize(phaseNumber, projectName string) string {
	phase := strings.ReplaceAll(phaseNumber, "-", "_")
	name := nonWord.ReplaceAllString(projectName, "_")
	return phase + "_" + name
}

// ValidDirName reports whether name can be used as a single path element
// directly beneath the managed root. Normalize never emits a separator from the
// project name, so a rejection here always points at a malformed phase number.
func ValidDirName(name string) error {
	switch {
	case name == "":
		return errors.NewValidationError("dir_name", name, "empty directory name")
	case name == "." || name == "..":
		return errors.NewValidationError("dir_name", name, "directory name refers to a parent or itself")
	case strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/'):
		return errors.NewValidationError("dir_name", name, "directory name contains a path separator")
	case strings.ContainsRune(name, 0):
		return errors.NewValidationError("dir_name", name, "directory name contains a NUL byte")
	}
	return nil
}
