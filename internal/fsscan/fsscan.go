// Package fsscan lists the project directories that already exist under the
// managed root.
package fsscan

import (
	"os"
	"path/filepath"

	"github.com/agentstation/seedsync/pkg/dirset"
	"github.com/agentstation/seedsync/pkg/errors"
)

// SkipFunc is told about a child entry that was left out because it could not
// be inspected.
type SkipFunc func(path string, err error)

// Directories returns every immediate child of root that is a directory.
// Symlinks are followed, so a link to a directory counts. Entries that cannot
// be stat'ed (broken links, permission problems) are skipped and passed to
// onSkip when it is non-nil. Only a failure to list root itself is returned.
func Directories(root string, onSkip SkipFunc) (*dirset.Set, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.NewFilesystemError("list", root, err)
	}

	dirs := dirset.New()
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())

		if entry.IsDir() {
			dirs.Add(path)
			continue
		}
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			if onSkip != nil {
				onSkip(path, err)
			}
			continue
		}
		if info.IsDir() {
			dirs.Add(path)
		}
	}
	return dirs, nil
}
