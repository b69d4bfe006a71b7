// Package runlock keeps two runs from provisioning the same root at once.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/agentstation/seedsync/pkg/constants"
	"github.com/agentstation/seedsync/pkg/errors"
)

// Lock is an advisory lock held for the duration of a run.
type Lock struct {
	path string
	fl   *flock.Flock
}

// DefaultDir returns the directory lock files are kept in when none is
// configured: $XDG_RUNTIME_DIR if set, otherwise the OS temp directory.
func DefaultDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// PathFor returns the lock file used for root inside dir. The lock never
// lives under root itself, so it cannot show up as a project directory.
func PathFor(dir, root string) string {
	if dir == "" {
		dir = DefaultDir()
	}
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Join(dir, constants.LockFilePrefix+hex.EncodeToString(sum[:6])+".lock")
}

// Acquire takes the lock for root without blocking. It returns an error
// wrapping errors.ErrLocked when another process holds it.
func Acquire(dir, root string) (*Lock, error) {
	path := PathFor(dir, root)
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.NewFilesystemError("create lock dir", filepath.Dir(path), err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s is locked by %s", errors.ErrLocked, root, path)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
