package provision

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/agentstation/seedsync/pkg/constants"
)

type dirMode struct {
	path string
	perm os.FileMode
}

// copyContents copies everything inside src into the existing directory dst.
// Regular files and directories keep their permission bits, symlinks are
// recreated as symlinks. Any other file type is an error. It returns the
// path of the entry that failed along with the error.
func copyContents(ctx context.Context, src, dst string) (string, error) {
	var dirs []dirMode
	var failed string

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			failed = path
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			failed = path
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			failed = path
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			failed = path
			return err
		}

		switch mode := info.Mode(); {
		case mode.IsDir():
			// Owner write is needed while children are copied; the real bits
			// are applied once the walk is done.
			if err := os.Mkdir(target, constants.DirPermissions|0o700); err != nil {
				failed = target
				return err
			}
			dirs = append(dirs, dirMode{path: target, perm: mode.Perm()})
		case mode&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				failed = path
				return err
			}
			if err := os.Symlink(link, target); err != nil {
				failed = target
				return err
			}
		case mode.IsRegular():
			if err := copyFileMode(path, target, mode.Perm()); err != nil {
				failed = target
				return err
			}
		default:
			failed = path
			return fmt.Errorf("unsupported file type %s", mode.Type())
		}
		return nil
	})
	if err != nil {
		return failed, err
	}

	// Deepest first, so a read-only parent does not block its children.
	for _, d := range slices.Backward(dirs) {
		if err := os.Chmod(d.path, d.perm); err != nil {
			return d.path, err
		}
	}
	return "", nil
}

// copyFileMode streams src to dst and sets mode on dst regardless of umask.
func copyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, mode)
}
