package provision_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/seedsync/internal/provision"
	"github.com/agentstation/seedsync/pkg/errors"
	"github.com/agentstation/seedsync/pkg/logging"
)

// makeSeed builds a small seed tree with nested directories, varied
// permissions and a relative symlink.
func makeSeed(t *testing.T) string {
	t.Helper()

	seed := t.TempDir()
	write := func(rel string, data string, perm os.FileMode) {
		path := filepath.Join(seed, rel)
		require.NoError(t, os.WriteFile(path, []byte(data), perm))
		require.NoError(t, os.Chmod(path, perm))
	}
	mkdir := func(rel string, perm os.FileMode) {
		path := filepath.Join(seed, rel)
		require.NoError(t, os.Mkdir(path, 0o755))
		require.NoError(t, os.Chmod(path, perm))
	}

	write("README.txt", "project seed\n", 0o644)
	mkdir("bin", 0o755)
	write("bin/run.sh", "#!/bin/sh\necho run\n", 0o755)
	mkdir("raw", 0o750)
	write("raw/data.csv", "a,b\n1,2\n", 0o600)
	mkdir("raw/empty", 0o700)
	require.NoError(t, os.Symlink(filepath.Join("raw", "data.csv"), filepath.Join(seed, "latest")))
	return seed
}

// assertMirrors checks that dst holds the same tree as src: entry types,
// permission bits, file contents and symlink targets.
func assertMirrors(t *testing.T, src, dst string) {
	t.Helper()

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, srcInfo.Mode().Perm(), dstInfo.Mode().Perm(), "root permissions")

	seen := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		rel, _ := filepath.Rel(src, path)
		if rel == "." {
			return nil
		}
		seen++
		target := filepath.Join(dst, rel)

		want, err := os.Lstat(path)
		require.NoError(t, err)
		got, err := os.Lstat(target)
		require.NoError(t, err, rel)

		assert.Equal(t, want.Mode().Type(), got.Mode().Type(), rel)
		switch {
		case want.Mode()&os.ModeSymlink != 0:
			wantLink, _ := os.Readlink(path)
			gotLink, _ := os.Readlink(target)
			assert.Equal(t, wantLink, gotLink, rel)
		case want.Mode().IsRegular():
			assert.Equal(t, want.Mode().Perm(), got.Mode().Perm(), rel)
			wantData, _ := os.ReadFile(path)
			gotData, _ := os.ReadFile(target)
			assert.Equal(t, wantData, gotData, rel)
		case want.IsDir():
			assert.Equal(t, want.Mode().Perm(), got.Mode().Perm(), rel)
		}
		return nil
	})
	require.NoError(t, err)

	count := 0
	_ = filepath.WalkDir(dst, func(path string, _ fs.DirEntry, _ error) error {
		if path != dst {
			count++
		}
		return nil
	})
	assert.Equal(t, seen, count, "target has extra entries")
}

func newProvisioner(t *testing.T, seed string, opts provision.Options) *provision.Provisioner {
	t.Helper()
	p, err := provision.New(seed, opts)
	require.NoError(t, err)
	return p
}

func TestProvision(t *testing.T) {
	seed := makeSeed(t)
	root := t.TempDir()
	missing := []string{
		filepath.Join(root, "2024_01_Alpha"),
		filepath.Join(root, "2024_02_Beta"),
	}

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	result := newProvisioner(t, seed, provision.Options{}).Provision(ctx, missing)

	assert.Equal(t, missing, result.Created)
	assert.Empty(t, result.Failures)
	assert.Empty(t, result.Skipped)
	assert.NoError(t, result.Err())

	for _, path := range missing {
		assertMirrors(t, seed, path)
	}
	assert.Equal(t, 2, countMessages(tl, "Created project directory"))
	tl.AssertContains(t, `"path":"`+missing[1]+`"`)
}

func TestProvisionFailureIsolation(t *testing.T) {
	seed := makeSeed(t)
	root := t.TempDir()
	pathA := filepath.Join(root, "2024_01_Alpha")
	pathB := filepath.Join(root, "2024_02_Beta")
	require.NoError(t, os.WriteFile(pathA, []byte("in the way"), 0o644))

	result := newProvisioner(t, seed, provision.Options{}).Provision(context.Background(), []string{pathA, pathB})

	require.Len(t, result.Failures, 1)
	assert.Equal(t, pathA, result.Failures[0].Path)
	assert.True(t, errors.Is(result.Failures[0].Err, errors.ErrCopy))
	assert.True(t, errors.Is(result.Failures[0].Err, os.ErrExist))
	assert.Equal(t, []string{pathB}, result.Created)
	assertMirrors(t, seed, pathB)

	// The pre-existing file belongs to someone else and is left alone.
	data, err := os.ReadFile(pathA)
	require.NoError(t, err)
	assert.Equal(t, "in the way", string(data))

	err = result.Err()
	require.Error(t, err)
	assert.True(t, errors.IsPartialFailure(err))
	var pe *errors.ProvisionError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{pathA}, pe.Failed)
}

func TestProvisionExistingDirectoryIsNotMerged(t *testing.T) {
	seed := makeSeed(t)
	root := t.TempDir()
	target := filepath.Join(root, "2024_01_Alpha")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "mine.txt"), nil, 0o644))

	result := newProvisioner(t, seed, provision.Options{}).Provision(context.Background(), []string{target})

	require.Len(t, result.Failures, 1)
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mine.txt", entries[0].Name())
}

func TestProvisionFailFast(t *testing.T) {
	seed := makeSeed(t)
	root := t.TempDir()
	pathA := filepath.Join(root, "a")
	pathB := filepath.Join(root, "b")
	pathC := filepath.Join(root, "c")
	require.NoError(t, os.WriteFile(pathA, nil, 0o644))

	result := newProvisioner(t, seed, provision.Options{FailFast: true}).
		Provision(context.Background(), []string{pathA, pathB, pathC})

	assert.Equal(t, []string{pathA}, result.FailedPaths())
	assert.Equal(t, []string{pathB, pathC}, result.Skipped)
	assert.Empty(t, result.Created)
	assert.NoDirExists(t, pathB)
	assert.NoDirExists(t, pathC)

	var pe *errors.ProvisionError
	require.True(t, errors.As(result.Err(), &pe))
	assert.Equal(t, 2, pe.Skipped)
}

func TestProvisionDryRun(t *testing.T) {
	seed := makeSeed(t)
	root := t.TempDir()
	missing := []string{filepath.Join(root, "a"), filepath.Join(root, "b")}

	result := newProvisioner(t, seed, provision.Options{DryRun: true}).Provision(context.Background(), missing)

	assert.Equal(t, missing, result.Planned)
	assert.Empty(t, result.Created)
	assert.NoError(t, result.Err())

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProvisionRefusesTargetInsideSeed(t *testing.T) {
	seed := makeSeed(t)
	target := filepath.Join(seed, "raw", "2024_01_Alpha")

	result := newProvisioner(t, seed, provision.Options{}).Provision(context.Background(), []string{target})

	require.Len(t, result.Failures, 1)
	assert.True(t, errors.Is(result.Failures[0].Err, errors.ErrCopy))
	assert.Contains(t, result.Failures[0].Err.Error(), "inside the seed directory")
	assert.NoDirExists(t, target)
}

func TestProvisionMissingParent(t *testing.T) {
	seed := makeSeed(t)
	target := filepath.Join(t.TempDir(), "no", "such", "parent")

	result := newProvisioner(t, seed, provision.Options{}).Provision(context.Background(), []string{target})

	require.Len(t, result.Failures, 1)
	assert.True(t, errors.Is(result.Failures[0].Err, os.ErrNotExist))
}

func TestProvisionCanceled(t *testing.T) {
	seed := makeSeed(t)
	root := t.TempDir()
	missing := []string{filepath.Join(root, "a"), filepath.Join(root, "b")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newProvisioner(t, seed, provision.Options{}).Provision(ctx, missing)

	assert.Equal(t, missing, result.Skipped)
	assert.Empty(t, result.Created)
	assert.Empty(t, result.Failures)
	assert.NoDirExists(t, missing[0])
}

// cancelOnFile is a context that reports cancellation from the first Err call
// that finds path on disk, and from every call after that.
type cancelOnFile struct {
	context.Context
	path     string
	canceled bool
}

func (c *cancelOnFile) Err() error {
	if !c.canceled {
		if _, err := os.Lstat(c.path); err == nil {
			c.canceled = true
		}
	}
	if c.canceled {
		return context.Canceled
	}
	return nil
}

func TestProvisionCanceledMidCopy(t *testing.T) {
	seed := makeSeed(t)
	root := t.TempDir()
	missing := []string{filepath.Join(root, "a"), filepath.Join(root, "b"), filepath.Join(root, "c")}

	// The seed walk is lexical, so README.txt lands before the rest of "a".
	ctx := &cancelOnFile{Context: context.Background(), path: filepath.Join(missing[0], "README.txt")}

	result := newProvisioner(t, seed, provision.Options{}).Provision(ctx, missing)

	assert.Empty(t, result.Created)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, missing[0], result.Failures[0].Path)
	assert.True(t, errors.Is(result.Failures[0].Err, context.Canceled))
	assert.Equal(t, missing[1:], result.Skipped)
	assert.NoDirExists(t, missing[0])
	assert.NoDirExists(t, missing[1])
}

func TestProvisionEmptySeed(t *testing.T) {
	seed := t.TempDir()
	target := filepath.Join(t.TempDir(), "2024_01_Alpha")

	result := newProvisioner(t, seed, provision.Options{}).Provision(context.Background(), []string{target})

	assert.Equal(t, []string{target}, result.Created)
	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNew(t *testing.T) {
	_, err := provision.New("", provision.Options{})
	assert.True(t, errors.IsValidationError(err))

	_, err = provision.New(filepath.Join(t.TempDir(), "absent"), provision.Options{})
	assert.True(t, errors.IsValidationError(err))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = provision.New(file, provision.Options{})
	assert.True(t, errors.IsValidationError(err))

	seed := t.TempDir()
	link := filepath.Join(t.TempDir(), "seed-link")
	require.NoError(t, os.Symlink(seed, link))
	p, err := provision.New(link, provision.Options{})
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(seed)
	require.NoError(t, err)
	assert.Equal(t, want, p.SeedDir())
}

func countMessages(tl *logging.TestLogger, msg string) int {
	n := 0
	for _, line := range tl.Lines() {
		if strings.Contains(line, msg) {
			n++
		}
	}
	return n
}
