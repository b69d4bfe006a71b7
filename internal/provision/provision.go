// Package provision creates missing project directories by copying the
// contents of a seed directory into each of them.
package provision

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/seedsync/pkg/errors"
	"github.com/agentstation/seedsync/pkg/logging"
)

// Options control how a batch of targets is provisioned.
type Options struct {
	// DryRun reports what would be created without touching the filesystem.
	DryRun bool
	// FailFast stops at the first failed target instead of continuing.
	FailFast bool
}

// Failure records a target that could not be provisioned.
type Failure struct {
	Path string
	Err  error
}

// Result is the outcome of a Provision call. Every input path lands in
// exactly one of the lists.
type Result struct {
	Created  []string
	Failures []Failure
	Skipped  []string
	Planned  []string
}

// FailedPaths returns the paths of the failed targets in order.
func (r *Result) FailedPaths() []string {
	paths := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		paths[i] = f.Path
	}
	return paths
}

// Err returns a *errors.ProvisionError when any target failed.
func (r *Result) Err() error {
	if r == nil || len(r.Failures) == 0 {
		return nil
	}
	return &errors.ProvisionError{Failed: r.FailedPaths(), Skipped: len(r.Skipped)}
}

// Provisioner copies a seed directory into new project directories.
type Provisioner struct {
	seedDir string
	opts    Options
}

// New returns a Provisioner for seedDir, which must be an existing directory.
// Symlinks in seedDir itself are resolved.
func New(seedDir string, opts Options) (*Provisioner, error) {
	if seedDir == "" {
		return nil, errors.NewValidationError("seed_dir", seedDir, "is required")
	}
	abs, err := filepath.Abs(seedDir)
	if err != nil {
		return nil, errors.NewValidationError("seed_dir", seedDir, err.Error())
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, errors.NewValidationError("seed_dir", seedDir, err.Error())
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return nil, errors.NewValidationError("seed_dir", seedDir, err.Error())
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("seed_dir", seedDir, "is not a directory")
	}
	return &Provisioner{seedDir: resolved, opts: opts}, nil
}

// SeedDir returns the resolved seed directory.
func (p *Provisioner) SeedDir() string {
	return p.seedDir
}

// Provision creates each missing path and fills it with the seed contents.
//
// Targets are independent: a failure is recorded and the next target is
// attempted, unless FailFast is set. A target that fails after it was created
// is removed again so a later run retries it. When ctx is canceled the
// remaining targets are reported as skipped.
func (p *Provisioner) Provision(ctx context.Context, missing []string) *Result {
	result := &Result{}
	logger := logging.Ctx(ctx)

	if p.opts.DryRun {
		for _, path := range missing {
			logger.Info().Str("path", path).Msg("Would create project directory")
			result.Planned = append(result.Planned, path)
		}
		return result
	}

	for i, path := range missing {
		if ctx.Err() != nil || (p.opts.FailFast && len(result.Failures) > 0) {
			result.Skipped = append(result.Skipped, missing[i:]...)
			logger.Warn().Int("skipped", len(missing)-i).Msg("Provisioning stopped early")
			break
		}

		if err := p.provisionOne(ctx, path); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("Failed to create project directory")
			result.Failures = append(result.Failures, Failure{Path: path, Err: err})
			continue
		}
		logger.Info().Str("path", path).Msg("Created project directory")
		result.Created = append(result.Created, path)
	}
	return result
}

func (p *Provisioner) provisionOne(ctx context.Context, target string) error {
	ctx = logging.WithTarget(ctx, target)
	if p.insideSeed(target) {
		return errors.NewCopyError(target, target, errors.New("target lies inside the seed directory"))
	}

	seedInfo, err := os.Stat(p.seedDir)
	if err != nil {
		return errors.NewCopyError(target, p.seedDir, err)
	}

	if err := os.Mkdir(target, seedInfo.Mode().Perm()|0o700); err != nil {
		return errors.NewCopyError(target, target, err)
	}

	failed, err := copyContents(ctx, p.seedDir, target)
	if err == nil {
		err = os.Chmod(target, seedInfo.Mode().Perm())
		failed = target
	}
	if err != nil {
		if rmErr := removeAll(target); rmErr != nil {
			logging.Ctx(ctx).Warn().Err(rmErr).Msg("Could not remove partial project directory")
		}
		return errors.NewCopyError(target, failed, err)
	}
	return nil
}

// insideSeed reports whether target is the seed directory or lies below it.
func (p *Provisioner) insideSeed(target string) bool {
	candidates := []string{target}
	if parent, err := filepath.EvalSymlinks(filepath.Dir(target)); err == nil {
		candidates = append(candidates, filepath.Join(parent, filepath.Base(target)))
	}
	for _, c := range candidates {
		rel, err := filepath.Rel(p.seedDir, c)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

// removeAll deletes a partially copied tree, restoring owner write access on
// directories first so read-only seed directories do not block removal.
func removeAll(path string) error {
	_ = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err == nil && d.IsDir() {
			_ = os.Chmod(p, 0o700)
		}
		return nil
	})
	return os.RemoveAll(path)
}
