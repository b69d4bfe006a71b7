package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/seedsync/internal/cmd/application"
	"github.com/agentstation/seedsync/internal/database"
	"github.com/agentstation/seedsync/pkg/dirset"
	"github.com/agentstation/seedsync/pkg/errors"
	"github.com/agentstation/seedsync/pkg/logging"
	"github.com/agentstation/seedsync/pkg/projects"
	"github.com/agentstation/seedsync/pkg/sync"
)

type fakeSource struct{ names []string }

func (f *fakeSource) Expected(_ context.Context, rootDir string, _ projects.Filter) (*dirset.Set, error) {
	set := dirset.New()
	for _, name := range f.names {
		set.Add(filepath.Join(rootDir, name))
	}
	return set, nil
}

func (f *fakeSource) Close() error { return nil }

func newTestApp(t *testing.T, src application.Source) *App {
	t.Helper()
	config, err := LoadConfig("")
	require.NoError(t, err)
	config.LockDir = t.TempDir()

	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(config),
		WithLogger(logging.NewNopLogger()),
		WithSourceOpener(func(context.Context, database.Config) (application.Source, error) {
			return src, nil
		}),
	)
	require.NoError(t, err)
	return app
}

func execute(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())
	assert.Equal(t, app.Config().Database, app.DatabaseConfig())
}

func TestApp_OpenSourceValidates(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	require.NoError(t, err)

	cfg := database.DefaultConfig()
	cfg.Host = ""
	cfg.URL = ""
	_, err = app.OpenSource(context.Background(), cfg)
	assert.True(t, errors.IsValidationError(err))
}

func TestExecute_Sync(t *testing.T) {
	rootDir, seedDir := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seedDir, "README.txt"), []byte("seed"), 0o644))
	app := newTestApp(t, &fakeSource{names: []string{"2024_02_Beta"}})

	out, err := execute(t, app, "sync", "2024", rootDir, seedDir, "-o", "json")
	require.NoError(t, err)

	var result sync.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Created, 1)
	assert.FileExists(t, filepath.Join(rootDir, "2024_02_Beta", "README.txt"))
	assert.Equal(t, "json", app.OutputFormat())
}

func TestExecute_KeepsInjectedLogger(t *testing.T) {
	rootDir, seedDir := t.TempDir(), t.TempDir()
	tl := logging.NewTestLogger(t)

	config, err := LoadConfig("")
	require.NoError(t, err)
	config.LockDir = t.TempDir()
	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(config),
		WithLogger(tl.Logger),
		WithSourceOpener(func(context.Context, database.Config) (application.Source, error) {
			return &fakeSource{names: []string{"2024_02_Beta"}}, nil
		}),
	)
	require.NoError(t, err)

	_, err = execute(t, app, "sync", "2024", rootDir, seedDir, "-o", "json", "--log-level", "error")
	require.NoError(t, err)

	assert.Same(t, tl.Logger, app.Logger())
	tl.AssertContains(t, "Created project directory")
}

func TestExecute_InvalidFormat(t *testing.T) {
	app := newTestApp(t, &fakeSource{})
	_, err := execute(t, app, "statuses", "-o", "xml")
	assert.Error(t, err)
}

func TestExecute_Version(t *testing.T) {
	app := newTestApp(t, &fakeSource{})
	out, err := execute(t, app, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "seedsync 1.0.0")
	assert.Contains(t, out, "abc123")
}

func TestExitCode(t *testing.T) {
	partial := &errors.ProvisionError{Failed: []string{"/nas/a"}}

	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitPartialFailure, ExitCode(partial))
	assert.Equal(t, ExitPartialFailure, ExitCode(fmt.Errorf("sync: %w", partial)))
	assert.Equal(t, ExitPartialFailure, ExitCode(fmt.Errorf("%w: 2 not attempted", errors.ErrCanceled)))
	assert.Equal(t, ExitFailure, ExitCode(errors.NewValidationError("year", "x", "bad")))
	assert.Equal(t, ExitFailure, ExitCode(errors.NewConnectionError("postgres", "", errors.New("refused"))))
}
