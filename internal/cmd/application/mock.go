package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/seedsync/internal/database"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	DatabaseConfigFunc func() database.Config
	OpenSourceFunc     func(ctx context.Context, cfg database.Config) (Source, error)
	LockDirFunc        func() string
	LoggerFunc         func() *zerolog.Logger
	OutputFormatFunc   func() string
	VersionFunc        func() string
	CommitFunc         func() string
	DateFunc           func() string
	BuiltByFunc        func() string
}

// DatabaseConfig returns the mock config or database.DefaultConfig.
func (m *Mock) DatabaseConfig() database.Config {
	if m.DatabaseConfigFunc != nil {
		return m.DatabaseConfigFunc()
	}
	return database.DefaultConfig()
}

// OpenSource opens a source using the mock function or returns nil.
func (m *Mock) OpenSource(ctx context.Context, cfg database.Config) (Source, error) {
	if m.OpenSourceFunc != nil {
		return m.OpenSourceFunc(ctx, cfg)
	}
	return nil, nil
}

// LockDir returns the lock directory using the mock function or "".
func (m *Mock) LockDir() string {
	if m.LockDirFunc != nil {
		return m.LockDirFunc()
	}
	return ""
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
