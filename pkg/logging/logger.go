// Package logging provides structured logging for seedsync using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise, so a
// cron-driven run produces machine-readable lines while an operator at a shell
// sees human-readable ones.
//
// Loggers travel in the context. Each layer adds the fields it knows about:
//
//	ctx = logging.WithRunID(ctx, runID)
//	ctx = logging.WithTarget(ctx, target)
//	logging.Ctx(ctx).Info().Msg("Created project directory")
package logging

import "github.com/rs/zerolog"

// defaultLogger backs FromContext when no logger was attached.
var defaultLogger = newLogger(envConfig())

// Default returns the logger used when the context carries none.
func Default() *zerolog.Logger {
	return &defaultLogger
}
