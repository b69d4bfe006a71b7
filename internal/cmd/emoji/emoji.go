// Package emoji provides symbol constants for CLI output.
// These symbols keep status markers consistent across commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success marks a directory that was created.
	Success = "✓"

	// Error marks a directory that could not be created.
	Error = "✗"

	// Optional marks a directory that was not attempted.
	Optional = "-"

	// Pending marks a directory that is missing but not yet created.
	Pending = "…"
)
