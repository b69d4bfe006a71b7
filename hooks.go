package seedsync

import (
	"sync"

	"github.com/agentstation/seedsync/internal/provision"
)

// Hook function types for provisioning events
type (
	// DirectoryCreatedHook is called when a project directory is created
	DirectoryCreatedHook func(path string)

	// DirectoryFailedHook is called when a project directory could not be created
	DirectoryFailedHook func(path string, err error)
)

// hooks manages event callbacks for provisioning outcomes
type hooks struct {
	mu        sync.RWMutex
	onCreated []DirectoryCreatedHook
	onFailed  []DirectoryFailedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnDirectoryCreated registers a callback for created directories
func (h *hooks) OnDirectoryCreated(fn DirectoryCreatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCreated = append(h.onCreated, fn)
}

// OnDirectoryFailed registers a callback for failed directories
func (h *hooks) OnDirectoryFailed(fn DirectoryFailedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFailed = append(h.onFailed, fn)
}

// triggerProvisioned fires the hooks for every outcome in a provisioning result
func (h *hooks) triggerProvisioned(result *provision.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, path := range result.Created {
		for _, hook := range h.onCreated {
			hook(path)
		}
	}
	for _, f := range result.Failures {
		for _, hook := range h.onFailed {
			hook(f.Path, f.Err)
		}
	}
}
