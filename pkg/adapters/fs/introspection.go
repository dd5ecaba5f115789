package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Extensions    []string   `json:"extensions"`
	Include       string     `json:"include,omitempty"`
	WatcherActive bool       `json:"watcher_active"`
	LastScan      *time.Time `json:"last_scan,omitempty"`
	LastScanFiles int        `json:"last_scan_files"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	exts := make([]string, len(r.config.Extensions))
	copy(exts, r.config.Extensions)

	return RepositoryState{
		Path:          r.Path,
		Extensions:    exts,
		Include:       r.config.Include,
		WatcherActive: r.watcherActive,
		LastScan:      r.lastScan,
		LastScanFiles: r.lastScanCount,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
