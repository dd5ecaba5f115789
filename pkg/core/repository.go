package core

import "context"

// Repository defines the contract for discovering and reading posts.
// Adhering to this interface keeps the load cycle independent of where
// the content lives.
type Repository interface {
	// Scan returns the identifiers of all content files, in the store's
	// native enumeration order.
	Scan(ctx context.Context) ([]string, error)

	// Load reads and parses a single content file.
	Load(ctx context.Context, file string) (Post, error)
}

// Creatable defines an interface for repositories that can scaffold new posts.
type Creatable interface {
	// Create writes a new post. It never overwrites an existing one.
	Create(ctx context.Context, slug string, meta Metadata, body string) error
}

// Watchable defines an interface for repositories that can report changes.
type Watchable interface {
	// Watch emits an Event per changed post until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
