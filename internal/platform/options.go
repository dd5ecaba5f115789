package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/folio/pkg/core"
)

// options holds the internal configuration for the folio service.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	extensions []string
	include    string
	debounce   time.Duration
	mustExist  bool
}

// Option defines a functional option for configuring folio.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom content source (e.g. a mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name (e.g. "fs").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithExtensions sets the recognized content file extensions, leading dot
// included. The first one is used when scaffolding new posts.
// Defaults to ".mdx".
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		o.extensions = exts
	}
}

// WithInclude narrows scans to file names matching a doublestar pattern.
func WithInclude(pattern string) Option {
	return func(o *options) {
		o.include = pattern
	}
}

// WithDebounce sets the quiet period before watch events are emitted.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithMustExist makes Init fail when the content directory does not exist.
// By default a missing directory yields empty listings.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}
