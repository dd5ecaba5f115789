package folio

import (
	"log/slog"
	"time"

	"github.com/aretw0/folio/internal/platform"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/dates"
)

// --- Types ---

// Post is a public alias for the content unit.
type Post = core.Post

// Metadata is a public alias for the validated frontmatter of a post.
type Metadata = core.Metadata

// Cycle is a public alias for a load-cycle snapshot.
type Cycle = core.Cycle

// Service is a public alias for the content service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring folio.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom content source.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithExtensions sets the recognized content file extensions.
func WithExtensions(exts ...string) Option {
	return platform.WithExtensions(exts...)
}

// WithInclude narrows scans to file names matching a glob pattern.
func WithInclude(pattern string) Option {
	return platform.WithInclude(pattern)
}

// WithDebounce sets the quiet period of the content watcher.
func WithDebounce(d time.Duration) Option {
	return platform.WithDebounce(d)
}

// WithMustExist makes construction fail when the content directory is missing.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// --- Factory ---

// New creates a new folio Service over the content directory at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init builds the content repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Utils ---

// FormatDisplayDate renders a publishedAt value for display, optionally with
// its relative age.
func FormatDisplayDate(date string, includeRelative bool) string {
	return dates.FormatDisplayDate(date, includeRelative)
}

// FindSiteRoot looks upwards for the directory holding folio.yaml.
func FindSiteRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
