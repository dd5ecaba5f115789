// Package fs implements core.Repository over a flat directory of content files.
package fs

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/folio/pkg/core"
)

// DefaultExtension is the recognized content format.
const DefaultExtension = ".mdx"

// Repository implements core.Repository using a single content directory.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastScan      *time.Time
	lastScanCount int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path string
	// Extensions lists the recognized file extensions, leading dot included.
	// The first one is used for new posts. Defaults to DefaultExtension.
	Extensions []string
	// Include optionally narrows scans to file names matching a doublestar pattern.
	Include string
	// Debounce is the quiet period before watch events are emitted.
	Debounce time.Duration
	Logger   *slog.Logger
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if len(config.Extensions) == 0 {
		config.Extensions = []string{DefaultExtension}
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Scan lists the content files of the directory in the order the operating
// system enumerates them. Subdirectories are not descended into.
func (r *Repository) Scan(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := os.Open(r.Path)
	if err != nil {
		return nil, &core.DirectoryReadError{Path: r.Path, Err: err}
	}
	defer dir.Close()

	// File.ReadDir keeps the native order; os.ReadDir would sort by name.
	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, &core.DirectoryReadError{Path: r.Path, Err: err}
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !r.recognized(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}

	r.recordScan(len(files))
	return files, nil
}

// recognized reports whether name is a content file of this repository.
func (r *Repository) recognized(name string) bool {
	if strings.HasPrefix(name, TempFilePrefix) {
		return false
	}
	if !r.hasExtension(name) {
		return false
	}
	if r.config.Include != "" {
		ok, err := doublestar.Match(r.config.Include, name)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

func (r *Repository) hasExtension(name string) bool {
	ext := filepath.Ext(name)
	for _, want := range r.config.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Load reads one content file of the repository by name.
func (r *Repository) Load(ctx context.Context, file string) (core.Post, error) {
	if err := ctx.Err(); err != nil {
		return core.Post{}, &core.PostLoadError{File: filepath.Base(file), Err: err}
	}
	return LoadPost(filepath.Join(r.Path, filepath.Base(file)))
}

// LoadPost reads and parses the content file at path. Any failure is
// returned as a *core.PostLoadError naming the file by its base name.
func LoadPost(path string) (core.Post, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		var pathErr *iofs.PathError
		if errors.As(err, &pathErr) {
			err = &iofs.PathError{Op: pathErr.Op, Path: name, Err: pathErr.Err}
		}
		return core.Post{}, &core.PostLoadError{File: name, Err: err}
	}

	meta, body, err := ParseFrontmatter(string(data), name)
	if err != nil {
		return core.Post{}, &core.PostLoadError{File: name, Err: err}
	}

	return core.Post{
		Slug:     SlugFromFile(name),
		Metadata: meta,
		Content:  body,
	}, nil
}

// SlugFromFile derives a slug from a file name by dropping its extension.
func SlugFromFile(name string) string {
	name = filepath.Base(name)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Create writes a new post in the primary format. It refuses to overwrite a
// post with the same slug in any recognized format.
func (r *Repository) Create(ctx context.Context, slug string, meta core.Metadata, body string) error {
	if !core.ValidSlug(slug) {
		return core.ErrInvalidSlug
	}
	filename := slug + r.config.Extensions[0]
	if missing := meta.Missing(); len(missing) > 0 {
		return &core.InvalidFrontmatterError{File: filename, Missing: missing}
	}
	if err := validateFields(meta); err != nil {
		return fmt.Errorf("invalid metadata for %s: %w", filename, err)
	}

	for _, ext := range r.config.Extensions {
		_, err := os.Stat(filepath.Join(r.Path, slug+ext))
		if err == nil {
			return fmt.Errorf("%w: %s", core.ErrPostExists, slug+ext)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", slug+ext, err)
		}
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create content directory: %w", err)
	}

	fullPath := filepath.Join(r.Path, filename)
	if err := writeFileAtomic(fullPath, FormatFrontmatter(meta, body), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("created post", "slug", slug, "path", fullPath)
	}
	return nil
}

// validateFields rejects values the line-based header cannot hold.
func validateFields(meta core.Metadata) error {
	fields := map[string]string{
		core.KeyTitle:       meta.Title,
		core.KeyPublishedAt: meta.PublishedAt,
		core.KeySummary:     meta.Summary,
		core.KeyImage:       meta.Image,
	}
	for key, value := range fields {
		if strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("%s must be a single line", key)
		}
	}
	return nil
}

func (r *Repository) recordScan(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastScan = &now
	r.lastScanCount = n
}

var _ core.Repository = (*Repository)(nil)
var _ core.Creatable = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
