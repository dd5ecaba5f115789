package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/core"
)

// Init builds the content repository described by uri and opts.
// The uri argument is adapter-specific (a directory path for "fs").
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}

	switch o.adapter {
	case "fs":
		return initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(path string, o *options) (core.Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("content directory is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content directory: %w", err)
	}

	for _, ext := range o.extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, fmt.Errorf("invalid extension %q: must start with a dot", ext)
		}
	}

	if o.include != "" && !doublestar.ValidatePattern(o.include) {
		return nil, fmt.Errorf("invalid include pattern: %q", o.include)
	}

	if o.mustExist {
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, &core.DirectoryReadError{Path: absPath, Err: err}
		}
		if !info.IsDir() {
			return nil, &core.DirectoryReadError{Path: absPath, Err: fmt.Errorf("not a directory")}
		}
	}

	if o.logger != nil {
		o.logger.Debug("content repository ready", "dir", absPath, "adapter", o.adapter)
	}

	return fs.NewRepository(fs.Config{
		Path:       absPath,
		Extensions: o.extensions,
		Include:    o.include,
		Debounce:   o.debounce,
		Logger:     o.logger,
	}), nil
}
