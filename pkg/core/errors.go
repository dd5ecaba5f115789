package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrNotFound    = errors.New("post not found")
	ErrPostExists  = errors.New("post already exists")
	ErrInvalidSlug = errors.New("invalid post slug")
)

// DirectoryReadError reports that the content root could not be read.
type DirectoryReadError struct {
	Path string
	Err  error
}

func (e *DirectoryReadError) Error() string {
	return fmt.Sprintf("failed to read directory: %s: %v", e.Path, e.Err)
}

func (e *DirectoryReadError) Unwrap() error { return e.Err }

// MissingFrontmatterError reports a content file without a header block.
type MissingFrontmatterError struct {
	File string
}

func (e *MissingFrontmatterError) Error() string {
	return fmt.Sprintf("invalid or missing frontmatter in file: %s", e.File)
}

// InvalidFrontmatterError reports a header block lacking required keys.
type InvalidFrontmatterError struct {
	File    string
	Missing []string
}

func (e *InvalidFrontmatterError) Error() string {
	return fmt.Sprintf("missing required metadata (%s) in file: %s", strings.Join(e.Missing, ", "), e.File)
}

// PostLoadError wraps any read or parse failure of a single content file.
// File is always a base name, never a full path.
type PostLoadError struct {
	File string
	Err  error
}

func (e *PostLoadError) Error() string {
	return fmt.Sprintf("failed to read or parse post file: %s: %v", e.File, e.Err)
}

func (e *PostLoadError) Unwrap() error { return e.Err }
