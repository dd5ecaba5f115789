// Package core holds the content domain: posts, their metadata and the load
// cycle that serves them to the route and render layers.
package core

import (
	"fmt"
	"strings"
)

// Recognized frontmatter keys.
const (
	KeyTitle       = "title"
	KeyPublishedAt = "publishedAt"
	KeySummary     = "summary"
	KeyImage       = "image"
)

// Metadata is the validated frontmatter of a post.
// Values of this type handed out by the loader always carry every required key.
type Metadata struct {
	Title       string `json:"title" yaml:"title"`
	PublishedAt string `json:"publishedAt" yaml:"publishedAt"`
	Summary     string `json:"summary" yaml:"summary"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Missing returns the required keys that are empty, in declaration order.
func (m Metadata) Missing() []string {
	var missing []string
	if m.Title == "" {
		missing = append(missing, KeyTitle)
	}
	if m.PublishedAt == "" {
		missing = append(missing, KeyPublishedAt)
	}
	if m.Summary == "" {
		missing = append(missing, KeySummary)
	}
	return missing
}

// Post is the unit served to the rest of the system.
// It is created once per successful parse and never mutated afterwards.
type Post struct {
	Slug     string   `json:"slug" yaml:"slug"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Content  string   `json:"content" yaml:"content"`
}

// ValidSlug reports whether slug can name a content file.
func ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, `/\`) && !strings.HasPrefix(slug, ".")
}

// EventType represents the type of change in the content directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the content directory.
type Event struct {
	Type      EventType
	ID        string // slug of the affected post
	Timestamp int64  // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
