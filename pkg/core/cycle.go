package core

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/folio/pkg/dates"
)

// Cycle is the content snapshot of one load cycle (one request or one build).
// The repository is read at most once per Cycle; after that the snapshot is
// immutable and safe for concurrent readers.
type Cycle struct {
	repo   Repository
	logger *slog.Logger

	once     sync.Once
	loaded   Loaded
	sorted   []Post
	position map[string]int // slug -> index in sorted
}

// NewCycle starts a load cycle over repo. Nothing is read until first use.
func NewCycle(repo Repository, logger *slog.Logger) *Cycle {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cycle{repo: repo, logger: logger}
}

func (c *Cycle) load(ctx context.Context) {
	c.once.Do(func() {
		// The snapshot outlives the caller that triggers it, so the caller's
		// cancellation must not cut the load short.
		c.loaded = LoadAll(context.WithoutCancel(ctx), c.repo, c.logger)
		c.sorted = sortByPublished(c.loaded.Posts)
		c.position = make(map[string]int, len(c.sorted))
		for i, p := range c.sorted {
			c.position[p.Slug] = i
		}
	})
}

// Posts returns every successfully parsed post in scan order.
func (c *Cycle) Posts(ctx context.Context) []Post {
	c.load(ctx)
	return clonePosts(c.loaded.Posts)
}

// SortedPosts returns the posts newest first. Posts published on the same
// date keep their scan order.
func (c *Cycle) SortedPosts(ctx context.Context) []Post {
	c.load(ctx)
	return clonePosts(c.sorted)
}

// Slugs returns the slug of every post, newest first.
func (c *Cycle) Slugs(ctx context.Context) []string {
	c.load(ctx)
	slugs := make([]string, len(c.sorted))
	for i, p := range c.sorted {
		slugs[i] = p.Slug
	}
	return slugs
}

// PostBySlug resolves an exact, case-sensitive slug.
func (c *Cycle) PostBySlug(ctx context.Context, slug string) (Post, bool) {
	c.load(ctx)
	i, ok := c.position[slug]
	if !ok {
		return Post{}, false
	}
	return c.sorted[i], true
}

// Neighbors returns the chronologically adjacent posts of slug.
// prev is the next-older post, next the next-newer one; either may be nil.
func (c *Cycle) Neighbors(ctx context.Context, slug string) (prev, next *Post) {
	c.load(ctx)
	i, ok := c.position[slug]
	if !ok {
		return nil, nil
	}
	if i+1 < len(c.sorted) {
		p := c.sorted[i+1]
		prev = &p
	}
	if i > 0 {
		n := c.sorted[i-1]
		next = &n
	}
	return prev, next
}

// Failures returns the files skipped during this cycle.
func (c *Cycle) Failures(ctx context.Context) []LoadFailure {
	c.load(ctx)
	out := make([]LoadFailure, len(c.loaded.Failures))
	copy(out, c.loaded.Failures)
	return out
}

// Err returns the scan error of this cycle, if the content root was unreadable.
func (c *Cycle) Err(ctx context.Context) error {
	c.load(ctx)
	return c.loaded.ScanErr
}

type datedPost struct {
	post Post
	at   time.Time
	ok   bool
}

// sortByPublished orders posts by publishedAt descending. Unparsable dates
// rank below every parsable one.
func sortByPublished(posts []Post) []Post {
	entries := make([]datedPost, len(posts))
	for i, p := range posts {
		at, err := dates.Parse(p.Metadata.PublishedAt)
		entries[i] = datedPost{post: p, at: at, ok: err == nil}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ok != b.ok {
			return a.ok
		}
		return a.at.After(b.at)
	})

	sorted := make([]Post, len(entries))
	for i, e := range entries {
		sorted[i] = e.post
	}
	return sorted
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}
