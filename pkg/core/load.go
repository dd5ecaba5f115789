package core

import (
	"context"
	"log/slog"
)

// LoadFailure records a content file that was skipped during a load.
type LoadFailure struct {
	File string
	Err  error
}

// result is the outcome of loading one content file.
type result struct {
	file string
	post Post
	err  error
}

// Loaded is the outcome of one full load: posts in scan order plus everything
// that was skipped on the way.
type Loaded struct {
	Posts    []Post
	Failures []LoadFailure
	// ScanErr is set when the content root itself could not be read.
	ScanErr error
}

// LoadAll scans the repository and loads every content file.
// A failing file is skipped and logged; a failing scan yields zero posts.
// Neither aborts the load.
func LoadAll(ctx context.Context, repo Repository, logger *slog.Logger) Loaded {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files, err := repo.Scan(ctx)
	if err != nil && ctx.Err() != nil {
		logger.Debug("load cancelled", "error", err)
		return Loaded{Posts: []Post{}, ScanErr: err}
	}
	if err != nil {
		logger.Error("error reading posts directory", "error", err)
		return Loaded{Posts: []Post{}, ScanErr: err}
	}

	results := make([]result, 0, len(files))
	for _, file := range files {
		post, err := repo.Load(ctx, file)
		results = append(results, result{file: file, post: post, err: err})
	}

	posts, failures := partition(results)
	for _, f := range failures {
		logger.Warn("skipping post file", "file", f.File, "error", f.Err)
	}
	posts = dedupe(posts, logger)

	logger.Debug("loaded posts", "loaded", len(posts), "files", len(files))
	return Loaded{Posts: posts, Failures: failures}
}

func partition(results []result) ([]Post, []LoadFailure) {
	posts := make([]Post, 0, len(results))
	var failures []LoadFailure
	for _, r := range results {
		if r.err != nil {
			failures = append(failures, LoadFailure{File: r.file, Err: r.err})
			continue
		}
		posts = append(posts, r.post)
	}
	return posts, failures
}

// dedupe keeps the last post for each slug in scan order.
func dedupe(posts []Post, logger *slog.Logger) []Post {
	last := make(map[string]int, len(posts))
	for i, p := range posts {
		last[p.Slug] = i
	}
	if len(last) == len(posts) {
		return posts
	}

	out := make([]Post, 0, len(last))
	for i, p := range posts {
		if last[p.Slug] != i {
			logger.Warn("duplicate post slug, later file wins", "slug", p.Slug)
			continue
		}
		out = append(out, p)
	}
	return out
}
