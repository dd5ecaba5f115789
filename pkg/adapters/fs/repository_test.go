package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/core"
)

const validPost = "---\ntitle: Valid\npublishedAt: 2024-05-01\nsummary: ok\n---\n\nHello.\n"

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestScan_FiltersEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mdx", validPost)
	writeFile(t, dir, "b.mdx", validPost)
	writeFile(t, dir, "notes.md", validPost)
	writeFile(t, dir, "upper.MDX", validPost)
	writeFile(t, dir, TempFilePrefix+"123.mdx", validPost)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.mdx"), 0755))
	writeFile(t, filepath.Join(dir, "nested.mdx"), "c.mdx", validPost)

	repo := NewRepository(Config{Path: dir})
	files, err := repo.Scan(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.mdx", "b.mdx"}, files)
}

func TestScan_MultipleExtensionsAndInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2024-a.mdx", validPost)
	writeFile(t, dir, "2024-b.md", validPost)
	writeFile(t, dir, "2023-c.mdx", validPost)

	repo := NewRepository(Config{Path: dir, Extensions: []string{".mdx", ".md"}})
	files, err := repo.Scan(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2024-a.mdx", "2024-b.md", "2023-c.mdx"}, files)

	repo = NewRepository(Config{Path: dir, Extensions: []string{".mdx", ".md"}, Include: "2024-*"})
	files, err = repo.Scan(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2024-a.mdx", "2024-b.md"}, files)
}

func TestScan_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	repo := NewRepository(Config{Path: missing})

	files, err := repo.Scan(context.Background())
	assert.Nil(t, files)

	var target *core.DirectoryReadError
	require.True(t, errors.As(err, &target), "got %v", err)
	assert.Equal(t, missing, target.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestScan_EmptyDirectory(t *testing.T) {
	files, err := NewRepository(Config{Path: t.TempDir()}).Scan(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "my-post.mdx", validPost)

	post, err := NewRepository(Config{Path: dir}).Load(context.Background(), "my-post.mdx")
	require.NoError(t, err)
	assert.Equal(t, "my-post", post.Slug)
	assert.Equal(t, "Valid", post.Metadata.Title)
	assert.Equal(t, "2024-05-01", post.Metadata.PublishedAt)
	assert.Equal(t, "ok", post.Metadata.Summary)
	assert.Equal(t, "Hello.", post.Content)
}

func TestLoadPost_WrapsFailuresWithBaseName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "no-header.mdx", "just text")
	writeFile(t, dir, "partial.mdx", "---\ntitle: x\n---\n")

	tests := []struct {
		file  string
		check func(t *testing.T, err error)
	}{
		{"no-header.mdx", func(t *testing.T, err error) {
			var target *core.MissingFrontmatterError
			assert.True(t, errors.As(err, &target))
		}},
		{"partial.mdx", func(t *testing.T, err error) {
			var target *core.InvalidFrontmatterError
			require.True(t, errors.As(err, &target))
			assert.Equal(t, []string{core.KeyPublishedAt, core.KeySummary}, target.Missing)
		}},
		{"absent.mdx", func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, os.ErrNotExist))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadPost(filepath.Join(dir, tt.file))
			var loadErr *core.PostLoadError
			require.True(t, errors.As(err, &loadErr), "got %v", err)
			assert.Equal(t, tt.file, loadErr.File)
			assert.NotContains(t, err.Error(), dir)
			tt.check(t, err)
		})
	}
}

func TestSlugFromFile(t *testing.T) {
	assert.Equal(t, "hello-world", SlugFromFile("hello-world.mdx"))
	assert.Equal(t, "v1.2", SlugFromFile("/abs/path/v1.2.mdx"))
	assert.Equal(t, "README", SlugFromFile("README"))
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "posts")
	repo := NewRepository(Config{Path: dir})
	meta := core.Metadata{Title: "Fresh", PublishedAt: "2026-01-02", Summary: "new"}

	require.NoError(t, repo.Create(ctx, "fresh", meta, "Body"))

	post, err := repo.Load(ctx, "fresh.mdx")
	require.NoError(t, err)
	assert.Equal(t, meta, post.Metadata)
	assert.Equal(t, "Body", post.Content)

	err = repo.Create(ctx, "fresh", meta, "again")
	assert.ErrorIs(t, err, core.ErrPostExists)
}

func TestCreate_RejectsExistingInOtherExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dup.md", validPost)
	repo := NewRepository(Config{Path: dir, Extensions: []string{".mdx", ".md"}})

	err := repo.Create(context.Background(), "dup", core.Metadata{Title: "t", PublishedAt: "2024-01-01", Summary: "s"}, "")
	assert.ErrorIs(t, err, core.ErrPostExists)
}

func TestCreate_Validation(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(Config{Path: t.TempDir()})
	good := core.Metadata{Title: "t", PublishedAt: "2024-01-01", Summary: "s"}

	for _, slug := range []string{"", "..", "a/b", ".hidden"} {
		assert.ErrorIs(t, repo.Create(ctx, slug, good, ""), core.ErrInvalidSlug, "slug %q", slug)
	}

	err := repo.Create(ctx, "incomplete", core.Metadata{Title: "t"}, "")
	var invalid *core.InvalidFrontmatterError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "incomplete.mdx", invalid.File)

	multiline := good
	multiline.Summary = "line one\nline two"
	assert.Error(t, repo.Create(ctx, "multi", multiline, ""))
}

func TestRepositoryState(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mdx", validPost)
	repo := NewRepository(Config{Path: dir, Include: "*"})

	state := repo.State().(RepositoryState)
	assert.Nil(t, state.LastScan)
	assert.Equal(t, []string{DefaultExtension}, state.Extensions)
	assert.Equal(t, "repository", repo.ComponentType())

	_, err := repo.Scan(context.Background())
	require.NoError(t, err)

	state = repo.State().(RepositoryState)
	assert.NotNil(t, state.LastScan)
	assert.Equal(t, 1, state.LastScanFiles)
	assert.Equal(t, dir, state.Path)
	assert.Equal(t, "*", state.Include)
}
