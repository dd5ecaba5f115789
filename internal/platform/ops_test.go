package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/core"
)

type stubRepo struct{}

func (stubRepo) Scan(context.Context) ([]string, error)           { return []string{}, nil }
func (stubRepo) Load(context.Context, string) (core.Post, error) { return core.Post{}, nil }

func TestInit_DefaultsToFS(t *testing.T) {
	dir := t.TempDir()
	repo, err := Init(dir)
	require.NoError(t, err)

	fsRepo, ok := repo.(*fs.Repository)
	require.True(t, ok)
	state := fsRepo.State().(fs.RepositoryState)
	assert.Equal(t, []string{fs.DefaultExtension}, state.Extensions)
}

func TestInit_PassesOptions(t *testing.T) {
	dir := t.TempDir()
	repo, err := Init(dir, WithExtensions(".md"), WithInclude("2024-*"))
	require.NoError(t, err)

	state := repo.(*fs.Repository).State().(fs.RepositoryState)
	assert.Equal(t, []string{".md"}, state.Extensions)
	assert.Equal(t, "2024-*", state.Include)
}

func TestInit_InjectedRepository(t *testing.T) {
	repo, err := Init("", WithRepository(stubRepo{}))
	require.NoError(t, err)
	assert.IsType(t, stubRepo{}, repo)
}

func TestInit_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Init(dir, WithAdapter("s3"))
	assert.ErrorContains(t, err, "unknown adapter")

	_, err = Init(dir, WithInclude("[unclosed"))
	assert.ErrorContains(t, err, "invalid include pattern")

	_, err = Init(dir, WithExtensions("mdx"))
	assert.ErrorContains(t, err, "must start with a dot")

	_, err = Init("")
	assert.Error(t, err)
}

func TestInit_MustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := Init(missing)
	assert.NoError(t, err, "missing directory is tolerated by default")

	_, err = Init(missing, WithMustExist(true))
	var dirErr *core.DirectoryReadError
	require.True(t, errors.As(err, &dirErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	content := "---\ntitle: T\npublishedAt: 2024-01-01\nsummary: S\n---\nbody"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t.mdx"), []byte(content), 0644))

	svc, err := New(dir)
	require.NoError(t, err)

	post, ok := svc.NewCycle().PostBySlug(context.Background(), "t")
	require.True(t, ok)
	assert.Equal(t, "T", post.Metadata.Title)
}
