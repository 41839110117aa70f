package release

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthor = Author{Name: "Roster Test", Email: "roster@example.com"}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "igns.json"), []byte("{}\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("igns.json")
	require.NoError(t, err)
	_, err = wt.Commit("v0.1.9\n\nbody text", &git.CommitOptions{
		Author: &object.Signature{Name: testAuthor.Name, Email: testAuthor.Email, When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestGitRepository(t *testing.T) {
	t.Run("Should read the subject line of HEAD", func(t *testing.T) {
		dir := initRepo(t)
		repo, err := OpenGitRepository(dir, "", testAuthor)
		require.NoError(t, err)

		subject, err := repo.LatestSubject(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "v0.1.9", subject)
	})

	t.Run("Should find the repository from a subdirectory", func(t *testing.T) {
		dir := initRepo(t)
		sub := filepath.Join(dir, "db")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		_, err := OpenGitRepository(sub, "origin", testAuthor)
		require.NoError(t, err)
	})

	t.Run("Should commit every change in the worktree", func(t *testing.T) {
		dir := initRepo(t)
		repo, err := OpenGitRepository(dir, "origin", testAuthor)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(filepath.Join(dir, "igns.json"), []byte(`{"msr": ["alice"]}`), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x"), 0o644))
		require.NoError(t, repo.CommitAll(context.Background(), "v0.2.0"))

		subject, err := repo.LatestSubject(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "v0.2.0", subject)

		wt, err := repo.repo.Worktree()
		require.NoError(t, err)
		status, err := wt.Status()
		require.NoError(t, err)
		assert.True(t, status.IsClean(), "expected clean worktree, got %s", status.String())
	})

	t.Run("Should fail to push without a remote", func(t *testing.T) {
		dir := initRepo(t)
		repo, err := OpenGitRepository(dir, "origin", testAuthor)
		require.NoError(t, err)

		assert.Error(t, repo.Push(context.Background()))
	})

	t.Run("Should fail outside a repository", func(t *testing.T) {
		_, err := OpenGitRepository(t.TempDir(), "origin", testAuthor)
		assert.Error(t, err)
	})
}
