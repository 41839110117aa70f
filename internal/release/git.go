package release

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Author overrides the commit signature. Empty fields fall back to the
// repository's git configuration.
type Author struct {
	Name  string
	Email string
}

// GitRepository implements Repository with go-git.
type GitRepository struct {
	repo   *git.Repository
	remote string
	author Author
}

// OpenGitRepository opens the repository containing dir.
func OpenGitRepository(dir, remote string, author Author) (*GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository at %s: %w", dir, err)
	}
	if remote == "" {
		remote = git.DefaultRemoteName
	}
	return &GitRepository{repo: repo, remote: remote, author: author}, nil
}

func (g *GitRepository) LatestSubject(_ context.Context) (string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("read HEAD commit: %w", err)
	}
	subject, _, _ := strings.Cut(commit.Message, "\n")
	return strings.TrimSpace(subject), nil
}

func (g *GitRepository) CommitAll(_ context.Context, message string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("open worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}

	opts := &git.CommitOptions{}
	if g.author.Name != "" && g.author.Email != "" {
		opts.Author = &object.Signature{
			Name:  g.author.Name,
			Email: g.author.Email,
			When:  time.Now(),
		}
	}
	if _, err := wt.Commit(message, opts); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (g *GitRepository) Push(ctx context.Context) error {
	err := g.repo.PushContext(ctx, &git.PushOptions{RemoteName: g.remote})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push to %s: %w", g.remote, err)
	}
	return nil
}
