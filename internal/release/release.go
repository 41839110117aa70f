package release

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	"roster/internal/logger"
)

// Repository is the version-control collaborator used by Releaser.
type Repository interface {
	// LatestSubject returns the first line of the HEAD commit message.
	LatestSubject(ctx context.Context) (string, error)
	// CommitAll stages every change in the worktree and commits it.
	CommitAll(ctx context.Context, message string) error
	// Push publishes the current branch to the configured remote.
	Push(ctx context.Context) error
}

// Step names the release stage that failed.
type Step string

const (
	StepCommit Step = "commit"
	StepPush   Step = "push"
)

// StepError reports which release step failed.
type StepError struct {
	Step    Step
	Version string
	Err     error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("release %s failed at %s: %v", e.Version, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result describes a completed release.
type Result struct {
	From *semver.Version
	To   *semver.Version
}

// Releaser derives the next version from history, commits and pushes.
type Releaser struct {
	repo Repository
}

func NewReleaser(repo Repository) *Releaser {
	return &Releaser{repo: repo}
}

// Release commits the worktree as the next version and pushes it. It stops
// at the first failing step.
func (r *Releaser) Release(ctx context.Context) (*Result, error) {
	log := logger.FromContext(ctx)

	subject, err := r.repo.LatestSubject(ctx)
	if err != nil {
		// Empty or unreadable history starts the sequence from zero.
		log.Debug("could not read latest commit", "error", err)
		subject = ""
	}
	log.Debug("latest commit", "subject", subject)

	current := CurrentVersion(subject)
	next := NextVersion(current)
	tag := Tag(next)
	log.Debug("version calculated", "current", current.String(), "next", next.String())

	if err := r.repo.CommitAll(ctx, tag); err != nil {
		return nil, &StepError{Step: StepCommit, Version: tag, Err: err}
	}
	if err := r.repo.Push(ctx); err != nil {
		return nil, &StepError{Step: StepPush, Version: tag, Err: err}
	}

	return &Result{From: current, To: next}, nil
}
