package release

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	subject    string
	subjectErr error
	commitErr  error
	pushErr    error

	commits []string
	pushes  int
}

func (f *fakeRepository) LatestSubject(context.Context) (string, error) {
	return f.subject, f.subjectErr
}

func (f *fakeRepository) CommitAll(_ context.Context, message string) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commits = append(f.commits, message)
	return nil
}

func (f *fakeRepository) Push(context.Context) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushes++
	return nil
}

func TestReleaser_Release(t *testing.T) {
	t.Run("Should commit and push the next version", func(t *testing.T) {
		repo := &fakeRepository{subject: "v1.2.9"}

		result, err := NewReleaser(repo).Release(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "1.2.9", result.From.String())
		assert.Equal(t, "1.3.0", result.To.String())
		assert.Equal(t, []string{"v1.3.0"}, repo.commits)
		assert.Equal(t, 1, repo.pushes)
	})

	t.Run("Should start from zero when history is unreadable", func(t *testing.T) {
		repo := &fakeRepository{subjectErr: errors.New("reference not found")}

		result, err := NewReleaser(repo).Release(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "0.0.1", result.To.String())
		assert.Equal(t, []string{"v0.0.1"}, repo.commits)
	})

	t.Run("Should stop before pushing when commit fails", func(t *testing.T) {
		repo := &fakeRepository{subject: "v0.0.1", commitErr: errors.New("nothing to commit")}

		_, err := NewReleaser(repo).Release(context.Background())
		require.Error(t, err)

		var stepErr *StepError
		require.True(t, errors.As(err, &stepErr))
		assert.Equal(t, StepCommit, stepErr.Step)
		assert.Equal(t, "v0.0.2", stepErr.Version)
		assert.Equal(t, 0, repo.pushes)
	})

	t.Run("Should report push failures", func(t *testing.T) {
		repo := &fakeRepository{subject: "v0.0.1", pushErr: errors.New("remote rejected")}

		_, err := NewReleaser(repo).Release(context.Background())

		var stepErr *StepError
		require.True(t, errors.As(err, &stepErr))
		assert.Equal(t, StepPush, stepErr.Step)
		assert.ErrorContains(t, err, "remote rejected")
	})
}
