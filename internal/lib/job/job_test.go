package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/pitchfund/internal/lib/email"
	"github.com/deppfellow/pitchfund/internal/model"
)

type fakeBusinesses struct {
	detail *model.BusinessDetail
	err    error
}

func (f *fakeBusinesses) GetByID(context.Context, int64) (*model.BusinessDetail, error) {
	return f.detail, f.err
}

type fakeNotifier struct {
	to   []string
	sent []email.GoalReached
	err  error
}

func (f *fakeNotifier) SendGoalReachedEmail(_ context.Context, to []string, g email.GoalReached) error {
	f.to = to
	f.sent = append(f.sent, g)
	return f.err
}

type fakeRemover struct {
	paths []string
	err   error
}

func (f *fakeRemover) Remove(_ context.Context, paths []string) (int, error) {
	f.paths = paths
	return len(paths), f.err
}

func newHandlers(b BusinessReader, n GoalNotifier, m MediaRemover) *taskHandlers {
	logger := zerolog.Nop()
	h := &taskHandlers{logger: &logger, businesses: b, media: m, recipients: []string{"ops@pitchfund.test"}}
	if n != nil {
		h.notifier = n
	}
	return h
}

func TestNewGoalReachedTask(t *testing.T) {
	task, err := NewGoalReachedTask(GoalReachedPayload{BusinessID: 7, FundingGoal: "1000.00", Backers: 12})
	require.NoError(t, err)
	assert.Equal(t, TaskGoalReached, task.Type())

	var p GoalReachedPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, int64(7), p.BusinessID)
}

func TestHandleGoalReachedTask(t *testing.T) {
	business := &model.BusinessDetail{Business: model.Business{ID: 7, Title: "Solar Farm", EntrepreneurName: "Ada"}}
	task, err := NewGoalReachedTask(GoalReachedPayload{BusinessID: 7, FundingGoal: "1000.00", Backers: 12})
	require.NoError(t, err)

	t.Run("sends email", func(t *testing.T) {
		notifier := &fakeNotifier{}
		h := newHandlers(&fakeBusinesses{detail: business}, notifier, nil)

		require.NoError(t, h.handleGoalReachedTask(context.Background(), task))
		require.Len(t, notifier.sent, 1)
		assert.Equal(t, "Solar Farm", notifier.sent[0].Title)
		assert.Equal(t, "1000.00", notifier.sent[0].FundingGoal)
		assert.Equal(t, []string{"ops@pitchfund.test"}, notifier.to)
	})

	t.Run("notifications disabled", func(t *testing.T) {
		h := newHandlers(&fakeBusinesses{detail: business}, nil, nil)
		assert.NoError(t, h.handleGoalReachedTask(context.Background(), task))
	})

	t.Run("business gone", func(t *testing.T) {
		notifier := &fakeNotifier{}
		h := newHandlers(&fakeBusinesses{err: model.ErrBusinessNotFound}, notifier, nil)
		assert.NoError(t, h.handleGoalReachedTask(context.Background(), task))
		assert.Empty(t, notifier.sent)
	})

	t.Run("send failure retries", func(t *testing.T) {
		h := newHandlers(&fakeBusinesses{detail: business}, &fakeNotifier{err: errors.New("resend down")}, nil)
		assert.Error(t, h.handleGoalReachedTask(context.Background(), task))
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		h := newHandlers(&fakeBusinesses{detail: business}, &fakeNotifier{}, nil)
		err := h.handleGoalReachedTask(context.Background(), asynq.NewTask(TaskGoalReached, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}

func TestHandleMediaPurgeTask(t *testing.T) {
	task, err := NewMediaPurgeTask(MediaPurgePayload{BusinessID: 7, Paths: []string{"a.png", "plan.pdf"}})
	require.NoError(t, err)

	remover := &fakeRemover{}
	h := newHandlers(nil, nil, remover)
	require.NoError(t, h.handleMediaPurgeTask(context.Background(), task))
	assert.Equal(t, []string{"a.png", "plan.pdf"}, remover.paths)

	h = newHandlers(nil, nil, &fakeRemover{err: errors.New("permission denied")})
	assert.Error(t, h.handleMediaPurgeTask(context.Background(), task))
}
