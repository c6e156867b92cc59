package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/pitchfund/internal/config"
	"github.com/deppfellow/pitchfund/internal/lib/email"
	"github.com/deppfellow/pitchfund/internal/metrics"
	"github.com/deppfellow/pitchfund/internal/model"
)

type BusinessReader interface {
	GetByID(ctx context.Context, id int64) (*model.BusinessDetail, error)
}

type GoalNotifier interface {
	SendGoalReachedEmail(ctx context.Context, to []string, g email.GoalReached) error
}

type MediaRemover interface {
	Remove(ctx context.Context, paths []string) (int, error)
}

type taskHandlers struct {
	logger     *zerolog.Logger
	businesses BusinessReader
	notifier   GoalNotifier
	recipients []string
	media      MediaRemover
}

// InitHandlers wires the dependencies task handlers need. When notifications
// are disabled goal-reached tasks are acknowledged without sending.
func (j *JobService) InitHandlers(cfg *config.Config, businesses BusinessReader, media MediaRemover) {
	h := &taskHandlers{
		logger:     j.logger,
		businesses: businesses,
		media:      media,
	}
	if cfg.Integration.NotificationsEnabled() {
		h.notifier = email.NewClient(cfg, j.logger)
		h.recipients = cfg.Integration.NotificationRecipients
	}
	j.handlers = h
}

func recordJob(taskType string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.JobsProcessedTotal.WithLabelValues(taskType, result).Inc()
}

func (h *taskHandlers) handleGoalReachedTask(ctx context.Context, t *asynq.Task) (err error) {
	defer func() { recordJob(TaskGoalReached, err) }()

	var p GoalReachedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal goal reached payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := h.logger.With().
		Str("type", TaskGoalReached).
		Int64("business_id", p.BusinessID).
		Logger()

	if h.notifier == nil {
		logger.Info().Msg("notifications disabled, skipping goal reached email")
		return nil
	}

	business, err := h.businesses.GetByID(ctx, p.BusinessID)
	if err != nil {
		if errors.Is(err, model.ErrBusinessNotFound) {
			logger.Warn().Msg("business deleted before goal reached email was sent")
			return nil
		}
		return fmt.Errorf("loading business %d: %w", p.BusinessID, err)
	}

	logger.Info().Msg("Processing goal reached email task")

	err = h.notifier.SendGoalReachedEmail(ctx, h.recipients, email.GoalReached{
		BusinessID:       business.ID,
		Title:            business.Title,
		EntrepreneurName: business.EntrepreneurName,
		FundingGoal:      p.FundingGoal,
		Backers:          p.Backers,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send goal reached email")
		return err
	}

	logger.Info().Msg("Successfully sent goal reached email")
	return nil
}

func (h *taskHandlers) handleMediaPurgeTask(ctx context.Context, t *asynq.Task) (err error) {
	defer func() { recordJob(TaskMediaPurge, err) }()

	var p MediaPurgePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal media purge payload: %w: %w", err, asynq.SkipRetry)
	}

	removed, err := h.media.Remove(ctx, p.Paths)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("business_id", p.BusinessID).
			Int("removed", removed).
			Msg("Failed to purge media")
		return err
	}

	h.logger.Info().
		Int64("business_id", p.BusinessID).
		Int("removed", removed).
		Int("requested", len(p.Paths)).
		Msg("Purged business media")
	return nil
}
