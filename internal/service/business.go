package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/pitchfund/internal/errs"
	"github.com/deppfellow/pitchfund/internal/lib/job"
	"github.com/deppfellow/pitchfund/internal/metrics"
	"github.com/deppfellow/pitchfund/internal/model"
)

type BusinessService struct {
	store  BusinessStore
	tasks  TaskEnqueuer
	logger *zerolog.Logger
}

func NewBusinessService(store BusinessStore, tasks TaskEnqueuer, logger *zerolog.Logger) *BusinessService {
	return &BusinessService{
		store:  store,
		tasks:  tasks,
		logger: logger,
	}
}

// loggerFrom prefers the request logger stored in ctx.
func loggerFrom(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}

func notFound() error {
	return errs.NewNotFoundError("Business not found.", true, nil)
}

func (s *BusinessService) List(ctx context.Context, f model.ListFilter) ([]model.BusinessSummary, error) {
	items, err := s.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}
	return items, nil
}

func (s *BusinessService) Get(ctx context.Context, id int64) (*model.BusinessDetail, error) {
	detail, err := s.store.GetByID(ctx, id)
	if errors.Is(err, model.ErrBusinessNotFound) {
		return nil, notFound()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get business %d: %w", id, err)
	}
	return detail, nil
}

// Create stores the business and its media in one transaction.
func (s *BusinessService) Create(ctx context.Context, req *model.CreatePitchRequest) (*model.BusinessDetail, error) {
	detail, err := s.store.CreatePitch(ctx, req.ToPitch())
	if err != nil {
		return nil, fmt.Errorf("failed to create pitch: %w", err)
	}

	metrics.PitchesCreatedTotal.Inc()

	loggerFrom(ctx, s.logger).Info().
		Int64("business_id", detail.ID).
		Int("images", len(detail.Images)).
		Int("videos", len(detail.Videos)).
		Int("documents", len(detail.Documents)).
		Msg("pitch created")

	return detail, nil
}

// Delete removes the business and schedules removal of its media files.
// The files are best effort: a failed enqueue is logged, not returned.
func (s *BusinessService) Delete(ctx context.Context, id int64) error {
	paths, err := s.store.Delete(ctx, id)
	if errors.Is(err, model.ErrBusinessNotFound) {
		return notFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete business %d: %w", id, err)
	}

	metrics.BusinessesDeletedTotal.Inc()

	logger := loggerFrom(ctx, s.logger).With().Int64("business_id", id).Logger()
	logger.Info().Int("media_files", len(paths)).Msg("business deleted")

	if len(paths) == 0 {
		return nil
	}

	task, err := job.NewMediaPurgeTask(job.MediaPurgePayload{BusinessID: id, Paths: paths})
	if err != nil {
		logger.Error().Err(err).Msg("failed to build media purge task")
		return nil
	}
	if _, err := s.tasks.EnqueueContext(ctx, task); err != nil {
		logger.Error().Err(err).Strs("paths", paths).Msg("failed to enqueue media purge")
	}

	return nil
}
