package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/pitchfund/internal/errs"
	"github.com/deppfellow/pitchfund/internal/lib/idempotency"
	"github.com/deppfellow/pitchfund/internal/lib/job"
	"github.com/deppfellow/pitchfund/internal/metrics"
	"github.com/deppfellow/pitchfund/internal/model"
)

const completeAttempts = 2

type InvestmentService struct {
	store  BusinessStore
	tasks  TaskEnqueuer
	idem   IdempotencyStore
	logger *zerolog.Logger
}

func NewInvestmentService(store BusinessStore, tasks TaskEnqueuer, idem IdempotencyStore, logger *zerolog.Logger) *InvestmentService {
	return &InvestmentService{
		store:  store,
		tasks:  tasks,
		idem:   idem,
		logger: logger,
	}
}

// InvestOutcome is the applied (or replayed) investment.
type InvestOutcome struct {
	Response model.InvestmentResponse
	Replayed bool
}

// Invest applies req to its business. A non-empty key makes the call
// idempotent: a repeat with the same key returns the first result unchanged.
// When the idempotency store is unreachable the investment proceeds unguarded.
func (s *InvestmentService) Invest(ctx context.Context, req *model.InvestRequest, key string) (*InvestOutcome, error) {
	amount := req.Amount()
	logger := loggerFrom(ctx, s.logger).With().
		Int64("business_id", req.BusinessID).
		Str("amount", amount.StringFixed(2)).
		Logger()

	if s.idem == nil {
		key = ""
	}

	if key != "" {
		stored, err := s.idem.Claim(ctx, key)
		switch {
		case errors.Is(err, idempotency.ErrInFlight):
			metrics.RecordInvestment(metrics.OutcomeInFlight, amount)
			return nil, errs.NewConflictError("A request with this Idempotency-Key is still being processed.", true)
		case err != nil:
			logger.Warn().Err(err).Msg("idempotency store unavailable, continuing without it")
			key = ""
		case stored != nil:
			var res model.InvestmentResponse
			if err := json.Unmarshal(stored, &res); err != nil {
				return nil, fmt.Errorf("failed to decode stored investment result: %w", err)
			}
			metrics.RecordInvestment(metrics.OutcomeReplayed, amount)
			logger.Info().Msg("investment replayed from idempotency key")
			return &InvestOutcome{Response: res, Replayed: true}, nil
		}
	}

	result, err := s.store.Invest(ctx, req.BusinessID, amount)
	if err != nil {
		s.release(ctx, &logger, key)
		return nil, s.investError(err, amount)
	}

	metrics.RecordInvestment(metrics.OutcomeApplied, amount)
	logger.Info().
		Str("current_funding", result.CurrentFunding.StringFixed(2)).
		Int("backers", result.Backers).
		Msg("investment applied")

	if result.GoalReached() {
		metrics.GoalsReachedTotal.Inc()
		s.enqueueGoalReached(ctx, &logger, *result)
	}

	res := model.NewInvestmentResponse(*result)
	if key != "" {
		s.complete(ctx, &logger, key, res)
	}

	return &InvestOutcome{Response: res}, nil
}

func (s *InvestmentService) investError(err error, amount decimal.Decimal) error {
	var exceeds *model.ExceedsGoalError
	switch {
	case errors.Is(err, model.ErrBusinessNotFound):
		metrics.RecordInvestment(metrics.OutcomeNotFound, amount)
		return errs.NewBadRequestError("Business not found.", true, nil, nil, nil)
	case errors.As(err, &exceeds):
		metrics.RecordInvestment(metrics.OutcomeExceedsGoal, amount)
		return errs.NewBadRequestError(exceeds.Error(), true, nil, nil, nil)
	default:
		metrics.RecordInvestment(metrics.OutcomeError, amount)
		return fmt.Errorf("failed to apply investment: %w", err)
	}
}

// enqueueGoalReached announces a completed goal. The task is unique per
// business, so a duplicate is expected and ignored.
func (s *InvestmentService) enqueueGoalReached(ctx context.Context, logger *zerolog.Logger, r model.InvestmentResult) {
	task, err := job.NewGoalReachedTask(job.GoalReachedPayload{
		BusinessID:  r.ID,
		FundingGoal: r.FundingGoal.StringFixed(2),
		Backers:     r.Backers,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to build goal reached task")
		return
	}

	_, err = s.tasks.EnqueueContext(ctx, task)
	switch {
	case errors.Is(err, asynq.ErrDuplicateTask):
	case err != nil:
		logger.Error().Err(err).Msg("failed to enqueue goal reached task")
	default:
		logger.Info().Msg("funding goal reached")
	}
}

func (s *InvestmentService) complete(ctx context.Context, logger *zerolog.Logger, key string, res model.InvestmentResponse) {
	data, err := json.Marshal(res)
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode investment result")
		s.release(ctx, logger, key)
		return
	}
	// One retry; after that the pending claim lapses on its own TTL.
	for attempt := 1; attempt <= completeAttempts; attempt++ {
		err = s.idem.Complete(ctx, key, data)
		if err == nil {
			return
		}
		logger.Warn().Err(err).Str("idempotency_key", key).Int("attempt", attempt).Msg("failed to store investment result")
	}
}

func (s *InvestmentService) release(ctx context.Context, logger *zerolog.Logger, key string) {
	if key == "" {
		return
	}
	if err := s.idem.Release(ctx, key); err != nil {
		logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to release idempotency key")
	}
}
