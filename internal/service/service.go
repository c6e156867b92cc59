// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// requests from the handlers, applies the domain rules and turns domain
// errors into HTTP errors.
package service

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/pitchfund/internal/model"
)

type BusinessStore interface {
	List(ctx context.Context, f model.ListFilter) ([]model.BusinessSummary, error)
	GetByID(ctx context.Context, id int64) (*model.BusinessDetail, error)
	CreatePitch(ctx context.Context, p model.NewPitch) (*model.BusinessDetail, error)
	Delete(ctx context.Context, id int64) ([]string, error)
	Invest(ctx context.Context, id int64, amount decimal.Decimal) (*model.InvestmentResult, error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type IdempotencyStore interface {
	Claim(ctx context.Context, key string) ([]byte, error)
	Complete(ctx context.Context, key string, result []byte) error
	Release(ctx context.Context, key string) error
}
