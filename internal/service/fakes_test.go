package service

import (
	"context"
	"errors"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/pitchfund/internal/model"
)

// fakeStore applies investments under a lock with the same conditional rule
// the SQL update uses.
type fakeStore struct {
	mu         sync.Mutex
	businesses map[int64]*model.BusinessDetail
	nextID     int64
	investErr  error
	investCall int
	paths      map[int64][]string
	lastPitch  model.NewPitch
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		businesses: map[int64]*model.BusinessDetail{},
		paths:      map[int64][]string{},
		nextID:     1,
	}
}

func (f *fakeStore) add(goal, current string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.businesses[id] = &model.BusinessDetail{Business: model.Business{
		ID:             id,
		Title:          "Green Farm",
		FundingGoal:    decimal.RequireFromString(goal),
		CurrentFunding: decimal.RequireFromString(current),
	}}
	return id
}

func (f *fakeStore) current(id int64) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.businesses[id].CurrentFunding
}

func (f *fakeStore) List(ctx context.Context, filter model.ListFilter) ([]model.BusinessSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.BusinessSummary
	for _, b := range f.businesses {
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		out = append(out, model.BusinessSummary{ID: b.ID, Title: b.Title, Category: b.Category})
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int64) (*model.BusinessDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.businesses[id]
	if !ok {
		return nil, model.ErrBusinessNotFound
	}
	d := *b
	return &d, nil
}

func (f *fakeStore) CreatePitch(ctx context.Context, p model.NewPitch) (*model.BusinessDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPitch = p
	id := f.nextID
	f.nextID++
	d := &model.BusinessDetail{Business: p.Business, Images: p.Images, Videos: p.Videos, Documents: p.Documents}
	d.ID = id
	f.businesses[id] = d
	return d, nil
}

func (f *fakeStore) Delete(ctx context.Context, id int64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.businesses[id]; !ok {
		return nil, model.ErrBusinessNotFound
	}
	delete(f.businesses, id)
	return f.paths[id], nil
}

func (f *fakeStore) Invest(ctx context.Context, id int64, amount decimal.Decimal) (*model.InvestmentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.investCall++
	if f.investErr != nil {
		return nil, f.investErr
	}
	b, ok := f.businesses[id]
	if !ok {
		return nil, model.ErrBusinessNotFound
	}
	next := b.CurrentFunding.Add(amount)
	if next.GreaterThan(b.FundingGoal) {
		return nil, &model.ExceedsGoalError{Remaining: b.Remaining()}
	}
	b.CurrentFunding = next
	b.Backers++
	return &model.InvestmentResult{
		ID:             b.ID,
		CurrentFunding: b.CurrentFunding,
		Backers:        b.Backers,
		FundingGoal:    b.FundingGoal,
	}, nil
}

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (f *fakeEnqueuer) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, t := range f.tasks {
		out = append(out, t.Type())
	}
	return out
}

type stubIdempotency struct {
	claimErr error
	released []string
}

func (s *stubIdempotency) Claim(ctx context.Context, key string) ([]byte, error) {
	return nil, s.claimErr
}

func (s *stubIdempotency) Complete(ctx context.Context, key string, result []byte) error {
	return errors.New("not expected")
}

func (s *stubIdempotency) Release(ctx context.Context, key string) error {
	s.released = append(s.released, key)
	return nil
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
