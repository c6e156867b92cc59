package service

import (
	"github.com/deppfellow/pitchfund/internal/lib/idempotency"
	"github.com/deppfellow/pitchfund/internal/lib/job"
	"github.com/deppfellow/pitchfund/internal/repository"
	"github.com/deppfellow/pitchfund/internal/server"
)

type Services struct {
	Business   *BusinessService
	Investment *InvestmentService
	Job        *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	idem := idempotency.NewStore(s.Redis, "invest", s.Config.Invest.IdempotencyTTL, s.Config.Invest.IdempotencyPendingTTL)

	return &Services{
		Business:   NewBusinessService(repos.Business, s.Job.Client, s.Logger),
		Investment: NewInvestmentService(repos.Business, s.Job.Client, idem, s.Logger),
		Job:        s.Job,
	}, nil
}
