package repository

import (
	"github.com/deppfellow/pitchfund/internal/server"
)

type Repositories struct {
	Business *BusinessRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Business: NewBusinessRepository(s.DB.Pool),
	}
}
