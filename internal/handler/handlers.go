package handler

import (
	"github.com/deppfellow/pitchfund/internal/media"
	"github.com/deppfellow/pitchfund/internal/server"
	"github.com/deppfellow/pitchfund/internal/service"
)

type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Business   *BusinessHandler
	Investment *InvestmentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	resolver := media.NewResolver(s.Config.Media)

	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Business:   NewBusinessHandler(s, services.Business, resolver),
		Investment: NewInvestmentHandler(s, services.Investment),
	}
}
