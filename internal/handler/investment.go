package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/pitchfund/internal/errs"
	"github.com/deppfellow/pitchfund/internal/lib/idempotency"
	"github.com/deppfellow/pitchfund/internal/model"
	"github.com/deppfellow/pitchfund/internal/server"
	"github.com/deppfellow/pitchfund/internal/service"
)

const (
	IdempotencyKeyHeader     = "Idempotency-Key"
	IdempotentReplayedHeader = "Idempotent-Replayed"
)

type InvestmentHandler struct {
	Handler
	investments *service.InvestmentService
}

func NewInvestmentHandler(s *server.Server, investments *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		Handler:     NewHandler(s),
		investments: investments,
	}
}

func (h *InvestmentHandler) Invest(c echo.Context, req *model.InvestRequest) (*model.InvestmentResponse, error) {
	key := c.Request().Header.Get(IdempotencyKeyHeader)
	if len(key) > idempotency.MaxKeyLength {
		return nil, errs.NewBadRequestError("Idempotency-Key must be at most 255 characters.", true, nil, nil, nil)
	}

	out, err := h.investments.Invest(c.Request().Context(), req, key)
	if err != nil {
		return nil, err
	}

	if out.Replayed {
		c.Response().Header().Set(IdempotentReplayedHeader, "true")
	}
	return &out.Response, nil
}
