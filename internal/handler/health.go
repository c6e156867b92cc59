package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/pitchfund/internal/lib/health"
	"github.com/deppfellow/pitchfund/internal/middleware"
	"github.com/deppfellow/pitchfund/internal/server"
)

// HealthHandler reports dependency status for load balancers and monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type healthResponse struct {
	health.Report
	Environment string `json:"environment"`
}

// CheckHealth runs every configured check now. It answers 200 when all
// required checks pass and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	report := h.server.Health.Run(c.Request().Context())

	res := healthResponse{
		Report:      report,
		Environment: h.server.Config.Primary.Env,
	}

	if !report.Healthy() {
		middleware.GetLogger(c).Warn().
			Interface("checks", report.Checks).
			Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, res)
	}

	return c.JSON(http.StatusOK, res)
}
