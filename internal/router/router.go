// Package router builds the echo instance: global middleware, the error
// handler and every route group.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/pitchfund/internal/handler"
	"github.com/deppfellow/pitchfund/internal/middleware"
	"github.com/deppfellow/pitchfund/internal/model"
	"github.com/deppfellow/pitchfund/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Routes are registered without a trailing slash and reached with or without one.
	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Metrics.Collect(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerBusinessRoutes(api, h, middlewares)

	return router
}

func registerBusinessRoutes(api *echo.Group, h *handler.Handlers, middlewares *middleware.Middlewares) {
	base := h.Business.Handler

	businesses := api.Group("/businesses")
	businesses.GET("", handler.Handle(base, h.Business.ListBusinesses, http.StatusOK, &model.ListBusinessesRequest{}))
	businesses.POST("/pitch", handler.Handle(base, h.Business.CreatePitch, http.StatusCreated, &model.CreatePitchRequest{}))
	businesses.GET("/:id", handler.Handle(base, h.Business.GetBusiness, http.StatusOK, &model.GetBusinessRequest{}))
	businesses.DELETE("/:id/delete", handler.HandleNoContent(base, h.Business.DeleteBusiness, http.StatusNoContent, &model.DeleteBusinessRequest{}))

	api.POST("/invest",
		handler.Handle(h.Investment.Handler, h.Investment.Invest, http.StatusOK, &model.InvestRequest{}),
		middlewares.RateLimit.Invest(),
	)
}
