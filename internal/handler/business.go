package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/pitchfund/internal/media"
	"github.com/deppfellow/pitchfund/internal/model"
	"github.com/deppfellow/pitchfund/internal/server"
	"github.com/deppfellow/pitchfund/internal/service"
)

type BusinessHandler struct {
	Handler
	businesses *service.BusinessService
	media      *media.Resolver
}

func NewBusinessHandler(s *server.Server, businesses *service.BusinessService, resolver *media.Resolver) *BusinessHandler {
	return &BusinessHandler{
		Handler:    NewHandler(s),
		businesses: businesses,
		media:      resolver,
	}
}

func (h *BusinessHandler) ListBusinesses(c echo.Context, req *model.ListBusinessesRequest) ([]model.BusinessSummaryResponse, error) {
	items, err := h.businesses.List(c.Request().Context(), req.Filter())
	if err != nil {
		return nil, err
	}
	return model.NewBusinessSummaryResponses(items, h.media.ForRequest(c)), nil
}

func (h *BusinessHandler) GetBusiness(c echo.Context, req *model.GetBusinessRequest) (*model.BusinessDetailResponse, error) {
	detail, err := h.businesses.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	res := model.NewBusinessDetailResponse(*detail, h.media.ForRequest(c))
	return &res, nil
}

func (h *BusinessHandler) CreatePitch(c echo.Context, req *model.CreatePitchRequest) (*model.BusinessDetailResponse, error) {
	detail, err := h.businesses.Create(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	res := model.NewBusinessDetailResponse(*detail, h.media.ForRequest(c))
	return &res, nil
}

func (h *BusinessHandler) DeleteBusiness(c echo.Context, req *model.DeleteBusinessRequest) error {
	return h.businesses.Delete(c.Request().Context(), req.ID)
}
