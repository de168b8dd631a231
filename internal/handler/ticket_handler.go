package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/entryx/ticketing/internal/assetcode"
	"github.com/entryx/ticketing/internal/dto"
	"github.com/entryx/ticketing/internal/middleware"
	"github.com/entryx/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type TicketHandler struct {
	svc service.TicketService
}

func NewTicketHandler(svc service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

func (h *TicketHandler) RegisterRoutes(api *echo.Group, requireWallet echo.MiddlewareFunc) {
	api.GET("/events/:id/categories", h.ListCategories)
	api.POST("/events/:id/categories", h.CreateCategory, requireWallet)
	api.PATCH("/categories/:id", h.UpdateCategory, requireWallet)
	api.POST("/categories/:id/tokenize", h.Tokenize, requireWallet)
}

func (h *TicketHandler) CreateCategory(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Label == "" || req.TotalUnits <= 0 || req.PricePerUnit <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "label, total_units (>0) and price_per_unit (>0) are required")
	}

	asset, err := h.svc.CreateCategory(c.Request().Context(), service.CreateCategoryInput{
		EventID:      uint(eventID),
		CallerKey:    middleware.CallerKey(c),
		Label:        req.Label,
		TotalUnits:   req.TotalUnits,
		PricePerUnit: req.PricePerUnit,
		Size:         assetcode.Size(req.Size),
	})
	if err != nil {
		return categoryError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToCategoryResponse(asset))
}

func (h *TicketHandler) UpdateCategory(c echo.Context) error {
	assetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	var req dto.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TotalUnits != nil && *req.TotalUnits <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "total_units must be greater than zero")
	}
	if req.PricePerUnit != nil && *req.PricePerUnit <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "price_per_unit must be greater than zero")
	}
	if req.Label != nil && *req.Label == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "label must not be empty")
	}

	asset, err := h.svc.UpdateCategory(c.Request().Context(), uint(assetID), middleware.CallerKey(c), service.CategoryUpdate{
		Label:        req.Label,
		TotalUnits:   req.TotalUnits,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		return categoryError(err)
	}

	return c.JSON(http.StatusOK, dto.ToCategoryResponse(asset))
}

func (h *TicketHandler) ListCategories(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	assets, err := h.svc.ListCategories(c.Request().Context(), uint(eventID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CategoryResponse, len(assets))
	for i, a := range assets {
		resp[i] = dto.ToCategoryResponse(&a)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *TicketHandler) Tokenize(c echo.Context) error {
	assetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	asset, err := h.svc.Tokenize(c.Request().Context(), uint(assetID), middleware.CallerKey(c))
	if err != nil {
		return categoryError(err)
	}

	return c.JSON(http.StatusOK, dto.ToCategoryResponse(asset))
}

func categoryError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrCategoryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotEventOwner):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrAssetLocked):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSequenceConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, assetcode.ErrAllocationOverflow):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, assetcode.ErrInvalidSize):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
