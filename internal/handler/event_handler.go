package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/entryx/ticketing/internal/assetcode"
	"github.com/entryx/ticketing/internal/dto"
	"github.com/entryx/ticketing/internal/middleware"
	"github.com/entryx/ticketing/internal/models"
	"github.com/entryx/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(api *echo.Group, requireWallet echo.MiddlewareFunc) {
	api.GET("/events", h.ListEvents)
	api.GET("/events/:id", h.GetEvent)
	api.POST("/events", h.CreateEvent, requireWallet)
	api.DELETE("/events/:id", h.DeleteEvent, requireWallet)
	api.GET("/organizer/events", h.MyEvents, requireWallet)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Venue == "" || req.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "name, venue and date are required")
	}

	event := &models.Event{
		Name:           req.Name,
		Venue:          req.Venue,
		Description:    req.Description,
		Date:           req.Date,
		DistributorKey: middleware.CallerKey(c),
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		switch {
		case errors.Is(err, assetcode.ErrAllocationOverflow):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrSequenceConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *EventHandler) MyEvents(c echo.Context) error {
	events, err := h.svc.ListByOrganizer(c.Request().Context(), middleware.CallerKey(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), uint(id), middleware.CallerKey(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotEventOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.NoContent(http.StatusNoContent)
}

func toEventResponses(events []models.Event) []dto.EventResponse {
	resp := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.ToEventResponse(&e)
	}
	return resp
}
