package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/entryx/ticketing/internal/dto"
	"github.com/entryx/ticketing/internal/middleware"
	"github.com/entryx/ticketing/internal/repository"
	"github.com/entryx/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type MarketplaceHandler struct {
	svc service.AuctionService
}

func NewMarketplaceHandler(svc service.AuctionService) *MarketplaceHandler {
	return &MarketplaceHandler{svc: svc}
}

func (h *MarketplaceHandler) RegisterRoutes(api *echo.Group, requireWallet echo.MiddlewareFunc) {
	api.GET("/marketplace/auctions", h.SearchAuctions)
	api.GET("/marketplace/auctions/:id", h.GetAuction)
	api.POST("/marketplace/auctions", h.StartAuction, requireWallet)
	api.POST("/marketplace/auctions/:id/bids", h.PlaceBid, requireWallet)
	api.POST("/marketplace/auctions/:id/close", h.CloseAuction, requireWallet)
}

func (h *MarketplaceHandler) SearchAuctions(c echo.Context) error {
	filter := repository.AuctionFilter{
		Search: c.QueryParam("search"),
		Owner:  c.QueryParam("owner"),
		Bidder: c.QueryParam("bidder"),
	}
	if raw := c.QueryParam("event_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid event_id")
		}
		eventID := uint(id)
		filter.EventID = &eventID
	}

	auctions, err := h.svc.Search(c.Request().Context(), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.AuctionResponse, len(auctions))
	for i, a := range auctions {
		resp[i] = dto.ToAuctionResponse(&a)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MarketplaceHandler) GetAuction(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid auction id")
	}

	auction, err := h.svc.GetAuction(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrAuctionNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToAuctionResponse(auction))
}

func (h *MarketplaceHandler) StartAuction(c echo.Context) error {
	var req dto.StartAuctionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.AssetID == 0 || req.Quantity <= 0 || req.StartPrice <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "asset_id, quantity (>0) and start_price (>0) are required")
	}

	auction, err := h.svc.StartAuction(c.Request().Context(), service.StartAuctionInput{
		OwnerKey:   middleware.CallerKey(c),
		AssetID:    req.AssetID,
		Quantity:   req.Quantity,
		StartPrice: req.StartPrice,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotTokenized):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrPriceAboveFace), errors.Is(err, service.ErrInsufficientBalance):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToAuctionResponse(auction))
}

func (h *MarketplaceHandler) PlaceBid(c echo.Context) error {
	auctionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid auction id")
	}

	var req dto.PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be greater than zero")
	}

	auction, err := h.svc.PlaceBid(c.Request().Context(), middleware.CallerKey(c), uint(auctionID), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuctionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrAuctionClosed):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrBidTooLow), errors.Is(err, service.ErrInsufficientBalance):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAuctionResponse(auction))
}

func (h *MarketplaceHandler) CloseAuction(c echo.Context) error {
	auctionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid auction id")
	}

	auction, err := h.svc.CloseAuction(c.Request().Context(), middleware.CallerKey(c), uint(auctionID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuctionNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotAuctionOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAuctionClosed):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAuctionResponse(auction))
}
