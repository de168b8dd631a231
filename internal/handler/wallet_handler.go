package handler

import (
	"errors"
	"net/http"

	"github.com/entryx/ticketing/internal/dto"
	"github.com/entryx/ticketing/internal/middleware"
	"github.com/entryx/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

type WalletHandler struct {
	wallet    service.WalletService
	analytics service.AnalyticsService
}

func NewWalletHandler(wallet service.WalletService, analytics service.AnalyticsService) *WalletHandler {
	return &WalletHandler{wallet: wallet, analytics: analytics}
}

func (h *WalletHandler) RegisterRoutes(api *echo.Group, requireWallet echo.MiddlewareFunc) {
	api.POST("/wallet/challenge", h.Challenge)
	api.POST("/wallet/login", h.Login)
	api.GET("/organizer/sales", h.Sales, requireWallet)
}

func (h *WalletHandler) Challenge(c echo.Context) error {
	var req dto.ChallengeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	challenge, err := h.wallet.Challenge(c.Request().Context(), req.PublicKey)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPublicKey) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ChallengeResponse{Challenge: challenge})
}

func (h *WalletHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	token, err := h.wallet.Login(c.Request().Context(), req.PublicKey, req.Challenge, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPublicKey):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrChallengeExpired), errors.Is(err, service.ErrInvalidSignature):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *WalletHandler) Sales(c echo.Context) error {
	summary, err := h.analytics.Sales(c.Request().Context(), middleware.CallerKey(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}
