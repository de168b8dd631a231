package handler

import (
	"net/http"

	"github.com/entryx/ticketing/internal/dto"
	"github.com/entryx/ticketing/internal/ledger"
	"github.com/entryx/ticketing/internal/repository"
	"github.com/labstack/echo/v4"
)

// AccountHandler exposes read-only ledger account state: balances and
// trustline checks used by the storefront before a purchase.
type AccountHandler struct {
	ledger ledger.Ledger
	assets repository.AssetRepository
}

func NewAccountHandler(ldg ledger.Ledger, assets repository.AssetRepository) *AccountHandler {
	return &AccountHandler{ledger: ldg, assets: assets}
}

func (h *AccountHandler) RegisterRoutes(api *echo.Group) {
	api.GET("/accounts/:id", h.GetAccount)
	api.POST("/accounts/trustlines", h.CheckTrustlines)
}

func (h *AccountHandler) GetAccount(c echo.Context) error {
	account, err := h.ledger.Account(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load ledger account")
	}
	return c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// CheckTrustlines reports whether the account holds a trustline for every
// requested category.
func (h *AccountHandler) CheckTrustlines(c echo.Context) error {
	var req dto.TrustlineCheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.PublicKey == "" || len(req.AssetIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "public_key and asset_ids are required")
	}

	ids := make([]uint, 0, len(req.AssetIDs))
	seen := make(map[uint]bool, len(req.AssetIDs))
	for _, id := range req.AssetIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	assets, err := h.assets.FindByIDs(c.Request().Context(), ids)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if len(assets) != len(ids) {
		return c.JSON(http.StatusOK, dto.TrustlineCheckResponse{Trusted: false})
	}

	account, err := h.ledger.Account(c.Request().Context(), req.PublicKey)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load ledger account")
	}

	for _, asset := range assets {
		if _, ok := ledger.AssetBalance(account, asset.Code, asset.Issuer); !ok {
			return c.JSON(http.StatusOK, dto.TrustlineCheckResponse{Trusted: false})
		}
	}
	return c.JSON(http.StatusOK, dto.TrustlineCheckResponse{Trusted: true})
}
