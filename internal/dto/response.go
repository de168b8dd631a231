package dto

import (
	"time"

	"github.com/entryx/ticketing/internal/ledger"
	"github.com/entryx/ticketing/internal/models"
)

type EventResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Venue          string    `json:"venue"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date"`
	Sequence       uint32    `json:"sequence"`
	DistributorKey string    `json:"distributor_key"`
	CreatedAt      time.Time `json:"created_at"`
}

type CategoryResponse struct {
	ID           uint      `json:"id"`
	EventID      uint      `json:"event_id"`
	Label        string    `json:"label"`
	Sequence     uint32    `json:"sequence"`
	Code         string    `json:"code"`
	Size         string    `json:"size"`
	TotalUnits   int64     `json:"total_units"`
	PricePerUnit float64   `json:"price_per_unit"`
	Issuer       string    `json:"issuer"`
	Address      *string   `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuctionResponse struct {
	ID            uint              `json:"id"`
	AssetID       uint              `json:"asset_id"`
	AssetUnits    int64             `json:"asset_units"`
	Owner         string            `json:"owner"`
	StartsAt      time.Time         `json:"starts_at"`
	EndsAt        time.Time         `json:"ends_at"`
	ClosedAt      *time.Time        `json:"closed_at,omitempty"`
	HighestBid    float64           `json:"highest_bid"`
	HighestBidder *string           `json:"highest_bidder,omitempty"`
	Asset         *CategoryResponse `json:"asset,omitempty"`
	Event         *EventResponse    `json:"event,omitempty"`
}

type BalanceResponse struct {
	Code    string `json:"code,omitempty"`
	Issuer  string `json:"issuer,omitempty"`
	Balance string `json:"balance"`
	Native  bool   `json:"native"`
}

type AccountResponse struct {
	ID            string            `json:"id"`
	SubentryCount int32             `json:"subentry_count"`
	Balances      []BalanceResponse `json:"balances"`
}

type TrustlineCheckResponse struct {
	Trusted bool `json:"trusted"`
}

type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Name:           e.Name,
		Venue:          e.Venue,
		Description:    e.Description,
		Date:           e.Date,
		Sequence:       e.Sequence,
		DistributorKey: e.DistributorKey,
		CreatedAt:      e.CreatedAt,
	}
}

func ToCategoryResponse(a *models.Asset) CategoryResponse {
	return CategoryResponse{
		ID:           a.ID,
		EventID:      a.EventID,
		Label:        a.Label,
		Sequence:     a.Sequence,
		Code:         a.Code,
		Size:         string(a.Size),
		TotalUnits:   a.TotalUnits,
		PricePerUnit: a.PricePerUnit,
		Issuer:       a.Issuer,
		Address:      a.Address,
		CreatedAt:    a.CreatedAt,
	}
}

func ToAuctionResponse(a *models.AssetAuction) AuctionResponse {
	resp := AuctionResponse{
		ID:            a.ID,
		AssetID:       a.AssetID,
		AssetUnits:    a.AssetUnits,
		Owner:         a.Owner,
		StartsAt:      a.StartsAt,
		EndsAt:        a.EndsAt,
		ClosedAt:      a.ClosedAt,
		HighestBid:    a.HighestBid,
		HighestBidder: a.HighestBidder,
	}
	if a.Asset != nil {
		asset := ToCategoryResponse(a.Asset)
		resp.Asset = &asset
		if a.Asset.Event != nil {
			event := ToEventResponse(a.Asset.Event)
			resp.Event = &event
		}
	}
	return resp
}

func ToAccountResponse(acc *ledger.Account) AccountResponse {
	resp := AccountResponse{
		ID:            acc.ID,
		SubentryCount: acc.SubentryCount,
		Balances:      make([]BalanceResponse, len(acc.Balances)),
	}
	for i, b := range acc.Balances {
		resp.Balances[i] = BalanceResponse{
			Code:    b.Code,
			Issuer:  b.Issuer,
			Balance: b.Amount,
			Native:  b.Native,
		}
	}
	return resp
}
