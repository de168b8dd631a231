package dto

import "time"

type CreateEventRequest struct {
	Name        string    `json:"name" validate:"required"`
	Venue       string    `json:"venue" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
}

type CreateCategoryRequest struct {
	Label        string  `json:"label" validate:"required"`
	TotalUnits   int64   `json:"total_units" validate:"required,gt=0"`
	PricePerUnit float64 `json:"price_per_unit" validate:"required,gt=0"`
	Size         string  `json:"size"`
}

type UpdateCategoryRequest struct {
	Label        *string  `json:"label"`
	TotalUnits   *int64   `json:"total_units"`
	PricePerUnit *float64 `json:"price_per_unit"`
}

type StartAuctionRequest struct {
	AssetID    uint    `json:"asset_id" validate:"required"`
	Quantity   int64   `json:"quantity" validate:"required,gt=0"`
	StartPrice float64 `json:"start_price" validate:"required,gt=0"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type ChallengeRequest struct {
	PublicKey string `json:"public_key" validate:"required"`
}

type LoginRequest struct {
	PublicKey string `json:"public_key" validate:"required"`
	Challenge string `json:"challenge" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

type TrustlineCheckRequest struct {
	PublicKey string `json:"public_key" validate:"required"`
	AssetIDs  []uint `json:"asset_ids" validate:"required"`
}
