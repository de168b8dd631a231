package models

import (
	"time"

	"github.com/entryx/ticketing/internal/assetcode"
	"gorm.io/gorm"
)

// Asset is a ticket category, represented on the ledger as a fungible
// token under the shared issuer account. Sequence is monotonic within the
// owning event (soft-deleted rows included, so codes are never reused) and
// Code is derived from (event sequence, asset sequence, size).
//
// Address holds the hash of the mint transaction. While it is NULL the
// category is not yet on the ledger and its attributes may still change;
// once set the asset is locked.
type Asset struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	EventID      uint           `gorm:"not null;uniqueIndex:idx_assets_event_sequence" json:"event_id"`
	Sequence     uint32         `gorm:"not null;uniqueIndex:idx_assets_event_sequence" json:"sequence"`
	Code         string         `gorm:"size:12;uniqueIndex;not null" json:"code"`
	Label        string         `gorm:"not null" json:"label"`
	Size         assetcode.Size `gorm:"type:varchar(10);not null;default:'medium'" json:"size"`
	TotalUnits   int64          `gorm:"not null" json:"total_units"`
	PricePerUnit float64        `gorm:"not null" json:"price_per_unit"`
	Issuer       string         `gorm:"not null" json:"issuer"`
	Address      *string        `json:"address,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// Tokenized reports whether the category has been minted on the ledger.
func (a *Asset) Tokenized() bool {
	return a.Address != nil
}
