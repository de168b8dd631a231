package models

import "time"

// AssetAuction is a secondary-market resale listing for units of a ticket
// category. An auction is open while ClosedAt is NULL and EndsAt is in the
// future; the window always ends before the event itself.
type AssetAuction struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	AssetID       uint       `gorm:"not null;index" json:"asset_id"`
	AssetUnits    int64      `gorm:"not null" json:"asset_units"`
	Owner         string     `gorm:"index;not null" json:"owner"`
	StartsAt      time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt        time.Time  `gorm:"not null" json:"ends_at"`
	ClosedAt      *time.Time `json:"closed_at,omitempty"`
	HighestBid    float64    `gorm:"not null" json:"highest_bid"`
	HighestBidder *string    `json:"highest_bidder,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Bids  []Bid  `gorm:"foreignKey:AuctionID" json:"bids,omitempty"`
}

// Open reports whether the auction still accepts bids at the given time.
func (a *AssetAuction) Open(now time.Time) bool {
	return a.ClosedAt == nil && a.EndsAt.After(now)
}

// Bid records a single bid placed on an auction.
type Bid struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuctionID uint      `gorm:"not null;index" json:"auction_id"`
	Bidder    string    `gorm:"not null" json:"bidder"`
	Amount    float64   `gorm:"not null" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
