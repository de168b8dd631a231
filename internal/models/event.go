package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is created by an organizer and owns any number of ticket
// categories. Sequence is unique across the issuer account and forms the
// event component of every asset code minted under the event; it never
// changes after creation. Deletion is logical so retired sequences are
// never reassigned.
type Event struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Venue          string         `gorm:"not null" json:"venue"`
	Description    string         `json:"description"`
	Date           time.Time      `gorm:"not null" json:"date"`
	Sequence       uint32         `gorm:"uniqueIndex;not null" json:"sequence"`
	DistributorKey string         `gorm:"index;not null" json:"distributor_key"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Assets []Asset `gorm:"foreignKey:EventID" json:"assets,omitempty"`
}
