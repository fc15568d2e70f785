package models

import "time"

// Organization is the tenant boundary. Every user and case belongs to
// exactly one organization.
type Organization struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	StreetAddress string    `gorm:"size:255" json:"street_address"`
	City          string    `gorm:"size:255" json:"city"`
	Zip           string    `gorm:"size:32" json:"zip"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
