package models

import "time"

// ReportCase groups related reports inside an organization. Cases are
// created implicitly when a report is filed without one; an unnamed case
// that ends up with zero reports is dangling and may be removed.
type ReportCase struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:255" json:"name"`
	OrganizationID uint      `gorm:"index;not null" json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsUnnamed reports whether the case was never given a name.
func (c ReportCase) IsUnnamed() bool {
	return c.Name == ""
}
