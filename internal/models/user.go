package models

import "time"

// User is a member of an organization. The Role field decides which
// capabilities apply; students, teachers and administrators all live in the
// same table, distinguished by role.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FirstName      string    `gorm:"size:127;not null" json:"first_name"`
	LastName       string    `gorm:"size:127;not null" json:"last_name"`
	Email          string    `gorm:"size:127;uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	Phone          string    `gorm:"size:127" json:"phone"`
	Role           Role      `gorm:"not null" json:"role"`
	OrganizationID uint      `gorm:"index" json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Name returns the user's full display name.
func (u User) Name() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
