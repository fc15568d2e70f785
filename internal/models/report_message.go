package models

import "time"

// ReportMessage is a message exchanged on a report between the reporter and
// staff. The author is fixed at creation.
type ReportMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Content     string    `gorm:"size:4095" json:"content"`
	ReportID    uint      `gorm:"index;not null" json:"report_id"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	IsAnonymous bool      `gorm:"not null" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Report Report `gorm:"foreignKey:ReportID" json:"-"`
}
