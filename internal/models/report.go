package models

import "time"

// ReportStatus is derived from the opened/closed timestamps, never stored.
type ReportStatus string

const (
	ReportStatusPending ReportStatus = "pending"
	ReportStatusOpened  ReportStatus = "opened"
	ReportStatusClosed  ReportStatus = "closed"
)

// Report is a single bullying report filed under a case. The reporter is
// fixed at creation and never reassigned. Deleting a report leaves its
// messages in place.
type Report struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Description  string     `gorm:"size:2048" json:"description"`
	ReportCaseID uint       `gorm:"index;not null" json:"report_case_id"`
	ReporterID   uint       `gorm:"index;not null" json:"reporter_id"`
	HandlerID    *uint      `gorm:"index" json:"handler_id"`
	BullyID      *uint      `gorm:"index" json:"bully_id"`
	BulliedID    *uint      `gorm:"index" json:"bullied_id"`
	IsAnonymous  bool       `gorm:"not null;default:true" json:"is_anonymous"`
	Type         int        `gorm:"not null;default:1" json:"type"`
	OpenedAt     *time.Time `json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Case ReportCase `gorm:"foreignKey:ReportCaseID" json:"-"`
}

// Status derives the lifecycle state from the timestamps. A closed stamp
// wins regardless of the opened stamp.
func (r Report) Status() ReportStatus {
	switch {
	case r.ClosedAt != nil:
		return ReportStatusClosed
	case r.OpenedAt != nil:
		return ReportStatusOpened
	default:
		return ReportStatusPending
	}
}

// Open stamps the report as opened. Repeated calls keep the first stamp.
func (r *Report) Open(now time.Time) {
	if r.OpenedAt == nil {
		r.OpenedAt = &now
	}
}

// Close stamps the report as closed. Repeated calls keep the first stamp.
func (r *Report) Close(now time.Time) {
	if r.ClosedAt == nil {
		r.ClosedAt = &now
	}
}
