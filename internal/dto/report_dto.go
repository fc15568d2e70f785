package dto

import (
	"time"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// ReportCreateRequest describes the payload for filing a report. The
// reporter is never part of the payload; it is fixed to the caller.
type ReportCreateRequest struct {
	Description string `json:"description" validate:"max=2048"`
	BullyID     *uint  `json:"bully_id"`
	BulliedID   *uint  `json:"bullied_id"`
	HandlerID   *uint  `json:"handler_id"`
	IsAnonymous *bool  `json:"is_anonymous" validate:"required"`
}

// ReportUpdateRequest describes the payload for updating a report.
type ReportUpdateRequest struct {
	Description *string `json:"description" validate:"omitempty,max=2048"`
	BullyID     *uint   `json:"bully_id"`
	BulliedID   *uint   `json:"bullied_id"`
	HandlerID   *uint   `json:"handler_id"`
	IsAnonymous *bool   `json:"is_anonymous"`
}

// ReportMoveRequest describes the payload for moving a report to another case.
type ReportMoveRequest struct {
	ReportCaseID uint `json:"report_case_id" validate:"required"`
}

// ReportNames carries the resolved display names referenced by a report.
// Empty strings mean the relation is unset or the user no longer exists.
type ReportNames struct {
	Reporter string
	Bully    string
	Bullied  string
}

// ReportResponse is the serialized representation of a report.
type ReportResponse struct {
	ID           uint       `json:"id"`
	Description  string     `json:"description"`
	ReportCaseID uint       `json:"report_case_id"`
	ReporterID   *uint      `json:"reporter_id"`
	HandlerID    *uint      `json:"handler_id"`
	BullyID      *uint      `json:"bully_id"`
	BulliedID    *uint      `json:"bullied_id"`
	IsAnonymous  bool       `json:"is_anonymous"`
	Type         int        `json:"type"`
	Status       string     `json:"status"`
	OpenedAt     *time.Time `json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	ReporterName *string    `json:"reporter_name"`
	BullyName    *string    `json:"bully_name"`
	BulliedName  *string    `json:"bullied_name"`
}

// NewReportResponse converts a model into a DTO. Anonymous reports carry no
// reporter identity for any caller; the function deliberately takes no
// viewer so the redaction cannot depend on one.
func NewReportResponse(report models.Report, names ReportNames) ReportResponse {
	response := ReportResponse{
		ID:           report.ID,
		Description:  report.Description,
		ReportCaseID: report.ReportCaseID,
		HandlerID:    report.HandlerID,
		BullyID:      report.BullyID,
		BulliedID:    report.BulliedID,
		IsAnonymous:  report.IsAnonymous,
		Type:         report.Type,
		Status:       string(report.Status()),
		OpenedAt:     report.OpenedAt,
		ClosedAt:     report.ClosedAt,
		CreatedAt:    report.CreatedAt,
		BullyName:    optionalName(names.Bully),
		BulliedName:  optionalName(names.Bullied),
	}

	if !report.IsAnonymous {
		reporterID := report.ReporterID
		response.ReporterID = &reporterID
		response.ReporterName = optionalName(names.Reporter)
	}

	return response
}

// InvolvedReportsResponse groups the reports a student appears in, by the
// role they play in them.
type InvolvedReportsResponse struct {
	Bullied []ReportResponse `json:"bullied"`
	Bully   []ReportResponse `json:"bully"`
}

func optionalName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}
