package dto

import (
	"time"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// CaseCreateRequest describes the payload for opening a new case.
type CaseCreateRequest struct {
	Name string `json:"name" validate:"omitempty,min=1,max=255"`
}

// CaseUpdateRequest describes the payload for renaming a case.
type CaseUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=255"`
}

// CaseResponse is the serialized representation of a report case.
type CaseResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	OrganizationID uint      `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewCaseResponse converts a model into a DTO.
func NewCaseResponse(reportCase models.ReportCase) CaseResponse {
	return CaseResponse{
		ID:             reportCase.ID,
		Name:           reportCase.Name,
		OrganizationID: reportCase.OrganizationID,
		CreatedAt:      reportCase.CreatedAt,
	}
}

// NewCaseResponseSlice converts a slice of models into DTOs.
func NewCaseResponseSlice(cases []models.ReportCase) []CaseResponse {
	responses := make([]CaseResponse, 0, len(cases))
	for _, reportCase := range cases {
		responses = append(responses, NewCaseResponse(reportCase))
	}
	return responses
}
