package dto

import (
	"time"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// OrganizationUpdateRequest describes the payload for updating an organization.
type OrganizationUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=3,max=255"`
	StreetAddress *string `json:"street_address" validate:"omitempty,min=3,max=255"`
	City          *string `json:"city" validate:"omitempty,min=3,max=255"`
	Zip           *string `json:"zip" validate:"omitempty,max=32"`
}

// OrganizationResponse is the serialized representation of an organization.
type OrganizationResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	StreetAddress string    `json:"street_address"`
	City          string    `json:"city"`
	Zip           string    `json:"zip"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewOrganizationResponse converts a model into a DTO.
func NewOrganizationResponse(organization models.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:            organization.ID,
		Name:          organization.Name,
		StreetAddress: organization.StreetAddress,
		City:          organization.City,
		Zip:           organization.Zip,
		CreatedAt:     organization.CreatedAt,
	}
}

// OrganizationOverviewResponse aggregates activity counts for an organization.
type OrganizationOverviewResponse struct {
	OrganizationID uint  `json:"organization_id"`
	Students       int64 `json:"students"`
	Teachers       int64 `json:"teachers"`
	Cases          int64 `json:"cases"`
	Reports        int64 `json:"reports"`
}
