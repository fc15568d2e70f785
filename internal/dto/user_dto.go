package dto

import (
	"time"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// UserUpdateRequest describes the payload for updating a user account.
// Passwords are changed through the credential flow, never here.
type UserUpdateRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=127"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=127"`
	Email     *string `json:"email" validate:"omitempty,email,max=127"`
	Phone     *string `json:"phone" validate:"omitempty,min=1,max=127"`
}

// UserResponse is the serialized representation of a student, teacher or
// administrator.
type UserResponse struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Role           int       `json:"role"`
	OrganizationID uint      `json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Phone:          user.Phone,
		Role:           int(user.Role),
		OrganizationID: user.OrganizationID,
		CreatedAt:      user.CreatedAt,
	}
}

// NewUserResponseSlice converts a slice of models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
