package dto

import "github.com/poliisiauto/poliisiauto-api/internal/models"

// RegisterRequest describes the payload for registering a new student account.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=127"`
	LastName  string `json:"last_name" validate:"required,min=1,max=127"`
	Email     string `json:"email" validate:"required,email,max=127"`
	Password  string `json:"password" validate:"required,min=8,max=127"`
	Phone     string `json:"phone" validate:"omitempty,min=1,max=127"`
}

// LoginRequest describes the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	APIKey   string `json:"api_key" validate:"required"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ProfileResponse is the serialized representation of the caller's own account.
type ProfileResponse struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Role           int    `json:"role"`
	RoleLabel      string `json:"role_label"`
	OrganizationID uint   `json:"organization_id"`
}

// NewProfileResponse converts a user into the profile DTO. The password
// never leaves the model.
func NewProfileResponse(user models.User) ProfileResponse {
	label, err := user.Role.Label()
	if err != nil {
		// A stored role outside the enum is a data fault; surface it
		// visibly rather than hiding the account.
		label = "unknown"
	}

	return ProfileResponse{
		ID:             user.ID,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Phone:          user.Phone,
		Role:           int(user.Role),
		RoleLabel:      label,
		OrganizationID: user.OrganizationID,
	}
}
