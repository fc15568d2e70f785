package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// AuthService is the credential boundary: it hashes passwords, verifies
// logins and issues bearer tokens carrying the caller triple. Nothing else
// in the codebase touches passwords or tokens.
type AuthService interface {
	Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error)
	Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error)
	Profile(ctx context.Context, caller authz.Caller) (dto.ProfileResponse, error)
	ProfileOrganization(ctx context.Context, caller authz.Caller) (dto.OrganizationResponse, error)
}

type authService struct {
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	validator     *validator.Validate
	secret        string
	apiKey        string
	tokenTTL      time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAuthService builds the credential service.
func NewAuthService(users repository.UserRepository, organizations repository.OrganizationRepository, validate *validator.Validate, secret, apiKey string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:         users,
		organizations: organizations,
		validator:     validate,
		secret:        secret,
		apiKey:        apiKey,
		tokenTTL:      tokenTTL,
		logger:        logger.With().Str("component", "auth_service").Logger(),
		now:           time.Now,
	}
}

// Register creates a new student account and returns a token for it.
func (s *authService) Register(ctx context.Context, payload dto.RegisterRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	if _, err := s.users.GetByEmail(ctx, payload.Email); err == nil {
		return dto.TokenResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.TokenResponse{}, err
	}

	user := models.User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  string(hash),
		Phone:     payload.Phone,
		Role:      models.RoleStudent,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		return dto.TokenResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Msg("user registered")

	return s.issueToken(user)
}

// Login verifies credentials and returns a fresh token.
func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.TokenResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TokenResponse{}, err
	}

	if s.apiKey != "" && payload.APIKey != s.apiKey {
		return dto.TokenResponse{}, ErrInvalidAPIKey
	}

	user, err := s.users.GetByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TokenResponse{}, ErrInvalidCredentials
		}
		return dto.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	s.logger.Debug().Uint("user_id", user.ID).Msg("user logged in")

	return s.issueToken(user)
}

// Profile returns the caller's own account.
func (s *authService) Profile(ctx context.Context, caller authz.Caller) (dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProfileResponse{}, ErrUserNotFound
		}
		return dto.ProfileResponse{}, err
	}

	if !authz.CanShowProfile(caller, user) {
		return dto.ProfileResponse{}, ErrForbidden
	}

	return dto.NewProfileResponse(user), nil
}

// ProfileOrganization returns the caller's own organization.
func (s *authService) ProfileOrganization(ctx context.Context, caller authz.Caller) (dto.OrganizationResponse, error) {
	organization, err := s.organizations.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OrganizationResponse{}, ErrOrganizationNotFound
		}
		return dto.OrganizationResponse{}, err
	}

	if !authz.CanShowOwnOrganization(caller, organization) {
		return dto.OrganizationResponse{}, ErrForbidden
	}

	return dto.NewOrganizationResponse(organization), nil
}

func (s *authService) issueToken(user models.User) (dto.TokenResponse, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"role":   int(user.Role),
		"org_id": user.OrganizationID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.tokenTTL).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return dto.TokenResponse{}, err
	}

	return dto.TokenResponse{Token: signed}, nil
}
