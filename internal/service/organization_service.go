package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// OrganizationService exposes organization use cases. Listing, creating and
// deleting organizations are reserved and always denied.
type OrganizationService interface {
	List(ctx context.Context, caller authz.Caller) ([]dto.OrganizationResponse, error)
	Create(ctx context.Context, caller authz.Caller) (dto.OrganizationResponse, error)
	Show(ctx context.Context, caller authz.Caller, id uint) (dto.OrganizationResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.OrganizationUpdateRequest) (dto.OrganizationResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error
}

type organizationService struct {
	repo      repository.OrganizationRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewOrganizationService builds a new organization service.
func NewOrganizationService(repo repository.OrganizationRepository, validate *validator.Validate, logger zerolog.Logger) OrganizationService {
	return &organizationService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "organization_service").Logger(),
	}
}

func (s *organizationService) List(_ context.Context, caller authz.Caller) ([]dto.OrganizationResponse, error) {
	if !authz.CanListOrganizations(caller) {
		return nil, ErrForbidden
	}
	// Unreachable until the gate opens.
	return []dto.OrganizationResponse{}, nil
}

func (s *organizationService) Create(_ context.Context, caller authz.Caller) (dto.OrganizationResponse, error) {
	if !authz.CanCreateOrganization(caller) {
		return dto.OrganizationResponse{}, ErrForbidden
	}
	return dto.OrganizationResponse{}, nil
}

func (s *organizationService) Show(ctx context.Context, caller authz.Caller, id uint) (dto.OrganizationResponse, error) {
	organization, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OrganizationResponse{}, ErrOrganizationNotFound
		}
		return dto.OrganizationResponse{}, err
	}

	if !authz.CanShowOrganization(caller, organization) {
		return dto.OrganizationResponse{}, ErrForbidden
	}

	return dto.NewOrganizationResponse(organization), nil
}

func (s *organizationService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.OrganizationUpdateRequest) (dto.OrganizationResponse, error) {
	organization, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.OrganizationResponse{}, ErrOrganizationNotFound
		}
		return dto.OrganizationResponse{}, err
	}

	if !authz.CanUpdateOrganization(caller, organization) {
		return dto.OrganizationResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.OrganizationResponse{}, err
	}

	if payload.Name != nil {
		organization.Name = *payload.Name
	}
	if payload.StreetAddress != nil {
		organization.StreetAddress = *payload.StreetAddress
	}
	if payload.City != nil {
		organization.City = *payload.City
	}
	if payload.Zip != nil {
		organization.Zip = *payload.Zip
	}

	if err := s.repo.Update(ctx, &organization); err != nil {
		return dto.OrganizationResponse{}, err
	}

	s.logger.Info().Uint("organization_id", organization.ID).Msg("organization updated")

	return dto.NewOrganizationResponse(organization), nil
}

func (s *organizationService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	organization, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return err
	}

	if !authz.CanDeleteOrganization(caller, organization) {
		return ErrForbidden
	}

	return nil
}
