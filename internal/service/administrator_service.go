package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// AdministratorService exposes administrator account use cases. Every
// operation requires organization-admin rights in the target's organization.
type AdministratorService interface {
	List(ctx context.Context, caller authz.Caller) ([]dto.UserResponse, error)
	Show(ctx context.Context, caller authz.Caller, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error
}

type administratorService struct {
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewAdministratorService builds a new administrator service.
func NewAdministratorService(users repository.UserRepository, organizations repository.OrganizationRepository, validate *validator.Validate, logger zerolog.Logger) AdministratorService {
	return &administratorService{
		users:         users,
		organizations: organizations,
		validator:     validate,
		logger:        logger.With().Str("component", "administrator_service").Logger(),
	}
}

func (s *administratorService) List(ctx context.Context, caller authz.Caller) ([]dto.UserResponse, error) {
	organization, err := s.organizations.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	if !authz.CanManageAdministrators(caller, organization) {
		return nil, ErrForbidden
	}

	administrators, err := s.users.ListByRole(ctx, organization.ID, models.RoleAdministrator)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(administrators), nil
}

func (s *administratorService) Show(ctx context.Context, caller authz.Caller, id uint) (dto.UserResponse, error) {
	administrator, err := s.getAdministrator(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if !authz.CanManageAdministrators(caller, models.Organization{ID: administrator.OrganizationID}) {
		return dto.UserResponse{}, ErrForbidden
	}

	return dto.NewUserResponse(administrator), nil
}

func (s *administratorService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	administrator, err := s.getAdministrator(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if !authz.CanManageAdministrators(caller, models.Organization{ID: administrator.OrganizationID}) {
		return dto.UserResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := applyUserUpdate(ctx, s.users, &administrator, payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.users.Update(ctx, &administrator); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("administrator_id", administrator.ID).Msg("administrator updated")

	return dto.NewUserResponse(administrator), nil
}

func (s *administratorService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	administrator, err := s.getAdministrator(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanManageAdministrators(caller, models.Organization{ID: administrator.OrganizationID}) {
		return ErrForbidden
	}

	if err := s.users.Delete(ctx, administrator.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("administrator_id", administrator.ID).Msg("administrator deleted")

	return nil
}

func (s *administratorService) getAdministrator(ctx context.Context, id uint) (models.User, error) {
	administrator, err := s.users.GetByIDWithRole(ctx, id, models.RoleAdministrator)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return administrator, nil
}
