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

// TeacherService exposes teacher account use cases.
type TeacherService interface {
	List(ctx context.Context, caller authz.Caller) ([]dto.UserResponse, error)
	Show(ctx context.Context, caller authz.Caller, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error
	Reports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error)
	AssignedReports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error)
}

type teacherService struct {
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	reports       repository.ReportRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewTeacherService builds a new teacher service.
func NewTeacherService(users repository.UserRepository, organizations repository.OrganizationRepository, reports repository.ReportRepository, validate *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		users:         users,
		organizations: organizations,
		reports:       reports,
		validator:     validate,
		logger:        logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) List(ctx context.Context, caller authz.Caller) ([]dto.UserResponse, error) {
	organization, err := s.organizations.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	if !authz.CanListTeachers(caller, organization) {
		return nil, ErrForbidden
	}

	teachers, err := s.users.ListByRole(ctx, organization.ID, models.RoleTeacher)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(teachers), nil
}

func (s *teacherService) Show(ctx context.Context, caller authz.Caller, id uint) (dto.UserResponse, error) {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if !authz.CanShowTeacher(caller, teacher) {
		return dto.UserResponse{}, ErrForbidden
	}

	return dto.NewUserResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if !authz.CanUpdateTeacher(caller, teacher) {
		return dto.UserResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := applyUserUpdate(ctx, s.users, &teacher, payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.users.Update(ctx, &teacher); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher updated")

	return dto.NewUserResponse(teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteTeacher(caller, teacher) {
		return ErrForbidden
	}

	if err := s.users.Delete(ctx, teacher.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("teacher_id", teacher.ID).Msg("teacher deleted")

	return nil
}

func (s *teacherService) Reports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error) {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanListTeacherReports(caller, teacher) {
		return nil, ErrForbidden
	}

	reports, err := s.reports.ListByInvolvement(ctx, teacher.ID, repository.InvolvedAsReporter)
	if err != nil {
		return nil, err
	}

	return newNameResolver(s.users).reportResponses(ctx, reports), nil
}

func (s *teacherService) AssignedReports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error) {
	teacher, err := s.getTeacher(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanListTeacherAssignedReports(caller, teacher) {
		return nil, ErrForbidden
	}

	reports, err := s.reports.ListByInvolvement(ctx, teacher.ID, repository.InvolvedAsHandler)
	if err != nil {
		return nil, err
	}

	return newNameResolver(s.users).reportResponses(ctx, reports), nil
}

func (s *teacherService) getTeacher(ctx context.Context, id uint) (models.User, error) {
	teacher, err := s.users.GetByIDWithRole(ctx, id, models.RoleTeacher)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return teacher, nil
}
