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

// StudentService exposes student account use cases.
type StudentService interface {
	List(ctx context.Context, caller authz.Caller) ([]dto.UserResponse, error)
	Show(ctx context.Context, caller authz.Caller, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error
	Reports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error)
	InvolvedReports(ctx context.Context, caller authz.Caller, id uint) (dto.InvolvedReportsResponse, error)
}

type studentService struct {
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	reports       repository.ReportRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewStudentService builds a new student service.
func NewStudentService(users repository.UserRepository, organizations repository.OrganizationRepository, reports repository.ReportRepository, validate *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		users:         users,
		organizations: organizations,
		reports:       reports,
		validator:     validate,
		logger:        logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, caller authz.Caller) ([]dto.UserResponse, error) {
	organization, err := s.organizations.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	if !authz.CanListStudents(caller, organization) {
		return nil, ErrForbidden
	}

	students, err := s.users.ListByRole(ctx, organization.ID, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(students), nil
}

func (s *studentService) Show(ctx context.Context, caller authz.Caller, id uint) (dto.UserResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if !authz.CanShowStudent(caller, student) {
		return dto.UserResponse{}, ErrForbidden
	}

	return dto.NewUserResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if !authz.CanUpdateStudent(caller, student) {
		return dto.UserResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := applyUserUpdate(ctx, s.users, &student, payload); err != nil {
		return dto.UserResponse{}, err
	}

	if err := s.users.Update(ctx, &student); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student updated")

	return dto.NewUserResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteStudent(caller, student) {
		return ErrForbidden
	}

	// Reports and messages referencing the student remain.
	if err := s.users.Delete(ctx, student.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student deleted")

	return nil
}

func (s *studentService) Reports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanListStudentReports(caller, student) {
		return nil, ErrForbidden
	}

	reports, err := s.reports.ListByInvolvement(ctx, student.ID, repository.InvolvedAsReporter)
	if err != nil {
		return nil, err
	}

	return newNameResolver(s.users).reportResponses(ctx, reports), nil
}

func (s *studentService) InvolvedReports(ctx context.Context, caller authz.Caller, id uint) (dto.InvolvedReportsResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return dto.InvolvedReportsResponse{}, err
	}

	if !authz.CanListStudentInvolvedReports(caller, student) {
		return dto.InvolvedReportsResponse{}, ErrForbidden
	}

	bullied, err := s.reports.ListByInvolvement(ctx, student.ID, repository.InvolvedAsBullied)
	if err != nil {
		return dto.InvolvedReportsResponse{}, err
	}

	bully, err := s.reports.ListByInvolvement(ctx, student.ID, repository.InvolvedAsBully)
	if err != nil {
		return dto.InvolvedReportsResponse{}, err
	}

	resolver := newNameResolver(s.users)
	return dto.InvolvedReportsResponse{
		Bullied: resolver.reportResponses(ctx, bullied),
		Bully:   resolver.reportResponses(ctx, bully),
	}, nil
}

func (s *studentService) getStudent(ctx context.Context, id uint) (models.User, error) {
	student, err := s.users.GetByIDWithRole(ctx, id, models.RoleStudent)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return student, nil
}

// applyUserUpdate copies the changed fields onto the user, enforcing email
// uniqueness across all accounts.
func applyUserUpdate(ctx context.Context, users repository.UserRepository, user *models.User, payload dto.UserUpdateRequest) error {
	if payload.Email != nil && *payload.Email != user.Email {
		existing, err := users.GetByEmail(ctx, *payload.Email)
		if err == nil && existing.ID != user.ID {
			return ErrEmailTaken
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.Email = *payload.Email
	}

	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.Phone != nil {
		user.Phone = *payload.Phone
	}

	return nil
}
