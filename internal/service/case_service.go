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

// CaseService exposes report-case use cases. Listing and mutating cases is
// teacher territory, but any member may open one.
type CaseService interface {
	List(ctx context.Context, caller authz.Caller) ([]dto.CaseResponse, error)
	Create(ctx context.Context, caller authz.Caller, payload dto.CaseCreateRequest) (dto.CaseResponse, error)
	Show(ctx context.Context, caller authz.Caller, id uint) (dto.CaseResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.CaseUpdateRequest) (dto.CaseResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error
	Reports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error)
}

type caseService struct {
	cases         repository.CaseRepository
	reports       repository.ReportRepository
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

// NewCaseService builds a new case service.
func NewCaseService(cases repository.CaseRepository, reports repository.ReportRepository, users repository.UserRepository, organizations repository.OrganizationRepository, validate *validator.Validate, logger zerolog.Logger) CaseService {
	return &caseService{
		cases:         cases,
		reports:       reports,
		users:         users,
		organizations: organizations,
		validator:     validate,
		logger:        logger.With().Str("component", "case_service").Logger(),
	}
}

func (s *caseService) List(ctx context.Context, caller authz.Caller) ([]dto.CaseResponse, error) {
	organization, err := s.getOrganization(ctx, caller.OrganizationID)
	if err != nil {
		return nil, err
	}

	if !authz.CanListCases(caller, organization) {
		return nil, ErrForbidden
	}

	cases, err := s.cases.ListByOrganization(ctx, organization.ID)
	if err != nil {
		return nil, err
	}

	return dto.NewCaseResponseSlice(cases), nil
}

func (s *caseService) Create(ctx context.Context, caller authz.Caller, payload dto.CaseCreateRequest) (dto.CaseResponse, error) {
	organization, err := s.getOrganization(ctx, caller.OrganizationID)
	if err != nil {
		return dto.CaseResponse{}, err
	}

	if !authz.CanCreateCase(caller, organization) {
		return dto.CaseResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CaseResponse{}, err
	}

	reportCase := models.ReportCase{
		Name:           payload.Name,
		OrganizationID: organization.ID,
	}
	if err := s.cases.Create(ctx, &reportCase); err != nil {
		return dto.CaseResponse{}, err
	}

	s.logger.Info().Uint("case_id", reportCase.ID).Uint("organization_id", organization.ID).Msg("case created")

	return dto.NewCaseResponse(reportCase), nil
}

func (s *caseService) Show(ctx context.Context, caller authz.Caller, id uint) (dto.CaseResponse, error) {
	reportCase, err := s.getCase(ctx, id)
	if err != nil {
		return dto.CaseResponse{}, err
	}

	if !authz.CanShowCase(caller, reportCase) {
		return dto.CaseResponse{}, ErrForbidden
	}

	return dto.NewCaseResponse(reportCase), nil
}

func (s *caseService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.CaseUpdateRequest) (dto.CaseResponse, error) {
	reportCase, err := s.getCase(ctx, id)
	if err != nil {
		return dto.CaseResponse{}, err
	}

	if !authz.CanUpdateCase(caller, reportCase) {
		return dto.CaseResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.CaseResponse{}, err
	}

	if payload.Name != nil {
		reportCase.Name = *payload.Name
	}

	if err := s.cases.Update(ctx, &reportCase); err != nil {
		return dto.CaseResponse{}, err
	}

	s.logger.Info().Uint("case_id", reportCase.ID).Msg("case updated")

	return dto.NewCaseResponse(reportCase), nil
}

func (s *caseService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	reportCase, err := s.getCase(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteCase(caller, reportCase) {
		return ErrForbidden
	}

	if err := s.cases.Delete(ctx, reportCase.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("case_id", reportCase.ID).Msg("case deleted")

	return nil
}

func (s *caseService) Reports(ctx context.Context, caller authz.Caller, id uint) ([]dto.ReportResponse, error) {
	reportCase, err := s.getCase(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanListCaseReports(caller, reportCase) {
		return nil, ErrForbidden
	}

	reports, err := s.reports.ListByCase(ctx, reportCase.ID)
	if err != nil {
		return nil, err
	}

	return newNameResolver(s.users).reportResponses(ctx, reports), nil
}

func (s *caseService) getCase(ctx context.Context, id uint) (models.ReportCase, error) {
	reportCase, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ReportCase{}, ErrCaseNotFound
		}
		return models.ReportCase{}, err
	}
	return reportCase, nil
}

func (s *caseService) getOrganization(ctx context.Context, id uint) (models.Organization, error) {
	organization, err := s.organizations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Organization{}, ErrOrganizationNotFound
		}
		return models.Organization{}, err
	}
	return organization, nil
}
