package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// ReportService exposes report use cases: filing, triage and the move
// operation with its dangling-case cleanup.
type ReportService interface {
	List(ctx context.Context, caller authz.Caller) ([]dto.ReportResponse, error)
	Create(ctx context.Context, caller authz.Caller, caseID uint, payload dto.ReportCreateRequest) (dto.ReportResponse, error)
	CreateInNewCase(ctx context.Context, caller authz.Caller, payload dto.ReportCreateRequest) (dto.ReportResponse, error)
	Show(ctx context.Context, caller authz.Caller, id uint) (dto.ReportResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.ReportUpdateRequest) (dto.ReportResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error
	Move(ctx context.Context, caller authz.Caller, id uint, payload dto.ReportMoveRequest) (dto.ReportResponse, error)
	Open(ctx context.Context, caller authz.Caller, id uint) (dto.ReportResponse, error)
	Close(ctx context.Context, caller authz.Caller, id uint) (dto.ReportResponse, error)
	Messages(ctx context.Context, caller authz.Caller, id uint) ([]dto.MessageResponse, error)
}

type reportService struct {
	reports       repository.ReportRepository
	cases         repository.CaseRepository
	messages      repository.MessageRepository
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	validator     *validator.Validate
	sanitizer     *bluemonday.Policy
	tracer        trace.Tracer
	logger        zerolog.Logger
	now           func() time.Time
}

// NewReportService builds a new report service.
func NewReportService(reports repository.ReportRepository, cases repository.CaseRepository, messages repository.MessageRepository, users repository.UserRepository, organizations repository.OrganizationRepository, validate *validator.Validate, logger zerolog.Logger) ReportService {
	return &reportService{
		reports:       reports,
		cases:         cases,
		messages:      messages,
		users:         users,
		organizations: organizations,
		validator:     validate,
		sanitizer:     bluemonday.StrictPolicy(),
		tracer:        otel.Tracer("github.com/poliisiauto/poliisiauto-api/internal/service/report"),
		logger:        logger.With().Str("component", "report_service").Logger(),
		now:           time.Now,
	}
}

func (s *reportService) List(ctx context.Context, caller authz.Caller) ([]dto.ReportResponse, error) {
	organization, err := s.organizations.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}

	if !authz.CanListReports(caller, organization) {
		return nil, ErrForbidden
	}

	reports, err := s.reports.ListByOrganization(ctx, organization.ID)
	if err != nil {
		return nil, err
	}

	return newNameResolver(s.users).reportResponses(ctx, reports), nil
}

func (s *reportService) Create(ctx context.Context, caller authz.Caller, caseID uint, payload dto.ReportCreateRequest) (dto.ReportResponse, error) {
	reportCase, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReportResponse{}, ErrCaseNotFound
		}
		return dto.ReportResponse{}, err
	}

	if !authz.CanCreateReport(caller, reportCase) {
		return dto.ReportResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ReportResponse{}, err
	}

	report := s.buildReport(caller, payload)
	report.ReportCaseID = reportCase.ID
	if err := s.reports.Create(ctx, &report); err != nil {
		return dto.ReportResponse{}, err
	}
	report.Case = reportCase

	s.logger.Info().Uint("report_id", report.ID).Uint("case_id", reportCase.ID).Msg("report created")

	return s.respond(ctx, report), nil
}

// CreateInNewCase files the report into a fresh unnamed case under the
// caller's organization.
func (s *reportService) CreateInNewCase(ctx context.Context, caller authz.Caller, payload dto.ReportCreateRequest) (dto.ReportResponse, error) {
	organization, err := s.organizations.GetByID(ctx, caller.OrganizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReportResponse{}, ErrOrganizationNotFound
		}
		return dto.ReportResponse{}, err
	}

	if !authz.CanCreateCase(caller, organization) {
		return dto.ReportResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ReportResponse{}, err
	}

	report := s.buildReport(caller, payload)
	if err := s.reports.CreateInNewCase(ctx, &report, organization.ID); err != nil {
		return dto.ReportResponse{}, err
	}

	s.logger.Info().Uint("report_id", report.ID).Uint("case_id", report.ReportCaseID).Msg("report created in new case")

	return s.respond(ctx, report), nil
}

func (s *reportService) Show(ctx context.Context, caller authz.Caller, id uint) (dto.ReportResponse, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if !authz.CanShowReport(caller, report) {
		return dto.ReportResponse{}, ErrForbidden
	}

	return s.respond(ctx, report), nil
}

func (s *reportService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.ReportUpdateRequest) (dto.ReportResponse, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if !authz.CanUpdateReport(caller, report) {
		return dto.ReportResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ReportResponse{}, err
	}

	if payload.Description != nil {
		report.Description = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.BullyID != nil {
		report.BullyID = payload.BullyID
	}
	if payload.BulliedID != nil {
		report.BulliedID = payload.BulliedID
	}
	if payload.HandlerID != nil {
		report.HandlerID = payload.HandlerID
	}
	if payload.IsAnonymous != nil {
		report.IsAnonymous = *payload.IsAnonymous
	}

	if err := s.reports.Update(ctx, &report); err != nil {
		return dto.ReportResponse{}, err
	}

	s.logger.Info().Uint("report_id", report.ID).Msg("report updated")

	return s.respond(ctx, report), nil
}

func (s *reportService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteReport(caller, report) {
		return ErrForbidden
	}

	if err := s.reports.Delete(ctx, report.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("report_id", report.ID).Msg("report deleted")

	return nil
}

// Move re-parents the report into another case of the same organization.
// An unnamed source case left empty by the move is removed.
func (s *reportService) Move(ctx context.Context, caller authz.Caller, id uint, payload dto.ReportMoveRequest) (dto.ReportResponse, error) {
	ctx, span := s.tracer.Start(ctx, "report.move")
	defer span.End()

	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if !authz.CanMoveReport(caller, report) {
		return dto.ReportResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.ReportResponse{}, err
	}

	target, err := s.cases.GetByID(ctx, payload.ReportCaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReportResponse{}, ErrCaseNotFound
		}
		return dto.ReportResponse{}, err
	}

	// Cross-organization moves look like a missing target to the caller.
	if target.OrganizationID != report.Case.OrganizationID {
		return dto.ReportResponse{}, ErrCaseNotFound
	}

	removedDangling, err := s.reports.MoveToCase(ctx, report.ID, target.ID)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	span.SetAttributes(
		attribute.Int("report.id", int(report.ID)),
		attribute.Int("report.target_case_id", int(target.ID)),
		attribute.Bool("report.removed_dangling_case", removedDangling),
	)

	s.logger.Info().
		Uint("report_id", report.ID).
		Uint("target_case_id", target.ID).
		Bool("removed_dangling_case", removedDangling).
		Msg("report moved")

	report.ReportCaseID = target.ID
	report.Case = target

	return s.respond(ctx, report), nil
}

func (s *reportService) Open(ctx context.Context, caller authz.Caller, id uint) (dto.ReportResponse, error) {
	return s.triage(ctx, caller, id, "report opened", func(report *models.Report) {
		report.Open(s.now())
	})
}

func (s *reportService) Close(ctx context.Context, caller authz.Caller, id uint) (dto.ReportResponse, error) {
	return s.triage(ctx, caller, id, "report closed", func(report *models.Report) {
		report.Close(s.now())
	})
}

func (s *reportService) triage(ctx context.Context, caller authz.Caller, id uint, event string, stamp func(*models.Report)) (dto.ReportResponse, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return dto.ReportResponse{}, err
	}

	if !authz.CanTriageReport(caller, report) {
		return dto.ReportResponse{}, ErrForbidden
	}

	stamp(&report)

	if err := s.reports.Update(ctx, &report); err != nil {
		return dto.ReportResponse{}, err
	}

	s.logger.Info().Uint("report_id", report.ID).Msg(event)

	return s.respond(ctx, report), nil
}

func (s *reportService) Messages(ctx context.Context, caller authz.Caller, id uint) ([]dto.MessageResponse, error) {
	report, err := s.getReport(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanListReportMessages(caller, report) {
		return nil, ErrForbidden
	}

	messages, err := s.messages.ListByReport(ctx, report.ID)
	if err != nil {
		return nil, err
	}

	resolver := newNameResolver(s.users)
	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		responses = append(responses, dto.NewMessageResponse(message, resolver.name(ctx, message.AuthorID)))
	}
	return responses, nil
}

func (s *reportService) buildReport(caller authz.Caller, payload dto.ReportCreateRequest) models.Report {
	return models.Report{
		Description: s.sanitizer.Sanitize(payload.Description),
		ReporterID:  caller.ID,
		BullyID:     payload.BullyID,
		BulliedID:   payload.BulliedID,
		HandlerID:   payload.HandlerID,
		IsAnonymous: payload.IsAnonymous == nil || *payload.IsAnonymous,
	}
}

func (s *reportService) respond(ctx context.Context, report models.Report) dto.ReportResponse {
	resolver := newNameResolver(s.users)
	return dto.NewReportResponse(report, resolver.reportNames(ctx, report))
}

func (s *reportService) getReport(ctx context.Context, id uint) (models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Report{}, ErrReportNotFound
		}
		return models.Report{}, err
	}
	return report, nil
}
