package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/dto"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// MessageService exposes report-message use cases.
type MessageService interface {
	Create(ctx context.Context, caller authz.Caller, reportID uint, payload dto.MessageCreateRequest) (dto.MessageResponse, error)
	Show(ctx context.Context, caller authz.Caller, id uint) (dto.MessageResponse, error)
	Update(ctx context.Context, caller authz.Caller, id uint, payload dto.MessageUpdateRequest) (dto.MessageResponse, error)
	Delete(ctx context.Context, caller authz.Caller, id uint) error
}

type messageService struct {
	messages  repository.MessageRepository
	reports   repository.ReportRepository
	users     repository.UserRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewMessageService builds a new message service.
func NewMessageService(messages repository.MessageRepository, reports repository.ReportRepository, users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) MessageService {
	return &messageService{
		messages:  messages,
		reports:   reports,
		users:     users,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "message_service").Logger(),
	}
}

func (s *messageService) Create(ctx context.Context, caller authz.Caller, reportID uint, payload dto.MessageCreateRequest) (dto.MessageResponse, error) {
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MessageResponse{}, ErrReportNotFound
		}
		return dto.MessageResponse{}, err
	}

	if !authz.CanCreateMessage(caller, report) {
		return dto.MessageResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.MessageResponse{}, err
	}

	message := models.ReportMessage{
		Content:     s.sanitizer.Sanitize(payload.Content),
		ReportID:    report.ID,
		AuthorID:    caller.ID,
		IsAnonymous: payload.IsAnonymous == nil || *payload.IsAnonymous,
	}
	if err := s.messages.Create(ctx, &message); err != nil {
		return dto.MessageResponse{}, err
	}

	s.logger.Info().Uint("message_id", message.ID).Uint("report_id", report.ID).Msg("message created")

	return s.respond(ctx, message), nil
}

func (s *messageService) Show(ctx context.Context, caller authz.Caller, id uint) (dto.MessageResponse, error) {
	message, err := s.getMessage(ctx, id)
	if err != nil {
		return dto.MessageResponse{}, err
	}

	if !authz.CanShowMessage(caller, message) {
		return dto.MessageResponse{}, ErrForbidden
	}

	return s.respond(ctx, message), nil
}

func (s *messageService) Update(ctx context.Context, caller authz.Caller, id uint, payload dto.MessageUpdateRequest) (dto.MessageResponse, error) {
	message, err := s.getMessage(ctx, id)
	if err != nil {
		return dto.MessageResponse{}, err
	}

	if !authz.CanUpdateMessage(caller, message) {
		return dto.MessageResponse{}, ErrForbidden
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.MessageResponse{}, err
	}

	if payload.Content != nil {
		message.Content = s.sanitizer.Sanitize(*payload.Content)
	}
	if payload.IsAnonymous != nil {
		message.IsAnonymous = *payload.IsAnonymous
	}

	if err := s.messages.Update(ctx, &message); err != nil {
		return dto.MessageResponse{}, err
	}

	s.logger.Info().Uint("message_id", message.ID).Msg("message updated")

	return s.respond(ctx, message), nil
}

func (s *messageService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	message, err := s.getMessage(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanDeleteMessage(caller, message) {
		return ErrForbidden
	}

	if err := s.messages.Delete(ctx, message.ID); err != nil {
		return err
	}

	s.logger.Info().Uint("message_id", message.ID).Msg("message deleted")

	return nil
}

func (s *messageService) respond(ctx context.Context, message models.ReportMessage) dto.MessageResponse {
	return dto.NewMessageResponse(message, newNameResolver(s.users).name(ctx, message.AuthorID))
}

func (s *messageService) getMessage(ctx context.Context, id uint) (models.ReportMessage, error) {
	message, err := s.messages.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ReportMessage{}, ErrMessageNotFound
		}
		return models.ReportMessage{}, err
	}
	return message, nil
}
