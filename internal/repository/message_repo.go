package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// MessageRepository defines persistence operations for report messages.
// Reads load the owning report and its case for authorization.
type MessageRepository interface {
	GetByID(ctx context.Context, id uint) (models.ReportMessage, error)
	ListByReport(ctx context.Context, reportID uint) ([]models.ReportMessage, error)
	Create(ctx context.Context, message *models.ReportMessage) error
	Update(ctx context.Context, message *models.ReportMessage) error
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository instantiates a GORM-backed repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (models.ReportMessage, error) {
	var message models.ReportMessage
	err := r.db.WithContext(ctx).
		Preload("Report").
		Preload("Report.Case").
		First(&message, id).Error
	if err != nil {
		return models.ReportMessage{}, err
	}
	return message, nil
}

func (r *messageRepository) ListByReport(ctx context.Context, reportID uint) ([]models.ReportMessage, error) {
	var messages []models.ReportMessage
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Create(ctx context.Context, message *models.ReportMessage) error {
	return r.db.WithContext(ctx).Omit("Report").Create(message).Error
}

func (r *messageRepository) Update(ctx context.Context, message *models.ReportMessage) error {
	return r.db.WithContext(ctx).Omit("Report").Save(message).Error
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ReportMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
