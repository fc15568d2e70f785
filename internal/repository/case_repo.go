package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// CaseRepository defines persistence operations for report cases.
type CaseRepository interface {
	GetByID(ctx context.Context, id uint) (models.ReportCase, error)
	ListByOrganization(ctx context.Context, organizationID uint) ([]models.ReportCase, error)
	Create(ctx context.Context, reportCase *models.ReportCase) error
	Update(ctx context.Context, reportCase *models.ReportCase) error
	Delete(ctx context.Context, id uint) error
}

type caseRepository struct {
	db *gorm.DB
}

// NewCaseRepository instantiates a GORM-backed repository.
func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) GetByID(ctx context.Context, id uint) (models.ReportCase, error) {
	var reportCase models.ReportCase
	if err := r.db.WithContext(ctx).First(&reportCase, id).Error; err != nil {
		return models.ReportCase{}, err
	}
	return reportCase, nil
}

func (r *caseRepository) ListByOrganization(ctx context.Context, organizationID uint) ([]models.ReportCase, error) {
	var cases []models.ReportCase
	err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *caseRepository) Create(ctx context.Context, reportCase *models.ReportCase) error {
	return r.db.WithContext(ctx).Create(reportCase).Error
}

func (r *caseRepository) Update(ctx context.Context, reportCase *models.ReportCase) error {
	return r.db.WithContext(ctx).Save(reportCase).Error
}

// Delete removes the case but never its reports; emptied cases keep their
// content available through the reports table.
func (r *caseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ReportCase{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
