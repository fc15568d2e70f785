package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// ReportInvolvement selects which foreign key ties a user to a report.
type ReportInvolvement string

const (
	InvolvedAsReporter ReportInvolvement = "reporter_id"
	InvolvedAsHandler  ReportInvolvement = "handler_id"
	InvolvedAsBully    ReportInvolvement = "bully_id"
	InvolvedAsBullied  ReportInvolvement = "bullied_id"
)

// ReportRepository defines persistence operations for reports. Reads load
// the owning case so authorization can decide on the organization edge
// without extra queries.
type ReportRepository interface {
	GetByID(ctx context.Context, id uint) (models.Report, error)
	ListByOrganization(ctx context.Context, organizationID uint) ([]models.Report, error)
	ListByCase(ctx context.Context, caseID uint) ([]models.Report, error)
	ListByInvolvement(ctx context.Context, userID uint, involvement ReportInvolvement) ([]models.Report, error)
	Create(ctx context.Context, report *models.Report) error
	CreateInNewCase(ctx context.Context, report *models.Report, organizationID uint) error
	Update(ctx context.Context, report *models.Report) error
	Delete(ctx context.Context, id uint) error
	MoveToCase(ctx context.Context, reportID, targetCaseID uint) (bool, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository instantiates a GORM-backed repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).Preload("Case").First(&report, id).Error; err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (r *reportRepository) ListByOrganization(ctx context.Context, organizationID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Joins("JOIN report_cases ON report_cases.id = reports.report_case_id").
		Where("report_cases.organization_id = ?", organizationID).
		Preload("Case").
		Order("reports.created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListByCase(ctx context.Context, caseID uint) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where("report_case_id = ?", caseID).
		Preload("Case").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) ListByInvolvement(ctx context.Context, userID uint, involvement ReportInvolvement) ([]models.Report, error) {
	var reports []models.Report
	err := r.db.WithContext(ctx).
		Where(string(involvement)+" = ?", userID).
		Preload("Case").
		Order("created_at DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// CreateInNewCase stores the report into a fresh unnamed case under the
// organization, in one transaction.
func (r *reportRepository) CreateInNewCase(ctx context.Context, report *models.Report, organizationID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		newCase := models.ReportCase{OrganizationID: organizationID}
		if err := tx.Create(&newCase).Error; err != nil {
			return err
		}

		report.ReportCaseID = newCase.ID
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		report.Case = newCase
		return nil
	})
}

func (r *reportRepository) Update(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Omit("Case").Save(report).Error
}

// Delete removes the report only; its messages remain by design.
func (r *reportRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Report{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MoveToCase re-parents the report and, when the source case is unnamed and
// left empty, removes it. The cleanup is delete-if-exists so concurrent
// moves draining the same case cannot fail each other. Returns whether a
// dangling case was removed.
func (r *reportRepository) MoveToCase(ctx context.Context, reportID, targetCaseID uint) (bool, error) {
	var removedDangling bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var report models.Report
		if err := tx.First(&report, reportID).Error; err != nil {
			return err
		}
		sourceCaseID := report.ReportCaseID

		if err := tx.Model(&models.Report{}).
			Where("id = ?", reportID).
			Update("report_case_id", targetCaseID).Error; err != nil {
			return err
		}

		if sourceCaseID == targetCaseID {
			return nil
		}

		var source models.ReportCase
		if err := tx.First(&source, sourceCaseID).Error; err != nil {
			// Already cleaned up by a concurrent move.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if !source.IsUnnamed() {
			return nil
		}

		var remaining int64
		if err := tx.Model(&models.Report{}).
			Where("report_case_id = ?", sourceCaseID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			return nil
		}

		result := tx.Delete(&models.ReportCase{}, sourceCaseID)
		if result.Error != nil {
			return result.Error
		}
		removedDangling = result.RowsAffected > 0
		return nil
	})

	return removedDangling, err
}
