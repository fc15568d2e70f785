package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
)

// OrganizationCounts aggregates membership and activity numbers for the
// overview endpoint.
type OrganizationCounts struct {
	Students int64
	Teachers int64
	Cases    int64
	Reports  int64
}

// OrganizationRepository defines persistence operations for organizations.
type OrganizationRepository interface {
	GetByID(ctx context.Context, id uint) (models.Organization, error)
	Create(ctx context.Context, organization *models.Organization) error
	Update(ctx context.Context, organization *models.Organization) error
	Counts(ctx context.Context, organizationID uint) (OrganizationCounts, error)
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository instantiates a GORM-backed repository.
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id uint) (models.Organization, error) {
	var organization models.Organization
	if err := r.db.WithContext(ctx).First(&organization, id).Error; err != nil {
		return models.Organization{}, err
	}
	return organization, nil
}

func (r *organizationRepository) Create(ctx context.Context, organization *models.Organization) error {
	return r.db.WithContext(ctx).Create(organization).Error
}

func (r *organizationRepository) Update(ctx context.Context, organization *models.Organization) error {
	return r.db.WithContext(ctx).Save(organization).Error
}

func (r *organizationRepository) Counts(ctx context.Context, organizationID uint) (OrganizationCounts, error) {
	var counts OrganizationCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).
		Where("organization_id = ? AND role = ?", organizationID, models.RoleStudent).
		Count(&counts.Students).Error; err != nil {
		return OrganizationCounts{}, err
	}

	if err := db.Model(&models.User{}).
		Where("organization_id = ? AND role = ?", organizationID, models.RoleTeacher).
		Count(&counts.Teachers).Error; err != nil {
		return OrganizationCounts{}, err
	}

	if err := db.Model(&models.ReportCase{}).
		Where("organization_id = ?", organizationID).
		Count(&counts.Cases).Error; err != nil {
		return OrganizationCounts{}, err
	}

	if err := db.Model(&models.Report{}).
		Joins("JOIN report_cases ON report_cases.id = reports.report_case_id").
		Where("report_cases.organization_id = ?", organizationID).
		Count(&counts.Reports).Error; err != nil {
		return OrganizationCounts{}, err
	}

	return counts, nil
}
