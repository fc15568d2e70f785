package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

// ErrSeedingDisabled is returned outside development environments.
var ErrSeedingDisabled = errors.New("seeding is disabled")

// SeedService populates a development database with a demo organization and
// accounts. It is wired only when the app runs in development.
type SeedService interface {
	Seed(ctx context.Context) error
}

type seedService struct {
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	cases         repository.CaseRepository
	reports       repository.ReportRepository
	enabled       bool
	logger        zerolog.Logger
}

// NewSeedService builds a new seed service. When enabled is false every call
// fails with ErrSeedingDisabled.
func NewSeedService(users repository.UserRepository, organizations repository.OrganizationRepository, cases repository.CaseRepository, reports repository.ReportRepository, enabled bool, logger zerolog.Logger) SeedService {
	return &seedService{
		users:         users,
		organizations: organizations,
		cases:         cases,
		reports:       reports,
		enabled:       enabled,
		logger:        logger.With().Str("component", "seed_service").Logger(),
	}
}

// Seed creates the demo organization with one account per role plus a sample
// case and report. Running it twice is a no-op keyed on the demo admin email.
func (s *seedService) Seed(ctx context.Context) error {
	if !s.enabled {
		return ErrSeedingDisabled
	}

	if _, err := s.users.GetByEmail(ctx, "admin@demo.example"); err == nil {
		s.logger.Info().Msg("demo data already present")
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	organization := models.Organization{
		Name:          "Demo Comprehensive School",
		StreetAddress: "Koulukatu 1",
		City:          "Helsinki",
		Zip:           "00100",
	}
	if err := s.organizations.Create(ctx, &organization); err != nil {
		return err
	}

	accounts := []models.User{
		{FirstName: "Aino", LastName: "Admin", Email: "admin@demo.example", Role: models.RoleAdministrator},
		{FirstName: "Tiina", LastName: "Teacher", Email: "teacher@demo.example", Role: models.RoleTeacher},
		{FirstName: "Sami", LastName: "Student", Email: "student@demo.example", Role: models.RoleStudent},
		{FirstName: "Beca", LastName: "Bystander", Email: "bystander@demo.example", Role: models.RoleStudent},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i := range accounts {
		accounts[i].Password = string(hash)
		accounts[i].OrganizationID = organization.ID
		if err := s.users.Create(ctx, &accounts[i]); err != nil {
			return err
		}
	}

	demoCase := models.ReportCase{Name: "Playground incidents", OrganizationID: organization.ID}
	if err := s.cases.Create(ctx, &demoCase); err != nil {
		return err
	}

	report := models.Report{
		Description:  "Name-calling during the morning break.",
		ReportCaseID: demoCase.ID,
		ReporterID:   accounts[3].ID,
		BulliedID:    &accounts[2].ID,
		IsAnonymous:  true,
	}
	if err := s.reports.Create(ctx, &report); err != nil {
		return err
	}

	s.logger.Info().Uint("organization_id", organization.ID).Msg("demo data seeded")

	return nil
}
