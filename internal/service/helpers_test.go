package service

import (
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/authz"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
)

var dbSequence atomic.Int64

// env bundles the sqlite-backed repositories a service test needs.
type env struct {
	db            *gorm.DB
	users         repository.UserRepository
	organizations repository.OrganizationRepository
	cases         repository.CaseRepository
	reports       repository.ReportRepository
	messages      repository.MessageRepository
	validator     *validator.Validate
	logger        zerolog.Logger
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", dbSequence.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.ReportCase{},
		&models.Report{},
		&models.ReportMessage{},
	))

	return &env{
		db:            db,
		users:         repository.NewUserRepository(db),
		organizations: repository.NewOrganizationRepository(db),
		cases:         repository.NewCaseRepository(db),
		reports:       repository.NewReportRepository(db),
		messages:      repository.NewMessageRepository(db),
		validator:     validator.New(),
		logger:        zerolog.New(io.Discard),
	}
}

func (e *env) createOrganization(t *testing.T, name string) models.Organization {
	t.Helper()
	organization := models.Organization{Name: name, City: "Helsinki", Zip: "00100"}
	require.NoError(t, e.db.Create(&organization).Error)
	return organization
}

func (e *env) createUser(t *testing.T, organizationID uint, role models.Role, firstName string) models.User {
	t.Helper()
	user := models.User{
		FirstName:      firstName,
		LastName:       "Testilä",
		Email:          fmt.Sprintf("%s-%d@example.com", firstName, dbSequence.Add(1)),
		Password:       "irrelevant",
		Role:           role,
		OrganizationID: organizationID,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *env) createCase(t *testing.T, organizationID uint, name string) models.ReportCase {
	t.Helper()
	reportCase := models.ReportCase{Name: name, OrganizationID: organizationID}
	require.NoError(t, e.db.Create(&reportCase).Error)
	return reportCase
}

func (e *env) createReport(t *testing.T, caseID, reporterID uint, anonymous bool) models.Report {
	t.Helper()
	report := models.Report{
		Description:  "pushed on the stairs",
		ReportCaseID: caseID,
		ReporterID:   reporterID,
		IsAnonymous:  anonymous,
		Type:         1,
	}
	require.NoError(t, e.db.Create(&report).Error)
	return report
}

func callerFor(user models.User) authz.Caller {
	return authz.Caller{ID: user.ID, Role: user.Role, OrganizationID: user.OrganizationID}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
