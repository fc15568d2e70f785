package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/poliisiauto/poliisiauto-api/internal/handler"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
	"github.com/poliisiauto/poliisiauto-api/internal/router"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
)

const testSecret = "handler-test-secret"

var dbSequence atomic.Int64

type testAPI struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	dsn := fmt.Sprintf("file:handler_test_%d?mode=memory&cache=shared", dbSequence.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.ReportCase{},
		&models.Report{},
		&models.ReportMessage{},
	))

	logger := zerolog.New(io.Discard)
	validate := validator.New()

	users := repository.NewUserRepository(db)
	organizations := repository.NewOrganizationRepository(db)
	cases := repository.NewCaseRepository(db)
	reports := repository.NewReportRepository(db)
	messages := repository.NewMessageRepository(db)

	authService := service.NewAuthService(users, organizations, validate, testSecret, "", time.Hour, logger)
	organizationService := service.NewOrganizationService(organizations, validate, logger)
	overviewService := service.NewOverviewService(organizations, nil, time.Minute, logger)
	studentService := service.NewStudentService(users, organizations, reports, validate, logger)
	teacherService := service.NewTeacherService(users, organizations, reports, validate, logger)
	administratorService := service.NewAdministratorService(users, organizations, validate, logger)
	caseService := service.NewCaseService(cases, reports, users, organizations, validate, logger)
	reportService := service.NewReportService(reports, cases, messages, users, organizations, validate, logger)
	messageService := service.NewMessageService(messages, reports, users, validate, logger)
	seedService := service.NewSeedService(users, organizations, cases, reports, true, logger)

	app := fiber.New()
	router.Register(app, router.Dependencies{
		JWTSecret:      testSecret,
		DevMode:        true,
		Health:         handler.NewHealthHandler(db),
		Auth:           handler.NewAuthHandler(authService, logger),
		Organizations:  handler.NewOrganizationHandler(organizationService, overviewService, logger),
		Students:       handler.NewStudentHandler(studentService, logger),
		Teachers:       handler.NewTeacherHandler(teacherService, logger),
		Administrators: handler.NewAdministratorHandler(administratorService, logger),
		Cases:          handler.NewCaseHandler(caseService, reportService, logger),
		Reports:        handler.NewReportHandler(reportService, messageService, logger),
		Messages:       handler.NewMessageHandler(messageService, logger),
		Seed:           handler.NewSeedHandler(seedService, logger),
	})

	return &testAPI{app: app, db: db}
}

func (a *testAPI) createOrganization(t *testing.T, name string) models.Organization {
	t.Helper()
	organization := models.Organization{Name: name, City: "Espoo", Zip: "02100"}
	require.NoError(t, a.db.Create(&organization).Error)
	return organization
}

func (a *testAPI) createUser(t *testing.T, organizationID uint, role models.Role, firstName string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		FirstName:      firstName,
		LastName:       "Handler",
		Email:          fmt.Sprintf("%s-%d@example.com", firstName, dbSequence.Add(1)),
		Password:       string(hash),
		Role:           role,
		OrganizationID: organizationID,
	}
	require.NoError(t, a.db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"role":   int(user.Role),
		"org_id": user.OrganizationID,
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (a *testAPI) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func decodeData(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	if target != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, target))
	}
}
