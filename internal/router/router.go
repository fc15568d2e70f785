package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/poliisiauto/poliisiauto-api/internal/handler"
	"github.com/poliisiauto/poliisiauto-api/internal/middleware"
)

// Dependencies collects everything the route table needs.
type Dependencies struct {
	JWTSecret string
	DevMode   bool

	Health         *handler.HealthHandler
	Auth           *handler.AuthHandler
	Organizations  *handler.OrganizationHandler
	Students       *handler.StudentHandler
	Teachers       *handler.TeacherHandler
	Administrators *handler.AdministratorHandler
	Cases          *handler.CaseHandler
	Reports        *handler.ReportHandler
	Messages       *handler.MessageHandler
	Seed           *handler.SeedHandler
}

// Register wires the versioned API surface.
func Register(app *fiber.App, deps Dependencies) {
	app.Get("/health/live", deps.Health.Live)
	app.Get("/health/ready", deps.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	v1.Get("/health", deps.Health.Ready)

	authLimit := middleware.RateLimit("auth", 10, time.Minute)
	v1.Post("/register", authLimit, deps.Auth.Register)
	v1.Post("/login", authLimit, deps.Auth.Login)

	// Everything registered below requires a bearer token.
	v1.Use(middleware.Protected(deps.JWTSecret))

	v1.Get("/profile", deps.Auth.Profile)
	v1.Get("/profile/organization", deps.Auth.ProfileOrganization)

	organizations := v1.Group("/organizations")
	organizations.Get("/", deps.Organizations.List)
	organizations.Post("/", deps.Organizations.Create)
	organizations.Get("/:id", deps.Organizations.Show)
	organizations.Put("/:id", deps.Organizations.Update)
	organizations.Patch("/:id", deps.Organizations.Update)
	organizations.Delete("/:id", deps.Organizations.Delete)
	organizations.Get("/:id/overview", deps.Organizations.Overview)

	students := v1.Group("/students")
	students.Get("/", deps.Students.List)
	students.Get("/:id", deps.Students.Show)
	students.Put("/:id", deps.Students.Update)
	students.Patch("/:id", deps.Students.Update)
	students.Delete("/:id", deps.Students.Delete)
	students.Get("/:id/reports", deps.Students.Reports)
	students.Get("/:id/involved-reports", deps.Students.InvolvedReports)

	teachers := v1.Group("/teachers")
	teachers.Get("/", deps.Teachers.List)
	teachers.Get("/:id", deps.Teachers.Show)
	teachers.Put("/:id", deps.Teachers.Update)
	teachers.Patch("/:id", deps.Teachers.Update)
	teachers.Delete("/:id", deps.Teachers.Delete)
	teachers.Get("/:id/reports", deps.Teachers.Reports)
	teachers.Get("/:id/assigned-reports", deps.Teachers.AssignedReports)

	administrators := v1.Group("/administrators")
	administrators.Get("/", deps.Administrators.List)
	administrators.Get("/:id", deps.Administrators.Show)
	administrators.Put("/:id", deps.Administrators.Update)
	administrators.Patch("/:id", deps.Administrators.Update)
	administrators.Delete("/:id", deps.Administrators.Delete)

	cases := v1.Group("/cases")
	cases.Get("/", deps.Cases.List)
	cases.Post("/", deps.Cases.Create)
	cases.Get("/:id", deps.Cases.Show)
	cases.Put("/:id", deps.Cases.Update)
	cases.Patch("/:id", deps.Cases.Update)
	cases.Delete("/:id", deps.Cases.Delete)
	cases.Get("/:id/reports", deps.Cases.Reports)
	cases.Post("/:id/reports", deps.Cases.CreateReport)

	reports := v1.Group("/reports")
	reports.Get("/", deps.Reports.List)
	reports.Post("/", deps.Reports.Create)
	reports.Get("/:id", deps.Reports.Show)
	reports.Put("/:id", deps.Reports.Update)
	reports.Patch("/:id", deps.Reports.Update)
	reports.Delete("/:id", deps.Reports.Delete)
	reports.Put("/:id/update-case", deps.Reports.Move)
	reports.Post("/:id/open", deps.Reports.Open)
	reports.Post("/:id/close", deps.Reports.Close)
	reports.Get("/:id/messages", deps.Reports.Messages)
	reports.Post("/:id/messages", deps.Reports.CreateMessage)

	messages := v1.Group("/report-messages")
	messages.Get("/:id", deps.Messages.Show)
	messages.Put("/:id", deps.Messages.Update)
	messages.Patch("/:id", deps.Messages.Update)
	messages.Delete("/:id", deps.Messages.Delete)

	if deps.DevMode && deps.Seed != nil {
		v1.Post("/seed", deps.Seed.Seed)
	}
}
