package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/poliisiauto/poliisiauto-api/internal/config"
	"github.com/poliisiauto/poliisiauto-api/internal/database"
	"github.com/poliisiauto/poliisiauto-api/internal/handler"
	"github.com/poliisiauto/poliisiauto-api/internal/middleware"
	"github.com/poliisiauto/poliisiauto-api/internal/models"
	"github.com/poliisiauto/poliisiauto-api/internal/repository"
	"github.com/poliisiauto/poliisiauto-api/internal/router"
	"github.com/poliisiauto/poliisiauto-api/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.IsDevelopment() {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	if err := db.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.ReportCase{},
		&models.Report{},
		&models.ReportMessage{},
	); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	cache, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if cache == nil {
		logger.Warn().Msg("redis not configured, overview caching disabled")
	}

	validate := validator.New()

	users := repository.NewUserRepository(db)
	organizations := repository.NewOrganizationRepository(db)
	cases := repository.NewCaseRepository(db)
	reports := repository.NewReportRepository(db)
	messages := repository.NewMessageRepository(db)

	authService := service.NewAuthService(users, organizations, validate, cfg.JWTSecret, cfg.APIKey, cfg.TokenTTL, logger)
	organizationService := service.NewOrganizationService(organizations, validate, logger)
	overviewService := service.NewOverviewService(organizations, cache, cfg.OverviewCacheTTL, logger)
	studentService := service.NewStudentService(users, organizations, reports, validate, logger)
	teacherService := service.NewTeacherService(users, organizations, reports, validate, logger)
	administratorService := service.NewAdministratorService(users, organizations, validate, logger)
	caseService := service.NewCaseService(cases, reports, users, organizations, validate, logger)
	reportService := service.NewReportService(reports, cases, messages, users, organizations, validate, logger)
	messageService := service.NewMessageService(messages, reports, users, validate, logger)
	seedService := service.NewSeedService(users, organizations, cases, reports, cfg.IsDevelopment(), logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})

	router.Register(app, router.Dependencies{
		JWTSecret:      cfg.JWTSecret,
		DevMode:        cfg.IsDevelopment(),
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

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Msg("server started")

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
