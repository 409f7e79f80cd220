package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/course-agenda-api/internal/config"
	"github.com/noah-isme/course-agenda-api/internal/database"
	"github.com/noah-isme/course-agenda-api/internal/handler"
	"github.com/noah-isme/course-agenda-api/internal/i18n"
	"github.com/noah-isme/course-agenda-api/internal/middleware"
	"github.com/noah-isme/course-agenda-api/internal/models"
	"github.com/noah-isme/course-agenda-api/internal/repository"
	"github.com/noah-isme/course-agenda-api/internal/router"
	"github.com/noah-isme/course-agenda-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if cfg.AppEnv == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	location, err := cfg.Agenda.Location()
	if err != nil {
		log.Fatalf("invalid agenda timezone: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(models.AgendaTables()...); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis disabled, alerts will not be de-duplicated")
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	var publisher service.EventPublisher
	if natsConn != nil {
		defer natsConn.Drain()
		publisher = natsConn
	} else {
		logger.Warn().Msg("nats disabled, alert dispatch unavailable")
	}

	bundle, err := i18n.NewBundle(cfg.Agenda.DefaultLang, location)
	if err != nil {
		log.Fatalf("failed to load translations: %v", err)
	}

	courseRepo := repository.NewCourseRepository(db)
	agendaRepo := repository.NewAgendaRepository(db, repository.AgendaOptions{
		ContactRoles: cfg.Agenda.ContactRoles,
		CreditsField: cfg.Agenda.CreditsField,
	})

	agendaService := service.NewAgendaService(courseRepo, agendaRepo, bundle, cfg.Agenda.Settings(), logger)
	alertService := service.NewAlertService(agendaService, redisClient, publisher, cfg.AlertsSubject, cfg.AlertsDedupeTTL, logger)

	agendaHandler := handler.NewAgendaHandler(agendaService, alertService, bundle.Languages(), logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, ObservedPrefix: router.CoursesPrefix})
	router.Register(app, cfg, router.Dependencies{
		AgendaHandler: agendaHandler,
		JWTMiddleware: middleware.JWTProtected(cfg.JWTSecret),
		RateLimiter:   middleware.RateLimit("agenda", cfg.RateLimitMax, cfg.RateLimitWindow),
		Languages:     bundle.Languages(),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Msg("course agenda api started")
	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
