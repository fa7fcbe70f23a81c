package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edunext/mindmap-api/internal/config"
	"github.com/edunext/mindmap-api/internal/database"
	"github.com/edunext/mindmap-api/internal/handler"
	"github.com/edunext/mindmap-api/internal/middleware"
	"github.com/edunext/mindmap-api/internal/models"
	"github.com/edunext/mindmap-api/internal/repository"
	"github.com/edunext/mindmap-api/internal/router"
	"github.com/edunext/mindmap-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Block{},
		&models.StudentState{},
		&models.Submission{},
		&models.Score{},
		&models.User{},
		&models.DueDateExtension{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	defer natsConn.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	blockRepo := repository.NewBlockRepository(db)
	stateRepo := repository.NewStudentStateRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	userRepo := repository.NewUserRepository(db)
	extensionRepo := repository.NewDueDateExtensionRepository(db)

	dueDates := service.NewDueDateResolver(extensionRepo)
	gradingCache := service.NewGradingCache(redisClient, cfg.GradingCacheTTL, logger)

	blockService := service.NewBlockService(blockRepo, validate, logger)
	assignmentService := service.NewAssignmentService(blockRepo, stateRepo, submissionRepo, dueDates, gradingCache, validate, logger)
	gradingService := service.NewGradingService(blockRepo, stateRepo, submissionRepo, scoreRepo, userRepo, gradingCache, validate, logger)

	resetReceiver := service.NewScoreResetReceiver(natsConn, cfg.ScoreResetSubject, submissionRepo, stateRepo, scoreRepo, gradingCache, logger)
	if err := resetReceiver.Start(context.Background()); err != nil {
		log.Fatalf("failed to subscribe to score reset events: %v", err)
	}
	defer resetReceiver.Close()

	blockHandler := handler.NewBlockHandler(blockService, assignmentService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	gradingHandler := handler.NewGradingHandler(gradingService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		BlockHandler:      blockHandler,
		AssignmentHandler: assignmentHandler,
		GradingHandler:    gradingHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

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
