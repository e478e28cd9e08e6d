package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/application"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/config"
	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	sharingEvents "github.com/Kilat-Pet-Delivery/service-sharing/internal/events"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/handler"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/clock"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/database"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/health"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/kafka"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/logger"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "service-sharing"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-sharing",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(repository.AllModels()...); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Kafka producer
	var publisher kafka.Publisher = kafka.NopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
	} else {
		log.Warn("no kafka brokers configured, booking events will not be published")
	}

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	itemRepo := repository.NewGormItemRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	commentRepo := repository.NewGormCommentRepository(db)
	requestRepo := repository.NewGormRequestRepository(db)

	clk := clock.System{}
	projector := bookingDomain.NewAvailabilityProjector(bookingRepo)

	// Initialize application services
	userService := application.NewUserService(userRepo, clk, log)
	itemService := application.NewItemService(itemRepo, userRepo, commentRepo, requestRepo, projector, clk, log)
	bookingService := application.NewBookingService(bookingRepo, userRepo, itemRepo, publisher, clk, log)
	commentService := application.NewCommentService(commentRepo, bookingRepo, userRepo, itemRepo, clk, log)
	requestService := application.NewRequestService(requestRepo, itemRepo, userRepo, clk, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start catalog event consumer in a goroutine
	if cfg.KafkaConfig.Enabled() {
		groupID := cfg.KafkaConfig.GroupPrefix + "sharing-service"
		catalogConsumer := sharingEvents.NewCatalogEventConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			itemService,
			log,
		)
		defer func() { _ = catalogConsumer.Close() }()

		go func() {
			log.Info("starting catalog event consumer")
			if err := catalogConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("catalog event consumer error", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	handler.NewUserHandler(userService).RegisterRoutes(&router.RouterGroup)
	handler.NewItemHandler(itemService, commentService).RegisterRoutes(&router.RouterGroup)
	handler.NewBookingHandler(bookingService).RegisterRoutes(&router.RouterGroup)
	handler.NewRequestHandler(requestService).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-sharing...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-sharing stopped")
}
