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

	"github.com/ikkim/permit-backend/config"
	"github.com/ikkim/permit-backend/internal/app/controller"
	"github.com/ikkim/permit-backend/internal/app/service"
	"github.com/ikkim/permit-backend/internal/app/validation"
	"github.com/ikkim/permit-backend/internal/app/wizard"
	"github.com/ikkim/permit-backend/internal/db"
	"github.com/ikkim/permit-backend/internal/middleware"
	"github.com/ikkim/permit-backend/internal/router"
	"github.com/ikkim/permit-backend/internal/scheduler"
	"github.com/ikkim/permit-backend/internal/storage"
	"github.com/ikkim/permit-backend/internal/websocket"
	"github.com/ikkim/permit-backend/pkg/logger"
	"github.com/ikkim/permit-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: !cfg.IsProduction(),
	})

	logger.Info("Starting business permit server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs token revocation and wizard drafts when enabled
	var blacklist service.TokenBlacklist
	var drafts service.DraftStore = wizard.NewMemoryStore(cfg.Wizard.DraftTTL)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to connect to Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		blacklist = redis.Blacklist{}
		drafts = wizard.NewRedisStore(cfg.Wizard.DraftTTL)
	}

	if err := validation.RegisterBindings(); err != nil {
		logger.Fatal("Failed to register validators", err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	fileStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize services
	credential := cfg.Admin.PasswordHash
	if credential == "" {
		credential = cfg.Admin.Password
	}
	authService, err := service.NewAuthService(credential, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, blacklist)
	if err != nil {
		logger.Fatal("Failed to initialize admin credential", err)
	}
	applicationService := service.NewApplicationService(db.GetDB(), hub)
	adminService := service.NewAdminService(db.GetDB(), hub)
	uploadService := service.NewUploadService(fileStorage, cfg.Upload.MaxSizeBytes, cfg.S3.SignedURLExpiry)
	wizardService := service.NewWizardService(drafts, applicationService)

	renewals := scheduler.NewRenewalScheduler(cfg.Scheduler.RenewalCron, cfg.Scheduler.RenewalWindowDays, adminService, hub)
	if err := renewals.Start(); err != nil {
		logger.Fatal("Failed to start renewal scheduler", err)
	}
	defer renewals.Stop()

	// Initialize controllers
	applicationController := controller.NewApplicationController(applicationService)
	wizardController := controller.NewWizardController(wizardService)
	validateController := controller.NewValidateController()
	uploadController := controller.NewUploadController(uploadService)
	authController := controller.NewAuthController(authService)
	adminController := controller.NewAdminController(adminService)
	eventsController := controller.NewEventsController(hub, cfg.CORS.AllowedOrigins)
	systemController := controller.NewSystemController(db.GetDB())

	authMiddleware := middleware.NewAuthMiddleware(authService)

	r := router.NewRouter(
		applicationController,
		wizardController,
		validateController,
		uploadController,
		authController,
		adminController,
		eventsController,
		systemController,
		authMiddleware,
		cfg,
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	logger.Info("Server stopped successfully")
}
