package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-contact-backend/config"
	_ "portfolio-contact-backend/docs" // Important for Swagger
	v1 "portfolio-contact-backend/internal/delivery/http/v1"
	"portfolio-contact-backend/internal/usecase"
	"portfolio-contact-backend/pkg/email"
	"portfolio-contact-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Contact API
// @version         1.0
// @description     Relays portfolio contact form submissions to a transactional email provider.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio contact backend", "port", cfg.Port, "email_provider", cfg.EmailProvider)

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 3. Setup Email Sender
	sender, err := email.NewSender(cfg)
	if err != nil {
		logger.Log.Error("Failed to configure email sender", "error", err)
		os.Exit(1)
	}

	// 4. Setup UseCases
	contactUC := usecase.NewContactUsecase(sender, usecase.ContactConfig{
		OwnerEmail:          cfg.ContactOwnerEmail,
		OwnerName:           cfg.ContactOwnerName,
		FromEmail:           cfg.ContactFromEmail,
		FromName:            cfg.ContactFromName,
		ConfirmationEnabled: cfg.ConfirmationEnabled,
	}, logger.Log)
	healthUC := usecase.NewHealthUsecase(cfg.EmailProvider, cfg.ConfirmationEnabled)

	// 5. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
	})

	// 6. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
