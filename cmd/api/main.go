package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bossboarding/internal/catalog"
	"bossboarding/internal/config"
	"bossboarding/internal/db"
	"bossboarding/internal/email"
	"bossboarding/internal/estimate"
	"bossboarding/internal/httpserver"
	adminrepo "bossboarding/internal/repository/adminuser"
	customerrepo "bossboarding/internal/repository/customer"
	noterepo "bossboarding/internal/repository/note"
	portalrepo "bossboarding/internal/repository/portaluser"
	settingsrepo "bossboarding/internal/repository/settings"
	tokenrepo "bossboarding/internal/repository/token"
	customersvc "bossboarding/internal/service/customer"
	identitysvc "bossboarding/internal/service/identity"
	onboardingsvc "bossboarding/internal/service/onboarding"
	reportsvc "bossboarding/internal/service/report"
	"bossboarding/internal/upload"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatalf("load stage catalog: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	mailer := email.NewSMTP(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, logger)

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.PublicBaseURL, cfg.UploadMaxBytes)
	if err != nil {
		logger.Fatalf("init upload store: %v", err)
	}

	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	noteRepo := noterepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	adminRepo := adminrepo.NewPostgres(dbpool)
	portalRepo := portalrepo.NewPostgres(dbpool)
	settingsRepo := settingsrepo.NewPostgres(dbpool)

	onboardingService := onboardingsvc.New(customerRepo, tokenRepo, logger)
	customerService := customersvc.New(customerRepo, noteRepo, cat, onboardingService, mailer, cfg.PublicBaseURL, logger)
	identityService := identitysvc.New(adminRepo, portalRepo, tokenRepo, mailer, logger)
	reportService := reportsvc.New(customerRepo)
	estimator := estimate.New(cfg.EstimateURL, cfg.EstimateAPIKey)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:     cat,
		CustomerSvc: customerService,
		Onboarding:  onboardingService,
		Identity:    identityService,
		Reports:     reportService,
		Settings:    settingsRepo,
		Uploads:     uploads,
		Mailer:      mailer,
		Estimator:   estimator,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
