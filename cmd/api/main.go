package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/HafsaFatima26/hospital-management-system/internal/config"
	"github.com/HafsaFatima26/hospital-management-system/internal/handler"
	auditHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/audit"
	authHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/auth"
	dashboardHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/dashboard"
	patientHandler "github.com/HafsaFatima26/hospital-management-system/internal/handler/patient"
	"github.com/HafsaFatima26/hospital-management-system/internal/middleware"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository/sqlite"
	"github.com/HafsaFatima26/hospital-management-system/internal/router"
	auditService "github.com/HafsaFatima26/hospital-management-system/internal/service/audit"
	authService "github.com/HafsaFatima26/hospital-management-system/internal/service/auth"
	patientService "github.com/HafsaFatima26/hospital-management-system/internal/service/patient"
	"github.com/HafsaFatima26/hospital-management-system/pkg/logger"
	"github.com/HafsaFatima26/hospital-management-system/pkg/security"
	"github.com/HafsaFatima26/hospital-management-system/pkg/validator"
)

func main() {
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	level := logger.InfoLevel
	if cfg.LogLevel == "debug" {
		level = logger.DebugLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal(err, "failed to open database")
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	patientRepo := sqlite.NewPatientRepository(db)
	auditRepo := sqlite.NewAuditRepository(db)

	hasher := security.NewBcryptHasher(12)
	if err := sqlite.SeedUsers(context.Background(), userRepo, hasher); err != nil {
		log.Fatal(err, "failed to seed users")
	}

	// One symmetric key per deployment, created on first use and
	// injected explicitly; nothing reads it ambiently.
	var key []byte
	if cfg.Encryption.Key != "" {
		key, err = security.DecodeKey(cfg.Encryption.Key)
	} else {
		key, err = security.LoadOrCreateKey(cfg.Encryption.KeyFile)
	}
	if err != nil {
		log.Fatal(err, "failed to load encryption key")
	}
	cipher, err := security.NewAESEncryptor(key)
	if err != nil {
		log.Fatal(err, "failed to initialize cipher")
	}

	sessions := authService.NewSessionStore(cfg.Session.TTL)
	authSvc := authService.NewService(userRepo, hasher, sessions)
	auditSvc := auditService.NewService(auditRepo)
	patientSvc := patientService.NewService(patientRepo, cipher, auditSvc)

	if err := validator.RegisterCustomRules(); err != nil {
		log.Fatal(err, "failed to register validation rules")
	}

	gin.SetMode(gin.ReleaseMode)
	r := router.New(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc, auditSvc),
		dashboardHandler.NewHandler(auditSvc, startedAt),
		patientHandler.NewHandler(patientSvc),
		auditHandler.NewHandler(auditSvc),
		handler.NewHealthHandler(db),
		router.Config{
			RateLimit: rate.Limit(cfg.RateLimit.RequestsPerSecond),
			RateBurst: cfg.RateLimit.Burst,
		},
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
}
