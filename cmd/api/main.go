package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barberia-api/internal/audit"
	"github.com/BruksfildServices01/barberia-api/internal/cache"
	"github.com/BruksfildServices01/barberia-api/internal/config"
	dbpkg "github.com/BruksfildServices01/barberia-api/internal/db"
	infraRepo "github.com/BruksfildServices01/barberia-api/internal/infra/repository"
	"github.com/BruksfildServices01/barberia-api/internal/logger"
	"github.com/BruksfildServices01/barberia-api/internal/metrics"
	"github.com/BruksfildServices01/barberia-api/internal/routes"
	ucIdentity "github.com/BruksfildServices01/barberia-api/internal/usecase/identity"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logger.Default().Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(cfg.LogLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = dbpkg.Close(db) }()

	// ======================================================
	// Cache (optional)
	// ======================================================
	var statsCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Warn("redis unavailable, stats cache disabled", "error", err)
		} else {
			defer func() { _ = rc.Close() }()
			statsCache = rc
		}
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	if cfg.AdminEmail != "" {
		if err := bootstrapAdmin(cfg, db, auditDispatcher, log); err != nil {
			return err
		}
	}

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Cache:   statsCache,
		Metrics: metrics.New("barberia"),
		Audit:   auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ======================================================
	// Serve + graceful shutdown
	// ======================================================
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr(), "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// bootstrapAdmin creates the configured administrator on first start.
// Public registration only hands out the cliente role.
func bootstrapAdmin(cfg *config.Config, db *gorm.DB, dispatcher *audit.Dispatcher, log *slog.Logger) error {
	register := ucIdentity.NewRegister(infraRepo.NewUserGormRepository(db), dispatcher, cfg.BcryptCost, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := register.Bootstrap(ctx, ucIdentity.RegisterInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		log.Info("administrator created", "email", cfg.AdminEmail)
	} else {
		log.Debug("administrator already registered", "email", cfg.AdminEmail)
	}
	return nil
}
