package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jobboard/jobboard-go/internal/config"
	"github.com/jobboard/jobboard-go/internal/crypto"
	"github.com/jobboard/jobboard-go/internal/events"
	"github.com/jobboard/jobboard-go/internal/repository"
	"github.com/jobboard/jobboard-go/internal/router"
	"github.com/jobboard/jobboard-go/internal/service"
	"github.com/jobboard/jobboard-go/internal/storage/drive"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if !cfg.Production() {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	db, err := repository.NewDB(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database open failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	err = repository.Migrate(migrateCtx, db, cfg.DBDriver)
	cancelMigrate()
	if err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	var uploader service.ResumeUploader
	if u, err := drive.NewUploader(context.Background(), cfg.Drive); err != nil {
		if cfg.Production() {
			slog.Error("google drive client failed", "error", err)
			os.Exit(1)
		}
		slog.Warn("résumé uploads disabled", "error", err)
	} else {
		uploader = u
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQURL != "" {
		mq, err := events.NewRabbitMQ(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			slog.Warn("rabbitmq unavailable, events disabled", "error", err)
		} else {
			publisher = mq
			slog.Info("publishing events", "queue", cfg.RabbitMQQueue)
		}
	}
	defer publisher.Close()

	codec := crypto.NewTokenCodec(cfg.JWTSecret, cfg.JWTExpiry)

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	dashboards := service.NewDashboardService(jobRepo, appRepo)

	handler := router.New(router.Deps{
		Codec:              codec,
		SecureCookie:       cfg.Production(),
		Auth:               service.NewAuthService(userRepo, codec, publisher),
		Jobs:               service.NewJobService(jobRepo, publisher),
		Applications:       service.NewApplicationService(jobRepo, appRepo, uploader, publisher),
		Dashboards:         dashboards,
		Export:             service.NewExportService(dashboards),
		AuthRateLimitRPS:   cfg.AuthRateLimitRPS,
		AuthRateLimitBurst: cfg.AuthRateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
