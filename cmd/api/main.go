package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/pms-backend/config"
	"github.com/GoSim-25-26J-441/pms-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/pms-backend/internal/jobs"
	"github.com/GoSim-25-26J-441/pms-backend/internal/logging"
	"github.com/GoSim-25-26J-441/pms-backend/internal/projects/service"
)

const serviceName = "pms-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open stores", zap.Error(err))
	}
	defer stores.Close()

	bootstrap.SetGinMode(cfg.App.Environment)
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		DB:             stores.Pool,
		Redis:          stores.Redis,
		Repo:           stores.Repo,
		Drafts:         stores.Drafts,
		Logger:         logger,
	})

	scheduler := jobs.NewScheduler(service.NewProjectService(stores.Repo, logger), logger)
	if err := scheduler.Start(cfg.Jobs.OverdueReportCron); err != nil {
		logger.Fatal("start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
