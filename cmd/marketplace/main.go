package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusmart/marketplace/internal/adapter/auth"
	"github.com/campusmart/marketplace/internal/adapter/config"
	"github.com/campusmart/marketplace/internal/adapter/handler/http"
	"github.com/campusmart/marketplace/internal/adapter/logger"
	"github.com/campusmart/marketplace/internal/adapter/metrics"
	"github.com/campusmart/marketplace/internal/adapter/storage"
	"github.com/campusmart/marketplace/internal/adapter/storage/memory"
	"github.com/campusmart/marketplace/internal/adapter/storage/repository"
	"github.com/campusmart/marketplace/internal/adapter/telemetry"
	"github.com/campusmart/marketplace/internal/core/port"
	"github.com/campusmart/marketplace/internal/core/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(conf.App)
	if err != nil {
		fmt.Printf("error creating log: %s", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if conf.App.Mode == config.AppModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Setup(conf.App, os.Stdout)
	if err != nil {
		log.Error("tracing setup error", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, conf, log)

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := shutdownTracing(flushCtx); shutdownErr != nil {
		log.Warn("tracing shutdown error", zap.Error(shutdownErr))
	}

	if err != nil {
		log.Error("marketplace stopped with error", zap.Error(err))
		stop()
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, conf *config.Config, log *zap.Logger) error {
	repo, closeRepo, err := newRepository(ctx, conf.Database, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	tokenService, err := auth.New(conf.Auth)
	if err != nil {
		return fmt.Errorf("token service creating error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	svc, err := service.NewService(repo, repo, repo, tokenService, m, log.Named("Service"))
	if err != nil {
		return fmt.Errorf("service creating error: %w", err)
	}

	if conf.Auth.AdminEmail != "" {
		_, err = svc.EnsureAdmin(ctx, conf.Auth.AdminEmail, conf.Auth.AdminPassword)
		if err != nil {
			return fmt.Errorf("admin account error: %w", err)
		}
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		return fmt.Errorf("user handler creating error: %w", err)
	}
	productHandler, err := http.NewProductHandler(svc, log.Named("Product handler"))
	if err != nil {
		return fmt.Errorf("product handler creating error: %w", err)
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		return fmt.Errorf("order handler creating error: %w", err)
	}

	adminHandler, err := http.NewAdminHandler(svc, log.Named("Admin handler"))
	if err != nil {
		return fmt.Errorf("admin handler creating error: %w", err)
	}

	r, err := http.NewRouter(conf.HTTP, tokenService, m, orderHandler, productHandler, userHandler, adminHandler, log.Named("Router"))
	if err != nil {
		return fmt.Errorf("router creating error: %w", err)
	}

	return r.Serve(ctx, conf.HTTP.HostString)
}

func newRepository(ctx context.Context, conf *config.Database, log *zap.Logger) (port.Repository, func(), error) {
	if conf.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	}

	db, err := storage.NewDBStorage(ctx, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("database error: %w", err)
	}
	err = db.RunMigrations()
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database migration error: %w", err)
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("repository creating error: %w", err)
	}
	return repo, db.Close, nil
}
