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

	"go.uber.org/zap"

	"github.com/greenplate/vendex/internal/config"
	dbRedis "github.com/greenplate/vendex/internal/db/redis"
	logpkg "github.com/greenplate/vendex/internal/logger"
	"github.com/greenplate/vendex/internal/metrics"
	querylogrepo "github.com/greenplate/vendex/internal/repository/querylog"
	tagrepo "github.com/greenplate/vendex/internal/repository/tag"
	vendorrepo "github.com/greenplate/vendex/internal/repository/vendor"
	chiTransport "github.com/greenplate/vendex/internal/transport/chi"
	"github.com/greenplate/vendex/internal/transport/geocode"
	healthuc "github.com/greenplate/vendex/internal/usecase/health"
	searchuc "github.com/greenplate/vendex/internal/usecase/search"
	taguc "github.com/greenplate/vendex/internal/usecase/tag"
	vendoruc "github.com/greenplate/vendex/internal/usecase/vendor"
	"github.com/greenplate/vendex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting vendex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("geocode_url", cfg.Geocode.BaseURL),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	geocoder := geocode.NewClient(
		cfg.Geocode.BaseURL,
		cfg.Geocode.UserAgent,
		time.Duration(cfg.Geocode.TimeoutSec)*time.Second,
	)

	// Composition root
	vendorRepo := vendorrepo.New(store, cfg.Storage.KeyPrefix)
	tagRepo := tagrepo.New(store, cfg.Storage.KeyPrefix)
	queryLog := querylogrepo.New(store, cfg.Storage.KeyPrefix, cfg.Search.QueryLogCap)

	searchSvc := searchuc.New(geocoder, queryLog, cfg.RadiusMilesOrDefault(searchuc.DefaultRadiusMiles))
	vendorSvc := vendoruc.New(vendorRepo, geocoder)
	tagSvc := taguc.New(tagRepo)
	healthSvc := healthuc.New(store, geocoder)

	server := chiTransport.NewServer(searchSvc, vendorSvc, tagSvc, healthSvc, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}
