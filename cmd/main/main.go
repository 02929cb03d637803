package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/supchaser/postergen/internal/app"
	"github.com/supchaser/postergen/internal/app/client"
	"github.com/supchaser/postergen/internal/app/credential"
	"github.com/supchaser/postergen/internal/app/delivery"
	"github.com/supchaser/postergen/internal/app/poller"
	"github.com/supchaser/postergen/internal/app/relay"
	"github.com/supchaser/postergen/internal/app/repository"
	"github.com/supchaser/postergen/internal/app/tracker"
	"github.com/supchaser/postergen/internal/app/usecase"
	"github.com/supchaser/postergen/internal/config"
	"github.com/supchaser/postergen/internal/middleware"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
)

func buildPersister(cfg *config.Config) (credential.Persister, func(), error) {
	switch cfg.CredentialBackend {
	case config.BackendMemory:
		return nil, func() {}, nil

	case config.BackendRedis:
		rdb := credential.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.RedisAddr, err)
		}

		return credential.NewRedisPersister(rdb), func() { rdb.Close() }, nil

	default:
		path := cfg.CredentialFile
		if path == "" {
			path = credential.DefaultFilePath()
		}
		return credential.NewFilePersister(path), func() {}, nil
	}
}

func buildTaskClient(cfg *config.Config, creds *credential.Store, httpClient *http.Client) app.TaskClient {
	if cfg.APIMode == config.APIModeMock {
		logger.Warn("mock api mode enabled, no requests reach the generation service",
			zap.Strings("artifacts", cfg.MockArtifactURLs),
		)
		return client.NewOfflineClient(creds, cfg.MockArtifactURLs, nil)
	}
	return client.NewDashScopeClient(cfg.DashScopeBaseURL, creds, httpClient)
}

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("error initializing config: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(cfg.LogMode)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded successfully")
	logger.Debug("debug mode enabled",
		zap.String("log_mode", cfg.LogMode),
		zap.String("api_mode", cfg.APIMode),
		zap.String("credential_backend", cfg.CredentialBackend),
		zap.Int("max_generations", cfg.MaxActiveGenerations),
		zap.Duration("poll_interval", cfg.PollInterval),
	)

	persister, closePersister, err := buildPersister(cfg)
	if err != nil {
		logger.Error("failed to initialize credential storage", zap.Error(err))
		os.Exit(1)
	}
	defer closePersister()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	creds := credential.NewStore(persister)
	taskClient := buildTaskClient(cfg, creds, httpClient)

	taskPoller := poller.New(taskClient, poller.RealScheduler, poller.Policy{
		Interval:         cfg.PollInterval,
		MaxAttempts:      cfg.PollMaxAttempts,
		MaxFetchFailures: cfg.PollMaxFetchFailures,
		RetryPolicy:      cfg.PollRetryPolicy,
		MaxRetryInterval: 4 * cfg.PollInterval,
	})
	artifactTracker := tracker.New(tracker.NewHTTPProber(httpClient), nil)
	imageRelay := relay.New(httpClient, cfg.RelayForceHTTPS)

	generationRepo := repository.CreateGenerationRepository(cfg.MaxActiveGenerations)
	generationUsecase := usecase.CreateGenerationUsecase(
		generationRepo,
		creds,
		taskClient,
		imageRelay,
		taskPoller,
		artifactTracker,
	)
	generationDelivery := delivery.CreateGenerationDelivery(generationUsecase)

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	generationDelivery.RegisterRoutes(router)

	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.PanicMiddleware)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    addr,
		Handler: middleware.CORSMiddleware(router),
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("starting HTTP server",
			zap.String("address", server.Addr),
			zap.String("api_mode", cfg.APIMode),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("failed to start server", zap.Error(err))
		os.Exit(1)
	case sig := <-quit:
		logger.Info("server is shutting down",
			zap.String("signal", sig.String()),
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
			os.Exit(1)
		}
		generationUsecase.Shutdown()

		logger.Info("server stopped")
	}
}
