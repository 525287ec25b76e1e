package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/salvo-game/salvo/internal/api"
	"github.com/salvo-game/salvo/internal/config"
	"github.com/salvo-game/salvo/internal/dependencies/clock"
	"github.com/salvo-game/salvo/internal/dependencies/random"
	"github.com/salvo-game/salvo/internal/services/auth"
	"github.com/salvo-game/salvo/internal/services/board"
	"github.com/salvo-game/salvo/internal/services/game"
	"github.com/salvo-game/salvo/internal/storage"
	"github.com/salvo-game/salvo/internal/storage/memory"
	redisstorage "github.com/salvo-game/salvo/internal/storage/redis"
)

func main() {
	cfg, err := config.Load(os.Getenv("SALVO_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	store, closeStore, err := newStorage(cfg)
	if err != nil {
		logger.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	clk := clock.New()
	rnd := random.New()

	authService := auth.New(store, clk, auth.DefaultConfig())
	boardService := board.New(store, rnd)
	gameController := game.NewController(store, boardService, clk, rnd, logger)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    authService,
		GameController: gameController,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = cfg.HTTPPort
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// newStorage builds the configured storage backend
func newStorage(cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.Storage {
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.Redis.URL
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns

		store, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return memory.New(), func() {}, nil
	}
}

// logLevel maps a config string to a slog level
func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
