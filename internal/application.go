package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/gridclash-backend/internal/broadcast"
	"github.com/rocketscienceinc/gridclash-backend/internal/config"
	"github.com/rocketscienceinc/gridclash-backend/internal/match"
	"github.com/rocketscienceinc/gridclash-backend/internal/repository"
	"github.com/rocketscienceinc/gridclash-backend/internal/repository/storage"
	"github.com/rocketscienceinc/gridclash-backend/internal/usecase"
	"github.com/rocketscienceinc/gridclash-backend/transport/rest"
	"github.com/rocketscienceinc/gridclash-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	resultRepo, closeStore, err := initResultRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	hub := broadcast.NewHub(logger)
	matchManager := usecase.NewMatchManager(logger, match.New(), hub, resultRepo, conf.Match.ForfeitAfter)
	defer matchManager.Close()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		handlers := rest.NewHandlers(logger, matchManager, resultRepo)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort, handlers); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, matchManager, hub, conf.AllowedOrigins, conf.Match.SendBuffer)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initResultRepository picks the redis archive when enabled and the in-memory one otherwise.
func initResultRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.ResultRepository, func(), error) {
	if !conf.Redis.Enabled {
		log.Info("Redis disabled, match results kept in memory")
		return repository.NewMemoryResultRepository(conf.Redis.ResultsLimit), func() {}, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeStore := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewResultRepository(redisStorage, conf.Redis.ResultsLimit), closeStore, nil
}
