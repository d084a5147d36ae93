package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emergencyrelay/backend/internal/api/handler"
	"emergencyrelay/backend/internal/auth"
	"emergencyrelay/backend/internal/chathub"
	"emergencyrelay/backend/internal/config"
	"emergencyrelay/backend/internal/storage"
	"emergencyrelay/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("relay stopped: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logs.GetLoggerFromString(cfg.LogLevel)
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mirror := setupPersistence(ctx, cfg, logger)
	defer func() {
		if err := mirror.Close(); err != nil {
			logger.Error("Failed to close persistence", "error", err)
		}
	}()

	hub := chathub.NewManagerService(chathub.NewTables(mirror.LoadAll(ctx)), hubOptions(cfg, mirror, logger))
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)

	srv := &http.Server{
		Addr:           cfg.Addr(),
		Handler:        handler.NewRouter(handler.NewHandler(hub, cfg, logger)),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("Starting relay", "address", srv.Addr, "offline", mirror.Offline())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down gracefully...")
	case err := <-errChan:
		stopHub()
		<-hub.Done()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	stopHub()
	<-hub.Done()

	logger.Info("Relay stopped cleanly")
	return nil
}

// setupPersistence opens the configured store. Any failure degrades the
// relay to offline mode instead of stopping it.
func setupPersistence(ctx context.Context, cfg config.Config, logger *slog.Logger) *storage.Mirror {
	if cfg.Offline() {
		logger.Warn("Persistence disabled, running in offline mode", "driver", cfg.StoreDriver)
		return storage.NewOfflineMirror(logger)
	}

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Store unavailable, running in offline mode", "driver", cfg.StoreDriver, "error", err)
		return storage.NewOfflineMirror(logger)
	}

	var publisher storage.Publisher
	if cfg.RedisAddr != "" {
		p, err := storage.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisChannel)
		if err != nil {
			logger.Warn("Redis unavailable, events will not be mirrored", "addr", cfg.RedisAddr, "error", err)
		} else {
			publisher = p
		}
	}

	logger.Info("Persistence ready", "driver", cfg.StoreDriver, "redis", publisher != nil)
	return storage.NewMirror(store, publisher, false, cfg.PersistTimeout, logger)
}

func hubOptions(cfg config.Config, mirror *storage.Mirror, logger *slog.Logger) chathub.Options {
	opts := chathub.Options{Mirror: mirror, Log: logger}
	if cfg.EnforceRoles {
		opts.Guard = chathub.NewRoleGuard()
	}
	if cfg.StrictTransitions {
		opts.Policy = chathub.StrictTransitions{}
	}
	if cfg.JWTSecret != "" {
		opts.Verifier = auth.NewVerifier(cfg.JWTSecret)
	}
	if cfg.TelegramEnabled() {
		notifier, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Warn("Telegram notifications disabled", "error", err)
		} else {
			opts.Notifier = notifier
		}
	}
	return opts
}
