package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	environment "gatebot/internal/env"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, err := environment.Setup(ctx)
	if err != nil {
		log.Fatalf("Failed to setup environment: %v", err)
	}

	logger := env.Logger
	logger.Info("Starting gatebot")

	go serveHTTP(logger, "observability", env.Servers.HTTP.Observability)

	webhookMode := env.Config.Telegram.PublicURL != ""
	if webhookMode {
		// The webhook arrives on the API server, so it must be listening
		// before the webhook is registered.
		go serveHTTP(logger, "api", env.Servers.HTTP.API)
	}

	if err := startTelegramBot(ctx, env, webhookMode); err != nil {
		logger.Error("Failed to start telegram bot", slog.Any("error", err))
		return
	}

	if err := env.Services.Workers.Start(); err != nil {
		logger.Error("Failed to start workers", slog.Any("error", err))
		return
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Bot started. Press Ctrl+C to stop.")
	<-quit

	logger.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), env.Config.ShutdownDuration)
	defer shutdownCancel()

	env.Services.Workers.Stop()
	env.Clients.TelegramBot.Stop()

	shutdownHTTP(shutdownCtx, logger, "observability", env.Servers.HTTP.Observability)
	if webhookMode {
		shutdownHTTP(shutdownCtx, logger, "api", env.Servers.HTTP.API)
	}

	for _, closer := range env.Closers {
		closer()
	}

	logger.Info("Stopped")
}

func startTelegramBot(ctx context.Context, env *environment.Env, webhookMode bool) error {
	logger := env.Logger

	var err error
	if webhookMode {
		logger.Info("Starting in webhook mode", slog.String("public_url", env.Config.Telegram.PublicURL))
		err = env.Clients.TelegramBot.StartWebhook(ctx, env.Config.Telegram.PublicURL)
	} else {
		logger.Info("Starting in long polling mode")
		err = env.Clients.TelegramBot.StartPolling(ctx)
	}
	if err != nil {
		return err
	}

	if err := env.Services.TelegramRouter.SetupBotCommands(); err != nil {
		// The bot works without the command menu.
		logger.Error("Failed to setup bot commands", slog.Any("error", err))
	}

	updates := env.Clients.TelegramBot.GetUpdates()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if err := env.Services.TelegramRouter.Route(&update); err != nil {
					logger.Error("Failed to handle update", slog.Any("error", err))
				}
			}
		}
	}()

	return nil
}

func serveHTTP(logger *slog.Logger, name string, srv *http.Server) {
	logger.Info("Starting HTTP server", slog.String("name", name), slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server error", slog.String("name", name), slog.Any("error", err))
	}
}

func shutdownHTTP(ctx context.Context, logger *slog.Logger, name string, srv *http.Server) {
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server shutdown error", slog.String("name", name), slog.Any("error", err))
	}
}
