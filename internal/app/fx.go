package app

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shimantoislam/bot/internal/config"
	deliveryHTTP "github.com/shimantoislam/bot/internal/delivery/http"
	"github.com/shimantoislam/bot/internal/keepalive"
	"github.com/shimantoislam/bot/internal/logger"
	"github.com/shimantoislam/bot/internal/notifiers"
	"github.com/shimantoislam/bot/internal/service"
	"go.uber.org/fx"
)

// Module defines the Fx module for the relay application.
var Module = fx.Options(
	fx.Provide(
		// Core components
		config.NewConfig,
		logger.NewLogger,

		// Outbound channel and relay pipeline
		newNotifier,
		service.NewRelayService,

		// HTTP surface
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewServer,

		// Background keep-alive
		keepalive.NewPinger,
	),

	fx.Invoke(runServer),
	fx.Invoke(runKeepAlive),
)

// newNotifier selects the outbound channel implementation based on the
// configured mode. Outside of "production" every delivery is replaced by a
// log line.
func newNotifier(cfg *config.Config, log *zerolog.Logger) notifiers.Notifier {
	if cfg.Notifiers.Mode == "production" {
		return notifiers.NewTelegramNotifier(cfg.Notifiers.Telegram, log)
	}
	log.Info().Str("mode", cfg.Notifiers.Mode).Msg("non-production mode, using log notifier")
	return notifiers.NewLogNotifier(log)
}

// runServer ties the HTTP server to the application lifecycle.
func runServer(server *deliveryHTTP.Server, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

// runKeepAlive starts the self-ping scheduler when enabled. It is started
// once at boot and runs until shutdown, independent of request handling.
func runKeepAlive(cfg *config.Config, pinger *keepalive.Pinger, lc fx.Lifecycle) {
	if !cfg.KeepAlive.Enabled {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return pinger.Start()
		},
		OnStop: func(ctx context.Context) error {
			pinger.Stop()
			return nil
		},
	})
}
