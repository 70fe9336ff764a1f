package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/rs/zerolog"

	"lunchbot/internal/booking"
	"lunchbot/internal/config"
	"lunchbot/internal/logging"
	"lunchbot/internal/notify"
	"lunchbot/internal/order"
	"lunchbot/internal/schedule"
	"lunchbot/internal/server"
	"lunchbot/internal/transport/mail"
	"lunchbot/internal/transport/telegram"
	"lunchbot/internal/webhook"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to config file (yaml or json)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	mailClient := mail.New(cfg.Mail.Endpoint, log.With().Str("component", "mail").Logger())

	tg := buildTelegram(cfg, log)
	var chat notify.ChatSender
	if tg != nil {
		chat = tg
	}
	dispatcher := notify.NewDispatcher(mailClient, chat, log.With().Str("component", "notify").Logger())

	runner := schedule.NewTimerRunner()
	defer runner.Stop()

	var hook server.UpdateHandler
	if tg != nil {
		hook = webhook.New(tg, runner, log.With().Str("component", "webhook").Logger())
	}

	bookingClient := booking.New(cfg.Booking, log.With().Str("component", "booking").Logger())

	notifyFn := func(ctx context.Context, id int64, o order.Processed) {
		dispatcher.Dispatch(ctx, id, o)
	}

	srv := server.New(
		server.Config{Addr: cfg.Server.Addr},
		log.With().Str("component", "http").Logger(),
		bookingClient,
		notifyFn,
		hook,
		cfg.Pricing.PriceTier(),
	)

	if cfgPath != "" {
		err := config.Watch(ctx, cfgPath, log, func(next *config.Config) {
			// Only the reloadable subset applies without restart.
			if adapter := buildTelegram(next, log); adapter != nil {
				dispatcher.SetChat(adapter)
			} else {
				dispatcher.SetChat(nil)
			}
			zerolog.SetGlobalLevel(logging.ParseLevel(next.Logging.Level, zerolog.InfoLevel))
		})
		if err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	// Best-effort: no-op outside systemd.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
			os.Exit(1)
		}
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	timeout, err := time.ParseDuration(cfg.Server.ShutdownTimeout)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown incomplete")
	}
	log.Info().Msg("stopped")
}

// buildTelegram returns nil when chat credentials are absent: the
// dispatcher then skips the chat channel and the webhook goes unhandled.
func buildTelegram(cfg *config.Config, log zerolog.Logger) *telegram.Adapter {
	if !cfg.Telegram.Enabled() {
		log.Warn().Msg("telegram credentials missing; chat notifications will be skipped")
		return nil
	}
	tg, err := telegram.New(telegram.Config{
		Token:   cfg.Telegram.Token,
		GroupID: cfg.Telegram.GroupID,
	}, log.With().Str("component", "telegram").Logger())
	if err != nil {
		log.Error().Err(err).Msg("telegram init failed; chat notifications will be skipped")
		return nil
	}
	return tg
}
