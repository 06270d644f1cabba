package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"zone-guard/config"
	telegram "zone-guard/internal/api"
	"zone-guard/internal/container"
	"zone-guard/internal/domain/port"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("bad LOG_LEVEL")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Собираем сервисы и адаптеры камеры
	c, err := container.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build container")
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Error().Err(err).Msg("release resources")
		}
	}()

	var notifier port.AlertNotifier = telegram.LogNotifier{}
	var bot *telegram.Bot
	if cfg.TelegramToken != "" {
		if bot, err = telegram.NewBot(cfg.TelegramToken, c); err != nil {
			log.Fatal().Err(err).Msg("failed to create bot")
		}
		notifier = bot
	} else {
		log.Warn().Msg("TELEGRAM_TOKEN is empty, alerts go to the log only")
	}

	bg, bgCtx := errgroup.WithContext(ctx)
	bg.Go(func() error { return c.AlertService.Run(bgCtx, notifier) })
	if bot != nil {
		bg.Go(func() error { return bot.Run(bgCtx) })
	}

	// Окно OpenCV требует главного потока, поэтому цикл кадров крутится здесь
	log.Info().Msg("monitor is running")
	runErr := c.Monitor.Run(ctx)
	stop()

	if err := bg.Wait(); err != nil {
		log.Error().Err(err).Msg("background worker")
	}
	if runErr != nil {
		log.Error().Err(runErr).Msg("monitor stopped")
		return
	}
	log.Info().Msg("monitor stopped")
}
