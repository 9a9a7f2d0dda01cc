package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/internal/config"
	"github.com/drewmudry/scriptcast-api/internal/logging"
	"github.com/drewmudry/scriptcast-api/internal/platform"
	"github.com/drewmudry/scriptcast-api/store"
	"github.com/drewmudry/scriptcast-api/tasks"
	"github.com/drewmudry/scriptcast-api/tts"
	"github.com/drewmudry/scriptcast-api/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("Worker exited")
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup, including unloading the
// TTS model, always happens.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Setup(cfg.LogLevel, false)

	if err := cfg.ValidateTTS(); err != nil {
		return fmt.Errorf("invalid TTS config: %w", err)
	}
	device, err := tts.ParseDevice(cfg.TTS.Device)
	if err != nil {
		return err
	}
	load, err := tts.NewLoader(tts.LoaderConfig{
		Backend: cfg.TTS.Backend,
		URL:     cfg.TTS.URL,
		Command: cfg.TTS.Command,
		Device:  device,
	})
	if err != nil {
		return err
	}

	db, err := platform.NewDBConnection(cfg.Database)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	st := store.New(db)

	rdb := platform.NewRedisClient(cfg.Redis)
	defer rdb.Close()
	queue := tasks.NewQueue(rdb)

	synth, err := load(ctx)
	if err != nil {
		return fmt.Errorf("loading TTS model: %w", err)
	}
	defer func() {
		if err := synth.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to unload TTS model")
		}
	}()

	processor := worker.NewProcessor(st, queue, synth, cfg.Worker.MediaDir)
	processor.Language = cfg.TTS.Language
	processor.VoiceClonePath = cfg.TTS.VoiceClonePath
	processor.Register(tasks.QueueVideoGeneration, processor.HandleVideoGeneration)

	sweeper := worker.NewSweeper(st, queue, cfg.Worker.StaleAfter)
	if err := sweeper.Start(ctx, cfg.Worker.SweepSchedule); err != nil {
		return fmt.Errorf("starting sweeper: %w", err)
	}
	defer sweeper.Stop()

	log.Info().Msg("Worker started, waiting for queue tasks...")
	processor.Listen(ctx, tasks.QueueVideoGeneration)
	return nil
}
