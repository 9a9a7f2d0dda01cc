// Command ttsbatch converts every .txt file in a folder to a WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/batch"
	"github.com/drewmudry/scriptcast-api/internal/config"
	"github.com/drewmudry/scriptcast-api/internal/logging"
	"github.com/drewmudry/scriptcast-api/mediastore"
	"github.com/drewmudry/scriptcast-api/tts"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	logger := logging.Setup(os.Getenv("LOG_LEVEL"), true)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load config")
		return 1
	}

	fs := flag.NewFlagSet("ttsbatch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		inputDir    = fs.String("input-folder", "", "folder containing .txt files (required)")
		outputDir   = fs.String("output-folder", "", "folder for generated .wav files (required)")
		voiceClone  = fs.String("voice-clone", cfg.TTS.VoiceClonePath, "reference audio for voice cloning")
		language    = fs.String("language", cfg.TTS.Language, "language name or code")
		maxWorkers  = fs.Int("max-workers", 4, "number of files processed in parallel")
		sharedModel = fs.Bool("shared-model", false, "load one model and share it between workers")
		backend     = fs.String("tts-backend", cfg.TTS.Backend, "TTS backend: http or command")
		ttsURL      = fs.String("tts-url", cfg.TTS.URL, "model server URL for the http backend")
		ttsCommand  = fs.String("tts-command", cfg.TTS.Command, "synthesis command for the command backend")
		deviceFlag  = fs.String("device", cfg.TTS.Device, "compute device: auto, cpu or cuda")
		s3Bucket    = fs.String("s3-bucket", "", "upload generated files to this S3 bucket")
		s3Prefix    = fs.String("s3-prefix", "", "key prefix for uploads")
		s3Region    = fs.String("s3-region", "us-east-1", "S3 region")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *inputDir == "" || *outputDir == "" {
		fmt.Fprintln(stderr, "--input-folder and --output-folder are required")
		fs.Usage()
		return 2
	}

	opts := batch.Options{
		InputDir:       *inputDir,
		OutputDir:      *outputDir,
		VoiceClonePath: *voiceClone,
		Language:       *language,
		MaxWorkers:     *maxWorkers,
		SharedModel:    *sharedModel,
	}
	if err := opts.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid options")
		return 1
	}
	files, err := batch.TextFiles(opts.InputDir)
	if err != nil {
		log.Error().Err(err).Msg("No input")
		return 1
	}
	log.Info().Int("count", len(files)).Msg("Found text files to process")

	device, err := tts.ParseDevice(*deviceFlag)
	if err != nil {
		log.Error().Err(err).Msg("Invalid device")
		return 1
	}
	loader, err := tts.NewLoader(tts.LoaderConfig{
		Backend: *backend,
		URL:     *ttsURL,
		Command: *ttsCommand,
		Device:  device,
	})
	if err != nil {
		log.Error().Err(err).Msg("Invalid TTS backend")
		return 1
	}

	runner := &batch.Runner{Options: opts, Loader: loader}
	if *s3Bucket != "" {
		pub, err := mediastore.NewS3Publisher(mediastore.S3Config{Bucket: *s3Bucket, Prefix: *s3Prefix, Region: *s3Region})
		if err != nil {
			log.Error().Err(err).Msg("Failed to set up S3")
			return 1
		}
		runner.Publisher = pub
	}

	summary, err := runner.Run(ctx, files)
	if err != nil {
		log.Error().Err(err).Msg("Batch failed")
		return 1
	}
	summary.Log(logger)
	return summary.ExitCode()
}
