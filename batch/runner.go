package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/tts"
)

// Publisher uploads a finished audio file somewhere and returns its location.
type Publisher interface {
	Publish(ctx context.Context, localPath string) (string, error)
}

type Runner struct {
	Options   Options
	Loader    tts.Loader
	Publisher Publisher
}

// Run processes every file and returns once all of them have finished.
// A failing file never stops the others.
func (r *Runner) Run(ctx context.Context, files []string) (*Summary, error) {
	if err := os.MkdirAll(r.Options.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output folder: %w", err)
	}

	workers := r.Options.MaxWorkers
	if workers < 1 {
		workers = 1
	}
	slots := workers
	if r.Options.SharedModel {
		slots = 1
	}
	instances := newInstancePool(slots, r.Loader)
	defer instances.close()

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	log.Info().
		Int("files", len(files)).
		Int("workers", workers).
		Bool("shared_model", r.Options.SharedModel).
		Str("language", r.Options.Language).
		Str("output", r.Options.OutputDir).
		Msg("Starting parallel processing")

	summary := &Summary{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, file := range files {
		file := file
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			res := r.processFile(ctx, instances, file)
			mu.Lock()
			summary.Results = append(summary.Results, res)
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			summary.Results = append(summary.Results, Result{InputPath: file, Error: err.Error()})
			mu.Unlock()
		}
	}

	wg.Wait()
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, instances *instancePool, file string) (res Result) {
	res.InputPath = file
	name := filepath.Base(file)

	defer func() {
		if p := recover(); p != nil {
			log.Error().Str("file", name).Interface("panic", p).Msg("Unexpected error processing file")
			res.Success = false
			res.Error = fmt.Sprintf("panic: %v", p)
		}
	}()

	log.Info().Str("file", name).Msg("Processing")

	data, err := os.ReadFile(file)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		log.Warn().Str("file", name).Msg("Skipping empty file")
		res.Error = "Empty file"
		return res
	}

	out := OutputPath(r.Options.OutputDir, file)

	inst := instances.acquire()
	defer instances.release(inst)

	synth, err := inst.get(ctx)
	if err != nil {
		res.Error = err.Error()
		log.Error().Err(err).Str("file", name).Msg("Failed to load TTS model")
		return res
	}

	duration, err := tts.Generate(ctx, synth, tts.GenerateParams{
		Text:           text,
		OutputPath:     out,
		Language:       r.Options.Language,
		VoiceClonePath: r.Options.VoiceClonePath,
	})
	if err != nil {
		res.Error = err.Error()
		log.Error().Err(err).Str("file", name).Msg("Failed to generate audio")
		return res
	}

	res.Success = true
	res.OutputPath = out
	res.Duration = duration

	if r.Publisher != nil {
		url, err := r.Publisher.Publish(ctx, out)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Failed to publish audio")
		} else {
			res.URL = url
		}
	}

	log.Info().Str("file", name).Str("output", filepath.Base(out)).Float64("duration", duration).Msg("Completed")
	return res
}
