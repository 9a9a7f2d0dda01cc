package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/models"
	"github.com/drewmudry/scriptcast-api/store"
	"github.com/drewmudry/scriptcast-api/tasks"
	"github.com/drewmudry/scriptcast-api/tts"
)

const statusTimeout = 10 * time.Second

// HandleVideoGeneration renders audio for every dialogue of the video's script.
// Lines that already have audio are kept, so a retried job resumes where it stopped.
func (p *Processor) HandleVideoGeneration(ctx context.Context, payload string) error {
	var task tasks.VideoTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return fmt.Errorf("decoding video task: %w", err)
	}

	video, err := p.Store.FindVideo(ctx, task.VideoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn().Str("video_id", task.VideoID).Msg("Video not found, dropping task")
			return nil
		}
		return err
	}
	if video.Status == models.VideoStatusCompleted {
		log.Info().Str("video_id", video.VideoID).Msg("Video already completed")
		return nil
	}

	if err := p.Store.UpdateVideoStatus(ctx, video.VideoID, models.VideoStatusProcessing); err != nil {
		return err
	}

	if err := p.renderDialogues(ctx, video); err != nil {
		// A cancelled job goes back to pending so the sweeper resumes it.
		status := models.VideoStatusFailed
		if ctx.Err() != nil {
			status = models.VideoStatusPending
		}
		if uerr := p.finish(ctx, video.VideoID, status); uerr != nil {
			log.Error().Err(uerr).Str("video_id", video.VideoID).Str("status", string(status)).Msg("Failed to update video status")
		}
		return err
	}

	log.Info().Str("video_id", video.VideoID).Msg("Video audio complete")
	return p.finish(ctx, video.VideoID, models.VideoStatusCompleted)
}

// finish writes a job's outcome even when ctx is already cancelled.
func (p *Processor) finish(ctx context.Context, videoID string, status models.VideoStatus) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statusTimeout)
	defer cancel()
	return p.Store.UpdateVideoStatus(ctx, videoID, status)
}

func (p *Processor) renderDialogues(ctx context.Context, video *models.Video) error {
	lines, err := p.Store.ListDialogues(ctx, video.ScriptID)
	if err != nil {
		return err
	}

	for _, d := range lines {
		if d.OutputAudioPath != "" {
			continue
		}

		out := AudioPath(p.MediaDir, video.ScriptID, d)
		duration, err := tts.Generate(ctx, p.Synth, tts.GenerateParams{
			Text:           d.Dialogue,
			OutputPath:     out,
			Language:       p.Language,
			VoiceClonePath: p.VoiceClonePath,
		})
		if err != nil {
			return fmt.Errorf("dialogue %d: %w", d.Sequence, err)
		}
		if err := p.Store.SetDialogueAudio(ctx, d.DialogueID, out); err != nil {
			return err
		}
		// Progress keeps a live job out of the sweeper's stale set.
		if err := p.Store.Touch(ctx, video.VideoID); err != nil {
			return err
		}

		log.Info().
			Str("video_id", video.VideoID).
			Int("sequence", d.Sequence).
			Float64("duration", duration).
			Msg("Dialogue audio generated")
	}
	return nil
}

// AudioPath is <mediaDir>/<scriptID>/dialogue{seq}_{SPEAKER}.wav.
func AudioPath(mediaDir, scriptID string, d models.Dialogue) string {
	name := fmt.Sprintf("dialogue%d_%s.wav", d.Sequence, strings.ToUpper(d.Speaker))
	return filepath.Join(mediaDir, scriptID, name)
}
