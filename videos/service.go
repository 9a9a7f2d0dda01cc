// Package videos starts video jobs for stored scripts.
package videos

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/drewmudry/scriptcast-api/models"
	"github.com/drewmudry/scriptcast-api/store"
	"github.com/drewmudry/scriptcast-api/tasks"
)

type Triggered struct {
	VideoID  string
	ScriptID string
	Status   models.VideoStatus
	Created  bool
}

type Service struct {
	Store *store.Store
	Queue tasks.Enqueuer
}

func NewService(st *store.Store, q tasks.Enqueuer) *Service {
	return &Service{Store: st, Queue: q}
}

// Trigger returns the script's video, creating and enqueueing a pending one if
// the script has none yet.
func (s *Service) Trigger(ctx context.Context, scriptID string) (*Triggered, error) {
	scriptID = strings.TrimSpace(scriptID)
	if scriptID == "" {
		return nil, apperrors.Validation("script_id is required")
	}

	if _, err := s.Store.FindScript(ctx, scriptID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Script not found")
		}
		return nil, apperrors.Internal("Failed to look up script", err)
	}

	video, created, err := s.Store.CreateVideoIfAbsent(ctx, scriptID)
	if err != nil {
		return nil, apperrors.Internal("Failed to create video", err)
	}

	if created {
		log.Info().Str("video_id", video.VideoID).Str("script_id", scriptID).Msg("Video created")
		if s.Queue != nil {
			payload := tasks.VideoTaskPayload{VideoID: video.VideoID}
			if err := s.Queue.Enqueue(ctx, tasks.QueueVideoGeneration, payload); err != nil {
				// The sweeper picks up pending videos that never reached the queue.
				log.Error().Err(err).Str("video_id", video.VideoID).Msg("Failed to enqueue video job")
			}
		}
	}

	return &Triggered{
		VideoID:  video.VideoID,
		ScriptID: video.ScriptID,
		Status:   video.Status,
		Created:  created,
	}, nil
}
