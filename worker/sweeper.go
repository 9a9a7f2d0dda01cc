package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/drewmudry/scriptcast-api/models"
	"github.com/drewmudry/scriptcast-api/store"
	"github.com/drewmudry/scriptcast-api/tasks"
)

// Sweeper re-enqueues videos that have sat untouched for too long, such as ones
// whose enqueue failed at trigger time or whose worker died mid-render.
type Sweeper struct {
	Store      *store.Store
	Queue      tasks.Enqueuer
	StaleAfter time.Duration
	cron       *cron.Cron
}

func NewSweeper(st *store.Store, q tasks.Enqueuer, staleAfter time.Duration) *Sweeper {
	return &Sweeper{Store: st, Queue: q, StaleAfter: staleAfter}
}

// Start schedules Sweep with a cron spec such as "@every 1m".
func (s *Sweeper) Start(ctx context.Context, spec string) error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(spec, func() {
		if _, err := s.Sweep(ctx); err != nil {
			log.Error().Err(err).Msg("Sweep failed")
		}
	}); err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("schedule", spec).Dur("stale_after", s.StaleAfter).Msg("Sweeper started")
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Sweep enqueues every stale pending video and every processing video that has
// made no progress within StaleAfter, such as one left by a crashed worker.
// It returns how many were queued.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	videos, err := s.Store.ListStaleVideos(ctx, time.Now().Add(-s.StaleAfter),
		models.VideoStatusPending, models.VideoStatusProcessing)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, v := range videos {
		if v.Status == models.VideoStatusProcessing {
			log.Warn().Str("video_id", v.VideoID).Time("updated_at", v.UpdatedAt).Msg("Resetting stalled video")
			if err := s.Store.UpdateVideoStatus(ctx, v.VideoID, models.VideoStatusPending); err != nil {
				log.Error().Err(err).Str("video_id", v.VideoID).Msg("Error resetting video")
				continue
			}
		}
		if err := s.Queue.Enqueue(ctx, tasks.QueueVideoGeneration, tasks.VideoTaskPayload{VideoID: v.VideoID}); err != nil {
			log.Error().Err(err).Str("video_id", v.VideoID).Msg("Error re-enqueueing video")
			continue
		}
		if err := s.Store.Touch(ctx, v.VideoID); err != nil {
			log.Warn().Err(err).Str("video_id", v.VideoID).Msg("Failed to touch video")
		}
		queued++
	}
	if queued > 0 {
		log.Info().Int("count", queued).Msg("Re-enqueued stale videos")
	}
	return queued, nil
}
