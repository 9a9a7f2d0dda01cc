// Package jobs reports the progress of video jobs.
package jobs

import (
	"context"
	"errors"
	"strings"

	"github.com/drewmudry/scriptcast-api/internal/apperrors"
	"github.com/drewmudry/scriptcast-api/models"
	"github.com/drewmudry/scriptcast-api/store"
)

// Status is a snapshot of one job. A job id is the video id.
type Status struct {
	JobID              string             `json:"job_id"`
	ScriptID           string             `json:"script_id"`
	Status             models.VideoStatus `json:"status"`
	Progress           int                `json:"progress"`
	DialoguesTotal     int                `json:"dialogues_total"`
	DialoguesWithAudio int                `json:"dialogues_with_audio"`
}

type Service struct {
	Store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{Store: st}
}

func (s *Service) Status(ctx context.Context, jobID string) (*Status, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, apperrors.Validation("job_id is required")
	}

	video, err := s.Store.FindVideo(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NotFound("Job not found")
		}
		return nil, apperrors.Internal("Failed to look up job", err)
	}

	lines, err := s.Store.ListDialogues(ctx, video.ScriptID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load dialogues", err)
	}

	st := &Status{
		JobID:          video.VideoID,
		ScriptID:       video.ScriptID,
		Status:         video.Status,
		DialoguesTotal: len(lines),
	}
	for _, d := range lines {
		if d.OutputAudioPath != "" {
			st.DialoguesWithAudio++
		}
	}
	st.Progress = progress(video.Status, st.DialoguesWithAudio, st.DialoguesTotal)
	return st, nil
}

// progress is a percentage. Completed jobs are always 100.
func progress(status models.VideoStatus, done, total int) int {
	if status == models.VideoStatusCompleted {
		return 100
	}
	if total == 0 {
		return 0
	}
	return done * 100 / total
}
