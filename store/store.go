// Package store persists scripts, their dialogue lines and video jobs.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/drewmudry/scriptcast-api/dialogue"
	"github.com/drewmudry/scriptcast-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Migrate creates or updates the script, dialogue and video tables.
func (s *Store) Migrate() error {
	return s.DB.AutoMigrate(&models.Script{}, &models.Dialogue{}, &models.Video{})
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) CreateScript(ctx context.Context, id, location string) error {
	script := models.Script{ScriptID: id, Location: location}
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(&script).Error
}

func (s *Store) CreateDialogue(ctx context.Context, d *models.Dialogue) error {
	return s.DB.WithContext(ctx).Create(d).Error
}

// CreateScriptWithDialogues saves a script and its parsed lines in one transaction.
// Lines get sequence numbers 1..N in order; on any failure nothing is kept.
func (s *Store) CreateScriptWithDialogues(ctx context.Context, scriptID, location string, lines []dialogue.Line) (*models.Script, error) {
	script := models.Script{ScriptID: scriptID, Location: location}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&script).Error; err != nil {
			return fmt.Errorf("creating script: %w", err)
		}
		if len(lines) == 0 {
			return nil
		}

		rows := make([]models.Dialogue, 0, len(lines))
		for i, line := range lines {
			rows = append(rows, models.Dialogue{
				DialogueID: uuid.NewString(),
				Speaker:    line.Speaker,
				Dialogue:   line.Text,
				Sequence:   i + 1,
				ScriptID:   scriptID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("creating dialogues: %w", err)
		}
		script.Dialogues = rows
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *Store) FindScript(ctx context.Context, id string) (*models.Script, error) {
	var script models.Script
	if err := s.DB.WithContext(ctx).First(&script, "script_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &script, nil
}

// ListDialogues returns a script's lines ordered by sequence.
func (s *Store) ListDialogues(ctx context.Context, scriptID string) ([]models.Dialogue, error) {
	var rows []models.Dialogue
	err := s.DB.WithContext(ctx).
		Where("script_id = ?", scriptID).
		Order("sequence").
		Find(&rows).Error
	return rows, err
}

func (s *Store) SetDialogueAudio(ctx context.Context, dialogueID, path string) error {
	return s.DB.WithContext(ctx).
		Model(&models.Dialogue{}).
		Where("dialogue_id = ?", dialogueID).
		Update("output_audio_path", path).Error
}

func (s *Store) FindVideo(ctx context.Context, id string) (*models.Video, error) {
	var video models.Video
	if err := s.DB.WithContext(ctx).First(&video, "video_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &video, nil
}

func (s *Store) FindVideoByScript(ctx context.Context, scriptID string) (*models.Video, error) {
	var video models.Video
	if err := s.DB.WithContext(ctx).First(&video, "script_id = ?", scriptID).Error; err != nil {
		return nil, notFound(err)
	}
	return &video, nil
}

func (s *Store) CreateVideo(ctx context.Context, id, scriptID string, status models.VideoStatus) error {
	video := models.Video{VideoID: id, ScriptID: scriptID, Status: status}
	return s.DB.WithContext(ctx).Omit(clause.Associations).Create(&video).Error
}

// CreateVideoIfAbsent inserts a pending video for the script unless one exists.
// The unique index on script_id decides concurrent races; the loser reads the winner's row.
func (s *Store) CreateVideoIfAbsent(ctx context.Context, scriptID string) (*models.Video, bool, error) {
	video := models.Video{
		VideoID:  uuid.NewString(),
		ScriptID: scriptID,
		Status:   models.VideoStatusPending,
	}

	res := s.DB.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "script_id"}},
			DoNothing: true,
		}).
		Create(&video)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return &video, true, nil
	}

	existing, err := s.FindVideoByScript(ctx, scriptID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *Store) UpdateVideoStatus(ctx context.Context, id string, status models.VideoStatus) error {
	return s.DB.WithContext(ctx).
		Model(&models.Video{}).
		Where("video_id = ?", id).
		Update("status", status).Error
}

// ListStaleVideos returns videos in one of the given statuses last touched before the cutoff.
func (s *Store) ListStaleVideos(ctx context.Context, before time.Time, statuses ...models.VideoStatus) ([]models.Video, error) {
	var videos []models.Video
	err := s.DB.WithContext(ctx).
		Where("status IN ? AND updated_at < ?", statuses, before).
		Order("created_at").
		Find(&videos).Error
	return videos, err
}

// Touch bumps a video's updated_at so the sweeper does not pick it up again right away.
func (s *Store) Touch(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).
		Model(&models.Video{}).
		Where("video_id = ?", id).
		Update("updated_at", time.Now()).Error
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
