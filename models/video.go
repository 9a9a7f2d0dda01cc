package models

import (
	"time"
)

// VideoStatus is the processing state of a video job.
type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusProcessing VideoStatus = "processing"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

// Video tracks the eventual video assembly for a script. There is at most one per script.
type Video struct {
	VideoID              string      `gorm:"primaryKey;size:64" json:"video_id"`
	ScriptID             string      `gorm:"size:64;not null;uniqueIndex" json:"script_id"`
	Script               Script      `gorm:"foreignKey:ScriptID;references:ScriptID" json:"-"`
	Status               VideoStatus `gorm:"size:32;not null;default:'pending';index" json:"status"`
	OutputFinalVideoPath string      `json:"output_final_video_path,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

func (Video) TableName() string {
	return "video"
}

// IsDone reports whether the job reached a terminal state.
func (v *Video) IsDone() bool {
	return v.Status == VideoStatusCompleted || v.Status == VideoStatusFailed
}
