package models

// Dialogue is a single spoken line of a script. Sequence is 1-based and unique per script.
type Dialogue struct {
	DialogueID      string `gorm:"primaryKey;size:64" json:"dialogue_id"`
	Speaker         string `gorm:"size:64;not null" json:"speaker"`
	Dialogue        string `gorm:"type:text;not null" json:"dialogue"`
	Sequence        int    `gorm:"not null;uniqueIndex:idx_dialogue_script_sequence,priority:2" json:"sequence"`
	OutputAudioPath string `json:"output_audio_path,omitempty"`
	OutputVideoPath string `json:"output_video_path,omitempty"`
	ScriptID        string `gorm:"size:64;not null;uniqueIndex:idx_dialogue_script_sequence,priority:1" json:"script_id"`
}

func (Dialogue) TableName() string {
	return "dialogue"
}
