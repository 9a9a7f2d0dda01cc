package models

import "time"

// Script is one generated script. Its dialogues are the parse output of the script text.
type Script struct {
	ScriptID  string     `gorm:"primaryKey;size:64" json:"script_id"`
	Location  string     `json:"location,omitempty"`
	Dialogues []Dialogue `gorm:"foreignKey:ScriptID;references:ScriptID" json:"dialogues,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Script) TableName() string {
	return "script"
}
