package models

import (
	"gorm.io/gorm"
)

// ChatMessage is one entry in a session's transcript. The log is append-only
// and used for history; the dialogue engine never reads it.
type ChatMessage struct {
	gorm.Model
	SessionID   string `json:"session_id" gorm:"index;not null"`
	MessageType string `json:"message_type"` // USER or BOT
	Content     string `json:"content" gorm:"type:text"`
}

// Message author constants
const (
	MessageTypeUser = "USER"
	MessageTypeBot  = "BOT"
)
