package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking states for a chat session. State is the source of truth for which
// draft fields have been collected so far.
const (
	StateNone             = "NONE"
	StateAskingName       = "ASKING_NAME"
	StateAskingEmail      = "ASKING_EMAIL"
	StateAskingPhone      = "ASKING_PHONE"
	StateAskingTicketType = "ASKING_TICKET_TYPE"
	StateAskingQuantity   = "ASKING_QUANTITY"
	StateAskingDate       = "ASKING_DATE"
	StateConfirming       = "CONFIRMING"
)

// BookingDraft holds the booking data collected during a conversation.
// Fields are populated in order as the dialogue advances.
type BookingDraft struct {
	Name             string  `json:"name,omitempty"`
	Email            string  `json:"email,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	TicketType       string  `json:"ticket_type,omitempty"`
	Quantity         int     `json:"quantity,omitempty"`
	VisitDate        string  `json:"visit_date,omitempty"`
	TotalAmount      float64 `json:"total_amount,omitempty"`
	BookingReference string  `json:"booking_reference,omitempty"`
}

// ChatSession stores the conversation state between messages. Sessions are
// retained for history and never deleted by the engine.
type ChatSession struct {
	gorm.Model
	SessionID    string       `json:"session_id" gorm:"uniqueIndex;not null"`
	UserID       string       `json:"user_id,omitempty" gorm:"index"`
	State        string       `json:"state" gorm:"default:NONE"`
	Draft        BookingDraft `json:"draft" gorm:"serializer:json"`
	LastActivity time.Time    `json:"last_activity"`
}
