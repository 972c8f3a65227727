package models

import (
	"gorm.io/gorm"
)

// ChatBooking is a confirmed booking created through the chatbot
type ChatBooking struct {
	gorm.Model
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	TicketType       string  `json:"ticket_type"`
	Quantity         int     `json:"quantity"`
	VisitDate        string  `json:"visit_date" gorm:"type:date"`
	TotalAmount      float64 `json:"total_amount"`
	BookingReference string  `json:"booking_reference" gorm:"uniqueIndex;not null"`
	PaymentStatus    string  `json:"payment_status" gorm:"default:PENDING"`
	SessionID        string  `json:"session_id" gorm:"index"`
	QRCodeURL        string  `json:"qr_code_url,omitempty"`
}

// PaymentStatus constants
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)
