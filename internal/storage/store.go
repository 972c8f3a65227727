package storage

import (
	"errors"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
)

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Sentinel errors returned by Store implementations
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrTicketNotFound     = errors.New("ticket type not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrDuplicateReference = errors.New("booking reference already exists")
)

// Store defines the interface for storage operations
type Store interface {
	// Ticket catalog operations
	SeedDefaultTickets() error
	ListTickets() ([]*models.Ticket, error)
	GetTicketByType(ticketType string) (*models.Ticket, error)
	CountTickets() (int64, error)

	// Chat session operations
	CreateSession(sessionID, userID string) (*models.ChatSession, error)
	GetSession(sessionID string) (*models.ChatSession, error)
	SaveSession(session *models.ChatSession) error
	CountSessions() (int64, error)

	// Message log operations
	AppendMessage(message *models.ChatMessage) error
	GetMessagesBySession(sessionID string) ([]*models.ChatMessage, error)

	// Booking operations
	CreateChatBooking(booking *models.ChatBooking) (*models.ChatBooking, error)
	UpdateChatBooking(booking *models.ChatBooking) error
	GetBookingByReference(reference string) (*models.ChatBooking, error)
	GetBookingsByEmail(email string) ([]*models.ChatBooking, error)
	GetAllBookings() ([]*models.ChatBooking, error)
	CountBookings() (int64, error)
}
