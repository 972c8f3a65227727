package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
)

// DatabaseStore persists all data in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Ticket catalog operations

func (d *DatabaseStore) SeedDefaultTickets() error {
	var count int64
	if err := d.db.Model(&models.Ticket{}).Count(&count).Error; err != nil {
		return err
	}
	// Idempotent: an already-populated catalog is left untouched
	if count > 0 {
		return nil
	}

	tickets := models.DefaultTickets()
	return d.db.Create(&tickets).Error
}

func (d *DatabaseStore) ListTickets() ([]*models.Ticket, error) {
	var tickets []*models.Ticket
	if err := d.db.Order("id").Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (d *DatabaseStore) GetTicketByType(ticketType string) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.db.Where("ticket_type = ?", ticketType).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (d *DatabaseStore) CountTickets() (int64, error) {
	var count int64
	err := d.db.Model(&models.Ticket{}).Count(&count).Error
	return count, err
}

// Chat session operations

func (d *DatabaseStore) CreateSession(sessionID, userID string) (*models.ChatSession, error) {
	session := &models.ChatSession{
		SessionID:    sessionID,
		UserID:       userID,
		State:        models.StateNone,
		LastActivity: time.Now(),
	}
	if err := d.db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (d *DatabaseStore) GetSession(sessionID string) (*models.ChatSession, error) {
	var session models.ChatSession
	err := d.db.Where("session_id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (d *DatabaseStore) SaveSession(session *models.ChatSession) error {
	return d.db.Save(session).Error
}

func (d *DatabaseStore) CountSessions() (int64, error) {
	var count int64
	err := d.db.Model(&models.ChatSession{}).Count(&count).Error
	return count, err
}

// Message log operations

func (d *DatabaseStore) AppendMessage(message *models.ChatMessage) error {
	return d.db.Create(message).Error
}

func (d *DatabaseStore) GetMessagesBySession(sessionID string) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := d.db.Where("session_id = ?", sessionID).Order("id").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Booking operations

func (d *DatabaseStore) CreateChatBooking(booking *models.ChatBooking) (*models.ChatBooking, error) {
	var existing models.ChatBooking
	err := d.db.Where("booking_reference = ?", booking.BookingReference).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReference
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := d.db.Create(booking).Error; err != nil {
		return nil, err
	}
	return booking, nil
}

func (d *DatabaseStore) UpdateChatBooking(booking *models.ChatBooking) error {
	return d.db.Save(booking).Error
}

func (d *DatabaseStore) GetBookingByReference(reference string) (*models.ChatBooking, error) {
	var booking models.ChatBooking
	err := d.db.Where("booking_reference = ?", reference).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (d *DatabaseStore) GetBookingsByEmail(email string) ([]*models.ChatBooking, error) {
	var bookings []*models.ChatBooking
	err := d.db.Where("email = ?", email).Order("id").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (d *DatabaseStore) GetAllBookings() ([]*models.ChatBooking, error) {
	var bookings []*models.ChatBooking
	err := d.db.Order("id").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (d *DatabaseStore) CountBookings() (int64, error) {
	var count int64
	err := d.db.Model(&models.ChatBooking{}).Count(&count).Error
	return count, err
}
