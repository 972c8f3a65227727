package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
)

// MemoryStore holds all data in memory for development and tests
type MemoryStore struct {
	tickets  map[string]*models.Ticket
	sessions map[string]*models.ChatSession
	bookings map[string]*models.ChatBooking
	messages map[string][]*models.ChatMessage

	// Mutexes for thread safety
	ticketMu  sync.RWMutex
	sessionMu sync.RWMutex
	bookingMu sync.RWMutex
	messageMu sync.RWMutex

	// Counters for ID generation
	sessionCounter uint
	bookingCounter uint
	messageCounter uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tickets:  make(map[string]*models.Ticket),
		sessions: make(map[string]*models.ChatSession),
		bookings: make(map[string]*models.ChatBooking),
		messages: make(map[string][]*models.ChatMessage),
	}
}

// Ticket catalog operations

func (m *MemoryStore) SeedDefaultTickets() error {
	m.ticketMu.Lock()
	defer m.ticketMu.Unlock()

	// Idempotent: an already-populated catalog is left untouched
	if len(m.tickets) > 0 {
		return nil
	}

	for i, ticket := range models.DefaultTickets() {
		t := ticket
		t.ID = uint(i + 1)
		t.CreatedAt = time.Now()
		t.UpdatedAt = time.Now()
		m.tickets[t.TicketType] = &t
	}
	return nil
}

func (m *MemoryStore) ListTickets() ([]*models.Ticket, error) {
	m.ticketMu.RLock()
	defer m.ticketMu.RUnlock()

	tickets := make([]*models.Ticket, 0, len(m.tickets))
	for _, ticket := range m.tickets {
		tickets = append(tickets, ticket)
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].ID < tickets[j].ID
	})
	return tickets, nil
}

func (m *MemoryStore) GetTicketByType(ticketType string) (*models.Ticket, error) {
	m.ticketMu.RLock()
	defer m.ticketMu.RUnlock()

	ticket, exists := m.tickets[ticketType]
	if !exists {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (m *MemoryStore) CountTickets() (int64, error) {
	m.ticketMu.RLock()
	defer m.ticketMu.RUnlock()
	return int64(len(m.tickets)), nil
}

// Chat session operations

func (m *MemoryStore) CreateSession(sessionID, userID string) (*models.ChatSession, error) {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	m.sessionCounter++
	session := &models.ChatSession{
		SessionID:    sessionID,
		UserID:       userID,
		State:        models.StateNone,
		LastActivity: time.Now(),
	}
	session.ID = m.sessionCounter
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	m.sessions[session.SessionID] = session
	return session, nil
}

func (m *MemoryStore) GetSession(sessionID string) (*models.ChatSession, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (m *MemoryStore) SaveSession(session *models.ChatSession) error {
	m.sessionMu.Lock()
	defer m.sessionMu.Unlock()

	if _, exists := m.sessions[session.SessionID]; !exists {
		return ErrSessionNotFound
	}
	session.UpdatedAt = time.Now()
	m.sessions[session.SessionID] = session
	return nil
}

func (m *MemoryStore) CountSessions() (int64, error) {
	m.sessionMu.RLock()
	defer m.sessionMu.RUnlock()
	return int64(len(m.sessions)), nil
}

// Message log operations

func (m *MemoryStore) AppendMessage(message *models.ChatMessage) error {
	m.messageMu.Lock()
	defer m.messageMu.Unlock()

	m.messageCounter++
	message.ID = m.messageCounter
	message.CreatedAt = time.Now()
	message.UpdatedAt = time.Now()

	m.messages[message.SessionID] = append(m.messages[message.SessionID], message)
	return nil
}

func (m *MemoryStore) GetMessagesBySession(sessionID string) ([]*models.ChatMessage, error) {
	m.messageMu.RLock()
	defer m.messageMu.RUnlock()

	messages := m.messages[sessionID]
	result := make([]*models.ChatMessage, len(messages))
	copy(result, messages)
	return result, nil
}

// Booking operations

func (m *MemoryStore) CreateChatBooking(booking *models.ChatBooking) (*models.ChatBooking, error) {
	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	if _, exists := m.bookings[booking.BookingReference]; exists {
		return nil, ErrDuplicateReference
	}

	m.bookingCounter++
	booking.ID = m.bookingCounter
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	m.bookings[booking.BookingReference] = booking
	return booking, nil
}

func (m *MemoryStore) UpdateChatBooking(booking *models.ChatBooking) error {
	m.bookingMu.Lock()
	defer m.bookingMu.Unlock()

	if _, exists := m.bookings[booking.BookingReference]; !exists {
		return ErrBookingNotFound
	}
	booking.UpdatedAt = time.Now()
	m.bookings[booking.BookingReference] = booking
	return nil
}

func (m *MemoryStore) GetBookingByReference(reference string) (*models.ChatBooking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	booking, exists := m.bookings[reference]
	if !exists {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (m *MemoryStore) GetBookingsByEmail(email string) ([]*models.ChatBooking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	var bookings []*models.ChatBooking
	for _, booking := range m.bookings {
		if booking.Email == email {
			bookings = append(bookings, booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].ID < bookings[j].ID
	})
	return bookings, nil
}

func (m *MemoryStore) GetAllBookings() ([]*models.ChatBooking, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()

	bookings := make([]*models.ChatBooking, 0, len(m.bookings))
	for _, booking := range m.bookings {
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].ID < bookings[j].ID
	})
	return bookings, nil
}

func (m *MemoryStore) CountBookings() (int64, error) {
	m.bookingMu.RLock()
	defer m.bookingMu.RUnlock()
	return int64(len(m.bookings)), nil
}
