package services

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

type fakeNotifier struct {
	calls int
	fail  bool
	last  *models.ChatBooking
}

func (f *fakeNotifier) SendConfirmation(booking *models.ChatBooking) error {
	f.calls++
	f.last = booking
	if f.fail {
		return errors.New("email service unavailable")
	}
	return nil
}

func newTestDialogue(t *testing.T) (*DialogueService, *storage.MemoryStore, *fakeNotifier, string) {
	t.Helper()

	store := storage.NewMemoryStore()
	require.NoError(t, store.SeedDefaultTickets())

	notifier := &fakeNotifier{}
	service := NewDialogueService(store, NewSessionManager(store), notifier)

	session, err := store.CreateSession("test-session", "")
	require.NoError(t, err)

	return service, store, notifier, session.SessionID
}

func step(t *testing.T, service *DialogueService, sessionID, message string) string {
	t.Helper()

	response, err := service.ProcessMessage(sessionID, message)
	require.NoError(t, err)
	return response
}

func sessionState(t *testing.T, store *storage.MemoryStore, sessionID string) *models.ChatSession {
	t.Helper()

	session, err := store.GetSession(sessionID)
	require.NoError(t, err)
	return session
}

func advanceToConfirming(t *testing.T, service *DialogueService, store *storage.MemoryStore, sessionID string) string {
	t.Helper()

	step(t, service, sessionID, "book")
	step(t, service, sessionID, "jane doe")
	step(t, service, sessionID, "jane@example.com")
	step(t, service, sessionID, "1234567890")
	step(t, service, sessionID, "ADULT")
	step(t, service, sessionID, "2")
	visitDate := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	summary := step(t, service, sessionID, visitDate)

	require.Equal(t, models.StateConfirming, sessionState(t, store, sessionID).State)
	return summary
}

func TestBookingTrigger(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	response := step(t, service, sessionID, "I want to book a visit")
	assert.Contains(t, response, "tell me your name")
	assert.Equal(t, models.StateAskingName, sessionState(t, store, sessionID).State)
}

func TestNoTriggerFallsThroughToGeneralQueries(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	response := step(t, service, sessionID, "hello there")
	assert.Contains(t, response, "not sure I understand")
	assert.Equal(t, models.StateNone, sessionState(t, store, sessionID).State)
}

func TestFullBookingFlow(t *testing.T) {
	service, store, notifier, sessionID := newTestDialogue(t)

	response := step(t, service, sessionID, "book")
	assert.Contains(t, response, "name")

	response = step(t, service, sessionID, "Jane Doe")
	assert.Contains(t, response, "email")
	assert.Equal(t, "Jane Doe", sessionState(t, store, sessionID).Draft.Name)

	response = step(t, service, sessionID, "jane@example.com")
	assert.Contains(t, response, "phone")

	response = step(t, service, sessionID, "1234567890")
	assert.Contains(t, response, "ADULT")
	assert.Contains(t, response, "CHILD")

	response = step(t, service, sessionID, "ADULT")
	assert.Contains(t, response, "How many tickets")

	response = step(t, service, sessionID, "2")
	assert.Contains(t, response, "YYYY-MM-DD")

	visitDate := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	response = step(t, service, sessionID, visitDate)
	assert.Contains(t, response, "Please confirm your booking details")
	assert.Contains(t, response, "$200.00") // 2 x ADULT price
	assert.Regexp(t, regexp.MustCompile(`Booking Reference: BK[0-9A-F]{8}`), response)

	response = step(t, service, sessionID, "confirm")
	assert.Contains(t, response, "BOOKING CONFIRMATION")
	assert.Contains(t, response, "confirmation email has been sent")

	// One booking created, one notification sent, machine back at rest
	count, err := store.CountBookings()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, notifier.calls)

	session := sessionState(t, store, sessionID)
	assert.Equal(t, models.StateNone, session.State)
	assert.Equal(t, models.BookingDraft{}, session.Draft)

	require.NotNil(t, notifier.last)
	assert.Equal(t, "Jane Doe", notifier.last.Name)
	assert.Equal(t, "jane@example.com", notifier.last.Email)
	assert.Equal(t, models.PaymentStatusCompleted, notifier.last.PaymentStatus)
	assert.Equal(t, 200.0, notifier.last.TotalAmount)
}

func TestNameIsTitleCased(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	step(t, service, sessionID, "book")
	step(t, service, sessionID, "jane doe")
	assert.Equal(t, "Jane Doe", sessionState(t, store, sessionID).Draft.Name)
}

func TestEmailValidation(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	step(t, service, sessionID, "book")
	step(t, service, sessionID, "Jane Doe")

	response := step(t, service, sessionID, "abc")
	assert.Contains(t, response, "valid email")

	session := sessionState(t, store, sessionID)
	assert.Equal(t, models.StateAskingEmail, session.State)
	assert.Empty(t, session.Draft.Email)

	step(t, service, sessionID, "A@B.com")
	session = sessionState(t, store, sessionID)
	assert.Equal(t, models.StateAskingPhone, session.State)
	assert.Equal(t, "a@b.com", session.Draft.Email)
}

func TestPhoneValidation(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	step(t, service, sessionID, "book")
	step(t, service, sessionID, "Jane Doe")
	step(t, service, sessionID, "jane@example.com")

	response := step(t, service, sessionID, "12345")
	assert.Contains(t, response, "at least 10 digits")
	assert.Equal(t, models.StateAskingPhone, sessionState(t, store, sessionID).State)

	step(t, service, sessionID, "123-456-7890")
	session := sessionState(t, store, sessionID)
	assert.Equal(t, models.StateAskingTicketType, session.State)
	assert.Equal(t, "1234567890", session.Draft.Phone)
}

func TestTicketTypeValidation(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	step(t, service, sessionID, "book")
	step(t, service, sessionID, "Jane Doe")
	step(t, service, sessionID, "jane@example.com")
	step(t, service, sessionID, "1234567890")

	response := step(t, service, sessionID, "PLATINUM")
	assert.Contains(t, response, "valid ticket type")
	assert.Contains(t, response, "ADULT")
	assert.Equal(t, models.StateAskingTicketType, sessionState(t, store, sessionID).State)

	step(t, service, sessionID, "student")
	session := sessionState(t, store, sessionID)
	assert.Equal(t, models.StateAskingQuantity, session.State)
	assert.Equal(t, "STUDENT", session.Draft.TicketType)
}

func TestQuantityBounds(t *testing.T) {
	tests := []struct {
		input    string
		accepted bool
	}{
		{"0", false},
		{"11", false},
		{"abc", false},
		{"1", true},
		{"10", true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			service, store, _, sessionID := newTestDialogue(t)

			step(t, service, sessionID, "book")
			step(t, service, sessionID, "Jane Doe")
			step(t, service, sessionID, "jane@example.com")
			step(t, service, sessionID, "1234567890")
			step(t, service, sessionID, "ADULT")

			step(t, service, sessionID, tc.input)
			session := sessionState(t, store, sessionID)
			if tc.accepted {
				assert.Equal(t, models.StateAskingDate, session.State)
			} else {
				assert.Equal(t, models.StateAskingQuantity, session.State)
			}
		})
	}
}

func TestDateBounds(t *testing.T) {
	today := time.Now()
	tests := []struct {
		name     string
		input    string
		accepted bool
	}{
		{"today", today.Format("2006-01-02"), true},
		{"one year ahead", today.AddDate(0, 0, 365).Format("2006-01-02"), true},
		{"past", today.AddDate(0, 0, -1).Format("2006-01-02"), false},
		{"too far ahead", today.AddDate(0, 0, 366).Format("2006-01-02"), false},
		{"not a date", "next tuesday", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			service, store, _, sessionID := newTestDialogue(t)

			step(t, service, sessionID, "book")
			step(t, service, sessionID, "Jane Doe")
			step(t, service, sessionID, "jane@example.com")
			step(t, service, sessionID, "1234567890")
			step(t, service, sessionID, "ADULT")
			step(t, service, sessionID, "2")

			step(t, service, sessionID, tc.input)
			session := sessionState(t, store, sessionID)
			if tc.accepted {
				assert.Equal(t, models.StateConfirming, session.State)
				assert.Equal(t, tc.input, session.Draft.VisitDate)
			} else {
				assert.Equal(t, models.StateAskingDate, session.State)
				assert.Empty(t, session.Draft.VisitDate)
			}
		})
	}
}

func TestCancelResetsDraft(t *testing.T) {
	service, store, notifier, sessionID := newTestDialogue(t)

	advanceToConfirming(t, service, store, sessionID)

	response := step(t, service, sessionID, "cancel")
	assert.Equal(t, "Booking cancelled. How else can I help you?", response)

	session := sessionState(t, store, sessionID)
	assert.Equal(t, models.StateNone, session.State)
	assert.Equal(t, models.BookingDraft{}, session.Draft)

	count, err := store.CountBookings()
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, notifier.calls)
}

func TestCancelTextIsStable(t *testing.T) {
	// Cancellation produces the same text regardless of draft contents
	service1, store1, _, session1 := newTestDialogue(t)
	advanceToConfirming(t, service1, store1, session1)
	first := step(t, service1, session1, "cancel")

	service2, store2, _, session2 := newTestDialogue(t)
	step(t, service2, session2, "book")
	step(t, service2, session2, "john smith")
	step(t, service2, session2, "john@example.com")
	step(t, service2, session2, "0987654321")
	step(t, service2, session2, "CHILD")
	step(t, service2, session2, "5")
	step(t, service2, session2, time.Now().AddDate(0, 0, 7).Format("2006-01-02"))
	require.Equal(t, models.StateConfirming, sessionState(t, store2, session2).State)
	second := step(t, service2, session2, "cancel")

	assert.Equal(t, first, second)
}

func TestConfirmRePrompt(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	advanceToConfirming(t, service, store, sessionID)

	response := step(t, service, sessionID, "maybe")
	assert.Contains(t, response, "'confirm'")
	assert.Contains(t, response, "'cancel'")
	assert.Equal(t, models.StateConfirming, sessionState(t, store, sessionID).State)
}

func TestNotificationFailureStillCreatesBooking(t *testing.T) {
	service, store, notifier, sessionID := newTestDialogue(t)
	notifier.fail = true

	advanceToConfirming(t, service, store, sessionID)
	response := step(t, service, sessionID, "confirm")

	assert.Contains(t, response, "BOOKING CONFIRMATION")
	assert.Contains(t, response, "issue sending the confirmation email")

	// The booking is kept and the conversation resets even though the
	// notification failed
	count, err := store.CountBookings()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, models.StateNone, sessionState(t, store, sessionID).State)
}

func TestGeneralQueries(t *testing.T) {
	service, _, _, sessionID := newTestDialogue(t)

	response := step(t, service, sessionID, "how much does it cost?")
	assert.Contains(t, response, "ticket prices")
	assert.Contains(t, response, "ADULT: $100.00")

	response = step(t, service, sessionID, "help")
	assert.Contains(t, response, "Booking tickets")

	response = step(t, service, sessionID, "what are your opening hours?")
	assert.Contains(t, response, "9:00 AM - 6:00 PM")

	response = step(t, service, sessionID, "xyzzy")
	assert.Contains(t, response, "not sure I understand")
}

func TestUnknownSessionReturnsError(t *testing.T) {
	service, _, _, _ := newTestDialogue(t)

	_, err := service.ProcessMessage("no-such-session", "book")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestStateSequenceIsMonotonic(t *testing.T) {
	service, store, _, sessionID := newTestDialogue(t)

	expected := []string{
		models.StateAskingName,
		models.StateAskingEmail,
		models.StateAskingPhone,
		models.StateAskingTicketType,
		models.StateAskingQuantity,
		models.StateAskingDate,
		models.StateConfirming,
		models.StateNone,
	}

	inputs := []string{
		"book tickets",
		"jane doe",
		"jane@example.com",
		"1234567890",
		"ADULT",
		"2",
		time.Now().Format("2006-01-02"),
		"confirm",
	}

	for i, input := range inputs {
		step(t, service, sessionID, input)
		assert.Equal(t, expected[i], sessionState(t, store, sessionID).State,
			fmt.Sprintf("after input %q", input))
	}
}
