package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
	"github.com/anandbhavan/museum-chatbot-backend/internal/utils"
)

// Bookings can be made up to one year in advance
const maxAdvanceBookingDays = 365

var (
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// Notifier sends booking confirmations (email + QR ticket)
type Notifier interface {
	SendConfirmation(booking *models.ChatBooking) error
}

// DialogueService drives the ticket-booking conversation. It is stateless per
// invocation: the session record carries the state and draft between messages.
type DialogueService struct {
	store    storage.Store
	sessions *SessionManager
	notifier Notifier
}

// NewDialogueService creates a new dialogue service
func NewDialogueService(store storage.Store, sessions *SessionManager, notifier Notifier) *DialogueService {
	return &DialogueService{
		store:    store,
		sessions: sessions,
		notifier: notifier,
	}
}

// ProcessMessage applies exactly one state transition for the session and
// returns the bot's reply. Messages for the same session are serialized.
func (d *DialogueService) ProcessMessage(sessionID, message string) (string, error) {
	unlock := d.sessions.Lock(sessionID)
	defer unlock()

	session, err := d.store.GetSession(sessionID)
	if err != nil {
		return "", err
	}

	msg := strings.ToLower(strings.TrimSpace(message))
	log.Printf("💬 Session %s [%s]: %q", sessionID, session.State, msg)

	response := d.advance(session, msg)

	session.LastActivity = time.Now()
	if err := d.store.SaveSession(session); err != nil {
		log.Printf("❌ Failed to save session %s: %v", sessionID, err)
		return "", err
	}

	return response, nil
}

// advance runs the state machine for one inbound message. Validation failures
// re-prompt and leave the state unchanged; already-accepted fields are never
// touched.
func (d *DialogueService) advance(session *models.ChatSession, msg string) string {
	// Start the booking flow
	if session.State == models.StateNone && (strings.Contains(msg, "book") || strings.Contains(msg, "ticket")) {
		session.State = models.StateAskingName
		return "I'll help you book your tickets! First, could you please tell me your name?"
	}

	switch session.State {
	case models.StateAskingName:
		return d.handleName(session, msg)
	case models.StateAskingEmail:
		return d.handleEmail(session, msg)
	case models.StateAskingPhone:
		return d.handlePhone(session, msg)
	case models.StateAskingTicketType:
		return d.handleTicketType(session, msg)
	case models.StateAskingQuantity:
		return d.handleQuantity(session, msg)
	case models.StateAskingDate:
		return d.handleDate(session, msg)
	case models.StateConfirming:
		return d.handleConfirmation(session, msg)
	}

	// No booking flow in progress: keyword-routed general queries
	return GeneralReply(d.store, msg)
}

func (d *DialogueService) handleName(session *models.ChatSession, msg string) string {
	if msg == "" {
		return "Could you please tell me your name?"
	}

	session.Draft.Name = titleCase(msg)
	session.State = models.StateAskingEmail
	return "Thank you! Now, please provide your email address."
}

func (d *DialogueService) handleEmail(session *models.ChatSession, msg string) string {
	if !emailPattern.MatchString(msg) {
		return "That doesn't look like a valid email address. Please try again."
	}

	session.Draft.Email = msg
	session.State = models.StateAskingPhone
	return "Great! Please provide your phone number."
}

func (d *DialogueService) handlePhone(session *models.ChatSession, msg string) string {
	phone := nonDigitPattern.ReplaceAllString(msg, "")
	if len(phone) < 10 {
		return "Please provide a valid phone number with at least 10 digits."
	}

	session.Draft.Phone = phone
	session.State = models.StateAskingTicketType
	return "What type of ticket would you like?\n\n" + ticketPriceList(d.store)
}

func (d *DialogueService) handleTicketType(session *models.ChatSession, msg string) string {
	ticketType := strings.ToUpper(msg)
	if _, err := d.store.GetTicketByType(ticketType); err != nil {
		return fmt.Sprintf("Please select a valid ticket type: %s", validTicketTypes(d.store))
	}

	session.Draft.TicketType = ticketType
	session.State = models.StateAskingQuantity
	return "How many tickets would you like?"
}

func (d *DialogueService) handleQuantity(session *models.ChatSession, msg string) string {
	quantity, err := strconv.Atoi(msg)
	if err != nil {
		return "Please enter a valid number."
	}
	if quantity <= 0 {
		return "Please enter a valid number greater than 0."
	}
	if quantity > 10 {
		return "Maximum 10 tickets per booking. Please enter a smaller number."
	}

	session.Draft.Quantity = quantity
	session.State = models.StateAskingDate
	return "For which date would you like to book? (Please use YYYY-MM-DD format)"
}

func (d *DialogueService) handleDate(session *models.ChatSession, msg string) string {
	visitDate, err := time.Parse("2006-01-02", msg)
	if err != nil {
		return "Please enter a valid date in YYYY-MM-DD format (e.g., 2024-03-15)."
	}

	today := startOfDay(time.Now())
	maxDate := today.AddDate(0, 0, maxAdvanceBookingDays)

	if visitDate.Before(today) {
		return "Please select a future date."
	}
	if visitDate.After(maxDate) {
		return fmt.Sprintf("Bookings are only available up to %s. Please select an earlier date.", maxDate.Format("2006-01-02"))
	}

	ticket, err := d.store.GetTicketByType(session.Draft.TicketType)
	if err != nil {
		// Catalog changed mid-conversation; re-ask the ticket type
		session.State = models.StateAskingTicketType
		return "Sorry, that ticket type is no longer available.\n\nWhat type of ticket would you like?\n\n" + ticketPriceList(d.store)
	}

	session.Draft.VisitDate = msg
	session.Draft.TotalAmount = ticket.Price * float64(session.Draft.Quantity)
	session.Draft.BookingReference = utils.NewBookingReference()
	session.State = models.StateConfirming

	return confirmationSummary(session.Draft)
}

func (d *DialogueService) handleConfirmation(session *models.ChatSession, msg string) string {
	switch msg {
	case "confirm":
		return d.finalizeBooking(session)
	case "cancel":
		session.State = models.StateNone
		session.Draft = models.BookingDraft{}
		return "Booking cancelled. How else can I help you?"
	default:
		return "Please type 'confirm' to complete your booking or 'cancel' to start over."
	}
}

// finalizeBooking creates the booking record and triggers the confirmation
// email. A failed notification does not roll back the booking; the receipt
// carries a support warning instead.
func (d *DialogueService) finalizeBooking(session *models.ChatSession) string {
	booking := &models.ChatBooking{
		Name:             session.Draft.Name,
		Email:            session.Draft.Email,
		Phone:            session.Draft.Phone,
		TicketType:       session.Draft.TicketType,
		Quantity:         session.Draft.Quantity,
		VisitDate:        session.Draft.VisitDate,
		TotalAmount:      session.Draft.TotalAmount,
		BookingReference: session.Draft.BookingReference,
		PaymentStatus:    models.PaymentStatusCompleted,
		SessionID:        session.SessionID,
	}

	created, err := d.createWithUniqueReference(booking)
	if err != nil {
		log.Printf("❌ Error processing booking %s: %v", booking.BookingReference, err)
		return "Sorry, there was an error processing your booking. Please try again or contact support."
	}

	// Reset the conversation; the booking exists regardless of what the
	// notification does below
	session.State = models.StateNone
	session.Draft = models.BookingDraft{}

	emailSent := false
	if d.notifier != nil {
		if err := d.notifier.SendConfirmation(created); err != nil {
			log.Printf("⚠️  Failed to send confirmation for %s: %v", created.BookingReference, err)
		} else {
			emailSent = true
		}
	}

	return bookingReceipt(created, emailSent)
}

// createWithUniqueReference retries with a fresh reference if the generated
// one collides with an existing booking
func (d *DialogueService) createWithUniqueReference(booking *models.ChatBooking) (*models.ChatBooking, error) {
	var created *models.ChatBooking
	var err error

	for attempt := 0; attempt < 3; attempt++ {
		created, err = d.store.CreateChatBooking(booking)
		if !errors.Is(err, storage.ErrDuplicateReference) {
			return created, err
		}
		booking.BookingReference = utils.NewBookingReference()
	}
	return nil, err
}

// titleCase capitalizes the first letter of each word in an already
// lower-cased name
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
