package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// Verification status constants
const (
	VerificationStatusValid   = "VALID"
	VerificationStatusExpired = "EXPIRED"
	VerificationStatusFuture  = "FUTURE"
	VerificationStatusInvalid = "INVALID"
	VerificationStatusError   = "ERROR"
)

var bookingRefPattern = regexp.MustCompile(`Booking Reference: ([A-Z0-9]+)`)

// VerificationResult classifies a scanned ticket
type VerificationResult struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Booking *models.ChatBooking `json:"booking,omitempty"`
}

// VerificationService checks scanned QR ticket data against stored bookings
type VerificationService struct {
	store storage.Store
}

// NewVerificationService creates a new verification service
func NewVerificationService(store storage.Store) *VerificationService {
	return &VerificationService{store: store}
}

// VerifyTicket extracts the booking reference from decoded QR text and
// classifies the ticket relative to today's date. Malformed input yields a
// classification, never an error.
func (v *VerificationService) VerifyTicket(qrData string) *VerificationResult {
	if strings.TrimSpace(qrData) == "" {
		return &VerificationResult{
			Status:  VerificationStatusError,
			Message: "No QR code data provided",
		}
	}

	match := bookingRefPattern.FindStringSubmatch(qrData)
	if match == nil {
		return &VerificationResult{
			Status:  VerificationStatusError,
			Message: "Invalid QR code format",
		}
	}

	booking, err := v.store.GetBookingByReference(match[1])
	if err != nil {
		return &VerificationResult{
			Status:  VerificationStatusInvalid,
			Message: "Booking not found",
		}
	}

	visitDate, err := time.Parse("2006-01-02", booking.VisitDate)
	if err != nil {
		return &VerificationResult{
			Status:  VerificationStatusError,
			Message: "Error processing QR code",
		}
	}

	today := startOfDay(time.Now())
	switch {
	case visitDate.Before(today):
		return &VerificationResult{
			Status:  VerificationStatusExpired,
			Message: "This ticket has expired",
			Booking: booking,
		}
	case visitDate.After(today):
		return &VerificationResult{
			Status:  VerificationStatusFuture,
			Message: "This ticket is for a future date",
			Booking: booking,
		}
	default:
		return &VerificationResult{
			Status:  VerificationStatusValid,
			Message: "Valid ticket for today",
			Booking: booking,
		}
	}
}
