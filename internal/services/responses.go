package services

import (
	"fmt"
	"strings"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// Canned responses for general queries. These are keyword-routed lookups,
// only reachable when no booking flow is in progress.

const helpResponse = `I can help you with:
• Booking tickets
• Checking ticket prices
• Information about exhibitions
• Tour schedules
• Opening hours

Just let me know what you'd like to know!`

const hoursResponse = `Our opening hours are:
• Monday - Friday: 9:00 AM - 6:00 PM
• Saturday - Sunday: 10:00 AM - 4:00 PM`

const fallbackResponse = "I'm not sure I understand. Would you like to book tickets, check prices, or get general information?"

// GeneralReply routes a message that matched no booking transition to a
// canned response
func GeneralReply(store storage.Store, msg string) string {
	switch {
	case strings.Contains(msg, "price") || strings.Contains(msg, "cost"):
		return "Here are our ticket prices:\n\n" + ticketPriceList(store)
	case strings.Contains(msg, "help"):
		return helpResponse
	case strings.Contains(msg, "hour") || strings.Contains(msg, "time"):
		return hoursResponse
	default:
		return fallbackResponse
	}
}

// ticketPriceList renders the catalog as a bulleted list
func ticketPriceList(store storage.Store) string {
	tickets, err := store.ListTickets()
	if err != nil || len(tickets) == 0 {
		return "Sorry, ticket prices are unavailable right now. Please try again later."
	}

	var sb strings.Builder
	for _, ticket := range tickets {
		sb.WriteString(fmt.Sprintf("• %s: $%.2f - %s\n", ticket.TicketType, ticket.Price, ticket.Description))
	}
	return sb.String()
}

// validTicketTypes renders the catalog codes as a comma-separated list
func validTicketTypes(store storage.Store) string {
	tickets, err := store.ListTickets()
	if err != nil {
		return ""
	}

	codes := make([]string, 0, len(tickets))
	for _, ticket := range tickets {
		codes = append(codes, ticket.TicketType)
	}
	return strings.Join(codes, ", ")
}

// confirmationSummary renders the booking details shown before confirmation
func confirmationSummary(draft models.BookingDraft) string {
	return fmt.Sprintf(`Please confirm your booking details:

Booking Reference: %s
Name: %s
Email: %s
Phone: %s
Ticket Type: %s
Quantity: %d
Visit Date: %s
Total Amount: $%.2f

Type 'confirm' to proceed with payment or 'cancel' to start over.`,
		draft.BookingReference, draft.Name, draft.Email, draft.Phone,
		draft.TicketType, draft.Quantity, draft.VisitDate, draft.TotalAmount)
}

// bookingReceipt renders the final receipt after a booking is created
func bookingReceipt(booking *models.ChatBooking, emailSent bool) string {
	emailStatus := "📧 A confirmation email has been sent to your email address."
	if !emailSent {
		emailStatus = "⚠️ There was an issue sending the confirmation email. Please contact support."
	}

	receipt := fmt.Sprintf(`🎫 Thank you for your booking! Here's your receipt:

BOOKING CONFIRMATION
===================
Booking Reference: %s
Name: %s
Email: %s
Phone: %s
Ticket Type: %s
Quantity: %d
Visit Date: %s
Total Amount Paid: $%.2f

✅ Your booking is confirmed!
%s
🎟️ Please save your booking reference for future reference.`,
		booking.BookingReference, booking.Name, booking.Email, booking.Phone,
		booking.TicketType, booking.Quantity, booking.VisitDate, booking.TotalAmount,
		emailStatus)

	if booking.QRCodeURL != "" {
		receipt += fmt.Sprintf(`

🎫 Your QR code ticket: %s
Please present this QR code when you arrive at the museum.`, booking.QRCodeURL)
	}

	receipt += "\n\nWe look forward to your visit! Is there anything else I can help you with?"
	return receipt
}
