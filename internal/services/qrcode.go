package services

import (
	"fmt"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
)

// TicketPayload builds the human-readable block encoded into the ticket QR.
// The verification endpoint extracts the booking reference back out of the
// decoded text, so the "Booking Reference:" line must stay intact.
func TicketPayload(booking *models.ChatBooking) string {
	return fmt.Sprintf(`
Anand Bhavan Museum - E-Ticket
===============================
Booking Reference: %s
Visitor Name: %s
Ticket Type: %s
Quantity: %d
Visit Date: %s
`, booking.BookingReference, booking.Name, booking.TicketType, booking.Quantity, booking.VisitDate)
}

// GenerateTicketQR encodes the ticket payload as a PNG image
func GenerateTicketQR(booking *models.ChatBooking) ([]byte, error) {
	png, err := qrcode.Encode(TicketPayload(booking), qrcode.Medium, 512)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// SaveTicketQR writes the QR PNG under the media directory and returns the
// URL path it is served from
func SaveTicketQR(mediaDir, reference string, png []byte) (string, error) {
	dir := filepath.Join(mediaDir, "qr_codes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create QR directory: %w", err)
	}

	filename := fmt.Sprintf("qr_code_%s.png", reference)
	if err := os.WriteFile(filepath.Join(dir, filename), png, 0o644); err != nil {
		return "", fmt.Errorf("failed to write QR image: %w", err)
	}

	return "/media/qr_codes/" + filename, nil
}
