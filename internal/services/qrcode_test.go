package services

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
)

func testBooking() *models.ChatBooking {
	return &models.ChatBooking{
		Name:             "Jane Doe",
		TicketType:       models.TicketTypeAdult,
		Quantity:         2,
		VisitDate:        "2026-10-01",
		BookingReference: "BK12AB34CD",
	}
}

func TestTicketPayloadContainsBookingDetails(t *testing.T) {
	payload := TicketPayload(testBooking())

	assert.Contains(t, payload, "Booking Reference: BK12AB34CD")
	assert.Contains(t, payload, "Visitor Name: Jane Doe")
	assert.Contains(t, payload, "Ticket Type: ADULT")
	assert.Contains(t, payload, "Quantity: 2")
	assert.Contains(t, payload, "Visit Date: 2026-10-01")

	// The verification path must be able to extract the reference back out
	match := bookingRefPattern.FindStringSubmatch(payload)
	require.NotNil(t, match)
	assert.Equal(t, "BK12AB34CD", match[1])
}

func TestGenerateTicketQRProducesPNG(t *testing.T) {
	png, err := GenerateTicketQR(testBooking())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestSaveTicketQR(t *testing.T) {
	dir := t.TempDir()

	png, err := GenerateTicketQR(testBooking())
	require.NoError(t, err)

	url, err := SaveTicketQR(dir, "BK12AB34CD", png)
	require.NoError(t, err)
	assert.Equal(t, "/media/qr_codes/qr_code_BK12AB34CD.png", url)

	saved, err := os.ReadFile(filepath.Join(dir, "qr_codes", "qr_code_BK12AB34CD.png"))
	require.NoError(t, err)
	assert.Equal(t, png, saved)
}
