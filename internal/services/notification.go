package services

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

const museumName = "Anand Bhavan Museum"

var (
	notificationServiceInstance *NotificationService
	notificationServiceOnce     sync.Once
)

// SetNotificationService sets the global notification service instance
func SetNotificationService(ns *NotificationService) {
	notificationServiceInstance = ns
}

// GetNotificationService returns the global notification service instance
func GetNotificationService() *NotificationService {
	notificationServiceOnce.Do(func() {
		if notificationServiceInstance == nil {
			log.Println("Warning: NotificationService not initialized. Creating new instance.")
			notificationServiceInstance = NewNotificationService(storage.GetStore())
		}
	})
	return notificationServiceInstance
}

// NotificationService sends booking confirmation emails with the QR ticket
// attached. Without a Resend API key it degrades to logging only.
type NotificationService struct {
	store    storage.Store
	client   *resend.Client
	from     string
	mediaDir string
}

// NewNotificationService creates a new notification service
func NewNotificationService(store storage.Store) *NotificationService {
	apiKey := os.Getenv("RESEND_API_KEY")

	var client *resend.Client
	if apiKey == "" {
		log.Println("⚠️  RESEND_API_KEY not set - confirmation emails will not be sent")
	} else {
		client = resend.NewClient(apiKey)
	}

	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = "Anand Bhavan Museum <bookings@anandbhavan.example.com>"
	}

	mediaDir := os.Getenv("MEDIA_DIR")
	if mediaDir == "" {
		mediaDir = "media"
	}

	return &NotificationService{
		store:    store,
		client:   client,
		from:     from,
		mediaDir: mediaDir,
	}
}

// SendConfirmation generates the QR ticket, stores it, and emails the booking
// confirmation. The caller treats any error as "notification failed"; the
// booking itself is already persisted.
func (n *NotificationService) SendConfirmation(booking *models.ChatBooking) error {
	png, err := GenerateTicketQR(booking)
	if err != nil {
		return err
	}

	qrURL, err := SaveTicketQR(n.mediaDir, booking.BookingReference, png)
	if err != nil {
		log.Printf("⚠️  Failed to save QR image for %s: %v", booking.BookingReference, err)
	} else {
		booking.QRCodeURL = qrURL
		if err := n.store.UpdateChatBooking(booking); err != nil {
			log.Printf("⚠️  Failed to record QR URL for %s: %v", booking.BookingReference, err)
		}
	}

	if n.client == nil {
		return fmt.Errorf("email service not configured")
	}

	params := &resend.SendEmailRequest{
		From:    n.from,
		To:      []string{booking.Email},
		Subject: fmt.Sprintf("%s - Booking Confirmation - %s", museumName, booking.BookingReference),
		Html:    n.confirmationHTML(booking),
		Attachments: []*resend.Attachment{
			{
				Filename:    fmt.Sprintf("qr_code_%s.png", booking.BookingReference),
				Content:     png,
				ContentType: "image/png",
			},
		},
	}

	sent, err := n.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	log.Printf("✅ Confirmation email sent to %s (id: %s)", booking.Email, sent.Id)
	return nil
}

// confirmationHTML renders the email body
func (n *NotificationService) confirmationHTML(booking *models.ChatBooking) string {
	return fmt.Sprintf(`<h2>%s - Booking Confirmation</h2>
<p>Dear %s,</p>
<p>Thank you for your booking. Your tickets are confirmed!</p>
<table>
  <tr><td><strong>Booking Reference</strong></td><td>%s</td></tr>
  <tr><td><strong>Ticket Type</strong></td><td>%s</td></tr>
  <tr><td><strong>Quantity</strong></td><td>%d</td></tr>
  <tr><td><strong>Visit Date</strong></td><td>%s</td></tr>
  <tr><td><strong>Total Amount</strong></td><td>$%.2f</td></tr>
</table>
<p>Your QR code ticket is attached. Please present it when you arrive at the museum.</p>
<p>We look forward to your visit!</p>`,
		museumName, booking.Name, booking.BookingReference, booking.TicketType,
		booking.Quantity, booking.VisitDate, booking.TotalAmount)
}
