package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anandbhavan/museum-chatbot-backend/internal/services"
)

// VerifyHandler handles ticket QR verification requests
type VerifyHandler struct {
	verification *services.VerificationService
}

// NewVerifyHandler creates a new verify handler
func NewVerifyHandler(verification *services.VerificationService) *VerifyHandler {
	return &VerifyHandler{
		verification: verification,
	}
}

// VerifyTicketRequest carries the decoded QR text from a scanner
type VerifyTicketRequest struct {
	QRData string `json:"qr_data"`
}

// VerifyTicket classifies a scanned ticket as valid, expired, future,
// or invalid
func (h *VerifyHandler) VerifyTicket(c *fiber.Ctx) error {
	var req VerifyTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result := h.verification.VerifyTicket(req.QRData)
	return c.JSON(result)
}
