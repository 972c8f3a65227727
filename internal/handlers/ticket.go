package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// TicketHandler handles ticket catalog requests
type TicketHandler struct {
	store storage.Store
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(store storage.Store) *TicketHandler {
	return &TicketHandler{
		store: store,
	}
}

// ListTickets returns the ticket catalog
func (h *TicketHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.store.ListTickets()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve tickets",
		})
	}

	return c.JSON(fiber.Map{
		"tickets": tickets,
		"count":   len(tickets),
	})
}
