package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anandbhavan/museum-chatbot-backend/internal/services"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// AdminHandler handles admin monitoring requests
type AdminHandler struct {
	store    storage.Store
	sessions *services.SessionManager
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store storage.Store, sessions *services.SessionManager) *AdminHandler {
	return &AdminHandler{
		store:    store,
		sessions: sessions,
	}
}

// Overview returns record counts and session statistics
func (h *AdminHandler) Overview(c *fiber.Ctx) error {
	ticketCount, _ := h.store.CountTickets()
	sessionCount, _ := h.store.CountSessions()
	bookingCount, _ := h.store.CountBookings()

	return c.JSON(fiber.Map{
		"tickets":  ticketCount,
		"sessions": sessionCount,
		"bookings": bookingCount,
		"session_stats": h.sessions.GetSessionStats(),
	})
}

// ListBookings returns all bookings for the admin dashboard
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	bookings, err := h.store.GetAllBookings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve bookings",
		})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"count":    len(bookings),
	})
}
