package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// BookingHandler handles booking read requests. Bookings are only created
// through the chat flow; this is the read side for visitors and staff.
type BookingHandler struct {
	store storage.Store
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(store storage.Store) *BookingHandler {
	return &BookingHandler{
		store: store,
	}
}

// GetBooking retrieves a booking by reference
func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	reference := c.Params("reference")
	if reference == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Booking reference is required",
		})
	}

	booking, err := h.store.GetBookingByReference(reference)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Booking not found",
		})
	}

	return c.JSON(booking)
}

// GetBookings retrieves bookings, optionally filtered by email
func (h *BookingHandler) GetBookings(c *fiber.Ctx) error {
	var bookings []*models.ChatBooking
	var err error

	if email := c.Query("email"); email != "" {
		bookings, err = h.store.GetBookingsByEmail(email)
	} else {
		bookings, err = h.store.GetAllBookings()
	}

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
