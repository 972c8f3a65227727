package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/anandbhavan/museum-chatbot-backend/internal/handlers"
	"github.com/anandbhavan/museum-chatbot-backend/internal/middleware"
	"github.com/anandbhavan/museum-chatbot-backend/internal/services"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, store storage.Store, dialogue *services.DialogueService, sessions *services.SessionManager) {

	chatHandler := handlers.NewChatHandler(store, dialogue)
	verifyHandler := handlers.NewVerifyHandler(services.NewVerificationService(store))
	ticketHandler := handlers.NewTicketHandler(store)
	bookingHandler := handlers.NewBookingHandler(store)
	museumHandler := handlers.NewMuseumHandler()
	adminHandler := handlers.NewAdminHandler(store, sessions)

	// API routes
	api := app.Group("/api")

	// Chat routes
	chat := api.Group("/chat")
	chat.Post("/message", chatHandler.HandleMessage)

	// Session transcript
	api.Get("/sessions/:id/messages", chatHandler.GetMessages)

	// Ticket catalog and verification
	tickets := api.Group("/tickets")
	tickets.Get("/", ticketHandler.ListTickets)
	tickets.Post("/verify", verifyHandler.VerifyTicket)

	// Booking read side
	bookings := api.Group("/bookings")
	bookings.Get("/", bookingHandler.GetBookings)
	bookings.Get("/:reference", bookingHandler.GetBooking)

	// Museum content
	museum := api.Group("/museum")
	museum.Get("/info", museumHandler.GetInfo)
	museum.Get("/exhibitions", museumHandler.GetExhibitions)
	museum.Get("/services", museumHandler.GetServices)

	// QR ticket images
	app.Static("/media", "./media")

	// ========== ADMIN ROUTES ==========
	admin := app.Group("/admin", middleware.RequireAdminKey())
	admin.Get("/overview", adminHandler.Overview)
	admin.Get("/bookings", adminHandler.ListBookings)
}
