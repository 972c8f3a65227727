package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/anandbhavan/museum-chatbot-backend/internal/models"
	"github.com/anandbhavan/museum-chatbot-backend/internal/services"
	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// ChatHandler handles inbound chat messages
type ChatHandler struct {
	store    storage.Store
	dialogue *services.DialogueService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(store storage.Store, dialogue *services.DialogueService) *ChatHandler {
	return &ChatHandler{
		store:    store,
		dialogue: dialogue,
	}
}

// ChatMessageRequest is the inbound message payload
type ChatMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// HandleMessage processes one chat message and returns the bot response
func (h *ChatHandler) HandleMessage(c *fiber.Ctx) error {
	var req ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	// Create a session on first contact; afterwards the client sends the ID back
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		if _, err := h.store.CreateSession(sessionID, req.UserID); err != nil {
			log.Printf("❌ Failed to create session: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create session",
			})
		}
	} else if _, err := h.store.GetSession(sessionID); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Session not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load session",
		})
	}

	h.logMessage(sessionID, models.MessageTypeUser, req.Message)

	response, err := h.dialogue.ProcessMessage(sessionID, req.Message)
	if err != nil {
		log.Printf("Error processing message: %v", err)
		response = "❌ Sorry, something went wrong. Please try again."
	}

	h.logMessage(sessionID, models.MessageTypeBot, response)

	return c.JSON(fiber.Map{
		"response":   response,
		"session_id": sessionID,
	})
}

// GetMessages returns the transcript for a session
func (h *ChatHandler) GetMessages(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Session ID is required",
		})
	}

	if _, err := h.store.GetSession(sessionID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	}

	messages, err := h.store.GetMessagesBySession(sessionID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve messages",
		})
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"count":    len(messages),
	})
}

// logMessage appends to the transcript; the log is best-effort and never
// blocks the conversation
func (h *ChatHandler) logMessage(sessionID, messageType, content string) {
	err := h.store.AppendMessage(&models.ChatMessage{
		SessionID:   sessionID,
		MessageType: messageType,
		Content:     content,
	})
	if err != nil {
		log.Printf("⚠️  Failed to log %s message for session %s: %v", messageType, sessionID, err)
	}
}
