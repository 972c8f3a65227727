package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// MuseumHandler serves static museum content (exhibitions, services, about)
type MuseumHandler struct{}

// NewMuseumHandler creates a new museum handler
func NewMuseumHandler() *MuseumHandler {
	return &MuseumHandler{}
}

// GetInfo returns general museum information
func (h *MuseumHandler) GetInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":    "Anand Bhavan Museum",
		"history": "Founded in 1930s by Indian political leader Motilal Nehru, to serve as the residence of the Nehru family",
		"mission": "To inspire, educate, and remember the memorial of the Nehru family and their contribution to India.",
		"highlights": []string{
			"Over 100,000 artifacts in our collection",
			"State-of-the-art conservation facilities",
			"Regular special exhibitions",
			"Research partnerships with universities",
		},
		"opening_hours": fiber.Map{
			"monday_friday":   "9:00 AM - 6:00 PM",
			"saturday_sunday": "10:00 AM - 4:00 PM",
		},
	})
}

// GetExhibitions returns the featured exhibitions
func (h *MuseumHandler) GetExhibitions(c *fiber.Ctx) error {
	exhibitions := []fiber.Map{
		{
			"title":       "Ancient Civilizations",
			"description": "Explore artifacts from ancient Egypt, Greece, and Rome",
			"image":       "/media/ancientcivilization.jpg",
		},
		{
			"title":       "Modern Art Gallery",
			"description": "Contemporary masterpieces from around the world",
			"image":       "/media/moderart.jpg",
		},
		{
			"title":       "Natural History",
			"description": "Discover the wonders of our natural world",
			"image":       "/media/naturalhistory.jpg",
		},
	}

	return c.JSON(fiber.Map{
		"exhibitions": exhibitions,
		"count":       len(exhibitions),
	})
}

// GetServices returns the museum's visitor services
func (h *MuseumHandler) GetServices(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"guided_tours": fiber.Map{
			"title":       "Guided Tours",
			"description": "Expert-led tours in multiple languages",
			"duration":    "1-2 hours",
			"price":       "25 per person",
		},
		"educational_programs": fiber.Map{
			"title":       "Educational Programs",
			"description": "Interactive learning experiences for schools and groups",
			"age_groups":  "All ages",
			"price":       "Starting at 50 per student",
		},
		"special_events": fiber.Map{
			"title":       "Special Events",
			"description": "Private events, corporate functions, and celebrations",
			"capacity":    "Up to 500 guests",
			"price":       "Custom quotes available",
		},
		"membership": fiber.Map{
			"title":       "Museum Membership",
			"description": "Exclusive access and benefits for members",
			"benefits": []string{
				"Unlimited free admission",
				"Special exhibition previews",
				"Member-only events",
				"Gift shop discounts",
			},
		},
	})
}
