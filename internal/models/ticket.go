package models

import (
	"gorm.io/gorm"
)

// Ticket represents a purchasable ticket type in the museum catalog
type Ticket struct {
	gorm.Model
	TicketType  string  `json:"ticket_type" gorm:"uniqueIndex;not null"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Ticket type constants
const (
	TicketTypeAdult   = "ADULT"
	TicketTypeChild   = "CHILD"
	TicketTypeSenior  = "SENIOR"
	TicketTypeStudent = "STUDENT"
)

// DefaultTickets returns the catalog seeded when no tickets exist yet
func DefaultTickets() []Ticket {
	return []Ticket{
		{TicketType: TicketTypeAdult, Price: 100.00, Description: "Adult ticket (age 18-64)"},
		{TicketType: TicketTypeChild, Price: 20.00, Description: "Child ticket (age 5-17)"},
		{TicketType: TicketTypeSenior, Price: 20.00, Description: "Senior ticket (age 65+)"},
		{TicketType: TicketTypeStudent, Price: 50.00, Description: "Student ticket (with valid ID)"},
	}
}
