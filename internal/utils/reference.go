package utils

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewBookingReference generates a booking reference like BK3F2A9C01:
// the "BK" prefix followed by 8 upper-cased hex characters of a random UUID.
func NewBookingReference() string {
	id := uuid.New()
	return "BK" + strings.ToUpper(hex.EncodeToString(id[:4]))
}
