package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingReferenceFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^BK[0-9A-F]{8}$`)

	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, NewBookingReference())
	}
}

func TestNewBookingReferenceUniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		ref := NewBookingReference()
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}
