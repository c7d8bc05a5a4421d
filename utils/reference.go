package utils

import (
	"crypto/rand"
	"fmt"
)

const referenceCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewBookingReference generates a short random booking number drawn from
// uppercase letters and digits. The store's upsert is authoritative on
// collisions.
func NewBookingReference() (string, error) {
	randomBytes := make([]byte, BookingReferenceLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	ref := make([]byte, BookingReferenceLength)
	for i, b := range randomBytes {
		ref[i] = referenceCharset[int(b)%len(referenceCharset)]
	}
	return string(ref), nil
}
