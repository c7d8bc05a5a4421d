package ai

import (
	"context"
	"fmt"

	"roomie/models"
)

// LLMClient is the boundary to the external language model collaborator.
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Extractor turns the conversation so far into a candidate booking context.
// Implementations never mutate session or reservation state; failures are
// absorbed into a degraded candidate carrying only an apology response.
type Extractor interface {
	Extract(ctx context.Context, transcript string, current models.BookingContext, latestInput string) models.BookingContext
}

// ExtractionError describes an extraction attempt that produced no usable
// candidate after all retries.
type ExtractionError struct {
	Attempts int
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
