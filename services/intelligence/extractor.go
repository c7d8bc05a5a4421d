package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"roomie/models"
	"roomie/utils"

	"go.uber.org/zap"
)

// extractionRetries is the number of additional attempts after a failed
// extraction, each with an explicit correction instruction appended.
const extractionRetries = 2

// DefaultExtractor implements Extractor on top of an LLMClient.
type DefaultExtractor struct {
	LLM LLMClient
}

func NewDefaultExtractor(llm LLMClient) *DefaultExtractor {
	return &DefaultExtractor{LLM: llm}
}

// Extract asks the language model for an updated booking state and parses its
// answer. Malformed output is retried with a correction instruction; once
// retries are exhausted the degraded fallback candidate is returned, so the
// caller never sees a hard error.
func (e *DefaultExtractor) Extract(ctx context.Context, transcript string, current models.BookingContext, latestInput string) models.BookingContext {
	logger := utils.GetLogger()
	prompt := buildBookingStatePrompt(transcript, current, latestInput, utils.HotelCapacity)

	var lastErr error
	for attempt := 1; attempt <= 1+extractionRetries; attempt++ {
		raw, err := e.LLM.GenerateContent(ctx, prompt)
		if err != nil {
			lastErr = err
			logger.Warn("extractor: LLM call failed",
				zap.Int("attempt", attempt), zap.Error(err))
			prompt += "\n\n" + correctionInstruction
			continue
		}

		candidate, err := parseCandidate(raw)
		if err != nil {
			lastErr = err
			logger.Warn("extractor: candidate did not parse",
				zap.Int("attempt", attempt), zap.Error(err))
			prompt += "\n\n" + correctionInstruction
			continue
		}
		return candidate
	}

	extErr := &ExtractionError{Attempts: 1 + extractionRetries, Err: lastErr}
	logger.Warn("extractor: giving up, returning fallback candidate", zap.Error(extErr))
	return models.BookingContext{Response: FallbackResponse}
}

// parseCandidate decodes the model's raw answer into a candidate context.
// Code fences are stripped first; models occasionally add them despite the
// prompt's instructions.
func parseCandidate(raw string) (models.BookingContext, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var candidate models.BookingContext
	if err := json.Unmarshal([]byte(cleaned), &candidate); err != nil {
		return models.BookingContext{}, fmt.Errorf("decode candidate: %w", err)
	}
	return candidate, nil
}

// VerifyAvailability probes the language model with a trivial prompt until it
// answers, retrying with a delay. Used at startup so the service does not
// come up without its collaborator.
func VerifyAvailability(ctx context.Context, llm LLMClient) error {
	const maxRetries = 5
	const retryDelay = 3 * time.Second
	logger := utils.GetLogger()

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		logger.Sugar().Infof("Checking LLM availability... (attempt %d/%d)", attempt, maxRetries)
		reply, err := llm.GenerateContent(ctx, "Hello")
		if err == nil && reply != "" {
			logger.Info("LLM is available and ready to process requests")
			return nil
		}
		lastErr = err
		time.Sleep(retryDelay)
	}
	return fmt.Errorf("LLM unavailable after %d attempts: %w", maxRetries, lastErr)
}
