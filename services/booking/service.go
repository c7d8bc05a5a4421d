package booking

import (
	"context"

	"roomie/database/repository/reservation"
	"roomie/models"
	ai "roomie/services/intelligence"
	"roomie/services/session"

	"go.uber.org/zap"
)

// ReminderScheduler schedules a pre-arrival reminder for a confirmed
// reservation. Scheduling failures are logged, never fatal.
type ReminderScheduler interface {
	ScheduleCheckInReminder(ctx context.Context, record models.ReservationRecord) error
}

// Service is the per-request entry point for conversational turns.
type Service interface {
	HandleTurn(ctx context.Context, token, message string) (*models.ChatResponse, error)
	History(token string) []models.ChatMessage
}

// DefaultService composes the session registry, the extractor adapter, the
// rectifier and the lifecycle executor into the per-turn pipeline.
type DefaultService struct {
	Registry  *session.Registry
	Extractor ai.Extractor
	Repo      reservationRepo.ReservationRepository
	Reminders ReminderScheduler
	Logger    *zap.Logger
}

// HandleTurn runs one conversational turn for (token, message). A brand-new
// token gets the canonical greeting without invoking extraction. Otherwise
// the turn is extract → rectify → execute under the session's lock, and the
// rectified context is persisted back into the session.
func (s *DefaultService) HandleTurn(ctx context.Context, token, message string) (*models.ChatResponse, error) {
	sess, created := s.Registry.GetOrCreate(token)
	if created {
		sess.Lock()
		defer sess.Unlock()
		s.Logger.Info("new session, sending greeting", zap.String("session", token))
		return &models.ChatResponse{
			Reply:   sess.History[0].Text,
			Context: models.NewContextView(sess.Context),
		}, nil
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Append(message, models.SenderUser)
	transcript := sess.Transcript()

	candidate := s.Extractor.Extract(ctx, transcript, sess.Context, message)
	merged := sess.Context.MergedWith(candidate)

	rectified, terminal := s.rectify(token, sess, merged)
	if terminal {
		sess.Context = rectified
		return &models.ChatResponse{
			Reply:   rectified.Response,
			Context: models.NewContextView(rectified),
		}, nil
	}

	result, err := s.executeActions(ctx, token, sess, rectified)
	if err != nil {
		return nil, err
	}

	sess.Context = result.Context
	if result.Reply == "" {
		// The response must be non-empty whenever it reaches the caller.
		result.Reply = genericFallbackResponse
	}
	if !result.Reset {
		sess.Append(result.Reply, models.SenderBot)
	}

	return &models.ChatResponse{
		Reply:   result.Reply,
		Context: models.NewContextView(result.Context),
		Reset:   result.Reset,
	}, nil
}

// History returns the transcript for token, empty for unknown tokens.
func (s *DefaultService) History(token string) []models.ChatMessage {
	return s.Registry.History(token)
}
