package booking

import (
	"context"
	"errors"
	"fmt"

	"roomie/database/repository/reservation"
	"roomie/models"
	"roomie/services/session"
	"roomie/utils"

	"go.uber.org/zap"
)

const genericFallbackResponse = "I'm here to help with your reservation. " +
	"You can book a stay, modify an existing reservation, or cancel one — what would you like to do?"

// turnResult is the outcome of dispatching one rectified context.
type turnResult struct {
	Context models.BookingContext
	Reply   string
	Reset   bool
}

// actionRule is one row of the lifecycle dispatch table. Rules are evaluated
// top to bottom and the first matching guard wins; later rules are not
// evaluated once one fires.
type actionRule struct {
	name  string
	guard func(c models.BookingContext) bool
	apply func(ctx context.Context, token string, sess *session.Session, c models.BookingContext) (turnResult, error)
}

// executeActions dispatches the rectified context through the ordered rule
// table. This is the only place that mutates the reservation store.
func (s *DefaultService) executeActions(ctx context.Context, token string, sess *session.Session, c models.BookingContext) (turnResult, error) {
	for _, rule := range s.rules() {
		if rule.guard(c) {
			s.Logger.Debug("executor: rule fired",
				zap.String("session", token), zap.String("rule", rule.name))
			return rule.apply(ctx, token, sess, c)
		}
	}
	// No rule fired and a response is already present; pass through.
	return turnResult{Context: c, Reply: c.Response}, nil
}

func (s *DefaultService) rules() []actionRule {
	return []actionRule{
		{
			name:  "reset",
			guard: func(c models.BookingContext) bool { return c.LastIntent == models.IntentReset },
			apply: s.applyReset,
		},
		{
			name: "enrich-from-store",
			guard: func(c models.BookingContext) bool {
				return c.BookingNumber != "" && c.FullName != "" && !c.RequiredComplete()
			},
			apply: s.applyEnrichment,
		},
		{
			name: "cancel",
			guard: func(c models.BookingContext) bool {
				return c.Status == models.StatusConfirmed && c.LastIntent == models.IntentCancel && c.BookingNumber != ""
			},
			apply: s.applyCancellation,
		},
		{
			name: "persist",
			guard: func(c models.BookingContext) bool {
				return c.Status == models.StatusConfirmed && c.RequiredComplete() && c.LastIntent != models.IntentCancel
			},
			apply: s.applyPersistence,
		},
		{
			name:  "fallback-response",
			guard: func(c models.BookingContext) bool { return c.Response == "" },
			apply: func(_ context.Context, _ string, _ *session.Session, c models.BookingContext) (turnResult, error) {
				c.Response = genericFallbackResponse
				return turnResult{Context: c, Reply: c.Response}, nil
			},
		},
	}
}

// applyReset clears the session entirely and reports the reset to the caller.
func (s *DefaultService) applyReset(_ context.Context, token string, sess *session.Session, c models.BookingContext) (turnResult, error) {
	s.Logger.Info("executor: resetting session", zap.String("session", token))
	reply := c.Response
	if reply == "" {
		reply = "Alright, I've cleared everything. How can I help you now?"
	}
	sess.Clear()
	return turnResult{Context: sess.Context, Reply: reply, Reset: true}, nil
}

// applyEnrichment re-attaches the session to a stored reservation by number
// and name, filling only still-empty fields. Stored values never overwrite
// values already present in the context.
func (s *DefaultService) applyEnrichment(ctx context.Context, token string, sess *session.Session, c models.BookingContext) (turnResult, error) {
	record, err := s.Repo.Lookup(ctx, c.BookingNumber, c.FullName)
	if errors.Is(err, reservationRepo.ErrNotFound) {
		s.Logger.Info("executor: reservation lookup miss",
			zap.String("session", token), zap.String("bookingNumber", c.BookingNumber))
		c.BookingNumber = ""
		c.Response = "I couldn't find a reservation under that number and name. Could you please double-check your details?"
		return turnResult{Context: c, Reply: c.Response}, nil
	}
	if err != nil {
		return turnResult{}, fmt.Errorf("reservation lookup: %w", err)
	}

	c.FillFrom(*record)
	if c.LastIntent == models.IntentCancel && c.RequiredComplete() {
		// Promote so the cancellation can proceed on the next matching turn.
		c.Status = models.StatusConfirmed
	}
	if c.Response == "" {
		c.Response = fmt.Sprintf("I found your reservation %s and filled in the details on file. What would you like to do with it?", c.BookingNumber)
	}
	return turnResult{Context: c, Reply: c.Response}, nil
}

// applyCancellation deletes the stored reservation and clears the session.
func (s *DefaultService) applyCancellation(ctx context.Context, token string, sess *session.Session, c models.BookingContext) (turnResult, error) {
	if err := s.Repo.Delete(ctx, c.BookingNumber); err != nil {
		return turnResult{}, fmt.Errorf("cancel reservation: %w", err)
	}
	s.Logger.Info("executor: reservation cancelled",
		zap.String("session", token), zap.String("bookingNumber", c.BookingNumber))

	reply := c.Response
	if reply == "" {
		reply = fmt.Sprintf("Your reservation %s has been cancelled. I hope to welcome you another time!", c.BookingNumber)
	}
	sess.Clear()
	return turnResult{Context: sess.Context, Reply: reply, Reset: true}, nil
}

// applyPersistence assigns a booking number when absent and upserts the
// confirmed reservation. An unkeyed upsert is a programming error upstream
// and propagates as fatal for the request.
func (s *DefaultService) applyPersistence(ctx context.Context, token string, _ *session.Session, c models.BookingContext) (turnResult, error) {
	if c.BookingNumber == "" {
		ref, err := utils.NewBookingReference()
		if err != nil {
			return turnResult{}, fmt.Errorf("assign booking reference: %w", err)
		}
		c.BookingNumber = ref
	}

	record := models.RecordFromContext(c)
	if err := s.Repo.Upsert(ctx, record); err != nil {
		return turnResult{}, fmt.Errorf("persist reservation: %w", err)
	}
	s.Logger.Info("executor: reservation persisted",
		zap.String("session", token), zap.String("bookingNumber", c.BookingNumber))

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleCheckInReminder(ctx, record); err != nil {
			// The reservation is already durable; a missed reminder is not
			// worth failing the turn over.
			s.Logger.Warn("executor: failed to schedule check-in reminder",
				zap.String("bookingNumber", c.BookingNumber), zap.Error(err))
		}
	}

	if c.Response == "" {
		c.Response = fmt.Sprintf("Your reservation is confirmed! Your booking number is %s — please keep it for any changes later on.", c.BookingNumber)
	}
	return turnResult{Context: c, Reply: c.Response}, nil
}
