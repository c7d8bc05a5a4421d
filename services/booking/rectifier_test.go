package booking

import (
	"testing"

	"roomie/models"
	"roomie/services/session"
	"roomie/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRectifyInvalidStatusBecomesDraft(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}

	out, terminal := svc.rectify("s1", sess, models.BookingContext{
		Status:     "done",
		LastIntent: "book",
	})

	assert.False(t, terminal)
	assert.Equal(t, models.StatusDraft, out.Status)
	assert.Equal(t, models.IntentSmalltalk, out.LastIntent, "unknown intent falls back to smalltalk")
}

func TestRectifyMissingIdentityShortCircuits(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}

	out, terminal := svc.rectify("s1", sess, models.BookingContext{
		Status:     models.StatusConfirmed,
		LastIntent: models.IntentCancel,
	})

	assert.True(t, terminal)
	assert.Contains(t, out.Response, "provide your full name")
	assert.Contains(t, out.Response, "reservation number")
	require.NotEmpty(t, sess.History)
	assert.Equal(t, out.Response, sess.History[len(sess.History)-1].Text)
}

func TestRectifyIdentityShortCircuitSupersedesTrailingBotTurn(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}
	sess.Append("stale bot reply", models.SenderBot)

	out, terminal := svc.rectify("s1", sess, models.BookingContext{
		LastIntent: models.IntentModify,
		FullName:   "Jane Doe",
	})

	assert.True(t, terminal)
	require.Len(t, sess.History, 1, "trailing bot turn must be replaced, not duplicated")
	assert.Equal(t, out.Response, sess.History[0].Text)
}

func TestRectifyDemotesIncompleteConfirmed(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}

	out, terminal := svc.rectify("s1", sess, models.BookingContext{
		Status:        models.StatusConfirmed,
		LastIntent:    models.IntentBooking,
		FullName:      "Jane Doe",
		BookingNumber: "AB1",
		CheckInDate:   "2026-09-01",
	})

	assert.True(t, terminal)
	assert.Equal(t, models.StatusDraft, out.Status)
	assert.Contains(t, out.Response, "check-out date")
	assert.Equal(t, out.Response, sess.History[len(sess.History)-1].Text)
}

func TestRectifyDemotesIncompletePending(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}

	out, terminal := svc.rectify("s1", sess, models.BookingContext{
		Status:     models.StatusPending,
		LastIntent: models.IntentBooking,
	})

	assert.True(t, terminal)
	assert.Equal(t, models.StatusDraft, out.Status)
}

func TestRectifyClampsGuestCount(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}

	out, terminal := svc.rectify("s1", sess, models.BookingContext{
		Status:     models.StatusDraft,
		LastIntent: models.IntentBooking,
		NumGuests:  120,
		Response:   "Noted!",
	})

	assert.False(t, terminal)
	assert.Equal(t, utils.HotelCapacity, out.NumGuests)
}

func TestRectifyDiscardsUnknownPaymentMethod(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}

	out, terminal := svc.rectify("s1", sess, models.BookingContext{
		Status:        models.StatusDraft,
		LastIntent:    models.IntentBooking,
		PaymentMethod: "seashells",
		Response:      "Noted!",
	})

	assert.False(t, terminal)
	assert.Empty(t, out.PaymentMethod)
}

func TestRectifyPassesThroughCompliantCandidate(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())
	sess := &session.Session{}
	candidate := completeCandidate()
	candidate.BookingNumber = "AB1"

	out, terminal := svc.rectify("s1", sess, candidate)

	assert.False(t, terminal)
	assert.Equal(t, candidate, out)
	assert.Empty(t, sess.History, "a pass-through must not touch history")
}
