package booking

import (
	"context"
	"sync"
	"testing"

	reservationRepo "roomie/database/repository/reservation"
	"roomie/models"
	ai "roomie/services/intelligence"
	"roomie/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testGreeting = "Hello! I'm Roomie. How can I assist you today?"

// memRepo is an in-memory ReservationRepository test double.
type memRepo struct {
	mu      sync.Mutex
	records map[string]models.ReservationRecord
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[string]models.ReservationRecord)}
}

func (r *memRepo) Upsert(_ context.Context, record models.ReservationRecord) error {
	if record.BookingNumber == "" {
		return reservationRepo.ErrInvalidKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.BookingNumber] = record
	return nil
}

func (r *memRepo) Lookup(_ context.Context, bookingNumber, fullName string) (*models.ReservationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[bookingNumber]
	if !ok || record.FullName != fullName {
		return nil, reservationRepo.ErrNotFound
	}
	return &record, nil
}

func (r *memRepo) Delete(_ context.Context, bookingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, bookingNumber)
	return nil
}

// queueExtractor returns scripted candidates in order.
type queueExtractor struct {
	candidates []models.BookingContext
	calls      int
}

func (e *queueExtractor) Extract(context.Context, string, models.BookingContext, string) models.BookingContext {
	if e.calls >= len(e.candidates) {
		return models.BookingContext{Response: ai.FallbackResponse}
	}
	c := e.candidates[e.calls]
	e.calls++
	return c
}

type fakeReminders struct {
	scheduled []models.ReservationRecord
}

func (f *fakeReminders) ScheduleCheckInReminder(_ context.Context, record models.ReservationRecord) error {
	f.scheduled = append(f.scheduled, record)
	return nil
}

func newTestService(extractor ai.Extractor, repo reservationRepo.ReservationRepository) (*DefaultService, *fakeReminders) {
	reminders := &fakeReminders{}
	return &DefaultService{
		Registry:  session.NewRegistry(testGreeting),
		Extractor: extractor,
		Repo:      repo,
		Reminders: reminders,
		Logger:    zap.NewNop(),
	}, reminders
}

func completeCandidate() models.BookingContext {
	return models.BookingContext{
		FullName:          "Jane Doe",
		CheckInDate:       "2026-09-01",
		CheckOutDate:      "2026-09-04",
		NumGuests:         2,
		PaymentMethod:     "paypal",
		BreakfastIncluded: "yes",
		Status:            models.StatusConfirmed,
		LastIntent:        models.IntentConfirm,
		Response:          "All set! Shall I confirm your reservation?",
	}
}

func TestNewSessionReturnsGreeting(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())

	resp, err := svc.HandleTurn(context.Background(), "s1", "hi")
	require.NoError(t, err)
	assert.Equal(t, testGreeting, resp.Reply)
	assert.Equal(t, "draft", resp.Context.Status)
	assert.False(t, resp.Reset)

	history := svc.History("s1")
	require.Len(t, history, 1)
	assert.Equal(t, models.SenderBot, history[0].Sender)
}

func TestTurnAppendsUserAndBotMessages(t *testing.T) {
	extractor := &queueExtractor{candidates: []models.BookingContext{{
		LastIntent: models.IntentBooking,
		Status:     models.StatusDraft,
		FullName:   "Jane Doe",
		Response:   "Thanks Jane! When would you like to check in?",
	}}}
	svc, _ := newTestService(extractor, newMemRepo())

	_, err := svc.HandleTurn(context.Background(), "s1", "hi")
	require.NoError(t, err)
	resp, err := svc.HandleTurn(context.Background(), "s1", "I'd like a room, I'm Jane Doe")
	require.NoError(t, err)

	assert.Equal(t, "Thanks Jane! When would you like to check in?", resp.Reply)
	assert.Equal(t, "Jane Doe", resp.Context.Data.GuestName)

	history := svc.History("s1")
	require.Len(t, history, 3)
	assert.Equal(t, models.SenderUser, history[1].Sender)
	assert.Equal(t, resp.Reply, history[2].Text)
}

func TestConfirmationPersistsReservationAndSchedulesReminder(t *testing.T) {
	repo := newMemRepo()
	extractor := &queueExtractor{candidates: []models.BookingContext{completeCandidate()}}
	svc, reminders := newTestService(extractor, repo)

	_, err := svc.HandleTurn(context.Background(), "s1", "hi")
	require.NoError(t, err)
	resp, err := svc.HandleTurn(context.Background(), "s1", "yes, confirm everything")
	require.NoError(t, err)

	number := resp.Context.Data.BookingNumber
	require.Len(t, number, 3)
	assert.Regexp(t, `^[A-Z0-9]{3}$`, number)
	assert.Equal(t, "confirmed", resp.Context.Status)

	stored, err := repo.Lookup(context.Background(), number, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", stored.CheckInDate)
	assert.Equal(t, models.StatusConfirmed, stored.Status)

	require.Len(t, reminders.scheduled, 1)
	assert.Equal(t, number, reminders.scheduled[0].BookingNumber)
}

func TestResumeByNumberAndNameThenCancel(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Upsert(context.Background(), models.ReservationRecord{
		BookingNumber:     "AB1",
		FullName:          "Jane Doe",
		CheckInDate:       "2026-09-01",
		CheckOutDate:      "2026-09-04",
		NumGuests:         2,
		PaymentMethod:     "card",
		BreakfastIncluded: "no",
		Status:            models.StatusConfirmed,
		Language:          "English",
	}))

	extractor := &queueExtractor{candidates: []models.BookingContext{
		{
			LastIntent:    models.IntentCancel,
			Status:        models.StatusDraft,
			FullName:      "Jane Doe",
			BookingNumber: "AB1",
			Response:      "Let me look that up for you.",
		},
		{
			LastIntent: models.IntentCancel,
			Response:   "Cancelling your reservation now.",
		},
	}}
	svc, _ := newTestService(extractor, repo)

	_, err := svc.HandleTurn(context.Background(), "s1", "hi")
	require.NoError(t, err)

	// Turn 1: enrichment from the store promotes the context so the
	// cancellation can proceed.
	resp, err := svc.HandleTurn(context.Background(), "s1", "cancel booking AB1, I'm Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Context.Status)
	assert.Equal(t, "2026-09-01", resp.Context.Data.CheckInDate)
	assert.False(t, resp.Reset)

	// Turn 2: confirmed + cancel + number → delete and reset.
	resp, err = svc.HandleTurn(context.Background(), "s1", "yes, cancel it")
	require.NoError(t, err)
	assert.True(t, resp.Reset)
	assert.Equal(t, "draft", resp.Context.Status)
	assert.Empty(t, svc.History("s1"))

	_, err = repo.Lookup(context.Background(), "AB1", "Jane Doe")
	assert.ErrorIs(t, err, reservationRepo.ErrNotFound)
}

func TestLookupMissClearsNumberAndAsksAgain(t *testing.T) {
	extractor := &queueExtractor{candidates: []models.BookingContext{{
		LastIntent:    models.IntentModify,
		Status:        models.StatusDraft,
		FullName:      "Jane Doe",
		BookingNumber: "ZZ9",
	}}}
	svc, _ := newTestService(extractor, newMemRepo())

	_, err := svc.HandleTurn(context.Background(), "s1", "hi")
	require.NoError(t, err)
	resp, err := svc.HandleTurn(context.Background(), "s1", "change booking ZZ9 for Jane Doe")
	require.NoError(t, err)

	assert.Contains(t, resp.Reply, "double-check")
	assert.Equal(t, models.UnsetMarker, resp.Context.Data.BookingNumber)
	assert.False(t, resp.Reset)
}

func TestExtractionFallbackIsSurfacedAsApology(t *testing.T) {
	svc, _ := newTestService(&queueExtractor{}, newMemRepo())

	_, err := svc.HandleTurn(context.Background(), "s1", "hi")
	require.NoError(t, err)
	resp, err := svc.HandleTurn(context.Background(), "s1", "qweqweqwe")
	require.NoError(t, err)

	assert.Equal(t, ai.FallbackResponse, resp.Reply)
	assert.Equal(t, "draft", resp.Context.Status)
}

func TestConfirmedInvariantHoldsAfterEveryTurn(t *testing.T) {
	repo := newMemRepo()
	extractor := &queueExtractor{candidates: []models.BookingContext{
		{LastIntent: models.IntentBooking, Status: models.StatusDraft, FullName: "Jane Doe", Response: "Noted."},
		completeCandidate(),
	}}
	svc, _ := newTestService(extractor, repo)

	_, err := svc.HandleTurn(context.Background(), "s1", "hi")
	require.NoError(t, err)
	for _, msg := range []string{"I'm Jane Doe", "confirm it all"} {
		resp, err := svc.HandleTurn(context.Background(), "s1", msg)
		require.NoError(t, err)
		if resp.Context.Status == "confirmed" {
			assert.NotEqual(t, models.UnsetMarker, resp.Context.Data.GuestName)
			assert.NotEqual(t, models.UnsetMarker, resp.Context.Data.CheckInDate)
			assert.NotEqual(t, models.UnsetMarker, resp.Context.Data.CheckOutDate)
			assert.NotEqual(t, models.UnsetMarker, resp.Context.Data.NumberOfGuests)
			assert.NotEqual(t, models.UnsetMarker, resp.Context.Data.PaymentMethod)
			assert.NotEqual(t, models.UnsetMarker, resp.Context.Data.BreakfastInclusion)
			assert.NotEqual(t, models.UnsetMarker, resp.Context.Data.BookingNumber)
		}
	}
}
