package booking

import (
	"strings"

	"roomie/models"
	"roomie/services/session"
	"roomie/utils"

	"go.uber.org/zap"
)

const identityRequestResponse = "To look up your reservation, could you please provide your full name and your reservation number?"

// rectify enforces the lifecycle invariants on a possibly-noncompliant
// candidate before any side effect occurs. It is the only place that may
// downgrade status. The second return value reports a terminal
// short-circuit: the turn ends here and the executor is not dispatched.
func (s *DefaultService) rectify(token string, sess *session.Session, c models.BookingContext) (models.BookingContext, bool) {
	if !models.ValidIntent(c.LastIntent) {
		s.Logger.Info("rectifier: substituting invalid intent",
			zap.String("session", token), zap.String("intent", string(c.LastIntent)))
		c.LastIntent = models.IntentSmalltalk
	}

	if !models.ValidStatus(c.Status) {
		s.Logger.Info("rectifier: substituting invalid status",
			zap.String("session", token), zap.String("status", string(c.Status)))
		c.Status = models.StatusDraft
	}

	// The extractor is told to clamp guest counts to capacity, but it is not
	// trusted to.
	if c.NumGuests > utils.HotelCapacity {
		c.NumGuests = utils.HotelCapacity
	}
	if c.NumGuests < 0 {
		c.NumGuests = 0
	}
	if c.PaymentMethod != "" && !validPaymentMethod(c.PaymentMethod) {
		s.Logger.Info("rectifier: discarding unknown payment method",
			zap.String("session", token), zap.String("paymentMethod", c.PaymentMethod))
		c.PaymentMethod = ""
	}

	// A modify or cancel request cannot proceed without the identity pair
	// that authenticates reservation ownership.
	if (c.LastIntent == models.IntentModify || c.LastIntent == models.IntentCancel) &&
		(c.FullName == "" || c.BookingNumber == "") {
		c.Response = identityRequestResponse
		sess.SupersedeLastBotMessage(c.Response)
		return c, true
	}

	// The extractor may hallucinate a pending or confirmed status; demote
	// whenever the required fields do not back it up.
	if (c.Status == models.StatusPending || c.Status == models.StatusConfirmed) && !c.RequiredComplete() {
		s.Logger.Info("rectifier: demoting incomplete context to draft",
			zap.String("session", token), zap.String("status", string(c.Status)))
		c.Status = models.StatusDraft
		c.Response = "Before I can confirm your reservation I still need your " +
			strings.Join(c.MissingFields(), ", ") + ". Could you share that with me?"
		sess.SupersedeLastBotMessage(c.Response)
		return c, true
	}

	return c, false
}

func validPaymentMethod(m string) bool {
	for _, p := range models.PaymentMethods {
		if strings.EqualFold(m, p) {
			return true
		}
	}
	return false
}
