package models

import "strconv"

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is a single transcript entry.
type ChatMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	Reply   string      `json:"reply"`
	Context ContextView `json:"context"`
	Reset   bool        `json:"reset,omitempty"`
}

// UnsetMarker is the explicit placeholder for fields the guest has not
// provided yet. The frontend renders it verbatim.
const UnsetMarker = "N/A"

// ContextViewData carries the reservation fields under the display names the
// frontend expects. Every value is present; unset fields use UnsetMarker.
type ContextViewData struct {
	GuestName          string `json:"guest name"`
	CheckInDate        string `json:"check-in date"`
	CheckOutDate       string `json:"check-out date"`
	NumberOfGuests     string `json:"number of guests"`
	BreakfastInclusion string `json:"breakfast inclusion"`
	PaymentMethod      string `json:"payment method"`
	BookingNumber      string `json:"booking number"`
	Language           string `json:"language"`
}

// ContextView is the presentation projection of a BookingContext. It is a
// pure renaming/shape transform with no additional logic.
type ContextView struct {
	Intent string          `json:"intent"`
	Status string          `json:"status"`
	Data   ContextViewData `json:"data"`
}

// NewContextView projects a booking context into its external view.
func NewContextView(c BookingContext) ContextView {
	return ContextView{
		Intent: orUnset(string(c.LastIntent)),
		Status: orUnset(string(c.Status)),
		Data: ContextViewData{
			GuestName:          orUnset(c.FullName),
			CheckInDate:        orUnset(c.CheckInDate),
			CheckOutDate:       orUnset(c.CheckOutDate),
			NumberOfGuests:     guestCount(c.NumGuests),
			BreakfastInclusion: orUnset(c.BreakfastIncluded),
			PaymentMethod:      orUnset(c.PaymentMethod),
			BookingNumber:      orUnset(c.BookingNumber),
			Language:           orUnset(c.Language),
		},
	}
}

func orUnset(v string) string {
	if v == "" {
		return UnsetMarker
	}
	return v
}

func guestCount(n int) string {
	if n <= 0 {
		return UnsetMarker
	}
	return strconv.Itoa(n)
}
