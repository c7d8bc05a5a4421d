package models

// Status is the lifecycle state of a booking context.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// ValidStatus reports whether s is a member of the closed status enumeration.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusConfirmed:
		return true
	}
	return false
}

// Intent classifies the most recent user turn.
type Intent string

const (
	IntentBooking   Intent = "booking"
	IntentModify    Intent = "modify"
	IntentCancel    Intent = "cancel"
	IntentConfirm   Intent = "confirm"
	IntentReset     Intent = "reset"
	IntentSmalltalk Intent = "smalltalk"
)

// ValidIntent reports whether i is a member of the closed intent enumeration.
func ValidIntent(i Intent) bool {
	switch i {
	case IntentBooking, IntentModify, IntentCancel, IntentConfirm, IntentReset, IntentSmalltalk:
		return true
	}
	return false
}

// PaymentMethods is the closed set of accepted payment methods.
var PaymentMethods = []string{"cash", "card", "credit", "paypal", "bitcoin"}

// BookingContext is the structured, evolving record of reservation fields plus
// lifecycle metadata for one session. Empty string / zero int means "not yet
// provided"; breakfast_included is tri-state ("yes", "no", "" for unknown).
type BookingContext struct {
	BookingNumber     string `json:"booking_number,omitempty"`
	FullName          string `json:"full_name,omitempty"`
	CheckInDate       string `json:"check_in_date,omitempty"`
	CheckOutDate      string `json:"check_out_date,omitempty"`
	NumGuests         int    `json:"num_guests,omitempty"`
	PaymentMethod     string `json:"payment_method,omitempty"`
	BreakfastIncluded string `json:"breakfast_included,omitempty"`
	Status            Status `json:"status,omitempty"`
	LastIntent        Intent `json:"last_intent,omitempty"`
	Language          string `json:"language,omitempty"`
	Response          string `json:"response,omitempty"`
}

// RequiredComplete reports whether all six required reservation fields are set.
func (c BookingContext) RequiredComplete() bool {
	return c.FullName != "" &&
		c.CheckInDate != "" &&
		c.CheckOutDate != "" &&
		c.NumGuests > 0 &&
		c.PaymentMethod != "" &&
		c.BreakfastIncluded != ""
}

// MissingFields lists the required reservation fields that are still unset,
// in the order the assistant collects them.
func (c BookingContext) MissingFields() []string {
	var missing []string
	if c.FullName == "" {
		missing = append(missing, "full name")
	}
	if c.CheckInDate == "" {
		missing = append(missing, "check-in date")
	}
	if c.CheckOutDate == "" {
		missing = append(missing, "check-out date")
	}
	if c.NumGuests <= 0 {
		missing = append(missing, "number of guests")
	}
	if c.PaymentMethod == "" {
		missing = append(missing, "payment method")
	}
	if c.BreakfastIncluded == "" {
		missing = append(missing, "breakfast preference")
	}
	return missing
}

// MergedWith applies a candidate update onto the current context. Prior
// non-empty values persist unless the candidate supplies a new one. The
// booking number is immutable once assigned, and a confirmed status is never
// overwritten by a candidate (only the cancel path in the executor may end a
// confirmed booking).
func (c BookingContext) MergedWith(candidate BookingContext) BookingContext {
	merged := c

	if c.BookingNumber == "" {
		merged.BookingNumber = candidate.BookingNumber
	}
	if candidate.FullName != "" {
		merged.FullName = candidate.FullName
	}
	if candidate.CheckInDate != "" {
		merged.CheckInDate = candidate.CheckInDate
	}
	if candidate.CheckOutDate != "" {
		merged.CheckOutDate = candidate.CheckOutDate
	}
	if candidate.NumGuests > 0 {
		merged.NumGuests = candidate.NumGuests
	}
	if candidate.PaymentMethod != "" {
		merged.PaymentMethod = candidate.PaymentMethod
	}
	if candidate.BreakfastIncluded != "" {
		merged.BreakfastIncluded = candidate.BreakfastIncluded
	}
	if candidate.Status != "" && c.Status != StatusConfirmed {
		merged.Status = candidate.Status
	}
	if candidate.LastIntent != "" {
		merged.LastIntent = candidate.LastIntent
	}
	if candidate.Language != "" {
		merged.Language = candidate.Language
	}
	merged.Response = candidate.Response

	return merged
}

// ReservationRecord is the durable projection of a BookingContext, keyed by
// booking number. It carries every context field except last_intent and
// response.
type ReservationRecord struct {
	BookingNumber     string `bson:"booking_number" json:"booking_number"`
	FullName          string `bson:"full_name" json:"full_name"`
	CheckInDate       string `bson:"check_in_date" json:"check_in_date"`
	CheckOutDate      string `bson:"check_out_date" json:"check_out_date"`
	NumGuests         int    `bson:"num_guests" json:"num_guests"`
	PaymentMethod     string `bson:"payment_method" json:"payment_method"`
	BreakfastIncluded string `bson:"breakfast_included" json:"breakfast_included"`
	Status            Status `bson:"status" json:"status"`
	Language          string `bson:"language" json:"language"`
}

// RecordFromContext projects a context onto its durable form.
func RecordFromContext(c BookingContext) ReservationRecord {
	return ReservationRecord{
		BookingNumber:     c.BookingNumber,
		FullName:          c.FullName,
		CheckInDate:       c.CheckInDate,
		CheckOutDate:      c.CheckOutDate,
		NumGuests:         c.NumGuests,
		PaymentMethod:     c.PaymentMethod,
		BreakfastIncluded: c.BreakfastIncluded,
		Status:            c.Status,
		Language:          c.Language,
	}
}

// FillFrom copies stored reservation values into still-empty context fields.
// Values already present in the context are never overwritten.
func (c *BookingContext) FillFrom(r ReservationRecord) {
	if c.FullName == "" {
		c.FullName = r.FullName
	}
	if c.CheckInDate == "" {
		c.CheckInDate = r.CheckInDate
	}
	if c.CheckOutDate == "" {
		c.CheckOutDate = r.CheckOutDate
	}
	if c.NumGuests <= 0 {
		c.NumGuests = r.NumGuests
	}
	if c.PaymentMethod == "" {
		c.PaymentMethod = r.PaymentMethod
	}
	if c.BreakfastIncluded == "" {
		c.BreakfastIncluded = r.BreakfastIncluded
	}
	if c.Language == "" {
		c.Language = r.Language
	}
}
