package models

// BookingQuote is returned when a booking is created: the pending record, the
// opened payment and the payment-hold message shown to the customer.
type BookingQuote struct {
	Booking *Booking       `json:"booking"`
	Payment *PaymentIntent `json:"payment,omitempty"`
	Message string         `json:"message"`
}

// SweepReport summarizes one expiry sweep run.
type SweepReport struct {
	StalePending     int `json:"stale_pending"`
	PastDueConfirmed int `json:"past_due_confirmed"`
	Skipped          int `json:"skipped"`
}
