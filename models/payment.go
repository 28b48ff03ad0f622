package models

// PaymentIntentRequest carries what the gateway needs to open a payment for a
// pending booking. Amount is in minor currency units.
type PaymentIntentRequest struct {
	BookingID string
	UserID    string
	Email     string
	Amount    int64
	Currency  string
}

// PaymentIntent is the gateway's handle for an opened payment. The client
// completes it with the ClientSecret; the webhook reports the outcome.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}
