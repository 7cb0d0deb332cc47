package payment

import "time"

// Payment is a completed checkout as recorded by the backend.
type Payment struct {
	ID            string    `json:"_id"`
	ParcelID      string    `json:"parcelId"`
	Email         string    `json:"email"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transactionId"`
	PaymentMethod []string  `json:"paymentMethod,omitempty"`
	PaidAt        time.Time `json:"paid_at"`
}

// Intent is the processor intent created by the backend for a parcel.
type Intent struct {
	ClientSecret string `json:"clientSecret"`
}
