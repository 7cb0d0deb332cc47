package backend

import (
	"context"
	"fmt"
	"net/url"

	"parcel-delivery/models/payment"
)

type paymentIntentRequest struct {
	Amount   float64 `json:"amount"`
	ParcelID string  `json:"parcelId"`
}

// CreatePaymentIntent asks the backend to open a processor intent for a parcel.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount float64, parcelID string) (*payment.Intent, error) {
	var intent payment.Intent
	if err := c.post(ctx, "/create-payment-intent", paymentIntentRequest{Amount: amount, ParcelID: parcelID}, &intent); err != nil {
		return nil, err
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("create payment intent: %w: empty client secret", ErrPayment)
	}
	return &intent, nil
}

func (c *Client) Payments(ctx context.Context, email string) ([]payment.Payment, error) {
	var payments []payment.Payment
	if err := c.get(ctx, "/payments", url.Values{"email": {email}}, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
