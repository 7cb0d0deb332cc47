package payment

import "parcel-delivery/types"

type CheckoutRequest struct {
	ParcelID string `json:"parcel_id" validate:"required,notblank"`
}

func (req *CheckoutRequest) Validate() error {
	return types.Validator().Struct(req)
}

// CheckoutResponse hands the browser what it needs to confirm the card payment.
type CheckoutResponse struct {
	ParcelID       string  `json:"parcel_id"`
	Amount         float64 `json:"amount"`
	ClientSecret   string  `json:"client_secret"`
	PublishableKey string  `json:"publishable_key"`
}
