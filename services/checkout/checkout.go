package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parcel-delivery/logger"
	"parcel-delivery/models/parcel"
	"parcel-delivery/models/payment"
	"parcel-delivery/services/metrics"
	payment_type "parcel-delivery/types/payment"
)

var (
	ErrNotOwner      = errors.New("parcel belongs to another customer")
	ErrAlreadyPaid   = errors.New("parcel is already paid")
	ErrInvalidAmount = errors.New("parcel has no payable amount")
)

type Store interface {
	GetParcel(ctx context.Context, id string) (*parcel.Parcel, error)
	CreatePaymentIntent(ctx context.Context, amount float64, parcelID string) (*payment.Intent, error)
}

type Service struct {
	store          Store
	publishableKey string
}

func NewService(store Store, publishableKey string) *Service {
	return &Service{store: store, publishableKey: publishableKey}
}

// Start opens a payment intent for the parcel's stored cost. The browser
// confirms the card with the returned client secret; the amount a client
// might send is never used.
func (s *Service) Start(ctx context.Context, parcelID, email string) (*payment_type.CheckoutResponse, error) {
	p, err := s.store.GetParcel(ctx, strings.TrimSpace(parcelID))
	if err != nil {
		return nil, fmt.Errorf("load parcel %s: %w", parcelID, err)
	}
	if !p.IsOwnedBy(email) {
		return nil, ErrNotOwner
	}
	if p.PaymentStatus == parcel.PaymentPaid {
		return nil, fmt.Errorf("checkout %s: %w", p.TrackingID, ErrAlreadyPaid)
	}
	if p.Cost <= 0 {
		return nil, fmt.Errorf("checkout %s: %w", p.TrackingID, ErrInvalidAmount)
	}

	intent, err := s.store.CreatePaymentIntent(ctx, p.Cost, p.ID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("checkout").Inc()
		return nil, fmt.Errorf("create payment intent for %s: %w", p.TrackingID, err)
	}

	logger.Info(fmt.Sprintf("Payment intent opened for %s (৳%.2f)", p.TrackingID, p.Cost))
	return &payment_type.CheckoutResponse{
		ParcelID:       p.ID,
		Amount:         p.Cost,
		ClientSecret:   intent.ClientSecret,
		PublishableKey: s.publishableKey,
	}, nil
}
