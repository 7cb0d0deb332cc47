package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"parcel-delivery/logger"
	"parcel-delivery/models/parcel"
	tracking_model "parcel-delivery/models/tracking"
	"parcel-delivery/services/metrics"
	"parcel-delivery/services/pricing"
	"parcel-delivery/types"
	parcel_type "parcel-delivery/types/parcel"
	"parcel-delivery/utils"
)

var (
	ErrInvalidBooking = errors.New("invalid booking")
	ErrNotOwner       = errors.New("parcel belongs to another customer")
	ErrNotDeletable   = errors.New("parcel can no longer be deleted")
)

// FieldError lists every offending field of a form.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid booking: " + strings.Join(parts, "; ")
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidBooking
}

type Store interface {
	CreateParcel(ctx context.Context, p *parcel.Parcel) (string, error)
	GetParcel(ctx context.Context, id string) (*parcel.Parcel, error)
	DeleteParcel(ctx context.Context, id string) (int, error)
}

type TrackingLog interface {
	Log(ctx context.Context, event tracking_model.Event) error
}

// Result of a booking. TrackingErr is informational; the parcel exists either way.
type Result struct {
	Parcel      *parcel.Parcel    `json:"parcel"`
	Pricing     pricing.Breakdown `json:"pricing"`
	TrackingErr error             `json:"-"`
}

type Service struct {
	store    Store
	tracking TrackingLog
	entropy  io.Reader
}

func NewService(store Store, tracking TrackingLog) *Service {
	return &Service{store: store, tracking: tracking}
}

// Estimate prices a shipment for the public calculator.
func Estimate(req *parcel_type.PriceEstimateRequest) (pricing.Breakdown, error) {
	fields := map[string]string{}
	if err := req.Validate(); err != nil {
		msgs := types.ValidationMessages(err)
		if msgs == nil {
			return pricing.Breakdown{}, err
		}
		fields = msgs
	}
	t, ok := parcel.ParseType(req.ParcelType)
	if !ok && req.ParcelType != "" {
		fields["parcel_type"] = "parcel_type must be Document or Non-document"
	}
	if len(fields) > 0 {
		return pricing.Breakdown{}, &FieldError{Fields: fields}
	}
	return pricing.CalculateCost(t, req.Weight, strings.TrimSpace(req.SenderDistrict), strings.TrimSpace(req.ReceiverDistrict))
}

// Book validates, prices and creates the parcel, then logs "Parcel Created".
func (s *Service) Book(ctx context.Context, req *parcel_type.BookParcelRequest, owner string, now time.Time) (*Result, error) {
	owner = utils.NormalizeEmail(owner)
	fields := map[string]string{}
	if err := req.Validate(); err != nil {
		msgs := types.ValidationMessages(err)
		if msgs == nil {
			return nil, err
		}
		fields = msgs
	}
	parcelType, ok := parcel.ParseType(req.ParcelType)
	if !ok && req.ParcelType != "" {
		fields["parcel_type"] = "parcel_type must be Document or Non-document"
	}
	if owner == "" {
		fields["created_by"] = "a signed-in customer is required"
	}
	if len(fields) > 0 {
		return nil, &FieldError{Fields: fields}
	}

	p := &parcel.Parcel{
		ParcelName:       strings.TrimSpace(req.ParcelName),
		ParcelType:       parcelType,
		Weight:           req.Weight,
		SenderName:       strings.TrimSpace(req.SenderName),
		SenderAddress:    strings.TrimSpace(req.SenderAddress),
		SenderPhone:      strings.TrimSpace(req.SenderPhone),
		SenderDistrict:   strings.TrimSpace(req.SenderDistrict),
		SenderArea:       strings.TrimSpace(req.SenderArea),
		ReceiverName:     strings.TrimSpace(req.ReceiverName),
		ReceiverAddress:  strings.TrimSpace(req.ReceiverAddress),
		ReceiverPhone:    strings.TrimSpace(req.ReceiverPhone),
		ReceiverDistrict: strings.TrimSpace(req.ReceiverDistrict),
		ReceiverArea:     strings.TrimSpace(req.ReceiverArea),
		CreatedBy:        owner,
		PaymentStatus:    parcel.PaymentUnpaid,
		DeliveryStatus:   parcel.DeliveryNotCollected,
		CreationDate:     now,
	}

	quote, err := pricing.CalculateCost(p.ParcelType, p.Weight, p.SenderDistrict, p.ReceiverDistrict)
	if err != nil {
		return nil, &FieldError{Fields: map[string]string{"weight": err.Error()}}
	}
	p.Cost = quote.TotalCost

	p.TrackingID, err = utils.GenerateTrackingID(now, s.entropy)
	if err != nil {
		return nil, fmt.Errorf("generate tracking id: %w", err)
	}

	id, err := s.store.CreateParcel(ctx, p)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("book").Inc()
		return nil, fmt.Errorf("create parcel %s: %w", p.TrackingID, err)
	}
	p.ID = id
	metrics.ParcelsBookedTotal.Inc()
	logger.Success(fmt.Sprintf("Parcel %s booked by %s for ৳%.2f", p.TrackingID, owner, p.Cost))

	res := &Result{Parcel: p, Pricing: quote}
	if s.tracking != nil {
		res.TrackingErr = s.tracking.Log(ctx, tracking_model.Event{
			TrackingID: p.TrackingID,
			Status:     tracking_model.StatusParcelCreated,
			Details:    fmt.Sprintf("Created by %s", p.SenderName),
			Location:   p.SenderArea,
			UpdatedBy:  owner,
			Timestamp:  now,
		})
	}
	return res, nil
}

// Delete removes a parcel its owner booked, while it is still deletable.
func (s *Service) Delete(ctx context.Context, id, owner string) error {
	p, err := s.store.GetParcel(ctx, id)
	if err != nil {
		return fmt.Errorf("load parcel %s: %w", id, err)
	}
	if !p.IsOwnedBy(owner) {
		return ErrNotOwner
	}
	if !p.IsDeletable() {
		return fmt.Errorf("parcel %s is %s/%s: %w", p.TrackingID, p.PaymentStatus, p.DeliveryStatus, ErrNotDeletable)
	}

	deleted, err := s.store.DeleteParcel(ctx, id)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("delete_parcel").Inc()
		return fmt.Errorf("delete parcel %s: %w", id, err)
	}
	if deleted == 0 {
		logger.Warning(fmt.Sprintf("Parcel %s was already gone at the backend", id))
	}
	return nil
}
