package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parcel-delivery/httpServices/backend"
	"parcel-delivery/logger"
	"parcel-delivery/models/parcel"
	rider_model "parcel-delivery/models/rider"
	tracking_model "parcel-delivery/models/tracking"
	"parcel-delivery/services/metrics"
	"parcel-delivery/services/rider"
)

// Outcome is the result of a confirmed transition. Only the transition decides
// the returned error; a failed tracking append shows up in TrackingErr.
type Outcome struct {
	Parcel      *parcel.Parcel        `json:"parcel"`
	Event       *tracking_model.Event `json:"event,omitempty"`
	TrackingErr error                 `json:"-"`
}

// TrackingFailed reports whether the tracking append failed.
func (o *Outcome) TrackingFailed() bool {
	return o.TrackingErr != nil
}

type Service struct {
	parcels  ParcelStore
	riders   RiderDirectory
	tracking TrackingLog
	now      func() time.Time
}

func NewService(parcels ParcelStore, riders RiderDirectory, tracking TrackingLog) *Service {
	return &Service{
		parcels:  parcels,
		riders:   riders,
		tracking: tracking,
		now:      time.Now,
	}
}

// Assign gives a paid, uncollected parcel to an approved rider serving its pickup area.
func (s *Service) Assign(ctx context.Context, parcelID, riderID, actor string) (*Outcome, error) {
	if strings.TrimSpace(parcelID) == "" || strings.TrimSpace(riderID) == "" {
		return nil, fmt.Errorf("assign rider: %w: parcel and rider are required", ErrInvalidInput)
	}

	p, err := s.load(ctx, "assign", parcelID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(p.DeliveryStatus, parcel.DeliveryRiderAssigned) {
		return nil, s.reject("assign", &TransitionError{ParcelID: p.ID, From: p.DeliveryStatus, To: parcel.DeliveryRiderAssigned})
	}
	if p.PaymentStatus != parcel.PaymentPaid {
		return nil, s.reject("assign", fmt.Errorf("assign rider to %s: %w", p.ID, ErrNotPaid))
	}

	candidates, err := s.riders.AvailableRiders(ctx, p.SenderArea)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("assign").Inc()
		return nil, fmt.Errorf("load riders for %s: %w", p.SenderArea, err)
	}
	chosen := findRider(candidates, riderID)
	if chosen == nil || !rider.IsAssignable(chosen, p.SenderArea) {
		return nil, s.reject("assign", fmt.Errorf("rider %s for area %q: %w", riderID, p.SenderArea, ErrRiderNotEligible))
	}
	if strings.TrimSpace(chosen.Contact) == "" {
		return nil, s.reject("assign", fmt.Errorf("rider %s has no contact number: %w", riderID, ErrRiderNotEligible))
	}

	payload := backend.AssignRiderPayload{
		RiderID:      chosen.ID,
		RiderName:    chosen.Name,
		RiderEmail:   chosen.Email,
		RiderContact: chosen.Contact,
	}
	echoed, err := s.parcels.AssignRider(ctx, p.ID, payload)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("assign").Inc()
		return nil, fmt.Errorf("assign rider to %s: %w", p.ID, err)
	}

	at := s.now()
	updated := confirmed(echoed, p, func(u *parcel.Parcel) {
		u.DeliveryStatus = parcel.DeliveryRiderAssigned
		u.AssignedRiderID = chosen.ID
		u.AssignedRiderName = chosen.Name
		u.AssignedRiderEmail = chosen.Email
		u.AssignedRiderContact = chosen.Contact
		u.AssignedAt = &at
	})
	metrics.TransitionsTotal.WithLabelValues("assign").Inc()
	logger.Success(fmt.Sprintf("Parcel %s assigned to rider %s", p.TrackingID, chosen.Email))

	return s.record(ctx, updated, tracking_model.Event{
		TrackingID:   p.TrackingID,
		Status:       tracking_model.StatusRiderAssigned,
		Details:      fmt.Sprintf("Assigned to %s", chosen.Name),
		Location:     p.SenderArea,
		UpdatedBy:    actor,
		RiderContact: chosen.Contact,
		Timestamp:    at,
	}), nil
}

// PickUp moves an assigned parcel in transit; only the assigned rider may do it.
func (s *Service) PickUp(ctx context.Context, parcelID, riderEmail string) (*Outcome, error) {
	p, err := s.riderStep(ctx, "pickup", parcelID, riderEmail, parcel.DeliveryInTransit)
	if err != nil {
		return nil, err
	}

	echoed, err := s.parcels.MarkPickedUp(ctx, p.ID, riderEmail)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("pickup").Inc()
		return nil, fmt.Errorf("mark %s picked up: %w", p.ID, err)
	}

	at := s.now()
	updated := confirmed(echoed, p, func(u *parcel.Parcel) {
		u.DeliveryStatus = parcel.DeliveryInTransit
		u.PickedUpAt = &at
	})
	metrics.TransitionsTotal.WithLabelValues("pickup").Inc()
	logger.Success(fmt.Sprintf("Parcel %s picked up by %s", p.TrackingID, riderEmail))

	return s.record(ctx, updated, tracking_model.Event{
		TrackingID:   p.TrackingID,
		Status:       tracking_model.StatusPickedUp,
		Details:      "Parcel picked up by rider",
		Location:     p.SenderArea,
		UpdatedBy:    riderEmail,
		RiderContact: p.AssignedRiderContact,
		Timestamp:    at,
	}), nil
}

// Deliver is terminal.
func (s *Service) Deliver(ctx context.Context, parcelID, riderEmail string) (*Outcome, error) {
	p, err := s.riderStep(ctx, "deliver", parcelID, riderEmail, parcel.DeliveryDelivered)
	if err != nil {
		return nil, err
	}

	echoed, err := s.parcels.MarkDelivered(ctx, p.ID, riderEmail)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("deliver").Inc()
		return nil, fmt.Errorf("mark %s delivered: %w", p.ID, err)
	}

	at := s.now()
	updated := confirmed(echoed, p, func(u *parcel.Parcel) {
		u.DeliveryStatus = parcel.DeliveryDelivered
		u.DeliveredAt = &at
		if u.CashoutStatus == "" {
			u.CashoutStatus = parcel.CashoutPending
		}
	})
	metrics.TransitionsTotal.WithLabelValues("deliver").Inc()
	logger.Success(fmt.Sprintf("Parcel %s delivered by %s", p.TrackingID, riderEmail))

	return s.record(ctx, updated, tracking_model.Event{
		TrackingID:   p.TrackingID,
		Status:       tracking_model.StatusDelivered,
		Details:      "Parcel delivered to receiver",
		Location:     p.ReceiverArea,
		UpdatedBy:    riderEmail,
		RiderContact: p.AssignedRiderContact,
		Timestamp:    at,
	}), nil
}

// CashOut is one-way and logs no tracking event.
func (s *Service) CashOut(ctx context.Context, parcelID, riderEmail string) (*Outcome, error) {
	if strings.TrimSpace(parcelID) == "" || strings.TrimSpace(riderEmail) == "" {
		return nil, fmt.Errorf("cash out: %w: parcel and rider are required", ErrInvalidInput)
	}

	p, err := s.load(ctx, "cashout", parcelID)
	if err != nil {
		return nil, err
	}
	if !p.DeliveryStatus.IsCompleted() {
		return nil, s.reject("cashout", fmt.Errorf("cash out %s while %s: %w", p.ID, p.DeliveryStatus, ErrIllegalTransition))
	}
	if !p.IsAssignedTo(riderEmail) {
		return nil, s.reject("cashout", fmt.Errorf("cash out %s: %w", p.ID, ErrNotAssigned))
	}
	if p.CashoutStatus.IsCashedOut() {
		return nil, s.reject("cashout", fmt.Errorf("cash out %s: %w", p.ID, ErrAlreadyCashedOut))
	}

	echoed, err := s.parcels.CashOut(ctx, p.ID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("cashout").Inc()
		return nil, fmt.Errorf("cash out %s: %w", p.ID, err)
	}

	updated := confirmed(echoed, p, func(u *parcel.Parcel) {
		u.CashoutStatus = parcel.CashoutCashedOut
	})
	metrics.TransitionsTotal.WithLabelValues("cashout").Inc()
	logger.Success(fmt.Sprintf("Parcel %s cashed out by %s", p.TrackingID, riderEmail))

	return &Outcome{Parcel: updated}, nil
}

// riderStep loads the parcel and checks status then ownership for a rider action.
func (s *Service) riderStep(ctx context.Context, op, parcelID, riderEmail string, to parcel.DeliveryStatus) (*parcel.Parcel, error) {
	if strings.TrimSpace(parcelID) == "" || strings.TrimSpace(riderEmail) == "" {
		return nil, fmt.Errorf("%s: %w: parcel and rider are required", op, ErrInvalidInput)
	}

	p, err := s.load(ctx, op, parcelID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(p.DeliveryStatus, to) {
		return nil, s.reject(op, &TransitionError{ParcelID: p.ID, From: p.DeliveryStatus, To: to})
	}
	if !p.IsAssignedTo(riderEmail) {
		return nil, s.reject(op, fmt.Errorf("%s %s: %w", op, p.ID, ErrNotAssigned))
	}
	return p, nil
}

// load always re-reads the parcel; the backend may have changed it since the client last looked.
func (s *Service) load(ctx context.Context, op, parcelID string) (*parcel.Parcel, error) {
	p, err := s.parcels.GetParcel(ctx, parcelID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
		return nil, fmt.Errorf("load parcel %s: %w", parcelID, err)
	}
	return p, nil
}

func (s *Service) reject(op string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
	logger.Warning(err.Error())
	return err
}

// record is step two: append the tracking event without touching the step one result.
func (s *Service) record(ctx context.Context, p *parcel.Parcel, event tracking_model.Event) *Outcome {
	out := &Outcome{Parcel: p, Event: &event}
	if s.tracking != nil {
		out.TrackingErr = s.tracking.Log(ctx, event)
	}
	return out
}

// confirmed prefers the backend's echo; on a bare ack it applies the change to a copy of the loaded parcel.
func confirmed(echoed, loaded *parcel.Parcel, apply func(*parcel.Parcel)) *parcel.Parcel {
	if echoed != nil {
		return echoed
	}
	u := *loaded
	apply(&u)
	return &u
}

func findRider(riders []rider_model.Rider, id string) *rider_model.Rider {
	for i := range riders {
		if riders[i].ID == id {
			return &riders[i]
		}
	}
	return nil
}
