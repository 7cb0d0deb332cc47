package rider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"parcel-delivery/logger"
	rider_model "parcel-delivery/models/rider"
	"parcel-delivery/types"
	rider_type "parcel-delivery/types/rider"
)

var ErrInvalidApplication = errors.New("invalid rider application")

// ApplicationError lists every offending field of an application.
type ApplicationError struct {
	Fields map[string]string
}

func (e *ApplicationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "invalid rider application: " + strings.Join(parts, "; ")
}

func (e *ApplicationError) Unwrap() error {
	return ErrInvalidApplication
}

// ValidateApplication checks the form before anything reaches the backend.
func ValidateApplication(req *rider_type.ApplyRequest) error {
	fields := map[string]string{}
	if err := req.Validate(); err != nil {
		msgs := types.ValidationMessages(err)
		if msgs == nil {
			return err
		}
		for k, v := range msgs {
			fields[k] = v
		}
	}

	vehicle := rider_model.VehicleType(req.VehicleType)
	if vehicle.RequiresRegistration() && strings.TrimSpace(req.VehicleRegistration) == "" {
		fields["vehicle_registration"] = "vehicle_registration is required for " + req.VehicleType
	}
	if strings.TrimSpace(req.Warehouse) != "" && len(normalizeAreas(req.Areas)) == 0 {
		fields["areas"] = "choose at least one area served by the warehouse"
	}

	if len(fields) > 0 {
		return &ApplicationError{Fields: fields}
	}
	return nil
}

// normalizeAreas trims and drops case-insensitive duplicates, keeping order.
func normalizeAreas(areas []string) []string {
	seen := make(map[string]bool, len(areas))
	out := make([]string, 0, len(areas))
	for _, a := range areas {
		a = strings.TrimSpace(a)
		key := strings.ToLower(a)
		if a == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, a)
	}
	return out
}

// IsAssignable: approved riders serving the parcel's pickup area.
func IsAssignable(r *rider_model.Rider, area string) bool {
	return r != nil && r.Status == rider_model.StatusApproved && r.Serves(area)
}

// FilterAvailable keeps only assignable riders, whatever the backend returned.
func FilterAvailable(riders []rider_model.Rider, area string) []rider_model.Rider {
	out := make([]rider_model.Rider, 0, len(riders))
	for i := range riders {
		if IsAssignable(&riders[i], area) {
			out = append(out, riders[i])
		}
	}
	return out
}

// Store is the backend side of rider onboarding.
type Store interface {
	CreateRider(ctx context.Context, r *rider_model.Rider) (string, error)
}

// Applicant is the signed-in account submitting the form.
type Applicant struct {
	UID   string
	Email string
}

type Onboarding struct {
	store Store
	now   func() time.Time
}

func NewOnboarding(store Store) *Onboarding {
	return &Onboarding{store: store, now: time.Now}
}

// Apply validates and submits an application in pending state.
func (o *Onboarding) Apply(ctx context.Context, req *rider_type.ApplyRequest, applicant Applicant) (*rider_model.Rider, error) {
	if applicant.Email == "" {
		return nil, &ApplicationError{Fields: map[string]string{"email": "email is required"}}
	}
	if err := ValidateApplication(req); err != nil {
		return nil, err
	}

	r := &rider_model.Rider{
		UID:                 applicant.UID,
		Email:               applicant.Email,
		Name:                strings.TrimSpace(req.Name),
		Photo:               req.Photo,
		Contact:             strings.TrimSpace(req.Contact),
		ParentContact:       strings.TrimSpace(req.ParentContact),
		NationalID:          strings.TrimSpace(req.NationalID),
		District:            req.District,
		Warehouse:           req.Warehouse,
		VehicleType:         rider_model.VehicleType(req.VehicleType),
		VehicleRegistration: strings.TrimSpace(req.VehicleRegistration),
		Areas:               normalizeAreas(req.Areas),
		Status:              rider_model.StatusPending,
		AppliedAt:           o.now(),
	}

	id, err := o.store.CreateRider(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("submit rider application: %w", err)
	}
	r.ID = id

	logger.Info(fmt.Sprintf("Rider application %s submitted by %s", id, applicant.Email))
	return r, nil
}
