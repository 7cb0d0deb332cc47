package lifecycle

import (
	"errors"
	"fmt"

	"parcel-delivery/models/parcel"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotPaid           = errors.New("parcel is not paid")
	ErrRiderNotEligible  = errors.New("rider is not eligible for this parcel")
	ErrNotAssigned       = errors.New("parcel is not assigned to this rider")
	ErrAlreadyCashedOut  = errors.New("parcel is already cashed out")
)

// TransitionError explains a rejected status change.
type TransitionError struct {
	ParcelID string
	From     parcel.DeliveryStatus
	To       parcel.DeliveryStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("parcel %s cannot move from %s to %s", e.ParcelID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// IsPrecondition is true for rejections decided before any remote mutation.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrIllegalTransition) ||
		errors.Is(err, ErrNotPaid) ||
		errors.Is(err, ErrRiderNotEligible) ||
		errors.Is(err, ErrAlreadyCashedOut)
}
