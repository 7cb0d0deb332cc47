//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mock_lifecycle
package lifecycle

import (
	"context"

	"parcel-delivery/httpServices/backend"
	"parcel-delivery/models/parcel"
	"parcel-delivery/models/rider"
	tracking_model "parcel-delivery/models/tracking"
)

// ParcelStore is the backend's parcel API. Mutations return the echoed parcel
// or nil when the backend only acknowledges.
type ParcelStore interface {
	GetParcel(ctx context.Context, id string) (*parcel.Parcel, error)
	AssignRider(ctx context.Context, parcelID string, payload backend.AssignRiderPayload) (*parcel.Parcel, error)
	MarkPickedUp(ctx context.Context, parcelID, riderEmail string) (*parcel.Parcel, error)
	MarkDelivered(ctx context.Context, parcelID, riderEmail string) (*parcel.Parcel, error)
	CashOut(ctx context.Context, parcelID string) (*parcel.Parcel, error)
}

type RiderDirectory interface {
	AvailableRiders(ctx context.Context, area string) ([]rider.Rider, error)
}

type TrackingLog interface {
	Log(ctx context.Context, event tracking_model.Event) error
}
