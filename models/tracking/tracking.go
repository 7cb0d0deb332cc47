package tracking

import "time"

// Status labels appended on each lifecycle transition
const (
	StatusParcelCreated = "Parcel Created"
	StatusRiderAssigned = "Rider Assigned"
	StatusPickedUp      = "Picked Up"
	StatusDelivered     = "Delivered"
)

// Event is one append-only entry of a parcel's tracking log.
type Event struct {
	ID           string    `json:"_id,omitempty"`
	TrackingID   string    `json:"tracking_id"`
	Status       string    `json:"status"`
	Details      string    `json:"details"`
	Location     string    `json:"location"`
	UpdatedBy    string    `json:"updated_by"`
	RiderContact string    `json:"rider_contact,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
