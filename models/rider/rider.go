package rider

import (
	"strings"
	"time"
)

// Rider is a courier application as stored by the backend.
type Rider struct {
	ID                  string      `json:"_id"`
	UID                 string      `json:"uid,omitempty"`
	Email               string      `json:"email"`
	Name                string      `json:"name"`
	Photo               string      `json:"photo,omitempty"`
	Contact             string      `json:"contact"`
	ParentContact       string      `json:"parentContact,omitempty"`
	NationalID          string      `json:"nid"`
	District            string      `json:"district"`
	Warehouse           string      `json:"warehouse"`
	VehicleType         VehicleType `json:"vehicleType"`
	VehicleRegistration string      `json:"vehicleRegistration,omitempty"`
	Areas               []string    `json:"areas"`
	Status              Status      `json:"status"`
	AppliedAt           time.Time   `json:"createdAt"`
}

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusDeactivated Status = "deactivated"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDeactivated:
		return true
	default:
		return false
	}
}

// IsReviewDecision is true for the statuses an admin may set on a pending application.
func (s Status) IsReviewDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type VehicleType string

const (
	VehicleBicycle    VehicleType = "bicycle"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleScooter    VehicleType = "scooter"
	VehicleWalking    VehicleType = "walking"
)

func (v VehicleType) IsValid() bool {
	switch v {
	case VehicleBicycle, VehicleMotorcycle, VehicleScooter, VehicleWalking:
		return true
	default:
		return false
	}
}

// RequiresRegistration is true for motorised vehicles.
func (v VehicleType) RequiresRegistration() bool {
	return v == VehicleMotorcycle || v == VehicleScooter
}

// Serves reports whether area is among the rider's preferred areas.
func (r *Rider) Serves(area string) bool {
	area = strings.TrimSpace(area)
	if area == "" {
		return false
	}
	for _, a := range r.Areas {
		if strings.EqualFold(strings.TrimSpace(a), area) {
			return true
		}
	}
	return false
}
