package parcel

import (
	"strings"
	"time"
)

// Parcel mirrors the parcel document served by the backend.
type Parcel struct {
	ID         string  `json:"_id"`
	TrackingID string  `json:"tracking_id"`
	ParcelName string  `json:"parcelName"`
	ParcelType Type    `json:"parcelType"`
	Weight     float64 `json:"parcelWeight"`

	SenderName     string `json:"senderName"`
	SenderAddress  string `json:"senderAddress"`
	SenderPhone    string `json:"senderPhone"`
	SenderDistrict string `json:"senderDistrict"`
	SenderArea     string `json:"senderAreaOrCity"`

	ReceiverName     string `json:"receiverName"`
	ReceiverAddress  string `json:"receiverAddress"`
	ReceiverPhone    string `json:"receiverPhone"`
	ReceiverDistrict string `json:"receiverDistrict"`
	ReceiverArea     string `json:"receiverAreaOrCity"`

	// Cost is fixed at booking and never recomputed.
	Cost      float64 `json:"cost"`
	CreatedBy string  `json:"created_by"`

	PaymentStatus  PaymentStatus  `json:"payment_status"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	CashoutStatus  CashoutStatus  `json:"cashout_status,omitempty"`

	AssignedRiderID      string `json:"assigned_rider_id,omitempty"`
	AssignedRiderName    string `json:"assigned_rider_name,omitempty"`
	AssignedRiderEmail   string `json:"assigned_rider_email,omitempty"`
	AssignedRiderContact string `json:"assigned_rider_contact,omitempty"`

	CreationDate time.Time  `json:"creation_date"`
	AssignedAt   *time.Time `json:"assignedAt,omitempty"`
	PickedUpAt   *time.Time `json:"pickedUpAt,omitempty"`
	DeliveredAt  *time.Time `json:"deliveredAt,omitempty"`
}

// Party is one end of a shipment.
type Party struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	District string `json:"district"`
	Area     string `json:"area"`
}

func (p *Parcel) Sender() Party {
	return Party{
		Name:     p.SenderName,
		Address:  p.SenderAddress,
		Phone:    p.SenderPhone,
		District: p.SenderDistrict,
		Area:     p.SenderArea,
	}
}

func (p *Parcel) Receiver() Party {
	return Party{
		Name:     p.ReceiverName,
		Address:  p.ReceiverAddress,
		Phone:    p.ReceiverPhone,
		District: p.ReceiverDistrict,
		Area:     p.ReceiverArea,
	}
}

// IsSameDistrict compares sender and receiver districts exactly.
func (p *Parcel) IsSameDistrict() bool {
	return p.SenderDistrict == p.ReceiverDistrict
}

// IsOwnedBy reports whether email booked this parcel.
func (p *Parcel) IsOwnedBy(email string) bool {
	return email != "" && strings.EqualFold(p.CreatedBy, email)
}

// IsAssignedTo reports whether the parcel is assigned to the rider with this email.
func (p *Parcel) IsAssignedTo(email string) bool {
	return email != "" && strings.EqualFold(p.AssignedRiderEmail, email)
}

// IsDeletable is true while no rider has touched the parcel and nothing was paid.
func (p *Parcel) IsDeletable() bool {
	return p.DeliveryStatus == DeliveryNotCollected && p.PaymentStatus == PaymentUnpaid
}
