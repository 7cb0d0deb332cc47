package parcel

import "parcel-delivery/types"

// BookParcelRequest is the booking form payload.
type BookParcelRequest struct {
	ParcelName string  `json:"parcel_name" validate:"required,notblank,max=255"`
	ParcelType string  `json:"parcel_type" validate:"required,notblank"`
	Weight     float64 `json:"weight" validate:"required,gt=0"`

	SenderName     string `json:"sender_name" validate:"required,notblank,max=255"`
	SenderAddress  string `json:"sender_address" validate:"required,notblank"`
	SenderPhone    string `json:"sender_phone" validate:"required,phone"`
	SenderDistrict string `json:"sender_district" validate:"required,notblank"`
	SenderArea     string `json:"sender_area" validate:"required,notblank"`

	ReceiverName     string `json:"receiver_name" validate:"required,notblank,max=255"`
	ReceiverAddress  string `json:"receiver_address" validate:"required,notblank"`
	ReceiverPhone    string `json:"receiver_phone" validate:"required,phone"`
	ReceiverDistrict string `json:"receiver_district" validate:"required,notblank"`
	ReceiverArea     string `json:"receiver_area" validate:"required,notblank"`
}

func (req *BookParcelRequest) Validate() error {
	return types.Validator().Struct(req)
}

// PriceEstimateRequest backs the public price calculator.
type PriceEstimateRequest struct {
	ParcelType       string  `json:"parcel_type" validate:"required,notblank"`
	Weight           float64 `json:"weight" validate:"required,gt=0"`
	SenderDistrict   string  `json:"sender_district" validate:"required,notblank"`
	ReceiverDistrict string  `json:"receiver_district" validate:"required,notblank"`
}

func (req *PriceEstimateRequest) Validate() error {
	return types.Validator().Struct(req)
}

type AssignRiderRequest struct {
	RiderID string `json:"rider_id" validate:"required,notblank"`
}

func (req *AssignRiderRequest) Validate() error {
	return types.Validator().Struct(req)
}
