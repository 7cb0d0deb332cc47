package rider

import "parcel-delivery/types"

// ApplyRequest is the "be a rider" form.
type ApplyRequest struct {
	Name                string   `json:"name" validate:"required,notblank,max=255"`
	Age                 int      `json:"age" validate:"required,min=18,max=70"`
	Contact             string   `json:"contact" validate:"required,phone"`
	ParentContact       string   `json:"parent_contact" validate:"omitempty,phone"`
	NationalID          string   `json:"nid" validate:"required,notblank,min=10,max=17"`
	Photo               string   `json:"photo" validate:"omitempty,url"`
	District            string   `json:"district" validate:"required,notblank"`
	Warehouse           string   `json:"warehouse" validate:"required,notblank"`
	VehicleType         string   `json:"vehicle_type" validate:"required,oneof=bicycle motorcycle scooter walking"`
	VehicleRegistration string   `json:"vehicle_registration" validate:"omitempty,max=32"`
	Areas               []string `json:"areas" validate:"omitempty,dive,required"`
}

func (req *ApplyRequest) Validate() error {
	return types.Validator().Struct(req)
}

// UpdateStatusRequest carries an admin review decision.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

func (req *UpdateStatusRequest) Validate() error {
	return types.Validator().Struct(req)
}
