package user

import "parcel-delivery/types"

// UpdateRoleRequest names the account by email as well as id; the email keys
// the cached role that has to be dropped.
type UpdateRoleRequest struct {
	Role  string `json:"role" validate:"required,oneof=user rider admin"`
	Email string `json:"email" validate:"required,email"`
}

func (req *UpdateRoleRequest) Validate() error {
	return types.Validator().Struct(req)
}

type SearchRequest struct {
	Email string `query:"email" validate:"required,min=2"`
}

func (req *SearchRequest) Validate() error {
	return types.Validator().Struct(req)
}
