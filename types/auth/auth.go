package auth

import "parcel-delivery/types"

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

func (req *RegisterRequest) Validate() error {
	return types.Validator().Struct(req)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (req *LoginRequest) Validate() error {
	return types.Validator().Struct(req)
}

// FederatedLoginRequest exchanges a provider credential (e.g. google.com id token).
type FederatedLoginRequest struct {
	ProviderID string `json:"provider_id" validate:"required"`
	IDToken    string `json:"id_token" validate:"required"`
	RequestURI string `json:"request_uri" validate:"omitempty,url"`
}

func (req *FederatedLoginRequest) Validate() error {
	return types.Validator().Struct(req)
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (req *PasswordResetRequest) Validate() error {
	return types.Validator().Struct(req)
}

// SessionResponse is returned after any successful sign-in.
type SessionResponse struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"`
}
