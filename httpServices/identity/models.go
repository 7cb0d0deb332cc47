package identity

import "strconv"

// Session is what a successful sign-in or refresh yields.
type Session struct {
	UID          string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName,omitempty"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	ProviderID   string `json:"providerId,omitempty"`
	Registered   bool   `json:"registered,omitempty"`
}

// ExpiresInSeconds parses the provider's string-encoded lifetime.
func (s *Session) ExpiresInSeconds() int {
	n, err := strconv.Atoi(s.ExpiresIn)
	if err != nil {
		return 0
	}
	return n
}

// Profile is an account as returned by accounts:lookup.
type Profile struct {
	UID           string         `json:"localId"`
	Email         string         `json:"email"`
	EmailVerified bool           `json:"emailVerified"`
	DisplayName   string         `json:"displayName,omitempty"`
	PhotoURL      string         `json:"photoUrl,omitempty"`
	Disabled      bool           `json:"disabled,omitempty"`
	Providers     []ProviderInfo `json:"providerUserInfo,omitempty"`
}

type ProviderInfo struct {
	ProviderID string `json:"providerId"`
	Email      string `json:"email,omitempty"`
}

// ProviderIDs flattens the linked providers.
func (p *Profile) ProviderIDs() []string {
	ids := make([]string, 0, len(p.Providers))
	for _, info := range p.Providers {
		ids = append(ids, info.ProviderID)
	}
	return ids
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type idpRequest struct {
	PostBody            string `json:"postBody"`
	RequestURI          string `json:"requestUri"`
	ReturnSecureToken   bool   `json:"returnSecureToken"`
	ReturnIdpCredential bool   `json:"returnIdpCredential"`
}

type oobRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type updateProfileRequest struct {
	IDToken           string `json:"idToken"`
	DisplayName       string `json:"displayName,omitempty"`
	PhotoURL          string `json:"photoUrl,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []Profile `json:"users"`
}

// refreshResponse uses snake_case, unlike the accounts API.
type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
