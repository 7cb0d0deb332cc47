package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("an account already exists for this email")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrSessionExpired     = errors.New("session expired, sign in again")
	ErrProvider           = errors.New("identity provider error")
)

// ProviderError carries the provider's error code, e.g. EMAIL_EXISTS.
type ProviderError struct {
	StatusCode int
	Code       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider: %d %s", e.StatusCode, e.Code)
}

func (e *ProviderError) Unwrap() error {
	// codes may carry a suffix, e.g. "WEAK_PASSWORD : Password should be at least 6 characters"
	code := strings.TrimSpace(strings.SplitN(e.Code, ":", 2)[0])
	switch code {
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "INVALID_IDP_RESPONSE":
		return ErrInvalidCredentials
	case "USER_DISABLED":
		return ErrUserDisabled
	case "TOKEN_EXPIRED", "INVALID_REFRESH_TOKEN", "INVALID_ID_TOKEN", "USER_NOT_FOUND":
		return ErrSessionExpired
	default:
		return ErrProvider
	}
}

// Client is the identity provider REST contract (accounts + securetoken).
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokenURL   string
	apiKey     string
}

func NewClient(baseURL, tokenURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:  strings.TrimRight(baseURL, "/"),
		tokenURL: tokenURL,
		apiKey:   apiKey,
	}
}

func (c *Client) CreateAccount(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	req := passwordRequest{Email: email, Password: password, ReturnSecureToken: true}
	if err := c.postJSON(ctx, "accounts:signUp", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	req := passwordRequest{Email: email, Password: password, ReturnSecureToken: true}
	if err := c.postJSON(ctx, "accounts:signInWithPassword", req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignInWithFederatedProvider exchanges a provider id token (e.g. google.com).
func (c *Client) SignInWithFederatedProvider(ctx context.Context, providerID, idToken, requestURI string) (*Session, error) {
	if requestURI == "" {
		requestURI = "http://localhost"
	}
	postBody := url.Values{
		"id_token":   {idToken},
		"providerId": {providerID},
	}
	req := idpRequest{
		PostBody:            postBody.Encode(),
		RequestURI:          requestURI,
		ReturnSecureToken:   true,
		ReturnIdpCredential: true,
	}

	var session Session
	if err := c.postJSON(ctx, "accounts:signInWithIdp", req, &session); err != nil {
		return nil, err
	}
	if session.ProviderID == "" {
		session.ProviderID = providerID
	}
	return &session, nil
}

func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	return c.postJSON(ctx, "accounts:sendOobCode", oobRequest{RequestType: "PASSWORD_RESET", Email: email}, nil)
}

// UpdateProfile sets the display name and photo after registration.
func (c *Client) UpdateProfile(ctx context.Context, idToken, displayName, photoURL string) error {
	req := updateProfileRequest{
		IDToken:     idToken,
		DisplayName: displayName,
		PhotoURL:    photoURL,
	}
	return c.postJSON(ctx, "accounts:update", req, nil)
}

func (c *Client) LookupProfile(ctx context.Context, idToken string) (*Profile, error) {
	var resp lookupResponse
	if err := c.postJSON(ctx, "accounts:lookup", lookupRequest{IDToken: idToken}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Users) == 0 {
		return nil, &ProviderError{StatusCode: http.StatusBadRequest, Code: "USER_NOT_FOUND"}
	}
	return &resp.Users[0], nil
}

// Refresh trades a refresh token for a new id token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}

	endpoint := c.tokenURL + "?key=" + url.QueryEscape(c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp refreshResponse
	if err := c.send(httpReq, &resp); err != nil {
		return nil, err
	}
	return &Session{
		UID:          resp.UserID,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, method string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + "/" + method + "?key=" + url.QueryEscape(c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.send(httpReq, out)
}

func (c *Client) send(httpReq *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		code := resp.Status
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			code = apiErr.Error.Message
		}
		return &ProviderError{StatusCode: resp.StatusCode, Code: code}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(bodyBytes, out)
}
