package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcel-delivery/constants"
	"parcel-delivery/controllers/response"
	"parcel-delivery/httpServices/identity"
	"parcel-delivery/logger"
	"parcel-delivery/middleware"
	user_model "parcel-delivery/models/user"
	"parcel-delivery/services/role"
	"parcel-delivery/services/session"
	"parcel-delivery/types"
	auth_type "parcel-delivery/types/auth"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
)

type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (*identity.Session, error)
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	SignInWithFederatedProvider(ctx context.Context, providerID, idToken, requestURI string) (*identity.Session, error)
	SendPasswordReset(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, idToken, displayName, photoURL string) error
	Refresh(ctx context.Context, refreshToken string) (*identity.Session, error)
	LookupProfile(ctx context.Context, idToken string) (*identity.Profile, error)
}

// Sessions verifies tokens and announces sign in/out.
type Sessions interface {
	Verify(token string) (*session.Identity, error)
	Publish(ev session.Event)
}

type Roles interface {
	Resolve(ctx context.Context, id *session.Identity) (string, error)
	State(ctx context.Context, email string) role.State
	Invalidate(ctx context.Context, email string) error
}

type IdentityRecorder interface {
	Record(ctx context.Context, identity user_model.Identity, provider string, at time.Time) error
}

type Sealer interface {
	Seal(data string) (string, error)
	Open(sealed string) (string, error)
}

type AuthController struct {
	provider IdentityProvider
	sessions Sessions
	roles    Roles
	sealer   Sealer
	// directory is nil when no database is configured
	directory IdentityRecorder
	secure    bool
	now       func() time.Time
}

func NewAuthController(provider IdentityProvider, sessions Sessions, roles Roles, sealer Sealer, directory IdentityRecorder, secureCookies bool) *AuthController {
	return &AuthController{
		provider:  provider,
		sessions:  sessions,
		roles:     roles,
		sealer:    sealer,
		directory: directory,
		secure:    secureCookies,
		now:       time.Now,
	}
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req auth_type.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Registration failed")
	}

	ctx := c.UserContext()
	sess, err := h.provider.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		return response.Error(c, err, "Registration failed")
	}

	if err := h.provider.UpdateProfile(ctx, sess.IDToken, req.Name, req.PhotoURL); err != nil {
		// the account exists; the profile can be completed later
		logger.Warning(fmt.Sprintf("Failed to set profile for %s: %v", req.Email, err))
	} else {
		sess.DisplayName = req.Name
		sess.PhotoURL = req.PhotoURL
	}

	return h.establish(c, fiber.StatusCreated, "Registration successful", sess, "password")
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req auth_type.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Login failed")
	}

	sess, err := h.provider.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err, "Login failed")
	}
	return h.establish(c, fiber.StatusOK, "Login successful", sess, "password")
}

// FederatedLogin signs in with a credential issued by an external provider.
func (h *AuthController) FederatedLogin(c *fiber.Ctx) error {
	var req auth_type.FederatedLoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Login failed")
	}

	sess, err := h.provider.SignInWithFederatedProvider(c.UserContext(), req.ProviderID, req.IDToken, req.RequestURI)
	if err != nil {
		return response.Error(c, err, "Login failed")
	}
	return h.establish(c, fiber.StatusOK, "Login successful", sess, req.ProviderID)
}

func (h *AuthController) PasswordReset(c *fiber.Ctx) error {
	var req auth_type.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.Error(c, err, "Password reset failed")
	}

	if err := h.provider.SendPasswordReset(c.UserContext(), req.Email); err != nil {
		// unknown emails get the same answer as known ones
		if !errors.Is(err, identity.ErrInvalidCredentials) {
			return response.Error(c, err, "Password reset failed")
		}
	}
	return response.Success(c, fiber.StatusOK, "If the account exists, a reset email has been sent", nil)
}

// Refresh trades the sealed refresh cookie for a new access token.
func (h *AuthController) Refresh(c *fiber.Ctx) error {
	sealed := c.Cookies(constants.CookieRefresh)
	if sealed == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message:  "Refresh token missing",
			Status:   fiber.StatusUnauthorized,
			Redirect: constants.RouteLogin,
		})
	}

	refreshToken, err := h.sealer.Open(sealed)
	if err != nil {
		logger.Warning("Rejected refresh cookie: " + err.Error())
		utils.ClearSessionCookies(c, h.secure)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message:  "Invalid refresh token",
			Status:   fiber.StatusUnauthorized,
			Redirect: constants.RouteLogin,
		})
	}

	sess, err := h.provider.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		if errors.Is(err, identity.ErrSessionExpired) || errors.Is(err, identity.ErrUserDisabled) {
			utils.ClearSessionCookies(c, h.secure)
		}
		return response.Error(c, err, "Token refresh failed")
	}
	return h.establish(c, fiber.StatusOK, "Token refreshed", sess, "")
}

// LogOut is local: cookies are cleared and listeners drop what they cached.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	var email string
	if token := c.Cookies(constants.CookieAccess); token != "" {
		if id, err := h.sessions.Verify(token); err == nil {
			email = id.Email
		}
	}

	utils.ClearSessionCookies(c, h.secure)

	if email != "" {
		h.sessions.Publish(session.Event{Kind: session.SignedOut, Email: email})
		if err := h.roles.Invalidate(c.UserContext(), email); err != nil {
			logger.Warning(fmt.Sprintf("Failed to drop cached role for %s: %v", email, err))
		}
		logger.Info(fmt.Sprintf("User %s logged out", email))
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message:  "Logout successful",
		Status:   fiber.StatusOK,
		Redirect: constants.RouteLogin,
	})
}

func (h *AuthController) Profile(c *fiber.Ctx) error {
	token, _ := c.Locals(constants.LocalsToken).(string)
	if token == "" {
		return response.Unauthorized(c)
	}

	profile, err := h.provider.LookupProfile(c.UserContext(), token)
	if err != nil {
		return response.Error(c, err, "Failed to fetch profile")
	}
	return response.Success(c, fiber.StatusOK, "Profile fetched successfully", profile)
}

// MyRole answers while a lookup is still running with is_loading so views
// can hold their gate instead of flashing the guest layout.
func (h *AuthController) MyRole(c *fiber.Ctx) error {
	id := middleware.CurrentIdentity(c)
	if id == nil {
		return response.Unauthorized(c)
	}

	ctx := c.UserContext()
	if state := h.roles.State(ctx, id.Email); state.IsLoading {
		return response.Success(c, fiber.StatusAccepted, "Role lookup in progress", state)
	}

	resolved, err := h.roles.Resolve(ctx, id)
	if err != nil {
		logger.Warning(fmt.Sprintf("Role lookup failed for %s: %v", id.Email, err))
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message:   "Role lookup failed, using least privilege",
			Status:    fiber.StatusOK,
			Data:      role.State{Role: resolved},
			Retryable: true,
		})
	}
	return response.Success(c, fiber.StatusOK, "Role fetched successfully", role.State{Role: resolved})
}

// establish verifies the fresh token, sets both cookies and announces the sign in.
func (h *AuthController) establish(c *fiber.Ctx, status int, message string, sess *identity.Session, provider string) error {
	ctx := c.UserContext()

	id, err := h.sessions.Verify(sess.IDToken)
	if err != nil {
		return response.Error(c, err, "Could not verify session")
	}
	if provider == "" {
		provider = id.Provider
	}

	sealedRefresh, err := h.sealer.Seal(sess.RefreshToken)
	if err != nil {
		logger.Error("Failed to seal refresh token", err)
		return response.Error(c, err, "Could not start session")
	}

	maxAge := sess.ExpiresInSeconds()
	if maxAge <= 0 {
		maxAge = utils.AccessCookieMaxAge
	}
	utils.SetSecureCookie(c, constants.CookieAccess, sess.IDToken, maxAge, h.secure)
	utils.SetSecureCookie(c, constants.CookieRefresh, sealedRefresh, utils.RefreshCookieMaxAge, h.secure)

	name := firstNonEmpty(sess.DisplayName, id.Name)
	photo := firstNonEmpty(sess.PhotoURL, id.PhotoURL)

	if h.directory != nil {
		record := user_model.Identity{
			UID:           id.UID,
			Email:         id.Email,
			EmailVerified: id.EmailVerified,
			DisplayName:   name,
			PhotoURL:      photo,
		}
		if err := h.directory.Record(ctx, record, provider, h.now()); err != nil {
			logger.Warning(fmt.Sprintf("Failed to record identity %s: %v", id.UID, err))
		}
	}

	h.sessions.Publish(session.Event{Kind: session.SignedIn, Email: id.Email, Identity: id})

	resolved, err := h.roles.Resolve(ctx, id)
	if err != nil {
		logger.Warning(fmt.Sprintf("Role lookup failed for %s: %v", id.Email, err))
	}

	logger.Success(fmt.Sprintf("User %s signed in (%s)", id.Email, provider))
	return c.Status(status).JSON(types.ApiResponse{
		Message: message,
		Status:  status,
		Token:   sess.IDToken,
		Data: auth_type.SessionResponse{
			UID:       id.UID,
			Email:     id.Email,
			Name:      name,
			PhotoURL:  photo,
			Role:      resolved,
			ExpiresIn: maxAge,
		},
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
