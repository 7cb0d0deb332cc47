package middleware

import (
	"errors"
	"strings"

	"parcel-delivery/constants"
	"parcel-delivery/httpServices/backend"
	"parcel-delivery/logger"
	"parcel-delivery/services/session"
	"parcel-delivery/types"
	"parcel-delivery/utils"

	"github.com/gofiber/fiber/v2"
)

// Verifier checks an access token.
type Verifier interface {
	Verify(token string) (*session.Identity, error)
}

// IsAuthenticated accepts a Bearer token or the access cookie. An expired
// session clears the cookies and points the browser back to the login page.
func IsAuthenticated(verifier Verifier, secureCookies bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := extractToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message:  err.Error(),
				Status:   fiber.StatusUnauthorized,
				Redirect: constants.RouteLogin,
			})
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			if errors.Is(err, session.ErrSessionExpired) {
				utils.ClearSessionCookies(c, secureCookies)
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Message:  "Session expired. Login again.",
					Status:   fiber.StatusUnauthorized,
					Redirect: constants.RouteLogin,
				})
			}
			logger.Warning("Rejected access token: " + err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message:  "Invalid session token",
				Status:   fiber.StatusUnauthorized,
				Redirect: constants.RouteLogin,
			})
		}

		c.Locals(constants.LocalsIdentity, identity)
		c.Locals(constants.LocalsToken, token)
		// outgoing backend calls carry the caller's bearer token
		c.SetUserContext(backend.WithToken(c.UserContext(), token))

		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			return "", errors.New("Invalid authorization header format")
		}
		return tokenParts[1], nil
	}

	// Try to get token from cookie as fallback
	token := c.Cookies(constants.CookieAccess)
	if token == "" {
		return "", errors.New("Authorization token missing")
	}
	return token, nil
}

// CurrentIdentity returns the verified caller, nil on public routes.
func CurrentIdentity(c *fiber.Ctx) *session.Identity {
	identity, _ := c.Locals(constants.LocalsIdentity).(*session.Identity)
	return identity
}

// CurrentRole is set by RequireRole; empty when no guard ran.
func CurrentRole(c *fiber.Ctx) string {
	r, _ := c.Locals(constants.LocalsRole).(string)
	return r
}
