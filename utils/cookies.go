package utils

import (
	"time"

	"parcel-delivery/constants"

	"github.com/gofiber/fiber/v2"
)

const (
	AccessCookieMaxAge  = 60 * 60          // identity tokens live one hour
	RefreshCookieMaxAge = 7 * 24 * 60 * 60 // 7 days
)

// SetSecureCookie sets an HTTP-only cookie, Secure only in production (HTTPS).
func SetSecureCookie(c *fiber.Ctx, name, value string, maxAge int, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// ClearSessionCookies expires both session cookies immediately.
func ClearSessionCookies(c *fiber.Ctx, secure bool) {
	for _, name := range []string{constants.CookieAccess, constants.CookieRefresh} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   secure,
			SameSite: "Strict",
			Expires:  time.Unix(0, 0),
			Path:     "/",
		})
	}
}
