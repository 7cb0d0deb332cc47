package middleware

import (
	"context"
	"fmt"
	"strings"

	"parcel-delivery/constants"
	"parcel-delivery/logger"
	"parcel-delivery/services/role"
	"parcel-delivery/services/session"
	"parcel-delivery/types"

	"github.com/gofiber/fiber/v2"
)

// RoleSource resolves the caller's role.
type RoleSource interface {
	Resolve(ctx context.Context, id *session.Identity) (string, error)
}

// RequireRole gates a route on the caller's role. With no roles it only
// resolves the role for later handlers. Browser navigation is redirected to
// the forbidden page; API calls get a 403 with the same fallback route.
func RequireRole(roles RoleSource, required ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := CurrentIdentity(c)

		resolved := ""
		if identity != nil {
			var err error
			resolved, err = roles.Resolve(c.UserContext(), identity)
			if err != nil {
				logger.Warning(fmt.Sprintf("Role lookup failed, using %q: %v", resolved, err))
			}
		}
		c.Locals(constants.LocalsRole, resolved)

		guard := role.GuardFor(resolved, identity != nil)
		if guard.Allows(required...) {
			return c.Next()
		}

		logger.Warning(fmt.Sprintf("Access denied - %s cannot reach %s", guard, c.Path()))
		if wantsHTML(c) {
			return c.Redirect(constants.RouteForbidden, fiber.StatusSeeOther)
		}
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message:  "Insufficient permissions",
			Status:   fiber.StatusForbidden,
			Redirect: constants.RouteForbidden,
		})
	}
}

// RequireAnyRole only needs a signed-in caller.
func RequireAnyRole(roles RoleSource) fiber.Handler {
	return RequireRole(roles)
}

func wantsHTML(c *fiber.Ctx) bool {
	return c.Method() == fiber.MethodGet && strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMETextHTML)
}
