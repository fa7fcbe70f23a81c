package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edunext/mindmap-api/internal/auth"
	"github.com/edunext/mindmap-api/internal/utils"
)

// RequireCourseTeam rejects callers without grading/editing rights. The
// services behind these routes re-check the identity; the middleware exists
// so unauthorized requests never reach them.
func RequireCourseTeam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := IdentityFromContext(c)
		if !identity.IsCourseTeam() {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// RequireRole ensures that the authenticated caller holds one of the allowed roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		normalized := auth.NormalizeRole(role)
		if normalized != "" {
			allowed[normalized] = struct{}{}
		}
	}

	return func(c *fiber.Ctx) error {
		identity := IdentityFromContext(c)
		if _, ok := allowed[auth.NormalizeRole(identity.Role)]; !ok && !identity.IsStaff {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// IdentityFromContext extracts the authenticated identity bound by JWTProtected.
func IdentityFromContext(c *fiber.Ctx) auth.Identity {
	if value := c.Locals("identity"); value != nil {
		if identity, ok := value.(auth.Identity); ok {
			return identity
		}
	}
	return auth.Identity{}
}
