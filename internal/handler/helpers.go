package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edunext/mindmap-api/internal/auth"
)

func identityFromContext(c *fiber.Ctx) auth.Identity {
	if value := c.Locals("identity"); value != nil {
		if identity, ok := value.(auth.Identity); ok {
			return identity
		}
	}
	return auth.Identity{}
}

func blockParams(c *fiber.Ctx) (string, string) {
	return c.Params("courseID"), c.Params("blockID")
}
