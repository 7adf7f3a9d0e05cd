package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestContext pone en c.UserContext() un contexto con plazo para la request. Las llamadas al
// backend lo reciben, así que vencido el plazo se cancelan. Un timeout <= 0 no agrega plazo.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if timeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
