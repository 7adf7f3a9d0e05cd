package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parcerias-admin/internal/application/dto"
)

// RequireRole autoriza sólo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 MISSING_ROLE → sesión sin rol (token sin el claim).
//   - 403 FORBIDDEN    → rol fuera de la lista.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if !GetSession(c).Authenticated() {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión no autenticada"})
		}
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin acceso a este recurso"})
		}
		return c.Next()
	}
}
