package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/parcerias-admin/internal/application/auth"
	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/pkg/jwt"
)

// LocalSession key de c.Locals con la *auth.Session del operador.
const LocalSession = "session"

// AuthMiddleware valida el Bearer Token JWT y deja la sesión del operador en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalSession, auth.NewAuthenticatedSession(claims.Email, claims.Role, tokenString))
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto (después del middleware de auth) o nil.
func GetSession(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(LocalSession).(*auth.Session)
	return s
}

// GetActor devuelve el email del operador autenticado.
func GetActor(c *fiber.Ctx) string {
	return GetSession(c).Email()
}

// GetRole devuelve el rol del operador autenticado.
func GetRole(c *fiber.Ctx) string {
	s := GetSession(c)
	if s == nil {
		return ""
	}
	return s.Role()
}
