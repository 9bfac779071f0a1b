package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/grocerymate-pos/internal/application/dto"
)

// Locals keys del usuario de la sesión en Fiber.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// sessionReader es el contrato mínimo que necesita el middleware; lo implementa
// *auth.SessionUseCase.
type sessionReader interface {
	Current() *dto.SessionResponse
}

// RequireSession exige una sesión activa en la terminal. Sin sesión responde
// 401 LOGIN_REQUIRED con Location: /login.
func RequireSession(sessions sessionReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := sessions.Current()
		if sess == nil || !sess.Authenticated || sess.User == nil {
			c.Set(fiber.HeaderLocation, LoginPath)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "LOGIN_REQUIRED",
				Message: "inicie sesión para continuar",
			})
		}
		c.Locals(LocalUserID, sess.User.ID)
		c.Locals(LocalRole, sess.User.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse después de RequireSession.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "la sesión no tiene rol asignado",
			})
		}
		for _, r := range allowed {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "el rol '" + role + "' no tiene acceso a este recurso",
		})
	}
}

// GetUserID devuelve el ID del usuario de la sesión (después de RequireSession).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol principal de la sesión (después de RequireSession).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
