package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID     = "user_id"
	LocalOwnerID    = "owner_id"
	LocalTenantName = "tenant_name"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, OwnerID y TenantName a c.Locals.
// Un token válido sin propietario se rechaza: todas las operaciones del libro lo necesitan.
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
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if id.OwnerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_OWNER", Message: "el token no identifica un propietario"})
		}
		c.Locals(LocalUserID, id.UserID)
		c.Locals(LocalOwnerID, id.OwnerID)
		c.Locals(LocalTenantName, id.TenantName)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetOwnerID devuelve el propietario del contexto (después del middleware de auth).
func GetOwnerID(c *fiber.Ctx) string {
	return localString(c, LocalOwnerID)
}

// GetTenantName devuelve el nombre del negocio del contexto.
func GetTenantName(c *fiber.Ctx) string {
	return localString(c, LocalTenantName)
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
