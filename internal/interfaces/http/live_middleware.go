package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
)

// liveSubscriber es el contrato mínimo que necesita el middleware para abrir la proyección.
// Lo implementa *projection.LiveStore.
type liveSubscriber interface {
	Subscribe(ownerID string) error
}

// RequireLiveSession abre (o renueva, si ya lo están) las suscripciones en vivo del propietario del token.
// Las sesiones sin peticiones se cierran con projection.LiveStore.RunEviction.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalOwnerID).
//
// Comportamiento:
//   - 401 Unauthorized → no hay owner_id en el contexto.
//   - 503 Service Unavailable → el almacén rechazó la suscripción.
func RequireLiveSession(live liveSubscriber) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := GetOwnerID(c)
		if ownerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "owner_id no encontrado en el token",
			})
		}
		if err := live.Subscribe(ownerID); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "LIVE_UNAVAILABLE",
				Message: "no se pudo abrir la suscripción en vivo, intente más tarde",
			})
		}
		return c.Next()
	}
}
