package http

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/projection"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

const liveHeartbeat = 15 * time.Second

// LiveHandler flujo SSE de cambios de las vistas en vivo del propietario.
type LiveHandler struct {
	live *projection.LiveStore
	log  *logger.Logger
}

// NewLiveHandler construye el handler.
func NewLiveHandler(live *projection.LiveStore, log *logger.Logger) *LiveHandler {
	return &LiveHandler{live: live, log: log.WithComponent("http.live")}
}

// Events GET /api/live/events
// Emite un evento "change" por cada instantánea o error de una vista. El cliente relee la
// vista por su endpoint de listado.
func (h *LiveHandler) Events(c *fiber.Ctx) error {
	ownerID := GetOwnerID(c)
	if ownerID == "" {
		return unauthorized(c)
	}
	encode := c.App().Config().JSONEncoder
	changes, cancel := h.live.Watch(ownerID)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(liveHeartbeat)
		defer ticker.Stop()

		// Estado inicial: un evento por vista.
		for _, kind := range projection.Kinds {
			if err := writeEvent(w, encode, "snapshot", liveEvent(kind, h.live.Err(ownerID, kind))); err != nil {
				return
			}
		}
		for {
			select {
			case ch, ok := <-changes:
				if !ok {
					return
				}
				if err := writeEvent(w, encode, "change", liveEvent(ch.Kind, ch.Err)); err != nil {
					h.log.Debug().Str("owner_id", ownerID).Msg("cliente SSE desconectado")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

func liveEvent(kind projection.Kind, err error) dto.LiveEvent {
	ev := dto.LiveEvent{View: string(kind)}
	if err != nil {
		ev.Error = err.Error()
	}
	return ev
}

func writeEvent(w *bufio.Writer, encode func(any) ([]byte, error), name string, ev dto.LiveEvent) error {
	data, err := encode(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	return w.Flush()
}
