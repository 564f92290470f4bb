package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/notifications"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain/entity"
	"github.com/jhoicas/consola-hardware/internal/domain/repository"
	"github.com/jhoicas/consola-hardware/pkg/jwt"
	"github.com/jhoicas/consola-hardware/pkg/logger"
)

const (
	wsReadLimit    = 1024
	wsPongWait     = 60 * time.Second
	wsPingPeriod   = 54 * time.Second
	wsWriteWait    = 10 * time.Second
	refreshTimeout = 15 * time.Second

	// wsCloseUnauthorized cierre que el cliente interpreta como "ir a /login".
	wsCloseUnauthorized = 4401
)

// StatusSource estado del poller. Lo implementa *notifications.Poller.
type StatusSource interface {
	Snapshot() notifications.Snapshot
	Refresh(ctx context.Context) notifications.Event
}

// NotificationHandler panel de alertas de hardware inactivo: consulta, refresco manual,
// ids vistos y canal websocket.
type NotificationHandler struct {
	source   StatusSource
	hub      *notifications.Hub
	hardware notifications.HardwareLister
	seen     repository.SeenRepository
	val      *Validator
	log      *logger.Logger
}

// NewNotificationHandler construye el handler. hardware da el alcance de los usuarios empresa.
func NewNotificationHandler(source StatusSource, hub *notifications.Hub, hardware notifications.HardwareLister, seen repository.SeenRepository, val *Validator, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{source: source, hub: hub, hardware: hardware, seen: seen, val: val, log: log}
}

// scopeFor alcance de alertas de la sesión: todo para admin, su empresa para el resto.
// Si la lista de hardware falla se sigue con el alcance por empresa_id.
func (h *NotificationHandler) scopeFor(ctx context.Context, sess *jwt.Session) notifications.Scope {
	if sess == nil || sess.Role == entity.RoleAdmin {
		return notifications.Scope{}
	}
	scope, err := notifications.ResolveScope(ctx, h.hardware, sess.EmpresaID)
	if err != nil {
		h.log.Warn().Err(err).Str("empresa", sess.EmpresaID).Msg("alcance de alertas sin lista de hardware")
	}
	return scope
}

// Get godoc
// @Summary      Estado actual del panel de notificaciones
// @Tags         notificaciones
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.NotificationsDTO}
// @Router       /api/notifications [get]
func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	snap := h.source.Snapshot()
	alerts := h.scopeFor(c.UserContext(), GetSession(c)).Filter(snap.Alerts)
	out := dto.NotificationsDTO{
		Alerts:    notifications.ToAlertDTOs(alerts),
		Count:     len(alerts),
		Loaded:    snap.Loaded,
		LastError: snap.LastError,
	}
	if !snap.UpdatedAt.IsZero() {
		at := snap.UpdatedAt
		out.UpdatedAt = &at
	}
	return ok(c, fiber.StatusOK, out, "")
}

// Refresh godoc
// @Summary      Forzar un chequeo de estado físico
// @Description  El resultado también se difunde a todas las pestañas conectadas.
// @Tags         notificaciones
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      502  {object}  dto.Envelope
// @Router       /api/notifications/refresh [post]
func (h *NotificationHandler) Refresh(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), refreshTimeout)
	defer cancel()
	ev := notifications.ForScope(h.source.Refresh(ctx), h.scopeFor(ctx, GetSession(c)))
	if ev.Type == notifications.EventError {
		return c.Status(fiber.StatusBadGateway).JSON(dto.Envelope{Data: ev, Message: ev.Message})
	}
	return ok(c, fiber.StatusOK, ev, "")
}

// MarkSeen godoc
// @Summary      Marcar alertas como vistas
// @Tags         notificaciones
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SeenRequest  true  "ids"
// @Success      200   {object}  dto.Envelope
// @Router       /api/notifications/seen [post]
func (h *NotificationHandler) MarkSeen(c *fiber.Ctx) error {
	var in dto.SeenRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if errs := h.val.Validate(in); errs != nil {
		return invalid(c, errs)
	}
	if err := h.seen.MarkSeen(c.UserContext(), GetSession(c).UserID, in.IDs); err != nil {
		return fail(c, "notifications_seen", err)
	}
	return ok(c, fiber.StatusOK, nil, "")
}

// ResetSeen godoc
// @Summary      Olvidar las alertas vistas (vuelven a mostrarse los avisos)
// @Tags         notificaciones
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/notifications/seen [delete]
func (h *NotificationHandler) ResetSeen(c *fiber.Ctx) error {
	if err := h.seen.Reset(c.UserContext(), GetSession(c).UserID); err != nil {
		return fail(c, "notifications_reset", err)
	}
	return ok(c, fiber.StatusOK, nil, "Avisos restablecidos")
}

// Upgrade corta antes del handshake las peticiones que no son websocket o no tienen sesión.
func (h *NotificationHandler) Upgrade(c *fiber.Ctx) error {
	if GetSession(c) == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "No autorizado"})
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// clientMessage mensajes que envía la pestaña.
//   - {"type":"visibility","visible":false}
//   - {"type":"refresh"}
//   - {"type":"seen","ids":["7"]}
type clientMessage struct {
	Type    string   `json:"type"`
	Visible *bool    `json:"visible,omitempty"`
	IDs     []string `json:"ids,omitempty"`
}

// Stream GET /ws/notifications?visible=1: una pestaña suscrita al hub.
// La lectura corre en esta goroutine y la escritura en otra; al cerrar la lectura se
// desuscribe, lo que cierra el canal y termina la escritura.
func (h *NotificationHandler) Stream(conn *websocket.Conn) {
	sess, _ := conn.Locals(LocalSession).(*jwt.Session)
	if sess == nil {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(wsCloseUnauthorized, "No autorizado"))
		_ = conn.Close()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	visible := conn.Query("visible", "1") != "0"
	sctx, scancel := context.WithTimeout(ports.WithSession(ctx, sess.BackendSession), refreshTimeout)
	scope := h.scopeFor(sctx, sess)
	scancel()
	sub := h.hub.SubscribeScope(ctx, sess.UserID, scope, visible)
	log := h.log.Component("ws")
	log.Debug().Str("user", sess.UserID).Str("subscriber", sub.ID).Msg("pestaña conectada")

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(conn, sub)
	}()

	h.readPump(ctx, conn, sub, sess)
	h.hub.Unsubscribe(sub)
	<-done
	log.Debug().Str("user", sess.UserID).Str("subscriber", sub.ID).Msg("pestaña desconectada")
}

func (h *NotificationHandler) readPump(ctx context.Context, conn *websocket.Conn, sub *notifications.Subscriber, sess *jwt.Session) {
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn().Err(err).Str("subscriber", sub.ID).Msg("websocket cerrado inesperadamente")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

		switch msg.Type {
		case "visibility":
			if msg.Visible != nil {
				h.hub.SetVisible(ctx, sub, *msg.Visible)
			}
		case "refresh":
			rctx, cancel := context.WithTimeout(ctx, refreshTimeout)
			h.source.Refresh(rctx)
			cancel()
		case "seen":
			if len(msg.IDs) > 0 {
				if err := h.seen.MarkSeen(ctx, sess.UserID, msg.IDs); err != nil {
					h.log.Warn().Err(err).Str("user", sess.UserID).Msg("guardar alertas vistas")
				}
			}
		}
	}
}

func (h *NotificationHandler) writePump(conn *websocket.Conn, sub *notifications.Subscriber) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case ev, open := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !open {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
