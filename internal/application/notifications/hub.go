package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/consola-hardware/internal/domain/repository"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/metrics"
	"github.com/jhoicas/consola-hardware/pkg/logger"
)

const (
	subscriberBuffer = 8
	seenTimeout      = 2 * time.Second
)

// Controller lo que el Hub necesita del poller: pausar cuando ninguna pestaña está visible.
type Controller interface {
	Pause()
	Resume()
	CurrentEvent() (Event, bool)
}

// Subscriber una pestaña conectada. Events entrega los eventos ya personalizados para su usuario.
type Subscriber struct {
	ID      string
	UserID  string
	Scope   Scope
	visible bool
	out     chan Event
}

// Events canal de salida; se cierra al desuscribir.
func (s *Subscriber) Events() <-chan Event { return s.out }

// Hub reparte los eventos del poller entre las pestañas conectadas y controla la pausa
// del poller según cuántas están visibles.
type Hub struct {
	seen repository.SeenRepository
	ctl  Controller
	log  *logger.Logger

	mu      sync.Mutex
	subs    map[string]*Subscriber
	visible int
}

// Verificar que Hub puede recibir eventos del poller.
var _ Publisher = (*Hub)(nil)

// NewHub construye el hub.
func NewHub(seen repository.SeenRepository, ctl Controller, log *logger.Logger) *Hub {
	return &Hub{
		seen: seen,
		ctl:  ctl,
		log:  log,
		subs: make(map[string]*Subscriber),
	}
}

// Subscribe registra una pestaña que ve todas las alertas.
func (h *Hub) Subscribe(ctx context.Context, userID string, visible bool) *Subscriber {
	return h.SubscribeScope(ctx, userID, Scope{}, visible)
}

// SubscribeScope registra una pestaña limitada al alcance de una empresa.
// Si hay un snapshot le envía de inmediato el estado actual.
func (h *Hub) SubscribeScope(ctx context.Context, userID string, scope Scope, visible bool) *Subscriber {
	s := &Subscriber{
		ID:      uuid.NewString(),
		UserID:  userID,
		Scope:   scope,
		visible: visible,
		out:     make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	h.subs[s.ID] = s
	resume := false
	if visible {
		h.visible++
		resume = h.visible == 1
	}
	h.updateGauges()
	h.mu.Unlock()

	if ev, ok := h.ctl.CurrentEvent(); ok {
		h.deliver(ctx, s, ev, nil)
	}
	if resume {
		h.ctl.Resume()
	}
	return s
}

// Unsubscribe quita la pestaña y cierra su canal.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[s.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, s.ID)
	close(s.out)
	pause := false
	if s.visible {
		h.visible--
		pause = h.visible == 0
	}
	h.updateGauges()
	h.mu.Unlock()

	if pause {
		h.ctl.Pause()
	}
}

// SetVisible registra un cambio de visibilidad de la pestaña.
// La primera pestaña visible reanuda el poller (que consulta de inmediato); la última
// que se oculta lo pausa.
func (h *Hub) SetVisible(ctx context.Context, s *Subscriber, visible bool) {
	h.mu.Lock()
	if _, ok := h.subs[s.ID]; !ok || s.visible == visible {
		h.mu.Unlock()
		return
	}
	s.visible = visible
	resume, pause := false, false
	if visible {
		h.visible++
		resume = h.visible == 1
	} else {
		h.visible--
		pause = h.visible == 0
	}
	h.updateGauges()
	h.mu.Unlock()

	switch {
	case resume:
		h.ctl.Resume()
	case pause:
		h.ctl.Pause()
	case visible:
		if ev, ok := h.ctl.CurrentEvent(); ok {
			h.deliver(ctx, s, ev, nil)
		}
	}
}

// Publish envía el evento a todas las pestañas, personalizado por usuario. Las pestañas
// de un mismo usuario reciben el mismo evento, popup incluido.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	targets := make([]*Subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), seenTimeout)
	defer cancel()
	perUser := make(map[string]Event)
	for _, s := range targets {
		h.deliver(ctx, s, ev, perUser)
	}
}

// Len cantidad de pestañas conectadas y cuántas están visibles.
func (h *Hub) Len() (total, visible int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs), h.visible
}

// deliver personaliza el evento para la pestaña y lo encola. perUser guarda el resultado
// por usuario y alcance para no volver a consultar (ni marcar) los vistos en sus otras pestañas.
func (h *Hub) deliver(ctx context.Context, s *Subscriber, ev Event, perUser map[string]Event) {
	key := s.UserID + "\x00" + s.Scope.EmpresaID
	if cached, ok := perUser[key]; ok {
		ev = cached
	} else {
		ev = h.Personalize(ctx, s.UserID, ForScope(ev, s.Scope))
		if perUser != nil {
			perUser[key] = ev
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s.ID]; !ok {
		return
	}
	select {
	case s.out <- ev:
	default:
		h.log.Warn().Str("subscriber", s.ID).Msg("pestaña lenta, evento descartado")
	}
}

// Personalize filtra el popup con lo que el usuario ya vio y registra lo que se le muestra.
// Si el repositorio falla se entrega el evento sin filtrar.
func (h *Hub) Personalize(ctx context.Context, userID string, ev Event) Event {
	if ev.Type != EventStatus || len(ev.NewIDs) == 0 || userID == "" {
		return ev
	}
	unseen, err := h.seen.Unseen(ctx, userID, ev.NewIDs)
	if err != nil {
		h.log.Warn().Err(err).Str("user", userID).Msg("leer alertas vistas")
		return ev
	}
	if len(unseen) == 0 {
		ev.NewIDs = nil
		ev.OpenPanel = false
		ev.Popup = nil
		return ev
	}
	ev.NewIDs = unseen
	ev.OpenPanel = true
	ev.Popup = &Popup{Count: len(unseen), Message: popupMessage(len(unseen))}
	if err := h.seen.MarkSeen(ctx, userID, unseen); err != nil {
		h.log.Warn().Err(err).Str("user", userID).Msg("guardar alertas vistas")
	}
	return ev
}

func (h *Hub) updateGauges() {
	metrics.Subscribers.WithLabelValues("true").Set(float64(h.visible))
	metrics.Subscribers.WithLabelValues("false").Set(float64(len(h.subs) - h.visible))
}
