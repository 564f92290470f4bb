package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/metrics"
	"github.com/jhoicas/consola-hardware/pkg/logger"
)

// DefaultInterval cada cuánto se consulta el estado físico.
const DefaultInterval = 10 * time.Second

const errorMessage = "No se pudo verificar el estado del hardware. Se reintentará en el próximo ciclo."

// Publisher recibe cada evento del poller (el Hub de websockets en producción).
type Publisher interface {
	Publish(ev Event)
}

// PublisherFunc adapta una función a Publisher.
type PublisherFunc func(Event)

// Publish implementa Publisher.
func (f PublisherFunc) Publish(ev Event) { f(ev) }

// Poller consulta periódicamente el estado físico del hardware y publica el resultado.
// No hay reintentos: un chequeo fallido espera al siguiente ciclo y deja el snapshot intacto.
// Los chequeos manuales (Refresh) pueden solaparse con el automático; son lecturas idempotentes.
type Poller struct {
	api      ports.StatusAPI
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time

	mu        sync.RWMutex
	pub       Publisher
	snapshot  Snapshot
	paused    bool
	resumeReq chan struct{}
}

// PollerOption configura el Poller.
type PollerOption func(*Poller)

// WithInterval cambia el intervalo entre chequeos.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// StartPaused hace que Run no consulte hasta el primer Resume.
func StartPaused() PollerOption {
	return func(p *Poller) { p.paused = true }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) PollerOption {
	return func(p *Poller) { p.now = now }
}

// NewPoller construye el poller. pub puede ser nil y asignarse luego con SetPublisher.
func NewPoller(api ports.StatusAPI, pub Publisher, log *logger.Logger, opts ...PollerOption) *Poller {
	p := &Poller{
		api:       api,
		pub:       pub,
		interval:  DefaultInterval,
		log:       log,
		now:       time.Now,
		resumeReq: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// SetPublisher asigna el destino de los eventos.
func (p *Poller) SetPublisher(pub Publisher) {
	p.mu.Lock()
	p.pub = pub
	p.mu.Unlock()
}

// Run bloquea hasta que ctx se cancela. Si no arrancó en pausa, consulta de inmediato.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if !p.Paused() {
		p.Poll(ctx)
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.Paused() {
				p.Poll(ctx)
			}
		case <-p.resumeReq:
			ticker.Reset(p.interval)
			p.Poll(ctx)
		}
	}
}

// Pause detiene los chequeos automáticos (ninguna pestaña visible).
func (p *Poller) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.paused {
		p.paused = true
		p.log.Debug().Msg("poller en pausa")
	}
}

// Resume reanuda los chequeos y pide uno inmediato. No hace nada si no estaba en pausa.
func (p *Poller) Resume() {
	p.mu.Lock()
	wasPaused := p.paused
	p.paused = false
	p.mu.Unlock()
	if !wasPaused {
		return
	}
	p.log.Debug().Msg("poller reanudado")
	select {
	case p.resumeReq <- struct{}{}:
	default:
	}
}

// Paused indica si el poller está en pausa.
func (p *Poller) Paused() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.paused
}

// Snapshot devuelve una copia del último estado conocido.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := p.snapshot
	s.Alerts = append(s.Alerts[:0:0], s.Alerts...)
	return s
}

// Refresh ejecuta un chequeo manual y devuelve el evento publicado.
func (p *Poller) Refresh(ctx context.Context) Event {
	return p.Poll(ctx)
}

// Poll ejecuta un chequeo, actualiza el snapshot y publica el evento resultante.
func (p *Poller) Poll(ctx context.Context) Event {
	start := time.Now()
	raw, err := p.api.CheckPhysicalStatus(ctx)
	var ev Event
	if err == nil {
		ev, err = p.apply(raw)
	}
	metrics.PollDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PollsTotal.WithLabelValues("error").Inc()
		p.log.Warn().Err(err).Msg("chequeo de estado físico fallido")
		p.mu.Lock()
		p.snapshot.LastError = errorMessage
		count := len(p.snapshot.Alerts)
		p.mu.Unlock()
		ev = Event{Type: EventError, Alerts: []dto.AlertDTO{}, Count: count, Message: errorMessage, At: p.now()}
	} else {
		metrics.PollsTotal.WithLabelValues("ok").Inc()
		metrics.InactiveHardware.Set(float64(ev.Count))
		metrics.NewAlertsTotal.Add(float64(len(ev.NewIDs)))
		if len(ev.NewIDs) > 0 {
			p.log.Info().Int("nuevas", len(ev.NewIDs)).Int("total", ev.Count).Msg("alertas de hardware nuevas")
		}
	}

	p.mu.RLock()
	pub := p.pub
	p.mu.RUnlock()
	if pub != nil {
		pub.Publish(ev)
	}
	return ev
}

// apply normaliza la respuesta y reemplaza el snapshot bajo el lock.
func (p *Poller) apply(raw []byte) (Event, error) {
	alerts, err := Normalize(raw)
	if err != nil {
		return Event{}, err
	}
	at := p.now()

	p.mu.Lock()
	newIDs := Diff(IDs(p.snapshot.Alerts), IDs(alerts), !p.snapshot.Loaded)
	p.snapshot = Snapshot{Alerts: alerts, Loaded: true, UpdatedAt: at}
	p.mu.Unlock()

	return statusEvent(alerts, newIDs, at), nil
}

// CurrentEvent arma un evento a partir del snapshot, como si fuera la primera carga de una pestaña.
// Si aún no hubo chequeo exitoso devuelve ok=false.
func (p *Poller) CurrentEvent() (Event, bool) {
	s := p.Snapshot()
	if !s.Loaded {
		return Event{}, false
	}
	return statusEvent(s.Alerts, IDs(s.Alerts), s.UpdatedAt), true
}
