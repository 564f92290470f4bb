// Package metrics define y registra las métricas Prometheus de la consola.
// Es la única fuente de nombres, labels y textos de ayuda; se exponen en GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "consola"

// ── Poller ────────────────────────────────────────────────────────────────────

// PollsTotal cuenta los chequeos de estado físico.
// Label result: "ok" o "error".
var PollsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hardware_status_polls_total",
		Help:      "Total de chequeos de estado físico del hardware, por resultado.",
	},
	[]string{"result"},
)

// PollDuration mide la duración de cada chequeo contra el backend.
var PollDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "hardware_status_poll_duration_seconds",
		Help:      "Duración del chequeo de estado físico contra el backend.",
		Buckets:   prometheus.DefBuckets,
	},
)

// InactiveHardware valor actual del badge (alertas del último chequeo exitoso).
var InactiveHardware = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hardware_inactive_alerts",
		Help:      "Alertas de hardware inactivo en el último chequeo exitoso.",
	},
)

// NewAlertsTotal cuenta ids nuevos detectados entre chequeos.
var NewAlertsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hardware_new_alerts_total",
		Help:      "Total de alertas nuevas detectadas respecto del chequeo anterior.",
	},
)

// ── Websocket ─────────────────────────────────────────────────────────────────

// Subscribers pestañas conectadas al canal de notificaciones.
// Label visible: "true" o "false".
var Subscribers = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_subscribers",
		Help:      "Pestañas conectadas al canal de notificaciones, por visibilidad.",
	},
	[]string{"visible"},
)

// ── Backend proxy ─────────────────────────────────────────────────────────────

// BackendErrorsTotal cuenta errores devueltos por el backend en operaciones CRUD.
// Label op: nombre corto de la operación (p. ej. "empresa_create").
var BackendErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_errors_total",
		Help:      "Errores devueltos por el backend en operaciones de la consola.",
	},
	[]string{"op"},
)

// ── HTTP ──────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal cuenta las peticiones atendidas por la consola.
// Labels: method, route (patrón registrado en Fiber) y status (código HTTP).
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Peticiones HTTP atendidas, por método, ruta y código.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration mide la latencia de las peticiones por ruta.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latencia de las peticiones HTTP, por ruta.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)
