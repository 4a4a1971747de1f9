package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics es lo que registran el cliente de Riot, el detector y el reporte semanal.
type Metrics interface {
	IncRiotRequest(endpoint string, code int)
	IncRateLimited(endpoint string)
	IncPollCycle(result string)
	IncNotification(ok bool)
	ObserveWeeklyLosses(n int)
}

var (
	_ Metrics = (*Service)(nil)
	_ Metrics = Noop{}
)

// Service implementa Metrics sobre Prometheus
type Service struct {
	RiotRequests  *prometheus.CounterVec
	RateLimited   *prometheus.CounterVec
	PollCycles    *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	WeeklyLosses  prometheus.Gauge
}

// NewService crea y registra las métricas. Sin registerer usa el de Prometheus por defecto.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		RiotRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lol_riot_requests_total",
			Help: "Requests a la API de Riot por endpoint y código HTTP (0 = error de transporte).",
		}, []string{"endpoint", "code"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lol_riot_rate_limited_total",
			Help: "Respuestas 429 recibidas de la API de Riot.",
		}, []string{"endpoint"}),
		PollCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lol_poll_cycles_total",
			Help: "Ciclos de verificación de partidas por resultado.",
		}, []string{"result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lol_notifications_total",
			Help: "Notificaciones enviadas al webhook de Discord.",
		}, []string{"status"}),
		WeeklyLosses: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lol_weekly_losses",
			Help: "Derrotas de la cuenta seguida en el último reporte semanal.",
		}),
	}

	reg.MustRegister(
		s.RiotRequests,
		s.RateLimited,
		s.PollCycles,
		s.Notifications,
		s.WeeklyLosses,
	)

	return s
}

// NewMetricsHandler devuelve el handler HTTP para el gatherer dado (o el por defecto).
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

func (s *Service) IncRiotRequest(endpoint string, code int) {
	s.RiotRequests.WithLabelValues(endpoint, strconv.Itoa(code)).Inc()
}

func (s *Service) IncRateLimited(endpoint string) {
	s.RateLimited.WithLabelValues(endpoint).Inc()
}

func (s *Service) IncPollCycle(result string) {
	s.PollCycles.WithLabelValues(result).Inc()
}

func (s *Service) IncNotification(ok bool) {
	status := "sent"
	if !ok {
		status = "failed"
	}
	s.Notifications.WithLabelValues(status).Inc()
}

func (s *Service) ObserveWeeklyLosses(n int) {
	s.WeeklyLosses.Set(float64(n))
}

// Noop descarta todo; útil en tests y en herramientas de línea de comandos.
type Noop struct{}

func (Noop) IncRiotRequest(string, int) {}
func (Noop) IncRateLimited(string)      {}
func (Noop) IncPollCycle(string)        {}
func (Noop) IncNotification(bool)       {}
func (Noop) ObserveWeeklyLosses(int)    {}
