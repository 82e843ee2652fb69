package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for one server process.
type Metrics struct {
	GamesStarted     prometheus.Counter
	GamesFinished    *prometheus.CounterVec
	PoliciesEnacted  *prometheus.CounterVec
	CommandsRejected *prometheus.CounterVec
	ClientsConnected prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GamesStarted: f.NewCounter(prometheus.CounterOpts{
			Name: "secrethitler_games_started_total",
			Help: "Games that reached role assignment",
		}),
		GamesFinished: f.NewCounterVec(prometheus.CounterOpts{
			Name: "secrethitler_games_finished_total",
			Help: "Finished games by winning side and outcome",
		}, []string{"winner", "outcome"}),
		PoliciesEnacted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "secrethitler_policies_enacted_total",
			Help: "Enacted policy tiles by kind",
		}, []string{"policy"}),
		CommandsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "secrethitler_commands_rejected_total",
			Help: "Client commands rejected, by error code",
		}, []string{"code"}),
		ClientsConnected: f.NewGauge(prometheus.GaugeOpts{
			Name: "secrethitler_clients_connected",
			Help: "Open websocket connections",
		}),
	}
}

// PolicyEnacted counts one enactment of the given kind label.
func (m *Metrics) PolicyEnacted(kind string) {
	m.PoliciesEnacted.WithLabelValues(kind).Inc()
}

// CommandRejected counts one rejected command.
func (m *Metrics) CommandRejected(code string) {
	m.CommandsRejected.WithLabelValues(code).Inc()
}

// GameFinished counts a finished game.
func (m *Metrics) GameFinished(winner, outcome string) {
	m.GamesFinished.WithLabelValues(winner, outcome).Inc()
}
