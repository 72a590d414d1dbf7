package metrics

import (
	"github.com/anonto42/review-portal/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the portal's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	NotificationsEmitted *prometheus.CounterVec
	DecisionTransitions  *prometheus.CounterVec
	DecisionConflicts    prometheus.Counter
	VersionsUploaded     prometheus.Counter
	OrphansSwept         *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NotificationsEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "review_portal_notifications_emitted_total",
			Help: "Notifications written to the admin feed by category",
		}, []string{"category"}),

		DecisionTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "review_portal_decision_transitions_total",
			Help: "Decision changes by resulting state",
		}, []string{"decision"}),

		DecisionConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "review_portal_decision_conflicts_total",
			Help: "Decision writes that lost a compare-and-set race",
		}),

		VersionsUploaded: factory.NewCounter(prometheus.CounterOpts{
			Name: "review_portal_versions_uploaded_total",
			Help: "Versions appended to project logs",
		}),

		OrphansSwept: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "review_portal_orphans_swept_total",
			Help: "Orphaned documents removed by the sweep job",
		}, []string{"collection"}),
	}
}

func (m *Metrics) NotificationEmitted(category models.NotificationCategory) {
	if m == nil {
		return
	}
	m.NotificationsEmitted.WithLabelValues(string(category)).Inc()
}

func (m *Metrics) DecisionChanged(decision models.Decision) {
	if m == nil {
		return
	}
	m.DecisionTransitions.WithLabelValues(string(decision)).Inc()
}

func (m *Metrics) DecisionConflict() {
	if m == nil {
		return
	}
	m.DecisionConflicts.Inc()
}

func (m *Metrics) VersionUploaded() {
	if m == nil {
		return
	}
	m.VersionsUploaded.Inc()
}

func (m *Metrics) Swept(collection string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.OrphansSwept.WithLabelValues(collection).Add(float64(n))
}
