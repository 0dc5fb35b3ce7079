package metric

import "github.com/prometheus/client_golang/prometheus"

// StoreCollector exports live store sizes as gauges without the stores
// having to push updates.
type StoreCollector struct {
	users    func() int
	sessions func() int

	usersDesc    *prometheus.Desc
	sessionsDesc *prometheus.Desc
}

// NewStoreCollector creates a collector over the given count sources.
func NewStoreCollector(users, sessions func() int) *StoreCollector {
	return &StoreCollector{
		users:    users,
		sessions: sessions,
		usersDesc: prometheus.NewDesc(
			"userhub_users_live",
			"Number of live users in the resource store.",
			nil, nil,
		),
		sessionsDesc: prometheus.NewDesc(
			"userhub_sessions_live",
			"Number of stored sessions, expired ones included until sweep.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.usersDesc
	ch <- c.sessionsDesc
}

// Collect implements prometheus.Collector.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.usersDesc, prometheus.GaugeValue, float64(c.users()))
	ch <- prometheus.MustNewConstMetric(c.sessionsDesc, prometheus.GaugeValue, float64(c.sessions()))
}
