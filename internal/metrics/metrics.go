package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SubmissionsAcceptedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cacviun_submissions_accepted_total",
		Help: "Total report submissions accepted and persisted",
	})
	SubmissionsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cacviun_submissions_rejected_total",
		Help: "Total report submissions rejected before persistence",
	}, []string{"reason"})
	ReportsServedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cacviun_reports_served_total",
		Help: "Total report records returned to read flows",
	}, []string{"flow"})
)

func init() {
	prometheus.MustRegister(
		SubmissionsAcceptedTotal,
		SubmissionsRejectedTotal,
		ReportsServedTotal,
	)
}

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
