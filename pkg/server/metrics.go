package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	metricActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "seotool",
		Name:      "sessions_active_total",
		Help:      "Number of active authenticated sessions.",
	})
	metricLoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seotool",
		Name:      "login_failures_total",
		Help:      "Rejected login attempts.",
	})
	metricGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seotool",
		Name:      "generation_requests_total",
		Help:      "SEO generation requests by the provider that answered.",
	}, []string{"provider"})
	metricImageConversions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seotool",
		Name:      "image_conversions_total",
		Help:      "Successfully converted WebP images.",
	})
)

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) refreshSessionGauge() {
	metricActiveSessions.Set(float64(s.sessions.Count()))
}
