// Package metrics collects and exposes Prometheus metrics for the HTTP
// surface and the invitation lifecycle.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records the service metrics.
type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	invitesIssued   prometheus.Counter
	invitesRedeemed prometheus.Counter
	redeemFailures  *prometheus.CounterVec
	sessionsCreated prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachd_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coachd_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		invitesIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachd_invitations_issued_total",
			Help: "Invitation tokens handed out, including reused ones.",
		}),
		invitesRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachd_invitations_redeemed_total",
			Help: "Successful invitation redemptions.",
		}),
		redeemFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachd_invitation_redeem_failures_total",
			Help: "Failed invitation redemptions by reason.",
		}, []string{"reason"}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachd_sessions_created_total",
			Help: "Login sessions created.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.invitesIssued,
		c.invitesRedeemed,
		c.redeemFailures,
		c.sessionsCreated,
	)

	return c
}

func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(route).Observe(duration.Seconds())
}

func (c *Collector) RecordInviteIssued()   { c.invitesIssued.Inc() }
func (c *Collector) RecordInviteRedeemed() { c.invitesRedeemed.Inc() }

// RecordRedeemFailure counts a failed redemption. Reason is a small fixed
// vocabulary ("invalid", "expired", "error") to keep cardinality bounded.
func (c *Collector) RecordRedeemFailure(reason string) {
	c.redeemFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordSessionCreated() { c.sessionsCreated.Inc() }

// Handler returns the Prometheus scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
