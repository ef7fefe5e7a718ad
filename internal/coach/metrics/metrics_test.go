package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/harbourfit/coachd/pkg/httpx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordInviteIssued()
	c.RecordInviteIssued()
	c.RecordInviteRedeemed()
	c.RecordRedeemFailure("expired")

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			values[mf.GetName()] += m.GetCounter().GetValue()
		}
	}

	require.Equal(t, float64(2), values["coachd_invitations_issued_total"])
	require.Equal(t, float64(1), values["coachd_invitations_redeemed_total"])
	require.Equal(t, float64(1), values["coachd_invitation_redeem_failures_total"])
}

func TestHTTPMiddlewareLabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/things/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	handler := httpx.Chain(mux, HTTPMiddleware(c, mux))

	for _, id := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/things/"+id, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	}

	c.RecordRequest(http.MethodGet, "GET /v1/things/{id}", http.StatusNoContent, time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "coachd_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				// Both path variants collapse into one route label.
				if l.GetName() == "route" {
					require.Equal(t, "GET /v1/things/{id}", l.GetValue())
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	require.Equal(t, float64(3), total)
}

func TestScrapeHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordSessionCreated()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "coachd_sessions_created_total 1"))
}
