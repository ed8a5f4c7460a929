package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRegistryServesAppMetrics(t *testing.T) {
	reg := InitRegistry()

	ObserveSync("Sea Breeze Resort", "inserted", 3)
	ObserveHTTP("/v1/reservations", http.MethodGet, 200, 5*time.Millisecond)
	ObserveExternal("stayflexi", "bookings", 200, 5*time.Millisecond)
	ObserveCache("redis", "hit")

	rec := httptest.NewRecorder()
	MetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	for _, name := range []string{
		"flexisync_sync_records_total",
		"flexisync_http_requests_total",
		"flexisync_external_requests_total",
		"flexisync_cache_events_total",
	} {
		if !strings.Contains(body, name) {
			t.Fatalf("scrape missing %s:\n%s", name, body)
		}
	}
}
