package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func TestHandlerExposesRunCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	IncRunStarted()
	IncRunFinished("completed")
	ObserveRunDurationMs(120)
	ObserveModelRequest("test-model", "ok", 2*time.Second)
	SetArtifactsLive(2)
	IncArtifactRemoved("expired")
	IncRateLimited("TAILOR")

	r := gin.New()
	r.GET("/metrics", Handler())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"tailor_runs_started_total",
		`tailor_runs_finished_total{outcome="completed"}`,
		"tailor_run_duration_ms_bucket",
		`model_request_duration_ms_count{model="test-model",result="ok"}`,
		"artifacts_live 2",
		`artifacts_removed_total{reason="expired"}`,
		`http_rate_limited_total{group="TAILOR"}`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected metrics output to contain %q", want)
		}
	}
}

func TestRegisterDBStatsIsIdempotent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	if err := RegisterDBStats(db, "runs_test"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := RegisterDBStats(db, "runs_test"); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if err := RegisterDBStats(nil, "none"); err != nil {
		t.Fatalf("nil db: %v", err)
	}

	r := gin.New()
	r.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(resp.Body.String(), `go_sql_max_open_connections{db_name="runs_test"}`) {
		t.Fatalf("expected db stats in metrics output")
	}
}
