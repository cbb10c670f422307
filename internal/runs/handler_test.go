package runs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHandlerListClampsLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	for i := 0; i < 3; i++ {
		_ = repo.Create(context.Background(), Run{ID: string(rune('a' + i)), Status: StatusSucceeded, CreatedAt: time.Now().Add(time.Duration(i) * time.Second)})
	}

	r := gin.New()
	NewHandler(repo).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs?limit=500&offset=-3", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Items  []Run `json:"items"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Limit != maxListLimit || body.Offset != 0 || len(body.Items) != 3 {
		t.Fatalf("unexpected body %+v", body)
	}
	if body.Items[0].ID != "c" {
		t.Fatalf("expected newest first, got %s", body.Items[0].ID)
	}
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, Run) error { return nil }
func (failingRepo) List(context.Context, int, int) ([]Run, error) {
	return nil, context.DeadlineExceeded
}

func TestHandlerListError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(failingRepo{}).RegisterRoutes(r.Group("/api/v1"))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
