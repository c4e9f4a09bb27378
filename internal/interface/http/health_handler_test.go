package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/fretops/fretops-api/internal/store"
)

func healthRequest(t *testing.T, h *HealthHandler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", h.Liveness)
	r.GET("/api/database-health", h.DatabaseHealth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestLivenessPing(t *testing.T) {
	okPing := func(context.Context) error { return nil }
	h := NewHealthHandler(nil, okPing, quietLogger())
	w, body := healthRequest(t, h, "/api/health")
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}

	badPing := func(context.Context) error { return errors.New("connexion perdue") }
	h = NewHealthHandler(nil, badPing, quietLogger())
	w, body = healthRequest(t, h, "/api/health")
	if w.Code != http.StatusServiceUnavailable || body["status"] != "unhealthy" {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}
}

func TestDatabaseHealthPartial(t *testing.T) {
	healthy := &fakeColl{}
	broken := &fakeColl{countErr: errors.New("collection indisponible")}
	h := NewHealthHandler([]*store.Store{
		store.New(healthy, messageSchema(), quietLogger()),
		store.New(broken, messageSchema(), quietLogger()),
	}, nil, quietLogger())

	w, body := healthRequest(t, h, "/api/database-health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["status"] != "partial" {
		t.Errorf("status = %v, want partial", body["status"])
	}
	probes, _ := body["collections"].([]interface{})
	if len(probes) != 2 {
		t.Fatalf("collections = %v", body["collections"])
	}
}

func TestDatabaseHealthAllDown(t *testing.T) {
	broken := &fakeColl{countErr: errors.New("hors service")}
	h := NewHealthHandler([]*store.Store{
		store.New(broken, messageSchema(), quietLogger()),
	}, nil, quietLogger())

	w, body := healthRequest(t, h, "/api/database-health")
	if w.Code != http.StatusServiceUnavailable || body["status"] != "unhealthy" {
		t.Fatalf("status = %d body = %v", w.Code, body)
	}
}
