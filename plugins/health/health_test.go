package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/appforge/pipegate/plugins"
)

func TestHealthCheckAnswersWithoutAnyGate(t *testing.T) {
	router := mux.NewRouter().StrictSlash(true)
	if err := plugins.LoadPlugin(router, Instance()); err != nil {
		t.Fatalf("can't load plugin: %v", err)
	}

	// No token, no User-Agent: the probe route sits outside the gates.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("can't decode body: %v", err)
	}
	if body["message"] != "ok" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}
