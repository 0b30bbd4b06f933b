package useragent

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/appforge/pipegate/agentlog"
)

func newTestGuard() (*Guard, *agentlog.MemStore) {
	store := &agentlog.MemStore{}
	guard := New(agentlog.NewLogger(store), []string{"curl", "wget", "Python-Requests"})
	return guard, store
}

func serve(g *Guard, agent string) (*httptest.ResponseRecorder, bool) {
	nextCalled := false
	handler := g.Check(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	if agent != "" {
		req.Header.Set("User-Agent", agent)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w, nextCalled
}

func TestBlockedAgentIsLoggedThenRejected(t *testing.T) {
	guard, store := newTestGuard()

	w, nextCalled := serve(guard, "curl/7.68.0")

	if nextCalled {
		t.Fatal("blocked agent must not continue")
	}
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if len(store.Entries) != 1 || store.Entries[0].Agent != "curl/7.68.0" {
		t.Fatalf("expected the blocked agent to be logged first, got %+v", store.Entries)
	}
}

func TestBrowserAgentIsLoggedThenContinues(t *testing.T) {
	guard, store := newTestGuard()

	w, nextCalled := serve(guard, "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	if !nextCalled {
		t.Fatal("browser agent must continue")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(store.Entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(store.Entries))
	}
}

func TestAbsentAgentIsLoggedThenRejected(t *testing.T) {
	guard, store := newTestGuard()

	w, nextCalled := serve(guard, "")

	if nextCalled {
		t.Fatal("request without a User-Agent must not continue")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(store.Entries) != 1 || store.Entries[0].Agent != "<absent>" {
		t.Fatalf("expected the absence to be logged, got %+v", store.Entries)
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	guard, _ := newTestGuard()

	w, _ := serve(guard, "CURL/8.0.1")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected case-insensitive match to reject, got %d", w.Code)
	}

	w, _ = serve(guard, "python-requests/2.31")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected lowercased pattern to reject, got %d", w.Code)
	}
}

func TestDuplicateAndBlankPatternsAreCollapsed(t *testing.T) {
	guard := New(agentlog.NewLogger(&agentlog.MemStore{}),
		[]string{"curl", " Curl ", "", "CURL", "wget"})

	if len(guard.blocked) != 2 {
		t.Fatalf("expected the pattern list [curl wget], got %v", guard.blocked)
	}
}

func TestLoggingFailureDoesNotAffectTheDecision(t *testing.T) {
	guard := New(agentlog.NewLogger(agentlog.NewFileStore("/nonexistent/dir/agents.json")), nil)

	w, nextCalled := serve(guard, "Mozilla/5.0")

	if !nextCalled || w.Code != http.StatusOK {
		t.Fatalf("expected request to continue despite log failure, got %d", w.Code)
	}
}
