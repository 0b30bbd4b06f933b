package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenCheck(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "valid token continues",
			target:         "/api/users?token=123",
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:           "invalid token rejected",
			target:         "/api/users?token=456",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing token rejected",
			target:         "/api/users",
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := NewTokenCheck("123")(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			handler(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if nextCalled != tt.expectNext {
				t.Fatalf("expected next called=%v, got %v", tt.expectNext, nextCalled)
			}
		})
	}
}

func TestTokenCheckRejectionBody(t *testing.T) {
	handler := NewTokenCheck("123")(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next must not be called")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/?token=wrong", nil))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("can't decode body: %v", err)
	}
	if body["message"] != "Unauthorized: Invalid Token" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}
