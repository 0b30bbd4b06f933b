package errors

import "testing"

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "env var not set",
			err:  NewEnvVarNotSetError("AUTH_TOKEN"),
			want: "pipegate: AUTH_TOKEN env variable not set",
		},
		{
			name: "not found in context",
			err:  NewNotFoundInContextError("request_id"),
			want: `"request_id" not found in request context`,
		},
		{
			name: "invalid cast",
			err:  NewInvalidCastError("ctxBody", "map[string]interface{}"),
			want: "cannot cast ctxBody to map[string]interface{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
