package main

import (
	"os"
	"testing"
)

func TestPortFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{
			name: "unset uses the fallback",
			env:  "",
			want: 8000,
		},
		{
			name: "valid value overrides the fallback",
			env:  "9200",
			want: 9200,
		},
		{
			name: "malformed value falls back",
			env:  "eight thousand",
			want: 8000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env == "" {
				os.Unsetenv("PORT")
			} else {
				os.Setenv("PORT", tt.env)
			}
			defer os.Unsetenv("PORT")

			if got := portFromEnv(8000); got != tt.want {
				t.Fatalf("expected port %d, got %d", tt.want, got)
			}
		})
	}
}
