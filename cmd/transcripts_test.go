package cmd

import (
	"strings"
	"testing"
)

func TestTranscriptSummary(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short text passes through", "quick note", "quick note"},
		{"long text truncated", strings.Repeat("a", 60), strings.Repeat("a", 50) + "..."},
		{"multibyte safe", strings.Repeat("ü", 60), strings.Repeat("ü", 50) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transcriptSummary(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
