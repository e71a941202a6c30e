package domain

import "testing"

func TestIsRateLimitMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want bool
	}{
		{"Error 429, Message: Resource has been exhausted", true},
		{"googleapi: Quota exceeded for quota metric", true},
		{"Error 500, Message: internal error", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsRateLimitMessage(tt.msg); got != tt.want {
			t.Errorf("IsRateLimitMessage(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
