package main

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{"2025-06-10T09:30:00Z", "2025-06-10T09:30:00Z", true},
		{"2025-06-10 09:30", "2025-06-10T09:30:00Z", true},
		{"2025-06-10", "2025-06-10T00:00:00Z", true},
		{"next tuesday", "", false},
		{"2025-13-40", "", false},
	}
	for _, tt := range tests {
		got, ok := parseDueDate(tt.in)
		if ok != tt.ok {
			t.Fatalf("parseDueDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
		if !tt.ok {
			continue
		}
		if tt.want == "" {
			if got != nil {
				t.Fatalf("parseDueDate(%q) = %v, want nil", tt.in, got)
			}
			continue
		}
		if got == nil || !got.Equal(mustTime(t, tt.want)) {
			t.Fatalf("parseDueDate(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}
