package main

import "testing"

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name                  string
		createdByMe, readOnly bool
		want                  bool
	}{
		{"creator on normal board", true, false, true},
		{"creator on read-only board", true, true, true},
		{"member on normal board", false, false, true},
		{"member on read-only board", false, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canEdit(tt.createdByMe, tt.readOnly); got != tt.want {
				t.Fatalf("canEdit(%v, %v) = %v, want %v", tt.createdByMe, tt.readOnly, got, tt.want)
			}
		})
	}
}

func TestParseReadOnlySet(t *testing.T) {
	set := parseReadOnlySet(" 3, 17,, bogus ,5")
	if len(set) != 3 {
		t.Fatalf("len = %d, want 3 (%v)", len(set), set)
	}
	for _, id := range []int64{3, 17, 5} {
		if !set[id] {
			t.Fatalf("missing id %d in %v", id, set)
		}
	}
	if len(parseReadOnlySet("")) != 0 {
		t.Fatal("empty csv should yield empty set")
	}
}
