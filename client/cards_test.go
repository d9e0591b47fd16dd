package client

import (
	"testing"
	"time"
)

func TestSortCards(t *testing.T) {
	day := func(d int) *time.Time {
		ts := time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}
	cards := []Card{
		{ID: 1, DueDate: nil},
		{ID: 2, DueDate: day(20)},
		{ID: 3, DueDate: day(5)},
		{ID: 4, DueDate: nil},
		{ID: 5, DueDate: day(12)},
	}
	SortCards(cards)
	want := []int64{3, 5, 2, 1, 4}
	for i, id := range want {
		if cards[i].ID != id {
			t.Fatalf("order = %v, want %v", cardIDs(cards), want)
		}
	}
}

func cardIDs(cards []Card) []int64 {
	out := make([]int64, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestTagColorCycles(t *testing.T) {
	if TagColor(0) != TagColor(4) {
		t.Fatal("palette should repeat every 4 tags")
	}
	seen := map[TagStyle]bool{}
	for i := 0; i < 4; i++ {
		seen[TagColor(i)] = true
	}
	if len(seen) != 4 {
		t.Fatalf("first four tags use %d styles, want 4", len(seen))
	}
	if TagColor(-1) != TagColor(1) {
		t.Fatal("negative index should not panic or change the palette")
	}
}
