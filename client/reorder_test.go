package client

import (
	"path/filepath"
	"testing"
)

func dashIDs(ds []Dashboard) []int64 {
	out := make([]int64, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func makeDashboards(titles ...string) []Dashboard {
	out := make([]Dashboard, len(titles))
	for i, title := range titles {
		out[i] = Dashboard{ID: int64(i + 1), Title: title}
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []int64
	}{
		{"forward", 1, 2, []int64{1, 3, 2}},
		{"backward", 2, 0, []int64{3, 1, 2}},
		{"same index", 1, 1, []int64{1, 2, 3}},
		{"from out of range", 5, 0, []int64{1, 2, 3}},
		{"to out of range", 0, -1, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := makeDashboards("A", "B", "C")
			got := dashIDs(Move(in, tt.from, tt.to))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
			// Input untouched.
			if in[0].Title != "A" || in[1].Title != "B" || in[2].Title != "C" {
				t.Fatalf("input mutated: %v", in)
			}
		})
	}
}

func openTestStore(t *testing.T) *OrderStore {
	t.Helper()
	store, err := OpenOrderStore(filepath.Join(t.TempDir(), "order.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDragEndPersistsOrder(t *testing.T) {
	store := openTestStore(t)
	ds := makeDashboards("A", "B", "C")

	// Drag B onto C.
	moved, err := DragEnd(store, "user:7", ds, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{1, 3, 2}
	got := dashIDs(moved)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("moved = %v, want %v", got, want)
		}
	}

	ids, err := store.Get("user:7")
	if err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("stored = %v, want %v", ids, want)
		}
	}
}

func TestDragEndNoOps(t *testing.T) {
	store := openTestStore(t)
	ds := makeDashboards("A", "B", "C")

	// Drop on self.
	moved, err := DragEnd(store, "u", ds, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if dashIDs(moved)[1] != 2 {
		t.Fatalf("self-drop changed order: %v", dashIDs(moved))
	}

	// Drop with an unknown target.
	moved, err = DragEnd(store, "u", ds, 2, 99)
	if err != nil {
		t.Fatal(err)
	}
	if dashIDs(moved)[1] != 2 {
		t.Fatalf("unknown target changed order: %v", dashIDs(moved))
	}

	// Neither no-op should have persisted anything.
	ids, err := store.Get("u")
	if err != nil {
		t.Fatal(err)
	}
	if ids != nil {
		t.Fatalf("no-op persisted order %v", ids)
	}
}

func TestApplyOrder(t *testing.T) {
	store := openTestStore(t)
	if err := store.Put("u", []int64{1, 3, 2}); err != nil {
		t.Fatal(err)
	}

	// Server returns a different order; the stored order wins.
	server := []Dashboard{{ID: 3}, {ID: 1}, {ID: 2}}
	got, err := store.ApplyOrder("u", server)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{1, 3, 2}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v, want %v", dashIDs(got), want)
		}
	}

	// A dashboard the store has not seen trails in server order.
	server = []Dashboard{{ID: 4}, {ID: 3}, {ID: 1}, {ID: 5}, {ID: 2}}
	got, err = store.ApplyOrder("u", server)
	if err != nil {
		t.Fatal(err)
	}
	want = []int64{1, 3, 2, 4, 5}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v, want %v", dashIDs(got), want)
		}
	}

	// Stored ids missing from the server list are skipped.
	server = []Dashboard{{ID: 2}, {ID: 1}}
	got, err = store.ApplyOrder("u", server)
	if err != nil {
		t.Fatal(err)
	}
	want = []int64{1, 2}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order = %v, want %v", dashIDs(got), want)
		}
	}
}

func TestOrderStoreRoundtrip(t *testing.T) {
	store := openTestStore(t)

	ids, err := store.Get("missing")
	if err != nil {
		t.Fatal(err)
	}
	if ids != nil {
		t.Fatalf("missing key = %v, want nil", ids)
	}

	if err := store.Put("k", []int64{5, 4}); err != nil {
		t.Fatal(err)
	}
	if err := store.Put("k", []int64{4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	ids, err = store.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{4, 5, 6}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}

	if err := store.Clear("k"); err != nil {
		t.Fatal(err)
	}
	ids, err = store.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if ids != nil {
		t.Fatalf("after clear = %v, want nil", ids)
	}
}
