package client

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func cardID(c Card) int64 { return c.ID }

func makeCards(ids ...int64) []Card {
	out := make([]Card, len(ids))
	for i, id := range ids {
		out[i] = Card{ID: id}
	}
	return out
}

// pagedFetch serves pages of size n from all, keyed by cursor the way the
// server does it: items with id greater than cursor.
func pagedFetch(all []Card) PageFunc[Card] {
	return func(_ context.Context, cursor int64, size int) ([]Card, error) {
		var page []Card
		for _, c := range all {
			if c.ID > cursor {
				page = append(page, c)
			}
			if len(page) == size {
				break
			}
		}
		return page, nil
	}
}

func TestLoaderPagination(t *testing.T) {
	all := makeCards(1, 2, 3, 4, 5, 6, 7, 8)
	l := NewLoader(pagedFetch(all), cardID, 6)

	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := l.Len(); got != 6 {
		t.Fatalf("after first page: len = %d, want 6", got)
	}
	if !l.HasMore() {
		t.Fatal("after full first page: HasMore = false, want true")
	}

	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	items := l.Items()
	if len(items) != 8 {
		t.Fatalf("after second page: len = %d, want 8", len(items))
	}
	for i, it := range items {
		if it.ID != int64(i+1) {
			t.Fatalf("items[%d].ID = %d, want %d", i, it.ID, i+1)
		}
	}
	if l.HasMore() {
		t.Fatal("after short page: HasMore = true, want false")
	}

	// Exhausted loader must not fetch again.
	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := l.Len(); got != 8 {
		t.Fatalf("after extra LoadNext: len = %d, want 8", got)
	}
}

func TestLoaderFirstPageSize(t *testing.T) {
	var sizes []int
	fetch := func(_ context.Context, cursor int64, size int) ([]Card, error) {
		sizes = append(sizes, size)
		return makeCards(cursor + 1), nil
	}
	l := NewLoaderSized(fetch, cardID, 300, 6)
	for i := 0; i < 3; i++ {
		if err := l.LoadNext(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	// A short first page exhausts the loader; only one fetch happens.
	want := []int{300}
	if len(sizes) != 1 || sizes[0] != 300 {
		t.Fatalf("sizes = %v, want %v", sizes, want)
	}

	sizes = nil
	all := makeCards(1, 2, 3)
	l = NewLoaderSized(pagedFetchCount(all, &sizes), cardID, 2, 1)
	for l.HasMore() {
		if err := l.LoadNext(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	want = []int{2, 1, 1}
	if len(sizes) != len(want) {
		t.Fatalf("sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("sizes = %v, want %v", sizes, want)
		}
	}
	if got := l.Len(); got != 3 {
		t.Fatalf("len = %d, want 3", got)
	}
}

func pagedFetchCount(all []Card, sizes *[]int) PageFunc[Card] {
	inner := pagedFetch(all)
	return func(ctx context.Context, cursor int64, size int) ([]Card, error) {
		*sizes = append(*sizes, size)
		return inner(ctx, cursor, size)
	}
}

func TestLoaderDedupe(t *testing.T) {
	// A card created locally between pages would otherwise show up twice.
	calls := 0
	fetch := func(_ context.Context, cursor int64, size int) ([]Card, error) {
		calls++
		if calls == 1 {
			return makeCards(1, 2, 3), nil
		}
		return makeCards(3, 4), nil
	}
	l := NewLoader(fetch, cardID, 3)
	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	items := l.Items()
	want := []int64{1, 2, 3, 4}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Fatalf("items[%d].ID = %d, want %d", i, items[i].ID, id)
		}
	}
}

func TestLoaderSingleFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	fetch := func(_ context.Context, cursor int64, size int) ([]Card, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return makeCards(1), nil
	}
	l := NewLoader(fetch, cardID, 6)

	done := make(chan error, 1)
	go func() { done <- l.LoadNext(context.Background()) }()
	<-started

	// Second call while the first is in flight must return without fetching.
	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", calls)
	}
}

func TestLoaderErrorKeepsState(t *testing.T) {
	boom := errors.New("network down")
	calls := 0
	fetch := func(_ context.Context, cursor int64, size int) ([]Card, error) {
		calls++
		switch calls {
		case 1:
			return makeCards(1, 2), nil
		case 2:
			return nil, boom
		default:
			if cursor != 2 {
				return nil, errors.New("cursor moved after failed page")
			}
			return makeCards(3), nil
		}
	}
	l := NewLoader(fetch, cardID, 2)
	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := l.LoadNext(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got := l.Len(); got != 2 {
		t.Fatalf("after failed page: len = %d, want 2", got)
	}
	if !l.HasMore() {
		t.Fatal("after failed page: HasMore = false, want true")
	}
	// Retry picks up where the failure left off.
	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := l.Len(); got != 3 {
		t.Fatalf("after retry: len = %d, want 3", got)
	}
}

func TestLoaderAddRemove(t *testing.T) {
	l := NewLoader(pagedFetch(makeCards(1, 2)), cardID, 6)
	if err := l.LoadNext(context.Background()); err != nil {
		t.Fatal(err)
	}
	l.Add(Card{ID: 9})
	l.Add(Card{ID: 2}) // duplicate, ignored
	if got := l.Len(); got != 3 {
		t.Fatalf("len = %d, want 3", got)
	}
	l.Remove(1)
	items := l.Items()
	if len(items) != 2 || items[0].ID != 2 || items[1].ID != 9 {
		t.Fatalf("items = %v", items)
	}
}
