package client

import (
	"context"
	"sync"
)

// PageFunc fetches one page of items after the given cursor. A cursor of 0
// means the beginning. It returns the items in server order.
type PageFunc[T any] func(ctx context.Context, cursor int64, size int) ([]T, error)

// Loader accumulates cursor-paginated items, deduplicating by id. Concurrent
// LoadNext calls are collapsed: while a fetch is in flight, further calls
// return immediately without issuing a request.
type Loader[T any] struct {
	mu        sync.Mutex
	fetch     PageFunc[T]
	id        func(T) int64
	firstSize int
	size      int
	fetched   bool
	items     []T
	seen      map[int64]bool
	cursor    int64
	hasMore   bool
	busy      bool
}

// NewLoader builds a Loader that requests size items per page and identifies
// items with the id function.
func NewLoader[T any](fetch PageFunc[T], id func(T) int64, size int) *Loader[T] {
	return NewLoaderSized(fetch, id, size, size)
}

// NewLoaderSized is NewLoader with a distinct size for the first page, for
// lists that fill a view up front and then grow in small steps.
func NewLoaderSized[T any](fetch PageFunc[T], id func(T) int64, firstSize, size int) *Loader[T] {
	return &Loader[T]{
		fetch:     fetch,
		id:        id,
		firstSize: firstSize,
		size:      size,
		seen:      make(map[int64]bool),
		hasMore:   true,
	}
}

// LoadNext fetches the next page and merges it into the accumulated items.
// New items keep first-seen order; items whose id was already seen are
// skipped. On error the loader state is unchanged, so the call can simply be
// retried.
func (l *Loader[T]) LoadNext(ctx context.Context) error {
	l.mu.Lock()
	if l.busy || !l.hasMore {
		l.mu.Unlock()
		return nil
	}
	l.busy = true
	cursor, size := l.cursor, l.size
	if !l.fetched {
		size = l.firstSize
	}
	l.mu.Unlock()

	page, err := l.fetch(ctx, cursor, size)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.busy = false
	if err != nil {
		return err
	}
	l.fetched = true
	for _, it := range page {
		id := l.id(it)
		if l.seen[id] {
			continue
		}
		l.seen[id] = true
		l.items = append(l.items, it)
	}
	if len(page) > 0 {
		l.cursor = l.id(page[len(page)-1])
	}
	if len(page) < size {
		l.hasMore = false
	}
	return nil
}

// Items returns a copy of the accumulated items in first-seen order.
func (l *Loader[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// HasMore reports whether another page may exist.
func (l *Loader[T]) HasMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hasMore
}

// Len returns the number of accumulated items.
func (l *Loader[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Reset discards all accumulated items and restarts from the beginning.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.seen = make(map[int64]bool)
	l.cursor = 0
	l.hasMore = true
	l.busy = false
	l.fetched = false
}

// Add inserts an item that was created locally (for example the response of a
// create call) without going through a page fetch. Duplicates are ignored.
func (l *Loader[T]) Add(it T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.id(it)
	if l.seen[id] {
		return
	}
	l.seen[id] = true
	l.items = append(l.items, it)
}

// Remove drops the item with the given id, if present.
func (l *Loader[T]) Remove(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.seen[id] {
		return
	}
	delete(l.seen, id)
	for i, it := range l.items {
		if l.id(it) == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
}
