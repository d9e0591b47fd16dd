package client

// Move returns a copy of items with the element at from moved to to, shifting
// the elements in between. Out-of-range indexes or a no-op move return the
// input unchanged.
func Move[T any](items []T, from, to int) []T {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) || from == to {
		return items
	}
	out := make([]T, 0, len(items))
	out = append(out, items...)
	it := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = it
	return out
}

// DragEnd resolves a drop: the dashboard with activeID moves to the slot of
// the one with overID, and the resulting id order is persisted in the store.
// Dropping a dashboard on itself, or with either id absent, is a no-op. The
// reordered slice is returned; on a store error the move still takes effect
// in memory.
func DragEnd(store *OrderStore, key string, dashboards []Dashboard, activeID, overID int64) ([]Dashboard, error) {
	if activeID == overID {
		return dashboards, nil
	}
	from, to := -1, -1
	for i, d := range dashboards {
		switch d.ID {
		case activeID:
			from = i
		case overID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return dashboards, nil
	}
	moved := Move(dashboards, from, to)
	ids := make([]int64, len(moved))
	for i, d := range moved {
		ids[i] = d.ID
	}
	return moved, store.Put(key, ids)
}
