package client

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// OrderStore persists user-chosen display orders (dashboard drag ordering)
// in a local sqlite database keyed by an arbitrary string, typically the
// user id.
type OrderStore struct {
	db *sql.DB
}

const orderSchema = `
create table if not exists display_order (
	key    text primary key,
	ids    text not null
);
`

// OpenOrderStore opens (creating if needed) the sqlite database at path.
func OpenOrderStore(path string) (*OrderStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open order store: %w", err)
	}
	if _, err := db.Exec(orderSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init order store: %w", err)
	}
	return &OrderStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *OrderStore) Close() error { return s.db.Close() }

// Put stores the id order for key, replacing any previous order.
func (s *OrderStore) Put(key string, ids []int64) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`insert into display_order (key, ids) values (?, ?)
		on conflict (key) do update set ids = excluded.ids`, key, string(data))
	return err
}

// Get returns the stored id order for key, or nil when none is stored.
func (s *OrderStore) Get(key string) ([]int64, error) {
	var data string
	err := s.db.QueryRow(`select ids from display_order where key = ?`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Clear removes the stored order for key.
func (s *OrderStore) Clear(key string) error {
	_, err := s.db.Exec(`delete from display_order where key = ?`, key)
	return err
}

// ApplyOrder rearranges dashboards to match the order stored under key.
// Dashboards whose id appears in the stored order come first, in that order;
// the rest follow in their incoming (server) order. With no stored order the
// input is returned unchanged.
func (s *OrderStore) ApplyOrder(key string, dashboards []Dashboard) ([]Dashboard, error) {
	ids, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return dashboards, nil
	}
	pos := make(map[int64]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	ordered := make([]Dashboard, 0, len(dashboards))
	rest := make([]Dashboard, 0)
	byID := make(map[int64]Dashboard, len(dashboards))
	for _, d := range dashboards {
		if _, ok := pos[d.ID]; ok {
			byID[d.ID] = d
		} else {
			rest = append(rest, d)
		}
	}
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			ordered = append(ordered, d)
		}
	}
	return append(ordered, rest...), nil
}
