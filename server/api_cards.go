package main

import (
	"net/http"
	"strings"
	"time"
)

type cardPayload struct {
	AssigneeUserID *int64   `json:"assigneeUserId"`
	DashboardID    int64    `json:"dashboardId"`
	ColumnID       *int64   `json:"columnId"`
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	DueDate        *string  `json:"dueDate"`
	Tags           []string `json:"tags"`
	ImageURL       *string  `json:"imageUrl"`
}

// dueDate arrives as RFC3339 or as the original form's "2006-01-02 15:04".
func parseDueDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// GET /{team}/cards?columnId&cursorId&size
func (a *api) handleListCards(w http.ResponseWriter, r *http.Request) {
	columnID := queryInt64(r, "columnId")
	if columnID == 0 {
		writeError(w, 400, "columnId required")
		return
	}
	col, err := a.store.GetColumn(r.Context(), columnID)
	if err != nil {
		a.writeStoreError(w, err, "get column")
		return
	}
	ok, err := a.requireMember(r.Context(), r, col.DashboardID)
	if err != nil {
		a.log.Error("member check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	cursorID := queryInt64(r, "cursorId")
	size := queryInt(r, "size", 10)
	cards, total, err := a.store.CardsByColumn(r.Context(), columnID, cursorID, size)
	if err != nil {
		a.log.Error("list cards", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	// cursorId echoes the last id of a full page; null marks exhaustion
	var nextCursor *int64
	if len(cards) == size {
		nextCursor = &cards[len(cards)-1].ID
	}
	if cards == nil {
		cards = []Card{}
	}
	writeJSON(w, 200, map[string]any{"cards": cards, "totalCount": total, "cursorId": nextCursor})
}

// POST /{team}/cards
func (a *api) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardPayload
	if err := readJSON(w, r, &req); err != nil || req.DashboardID == 0 || req.ColumnID == nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		writeError(w, 400, "title required")
		return
	}
	ok, err := a.requireContentEditor(r.Context(), r, req.DashboardID)
	if err != nil {
		a.log.Error("editor check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	fields, ok := cardFieldsFromPayload(req)
	if !ok {
		writeError(w, 400, "invalid dueDate")
		return
	}
	c, err := a.store.CreateCard(r.Context(), req.DashboardID, *req.ColumnID, fields)
	if err != nil {
		a.log.Error("create card", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, c)
	a.bus.Publish(Event{Type: "card.created", Entity: "card", DashboardID: c.DashboardID, ColumnID: &c.ColumnID, Payload: c})
}

func cardFieldsFromPayload(req cardPayload) (CardFields, bool) {
	f := CardFields{
		Title:          req.Title,
		Description:    req.Description,
		Tags:           req.Tags,
		AssigneeUserID: req.AssigneeUserID,
		ImageURL:       req.ImageURL,
		ColumnID:       req.ColumnID,
	}
	if req.DueDate != nil {
		due, ok := parseDueDate(*req.DueDate)
		if !ok {
			return CardFields{}, false
		}
		f.DueDate = due
	}
	return f, true
}

// GET /{team}/cards/{id}
func (a *api) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	c, err := a.store.GetCard(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, err, "get card")
		return
	}
	ok, err := a.requireMember(r.Context(), r, c.DashboardID)
	if err != nil {
		a.log.Error("member check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	writeJSON(w, 200, c)
}

// PUT /{team}/cards/{id}
func (a *api) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	existing, err := a.store.GetCard(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, err, "get card")
		return
	}
	ok, err := a.requireContentEditor(r.Context(), r, existing.DashboardID)
	if err != nil {
		a.log.Error("editor check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	var req cardPayload
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeError(w, 400, "title required")
		return
	}
	fields, ok := cardFieldsFromPayload(req)
	if !ok {
		writeError(w, 400, "invalid dueDate")
		return
	}
	c, err := a.store.UpdateCard(r.Context(), id, fields)
	if err != nil {
		a.writeStoreError(w, err, "update card")
		return
	}
	writeJSON(w, 200, c)
	a.bus.Publish(Event{Type: "card.updated", Entity: "card", DashboardID: c.DashboardID, ColumnID: &c.ColumnID, Payload: c})
}

// DELETE /{team}/cards/{id}
func (a *api) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	c, err := a.store.GetCard(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, err, "get card")
		return
	}
	ok, err := a.requireContentEditor(r.Context(), r, c.DashboardID)
	if err != nil {
		a.log.Error("editor check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	if err := a.store.DeleteCard(r.Context(), id); err != nil {
		a.writeStoreError(w, err, "delete card")
		return
	}
	w.WriteHeader(204)
	a.bus.Publish(Event{Type: "card.deleted", Entity: "card", DashboardID: c.DashboardID, ColumnID: &c.ColumnID, Payload: map[string]any{"id": id}})
}
