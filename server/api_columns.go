package main

import (
	"net/http"
	"strings"
)

// MaxColumns caps columns per dashboard; the 11th create is rejected.
const MaxColumns = 10

// GET /{team}/columns?dashboardId
func (a *api) handleListColumns(w http.ResponseWriter, r *http.Request) {
	dashboardID := queryInt64(r, "dashboardId")
	if dashboardID == 0 {
		writeError(w, 400, "dashboardId required")
		return
	}
	ok, err := a.requireMember(r.Context(), r, dashboardID)
	if err != nil {
		a.log.Error("member check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	items, err := a.store.ColumnsByDashboard(r.Context(), dashboardID)
	if err != nil {
		a.log.Error("list columns", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	if items == nil {
		items = []Column{}
	}
	writeJSON(w, 200, map[string]any{"result": "SUCCESS", "data": items})
}

// POST /{team}/columns {title, dashboardId}
func (a *api) handleCreateColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		DashboardID int64  `json:"dashboardId"`
	}
	if err := readJSON(w, r, &req); err != nil || req.DashboardID == 0 {
		writeError(w, 400, "invalid payload")
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
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, 400, "column title required")
		return
	}
	if n, err := a.store.CountColumns(r.Context(), req.DashboardID); err != nil {
		a.log.Error("count columns", "err", err)
		writeError(w, 500, "internal error")
		return
	} else if n >= MaxColumns {
		writeError(w, 400, "column limit reached")
		return
	}
	if dup, err := a.store.ColumnTitleExists(r.Context(), req.DashboardID, title, 0); err != nil {
		a.log.Error("column title check", "err", err)
		writeError(w, 500, "internal error")
		return
	} else if dup {
		writeError(w, 409, "duplicate column title")
		return
	}
	c, err := a.store.CreateColumn(r.Context(), req.DashboardID, title)
	if err != nil {
		a.log.Error("create column", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, c)
	a.bus.Publish(Event{Type: "column.created", Entity: "column", DashboardID: c.DashboardID, ColumnID: &c.ID, Payload: c})
}

// PUT /{team}/columns/{id} {title}
func (a *api) handleUpdateColumn(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	col, err := a.store.GetColumn(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, err, "get column")
		return
	}
	ok, err := a.requireContentEditor(r.Context(), r, col.DashboardID)
	if err != nil {
		a.log.Error("editor check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, 400, "column title required")
		return
	}
	if dup, err := a.store.ColumnTitleExists(r.Context(), col.DashboardID, title, id); err != nil {
		a.log.Error("column title check", "err", err)
		writeError(w, 500, "internal error")
		return
	} else if dup {
		writeError(w, 409, "duplicate column title")
		return
	}
	c, err := a.store.UpdateColumnTitle(r.Context(), id, title)
	if err != nil {
		a.writeStoreError(w, err, "update column")
		return
	}
	writeJSON(w, 200, c)
	a.bus.Publish(Event{Type: "column.updated", Entity: "column", DashboardID: c.DashboardID, ColumnID: &c.ID, Payload: c})
}

// DELETE /{team}/columns/{id} — contained cards go with it
func (a *api) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	col, err := a.store.GetColumn(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, err, "get column")
		return
	}
	ok, err := a.requireContentEditor(r.Context(), r, col.DashboardID)
	if err != nil {
		a.log.Error("editor check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	if err := a.store.DeleteColumn(r.Context(), id); err != nil {
		a.writeStoreError(w, err, "delete column")
		return
	}
	w.WriteHeader(204)
	a.bus.Publish(Event{Type: "column.deleted", Entity: "column", DashboardID: col.DashboardID, ColumnID: &id, Payload: map[string]any{"id": id}})
}

// POST /{team}/columns/{id}/card-image multipart -> {imageUrl}
func (a *api) handleCardImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	col, err := a.store.GetColumn(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, err, "get column")
		return
	}
	ok, err := a.requireContentEditor(r.Context(), r, col.DashboardID)
	if err != nil {
		a.log.Error("editor check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	url, err := a.saveUpload(w, r, "image")
	if err != nil {
		writeError(w, 400, "invalid image upload")
		return
	}
	writeJSON(w, 201, map[string]any{"imageUrl": url})
}
