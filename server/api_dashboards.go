package main

import (
	"net/http"
	"strings"
)

// GET /{team}/dashboards?page&size
func (a *api) handleListDashboards(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 10)
	items, total, err := a.store.ListDashboards(r.Context(), u.ID, page, size)
	if err != nil {
		a.log.Error("list dashboards", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	if items == nil {
		items = []Dashboard{}
	}
	writeJSON(w, 200, map[string]any{"dashboards": items, "totalCount": total})
}

// POST /{team}/dashboards {title, color}
func (a *api) handleCreateDashboard(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	var req struct{ Title, Color string }
	if err := readJSON(w, r, &req); err != nil || strings.TrimSpace(req.Title) == "" {
		writeError(w, 400, "invalid payload")
		return
	}
	if req.Color == "" {
		req.Color = "#7AC555"
	}
	d, err := a.store.CreateDashboard(r.Context(), u.ID, strings.TrimSpace(req.Title), req.Color)
	if err != nil {
		a.log.Error("create dashboard", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, d)
}

// GET /{team}/dashboards/{id}
func (a *api) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	ok, err := a.requireMember(r.Context(), r, id)
	if err != nil {
		a.log.Error("member check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	d, err := a.store.GetDashboard(r.Context(), id, a.currentUser(r).ID)
	if err != nil {
		a.writeStoreError(w, err, "get dashboard")
		return
	}
	writeJSON(w, 200, d)
}

// PUT /{team}/dashboards/{id} {title, color} — owner only
func (a *api) handleUpdateDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	u := a.currentUser(r)
	if own, err := a.store.IsDashboardOwner(r.Context(), id, u.ID); err != nil || !own {
		writeError(w, 403, "forbidden")
		return
	}
	var req struct {
		Title *string `json:"title"`
		Color *string `json:"color"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if req.Title != nil {
		t := strings.TrimSpace(*req.Title)
		if t == "" {
			writeError(w, 400, "title cannot be empty")
			return
		}
		req.Title = &t
	}
	if err := a.store.UpdateDashboard(r.Context(), id, req.Title, req.Color); err != nil {
		a.writeStoreError(w, err, "update dashboard")
		return
	}
	d, err := a.store.GetDashboard(r.Context(), id, u.ID)
	if err != nil {
		a.writeStoreError(w, err, "get dashboard")
		return
	}
	writeJSON(w, 200, d)
	a.bus.Publish(Event{Type: "dashboard.updated", Entity: "dashboard", DashboardID: id, Payload: d})
}

// DELETE /{team}/dashboards/{id} — owner only
func (a *api) handleDeleteDashboard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	u := a.currentUser(r)
	if own, err := a.store.IsDashboardOwner(r.Context(), id, u.ID); err != nil || !own {
		writeError(w, 403, "forbidden")
		return
	}
	if err := a.store.DeleteDashboard(r.Context(), id); err != nil {
		a.writeStoreError(w, err, "delete dashboard")
		return
	}
	w.WriteHeader(204)
}

// GET /{team}/dashboards/{id}/events — SSE stream of board mutations
func (a *api) handleDashboardEvents(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	ok, err := a.requireMember(r.Context(), r, id)
	if err != nil {
		a.log.Error("member check", "err", err)
	}
	if !ok {
		writeError(w, 403, "forbidden")
		return
	}
	a.bus.ServeSSE(w, r, id)
}
