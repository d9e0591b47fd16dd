package main

import "net/http"

// GET /{team}/members?dashboardId&page&size
func (a *api) handleListMembers(w http.ResponseWriter, r *http.Request) {
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
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 20)
	members, total, err := a.store.MembersByDashboard(r.Context(), dashboardID, page, size)
	if err != nil {
		a.log.Error("list members", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	if members == nil {
		members = []Member{}
	}
	writeJSON(w, 200, map[string]any{"members": members, "totalCount": total})
}

// DELETE /{team}/members/{id} — the owner removes others; a non-owner
// may remove their own row to leave the dashboard.
func (a *api) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	m, dashboardID, err := a.store.MemberByID(r.Context(), id)
	if err != nil {
		a.writeStoreError(w, err, "get member")
		return
	}
	u := a.currentUser(r)
	own, err := a.store.IsDashboardOwner(r.Context(), dashboardID, u.ID)
	if err != nil {
		a.writeStoreError(w, err, "owner check")
		return
	}
	if !own && m.UserID != u.ID {
		writeError(w, 403, "forbidden")
		return
	}
	if err := a.store.DeleteMember(r.Context(), id); err != nil {
		a.writeStoreError(w, err, "delete member")
		return
	}
	w.WriteHeader(204)
}
