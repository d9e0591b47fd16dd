package main

import (
	"net/http"
	"strings"
)

// POST /{team}/dashboards/{id}/invitations {email} — owner only
func (a *api) handleInvite(w http.ResponseWriter, r *http.Request) {
	dashboardID, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	u := a.currentUser(r)
	if own, err := a.store.IsDashboardOwner(r.Context(), dashboardID, u.ID); err != nil || !own {
		writeError(w, 403, "forbidden")
		return
	}
	var req struct {
		Email string `json:"email"`
	}
	if err := readJSON(w, r, &req); err != nil || strings.TrimSpace(req.Email) == "" {
		writeError(w, 400, "invalid payload")
		return
	}
	in, err := a.store.CreateInvitation(r.Context(), r.PathValue("team"), dashboardID, u.ID, strings.TrimSpace(req.Email))
	if err != nil {
		switch err {
		case ErrNotFound:
			writeError(w, 404, "no user with that email")
		case ErrConflict:
			writeError(w, 409, "already a member or already invited")
		default:
			a.log.Error("create invitation", "err", err)
			writeError(w, 500, "internal error")
		}
		return
	}
	writeJSON(w, 201, in)
}

// GET /{team}/dashboards/{id}/invitations?page&size — pending, inviter's view
func (a *api) handleDashboardInvitations(w http.ResponseWriter, r *http.Request) {
	dashboardID, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	u := a.currentUser(r)
	if own, err := a.store.IsDashboardOwner(r.Context(), dashboardID, u.ID); err != nil || !own {
		writeError(w, 403, "forbidden")
		return
	}
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", 10)
	items, total, err := a.store.InvitationsByDashboard(r.Context(), r.PathValue("team"), dashboardID, page, size)
	if err != nil {
		a.log.Error("dashboard invitations", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	if items == nil {
		items = []Invitation{}
	}
	writeJSON(w, 200, map[string]any{"invitations": items, "totalCount": total})
}

// DELETE /{team}/dashboards/{id}/invitations/{iid} — cancel while pending
func (a *api) handleCancelInvitation(w http.ResponseWriter, r *http.Request) {
	dashboardID, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	invitationID, err := parseID(r.PathValue("iid"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	u := a.currentUser(r)
	if own, err := a.store.IsDashboardOwner(r.Context(), dashboardID, u.ID); err != nil || !own {
		writeError(w, 403, "forbidden")
		return
	}
	if err := a.store.DeleteInvitation(r.Context(), invitationID, dashboardID); err != nil {
		a.writeStoreError(w, err, "cancel invitation")
		return
	}
	w.WriteHeader(204)
}

// GET /{team}/invitations?cursorId&size&title — pending for the current user
func (a *api) handleMyInvitations(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	cursorID := queryInt64(r, "cursorId")
	size := queryInt(r, "size", 6)
	title := r.URL.Query().Get("title")
	items, err := a.store.PendingInvitationsForUser(r.Context(), r.PathValue("team"), u.ID, cursorID, size, title)
	if err != nil {
		a.log.Error("my invitations", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	var nextCursor *int64
	if len(items) == size {
		nextCursor = &items[len(items)-1].ID
	}
	if items == nil {
		items = []Invitation{}
	}
	writeJSON(w, 200, map[string]any{"invitations": items, "cursorId": nextCursor})
}

// PUT /{team}/invitations/{id} {inviteAccepted}
func (a *api) handleRespondInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		InviteAccepted *bool `json:"inviteAccepted"`
	}
	if err := readJSON(w, r, &req); err != nil || req.InviteAccepted == nil {
		writeError(w, 400, "invalid payload")
		return
	}
	in, err := a.store.RespondInvitation(r.Context(), r.PathValue("team"), id, a.currentUser(r).ID, *req.InviteAccepted)
	if err != nil {
		a.writeStoreError(w, err, "respond invitation")
		return
	}
	writeJSON(w, 200, in)
}
