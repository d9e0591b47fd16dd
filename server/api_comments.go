package main

import (
	"net/http"
	"strings"
)

// GET /{team}/comments?cardId&cursorId&size
func (a *api) handleListComments(w http.ResponseWriter, r *http.Request) {
	cardID := queryInt64(r, "cardId")
	if cardID == 0 {
		writeError(w, 400, "cardId required")
		return
	}
	dashboardID, err := a.store.DashboardByCard(r.Context(), cardID)
	if err != nil {
		a.writeStoreError(w, err, "resolve card")
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
	cursorID := queryInt64(r, "cursorId")
	size := queryInt(r, "size", 10)
	comments, err := a.store.CommentsByCard(r.Context(), cardID, cursorID, size)
	if err != nil {
		a.log.Error("list comments", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	var nextCursor *int64
	if len(comments) == size {
		nextCursor = &comments[len(comments)-1].ID
	}
	if comments == nil {
		comments = []Comment{}
	}
	writeJSON(w, 200, map[string]any{"comments": comments, "cursorId": nextCursor})
}

// POST /{team}/comments {content, cardId, columnId, dashboardId}
func (a *api) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	var req struct {
		Content     string `json:"content"`
		CardID      int64  `json:"cardId"`
		ColumnID    int64  `json:"columnId"`
		DashboardID int64  `json:"dashboardId"`
	}
	if err := readJSON(w, r, &req); err != nil || req.CardID == 0 || strings.TrimSpace(req.Content) == "" {
		writeError(w, 400, "invalid payload")
		return
	}
	dashboardID, err := a.store.DashboardByCard(r.Context(), req.CardID)
	if err != nil {
		a.writeStoreError(w, err, "resolve card")
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
	c, err := a.store.CreateComment(r.Context(), req.CardID, u.ID, req.Content)
	if err != nil {
		a.log.Error("create comment", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, c)
	a.bus.Publish(Event{Type: "comment.created", Entity: "comment", DashboardID: dashboardID, Payload: c})
}

// PUT /{team}/comments/{id} {content} — author only
func (a *api) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(w, r, &req); err != nil || strings.TrimSpace(req.Content) == "" {
		writeError(w, 400, "invalid payload")
		return
	}
	c, err := a.store.UpdateComment(r.Context(), id, a.currentUser(r).ID, req.Content)
	if err != nil {
		a.writeStoreError(w, err, "update comment")
		return
	}
	writeJSON(w, 200, c)
}

// DELETE /{team}/comments/{id} — author only
func (a *api) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, 400, "bad id")
		return
	}
	if err := a.store.DeleteComment(r.Context(), id, a.currentUser(r).ID); err != nil {
		a.writeStoreError(w, err, "delete comment")
		return
	}
	w.WriteHeader(204)
}
