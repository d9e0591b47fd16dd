package main

import (
	"net/http"
	"net/mail"
	"strings"
)

// POST /{team}/users {email, nickname, password}
func (a *api) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email, Nickname, Password string }
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	nickname := strings.TrimSpace(req.Nickname)
	if email == "" || nickname == "" {
		writeError(w, 400, "invalid payload")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		writeError(w, 400, "invalid email")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, 400, "password too short")
		return
	}
	u, err := a.store.CreateUser(r.Context(), email, req.Password, nickname)
	if err != nil {
		if err == ErrConflict {
			writeError(w, 409, "email already in use")
			return
		}
		a.log.Error("signup", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 201, u)
}

// POST /{team}/auth/login {email, password} -> {user, accessToken}
func (a *api) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct{ Email, Password string }
	if err := readJSON(w, r, &req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, 400, "invalid payload")
		return
	}
	u, err := a.store.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, 401, "invalid credentials")
		return
	}
	token, err := a.issueToken(u.ID)
	if err != nil {
		a.log.Error("issue token", "err", err)
		writeError(w, 500, "internal error")
		return
	}
	writeJSON(w, 200, map[string]any{"user": u, "accessToken": token})
}

// PUT /{team}/auth/password {password, newPassword}
func (a *api) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	if a.isGuest(u) {
		writeError(w, 403, "guest account cannot change password")
		return
	}
	var req struct{ Password, NewPassword string }
	if err := readJSON(w, r, &req); err != nil || req.Password == "" {
		writeError(w, 400, "invalid payload")
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, 400, "password too short")
		return
	}
	if err := a.store.ChangePassword(r.Context(), u.ID, req.Password, req.NewPassword); err != nil {
		if err == ErrForbidden {
			writeError(w, 400, "current password is incorrect")
			return
		}
		a.writeStoreError(w, err, "change password")
		return
	}
	w.WriteHeader(204)
}

// GET /{team}/users/me
func (a *api) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, a.currentUser(r))
}

// PUT /{team}/users/me {nickname, profileImageUrl}
func (a *api) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	if a.isGuest(u) {
		writeError(w, 403, "guest account cannot update profile")
		return
	}
	var req struct {
		Nickname        *string `json:"nickname"`
		ProfileImageURL *string `json:"profileImageUrl"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, 400, "invalid payload")
		return
	}
	if req.Nickname != nil && strings.TrimSpace(*req.Nickname) == "" {
		writeError(w, 400, "nickname required")
		return
	}
	updated, err := a.store.UpdateUserProfile(r.Context(), u.ID, req.Nickname, req.ProfileImageURL)
	if err != nil {
		a.writeStoreError(w, err, "update me")
		return
	}
	writeJSON(w, 200, updated)
}

// POST /{team}/users/me/image multipart -> {profileImageUrl}
func (a *api) handleProfileImage(w http.ResponseWriter, r *http.Request) {
	u := a.currentUser(r)
	if a.isGuest(u) {
		writeError(w, 403, "guest account cannot update profile")
		return
	}
	url, err := a.saveUpload(w, r, "image")
	if err != nil {
		writeError(w, 400, "invalid image upload")
		return
	}
	if _, err := a.store.UpdateUserProfile(r.Context(), u.ID, nil, &url); err != nil {
		a.writeStoreError(w, err, "save profile image")
		return
	}
	writeJSON(w, 201, map[string]any{"profileImageUrl": url})
}
