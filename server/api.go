package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type api struct {
	store *Store
	log   *slog.Logger
	bus   *EventBus

	jwtSecret  []byte
	tokenTTL   time.Duration
	uploadDir  string
	guestEmail string
	readOnly   map[int64]bool

	// rate limiting buckets per IP:key
	rlMu sync.Mutex
	rl   map[string]*rateBucket
}

func newAPI(store *Store, log *slog.Logger) *api {
	return &api{
		store:      store,
		log:        log,
		bus:        NewEventBus(),
		jwtSecret:  []byte(getenv("JWT_SECRET", "taskify-dev-secret")),
		tokenTTL:   tokenTTL(),
		uploadDir:  getenv("UPLOAD_DIR", "./uploads"),
		guestEmail: getenv("GUEST_EMAIL", "guest@gmail.com"),
		readOnly:   parseReadOnlySet(getenv("READONLY_DASHBOARDS", "")),
		rl:         map[string]*rateBucket{},
	}
}

func tokenTTL() time.Duration {
	if v := getenv("TOKEN_TTL", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 7 * 24 * time.Hour
}

func (a *api) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.handleHealth)

	// users & auth
	mux.HandleFunc("POST /{team}/users", a.withRateLimit("signup", 20, time.Minute, a.handleSignUp))
	mux.HandleFunc("POST /{team}/auth/login", a.withRateLimit("login", 30, time.Minute, a.handleLogin))
	mux.HandleFunc("PUT /{team}/auth/password", a.requireAuth(a.handleChangePassword))
	mux.HandleFunc("GET /{team}/users/me", a.requireAuth(a.handleMe))
	mux.HandleFunc("PUT /{team}/users/me", a.requireAuth(a.handleUpdateMe))
	mux.HandleFunc("POST /{team}/users/me/image", a.requireAuth(a.handleProfileImage))

	// dashboards
	mux.HandleFunc("GET /{team}/dashboards", a.requireAuth(a.handleListDashboards))
	mux.HandleFunc("POST /{team}/dashboards", a.requireAuth(a.handleCreateDashboard))
	mux.HandleFunc("GET /{team}/dashboards/{id}", a.requireAuth(a.handleGetDashboard))
	mux.HandleFunc("PUT /{team}/dashboards/{id}", a.requireAuth(a.handleUpdateDashboard))
	mux.HandleFunc("DELETE /{team}/dashboards/{id}", a.requireAuth(a.handleDeleteDashboard))
	mux.HandleFunc("GET /{team}/dashboards/{id}/events", a.requireAuth(a.handleDashboardEvents))

	// dashboard invitations (inviter side)
	mux.HandleFunc("POST /{team}/dashboards/{id}/invitations", a.requireAuth(a.handleInvite))
	mux.HandleFunc("GET /{team}/dashboards/{id}/invitations", a.requireAuth(a.handleDashboardInvitations))
	mux.HandleFunc("DELETE /{team}/dashboards/{id}/invitations/{iid}", a.requireAuth(a.handleCancelInvitation))

	// invitations (invitee side)
	mux.HandleFunc("GET /{team}/invitations", a.requireAuth(a.handleMyInvitations))
	mux.HandleFunc("PUT /{team}/invitations/{id}", a.requireAuth(a.handleRespondInvitation))

	// columns
	mux.HandleFunc("GET /{team}/columns", a.requireAuth(a.handleListColumns))
	mux.HandleFunc("POST /{team}/columns", a.requireAuth(a.handleCreateColumn))
	mux.HandleFunc("PUT /{team}/columns/{id}", a.requireAuth(a.handleUpdateColumn))
	mux.HandleFunc("DELETE /{team}/columns/{id}", a.requireAuth(a.handleDeleteColumn))
	mux.HandleFunc("POST /{team}/columns/{id}/card-image", a.requireAuth(a.handleCardImage))

	// cards
	mux.HandleFunc("GET /{team}/cards", a.requireAuth(a.handleListCards))
	mux.HandleFunc("POST /{team}/cards", a.requireAuth(a.handleCreateCard))
	mux.HandleFunc("GET /{team}/cards/{id}", a.requireAuth(a.handleGetCard))
	mux.HandleFunc("PUT /{team}/cards/{id}", a.requireAuth(a.handleUpdateCard))
	mux.HandleFunc("DELETE /{team}/cards/{id}", a.requireAuth(a.handleDeleteCard))

	// members
	mux.HandleFunc("GET /{team}/members", a.requireAuth(a.handleListMembers))
	mux.HandleFunc("DELETE /{team}/members/{id}", a.requireAuth(a.handleDeleteMember))

	// comments
	mux.HandleFunc("GET /{team}/comments", a.requireAuth(a.handleListComments))
	mux.HandleFunc("POST /{team}/comments", a.requireAuth(a.handleCreateComment))
	mux.HandleFunc("PUT /{team}/comments/{id}", a.requireAuth(a.handleUpdateComment))
	mux.HandleFunc("DELETE /{team}/comments/{id}", a.requireAuth(a.handleDeleteComment))
}

func (a *api) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
}

func parseID(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func queryInt64(r *http.Request, key string) int64 {
	n, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return n
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, r.Body)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"ok": false, "error": msg})
}

// writeStoreError maps store sentinels onto the HTTP error taxonomy.
func (a *api) writeStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, 404, "not found")
	case errors.Is(err, ErrConflict):
		writeError(w, 409, "conflict")
	case errors.Is(err, ErrForbidden):
		writeError(w, 403, "forbidden")
	default:
		a.log.Error(op, "err", err)
		writeError(w, 500, "internal error")
	}
}

type rateBucket struct {
	count   int
	resetAt time.Time
}

func (a *api) allow(ip, key string, max int, window time.Duration) bool {
	now := time.Now()
	rk := ip + ":" + key
	a.rlMu.Lock()
	b, ok := a.rl[rk]
	if !ok || now.After(b.resetAt) {
		b = &rateBucket{count: 0, resetAt: now.Add(window)}
		a.rl[rk] = b
	}
	if b.count >= max {
		a.rlMu.Unlock()
		return false
	}
	b.count++
	a.rlMu.Unlock()
	return true
}

func (a *api) withRateLimit(name string, max int, window time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.allow(r.RemoteAddr, name, max, window) {
			writeError(w, 429, "too many requests")
			return
		}
		next(w, r)
	}
}

func withLogging(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: 200}
		start := time.Now()
		next.ServeHTTP(sw, r)
		log.Info("http", "method", r.Method, "path", r.URL.Path, "status", sw.status, "dur_ms", time.Since(start).Milliseconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) { w.status = code; w.ResponseWriter.WriteHeader(code) }

// Implement http.Flusher if underlying writer supports it (needed for SSE)
func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func parseReadOnlySet(csv string) map[int64]bool {
	out := map[int64]bool{}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			out[id] = true
		}
	}
	return out
}
