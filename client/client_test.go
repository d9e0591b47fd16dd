package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientURLAndAuth(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(CardPage{})
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "team-9")
	c.Token = "tok123"
	if _, err := c.ListCards(context.Background(), 42, 7, 6); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/team-9/cards" {
		t.Fatalf("path = %q, want /team-9/cards", gotPath)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("auth = %q", gotAuth)
	}
	for _, want := range []string{"columnId=42", "cursorId=7", "size=6"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/t/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@example.com" || body["password"] != "secret123" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(loginResult{
			User:        User{ID: 5, Email: "a@example.com"},
			AccessToken: "issued-token",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	u, err := c.Login(context.Background(), "a@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != 5 {
		t.Fatalf("user id = %d, want 5", u.ID)
	}
	if c.Token != "issued-token" {
		t.Fatalf("token = %q", c.Token)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		detail string
		want   string
	}{
		{http.StatusForbidden, "", "you do not have permission to do that"},
		{http.StatusNotFound, "", "the requested item was not found"},
		{http.StatusConflict, "duplicate column title", "that already exists"},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": tt.detail})
		}))
		c := New(srv.URL, "t")
		_, err := c.GetDashboard(context.Background(), 1)
		srv.Close()

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: err = %v, want *APIError", tt.status, err)
		}
		if apiErr.Status != tt.status {
			t.Fatalf("status = %d, want %d", apiErr.Status, tt.status)
		}
		if !strings.HasPrefix(apiErr.Message, tt.want) {
			t.Fatalf("message = %q, want prefix %q", apiErr.Message, tt.want)
		}
		if tt.detail != "" && !strings.Contains(apiErr.Message, tt.detail) {
			t.Fatalf("message = %q, want server detail %q", apiErr.Message, tt.detail)
		}
	}
}

func TestNoContentResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	if err := c.DeleteCard(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
}

func TestUploadCardImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			f.Close()
			if hdr.Filename != "shot.png" {
				t.Errorf("filename = %q", hdr.Filename)
			}
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"imageUrl": "/uploads/abc.png"})
	}))
	defer srv.Close()

	c := New(srv.URL, "t")
	url, err := c.UploadCardImage(context.Background(), 8, "shot.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if url != "/uploads/abc.png" {
		t.Fatalf("url = %q", url)
	}
}
