package main

import (
	"testing"
	"time"
)

func TestTokenRoundtrip(t *testing.T) {
	a := &api{jwtSecret: []byte("test-secret"), tokenTTL: time.Hour}
	tok, err := a.issueToken(42)
	if err != nil {
		t.Fatal(err)
	}
	id, err := a.verifyToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if id != 42 {
		t.Fatalf("id = %d, want 42", id)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	a := &api{jwtSecret: []byte("test-secret"), tokenTTL: time.Hour}
	tok, err := a.issueToken(42)
	if err != nil {
		t.Fatal(err)
	}
	b := &api{jwtSecret: []byte("another-secret")}
	if _, err := b.verifyToken(tok); err == nil {
		t.Fatal("token signed with a different secret verified")
	}
}

func TestTokenExpired(t *testing.T) {
	a := &api{jwtSecret: []byte("test-secret"), tokenTTL: -time.Minute}
	tok, err := a.issueToken(42)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.verifyToken(tok); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestTokenGarbage(t *testing.T) {
	a := &api{jwtSecret: []byte("test-secret")}
	if _, err := a.verifyToken("not.a.token"); err == nil {
		t.Fatal("garbage token verified")
	}
}

func TestIsGuest(t *testing.T) {
	a := &api{guestEmail: "guest@gmail.com"}
	if !a.isGuest(&User{Email: "GUEST@gmail.com"}) {
		t.Fatal("guest email should match case-insensitively")
	}
	if a.isGuest(&User{Email: "someone@example.com"}) {
		t.Fatal("regular user classed as guest")
	}
	if a.isGuest(nil) {
		t.Fatal("nil user classed as guest")
	}
}
