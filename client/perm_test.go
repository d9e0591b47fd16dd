package client

import "testing"

func TestGateCanEdit(t *testing.T) {
	g := Gate{UserEmail: "a@example.com", ReadOnly: map[int64]bool{2: true}}
	tests := []struct {
		name string
		d    Dashboard
		want bool
	}{
		{"own dashboard", Dashboard{ID: 1, CreatedByMe: true}, true},
		{"own read-only dashboard", Dashboard{ID: 2, CreatedByMe: true}, true},
		{"shared dashboard", Dashboard{ID: 3}, true},
		{"shared read-only dashboard", Dashboard{ID: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.CanEdit(tt.d); got != tt.want {
				t.Fatalf("CanEdit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGateCanManage(t *testing.T) {
	g := Gate{}
	if !g.CanManage(Dashboard{CreatedByMe: true}) {
		t.Fatal("creator should manage")
	}
	if g.CanManage(Dashboard{}) {
		t.Fatal("non-creator should not manage")
	}
}

func TestGateGuest(t *testing.T) {
	g := Gate{UserEmail: "Guest@GMAIL.com"}
	if !g.IsGuest() {
		t.Fatal("guest email should match case-insensitively")
	}
	if g.CanChangeAccount() {
		t.Fatal("guest should not change account settings")
	}

	g = Gate{UserEmail: "guest@gmail.com", GuestEmail: "demo@example.com"}
	if g.IsGuest() {
		t.Fatal("custom guest email should replace the default")
	}

	g = Gate{UserEmail: "someone@example.com"}
	if g.IsGuest() || !g.CanChangeAccount() {
		t.Fatal("regular user misclassified as guest")
	}
}
