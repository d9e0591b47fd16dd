package client

import "strings"

// DefaultGuestEmail is the shared demo account. The guest can browse but may
// not change account settings.
const DefaultGuestEmail = "guest@gmail.com"

// Gate answers permission questions for the signed-in user against a
// dashboard.
type Gate struct {
	UserEmail string
	// GuestEmail overrides DefaultGuestEmail when non-empty.
	GuestEmail string
	// ReadOnly lists dashboard ids whose content only the creator may edit.
	ReadOnly map[int64]bool
}

// CanEdit reports whether dashboard content (columns, cards, comments) may be
// edited: always on dashboards the user created, and on others unless the
// dashboard is read-only.
func (g Gate) CanEdit(d Dashboard) bool {
	return d.CreatedByMe || !g.ReadOnly[d.ID]
}

// CanManage reports whether the dashboard itself (title, color, members,
// invitations) may be managed, which only the creator can.
func (g Gate) CanManage(d Dashboard) bool { return d.CreatedByMe }

// IsGuest reports whether the user is the shared guest account.
func (g Gate) IsGuest() bool {
	guest := g.GuestEmail
	if guest == "" {
		guest = DefaultGuestEmail
	}
	return strings.EqualFold(g.UserEmail, guest)
}

// CanChangeAccount reports whether profile and password changes are allowed.
// The guest account is locked.
func (g Gate) CanChangeAccount() bool { return !g.IsGuest() }
