package main

import (
	"context"
	"net/http"
)

// canEdit is the content-mutation gate: the dashboard creator may always
// edit; everyone else may edit unless the dashboard is marked read-only.
func canEdit(createdByMe, readOnly bool) bool {
	return createdByMe || !readOnly
}

// requireMember answers whether the current user may view the dashboard.
func (a *api) requireMember(ctx context.Context, r *http.Request, dashboardID int64) (bool, error) {
	u := a.currentUser(r)
	if u == nil {
		return false, nil
	}
	return a.store.IsDashboardMember(ctx, dashboardID, u.ID)
}

// requireContentEditor gates column/card/comment mutations on a dashboard.
func (a *api) requireContentEditor(ctx context.Context, r *http.Request, dashboardID int64) (bool, error) {
	member, err := a.requireMember(ctx, r, dashboardID)
	if err != nil || !member {
		return false, err
	}
	u := a.currentUser(r)
	own, err := a.store.IsDashboardOwner(ctx, dashboardID, u.ID)
	if err != nil {
		return false, err
	}
	return canEdit(own, a.readOnly[dashboardID]), nil
}
