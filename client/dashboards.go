package client

import (
	"context"
	"net/url"
	"strconv"
)

// DashboardPage is one page of the signed-in user's dashboards.
type DashboardPage struct {
	Dashboards []Dashboard `json:"dashboards"`
	TotalCount int         `json:"totalCount"`
}

// ListDashboards returns the page-th page of dashboards, size per page.
func (c *Client) ListDashboards(ctx context.Context, page, size int) (DashboardPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var res DashboardPage
	err := c.do(ctx, "GET", "/dashboards", q, nil, &res)
	return res, err
}

// ListDashboardsOrdered lists dashboards and rearranges them to the display
// order stored under key, falling back to server order for dashboards the
// store has not seen.
func (c *Client) ListDashboardsOrdered(ctx context.Context, store *OrderStore, key string, page, size int) (DashboardPage, error) {
	res, err := c.ListDashboards(ctx, page, size)
	if err != nil {
		return res, err
	}
	res.Dashboards, err = store.ApplyOrder(key, res.Dashboards)
	return res, err
}

// CreateDashboard makes a new dashboard owned by the signed-in user.
func (c *Client) CreateDashboard(ctx context.Context, title, color string) (Dashboard, error) {
	body := map[string]string{"title": title, "color": color}
	var d Dashboard
	err := c.do(ctx, "POST", "/dashboards", nil, body, &d)
	return d, err
}

// GetDashboard fetches one dashboard the user is a member of.
func (c *Client) GetDashboard(ctx context.Context, id int64) (Dashboard, error) {
	var d Dashboard
	err := c.do(ctx, "GET", "/dashboards/"+strconv.FormatInt(id, 10), nil, nil, &d)
	return d, err
}

// DashboardUpdate carries the fields UpdateDashboard may change.
type DashboardUpdate struct {
	Title *string `json:"title,omitempty"`
	Color *string `json:"color,omitempty"`
}

// UpdateDashboard changes a dashboard's title or color. Owner only.
func (c *Client) UpdateDashboard(ctx context.Context, id int64, upd DashboardUpdate) (Dashboard, error) {
	var d Dashboard
	err := c.do(ctx, "PUT", "/dashboards/"+strconv.FormatInt(id, 10), nil, upd, &d)
	return d, err
}

// DeleteDashboard removes a dashboard and everything on it. Owner only.
func (c *Client) DeleteDashboard(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", "/dashboards/"+strconv.FormatInt(id, 10), nil, nil, nil)
}
