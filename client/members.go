package client

import (
	"context"
	"net/url"
	"strconv"
)

// MemberPage is one page of a dashboard's members.
type MemberPage struct {
	Members    []Member `json:"members"`
	TotalCount int      `json:"totalCount"`
}

// ListMembers returns the page-th page of a dashboard's members.
func (c *Client) ListMembers(ctx context.Context, dashboardID int64, page, size int) (MemberPage, error) {
	q := url.Values{}
	q.Set("dashboardId", strconv.FormatInt(dashboardID, 10))
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var res MemberPage
	err := c.do(ctx, "GET", "/members", q, nil, &res)
	return res, err
}

// DeleteMember removes a member from a dashboard. The owner can remove
// anyone but themselves; other members can only remove their own membership.
func (c *Client) DeleteMember(ctx context.Context, memberID int64) error {
	return c.do(ctx, "DELETE", "/members/"+strconv.FormatInt(memberID, 10), nil, nil, nil)
}
