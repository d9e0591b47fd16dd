package client

import (
	"context"
	"net/url"
	"strconv"
)

// CommentPage is one page of a card's comments.
type CommentPage struct {
	Comments []Comment `json:"comments"`
	CursorID *int64    `json:"cursorId"`
}

// ListComments returns up to size comments on a card, starting after cursor.
func (c *Client) ListComments(ctx context.Context, cardID, cursor int64, size int) (CommentPage, error) {
	q := url.Values{}
	q.Set("cardId", strconv.FormatInt(cardID, 10))
	q.Set("size", strconv.Itoa(size))
	if cursor > 0 {
		q.Set("cursorId", strconv.FormatInt(cursor, 10))
	}
	var res CommentPage
	err := c.do(ctx, "GET", "/comments", q, nil, &res)
	return res, err
}

// CommentLoader builds a Loader over a card's comments.
func (c *Client) CommentLoader(cardID int64, size int) *Loader[Comment] {
	fetch := func(ctx context.Context, cursor int64, size int) ([]Comment, error) {
		page, err := c.ListComments(ctx, cardID, cursor, size)
		return page.Comments, err
	}
	return NewLoader(fetch, func(cm Comment) int64 { return cm.ID }, size)
}

// CreateComment posts a comment on a card.
func (c *Client) CreateComment(ctx context.Context, card Card, content string) (Comment, error) {
	body := map[string]any{
		"content":     content,
		"cardId":      card.ID,
		"columnId":    card.ColumnID,
		"dashboardId": card.DashboardID,
	}
	var cm Comment
	err := c.do(ctx, "POST", "/comments", nil, body, &cm)
	return cm, err
}

// UpdateComment edits a comment. Author only.
func (c *Client) UpdateComment(ctx context.Context, id int64, content string) (Comment, error) {
	body := map[string]string{"content": content}
	var cm Comment
	err := c.do(ctx, "PUT", "/comments/"+strconv.FormatInt(id, 10), nil, body, &cm)
	return cm, err
}

// DeleteComment removes a comment. Author only.
func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", "/comments/"+strconv.FormatInt(id, 10), nil, nil, nil)
}
