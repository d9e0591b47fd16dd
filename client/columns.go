package client

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"
)

// MaxColumns is the most columns a dashboard may hold.
const MaxColumns = 10

var (
	ErrColumnTitleBlank = errors.New("column title required")
	ErrColumnTitleDup   = errors.New("duplicate column title")
	ErrColumnLimit      = errors.New("column limit reached")
)

// ValidateColumnTitle checks a new or renamed column title against the
// dashboard's existing columns. The title must be non-blank, must not match
// an existing title case-insensitively, and for new columns the dashboard
// must be under MaxColumns. When renaming, pass the column's own id as
// excludeID so its current title does not count as a duplicate; pass 0 for a
// new column.
func ValidateColumnTitle(title string, existing []Column, excludeID int64) error {
	if strings.TrimSpace(title) == "" {
		return ErrColumnTitleBlank
	}
	for _, col := range existing {
		if col.ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(col.Title), strings.TrimSpace(title)) {
			return ErrColumnTitleDup
		}
	}
	if excludeID == 0 && len(existing) >= MaxColumns {
		return ErrColumnLimit
	}
	return nil
}

type columnList struct {
	Result string   `json:"result"`
	Data   []Column `json:"data"`
}

// ListColumns returns a dashboard's columns in creation order.
func (c *Client) ListColumns(ctx context.Context, dashboardID int64) ([]Column, error) {
	q := url.Values{}
	q.Set("dashboardId", strconv.FormatInt(dashboardID, 10))
	var res columnList
	err := c.do(ctx, "GET", "/columns", q, nil, &res)
	return res.Data, err
}

// CreateColumn adds a column to a dashboard.
func (c *Client) CreateColumn(ctx context.Context, dashboardID int64, title string) (Column, error) {
	body := map[string]any{"title": title, "dashboardId": dashboardID}
	var col Column
	err := c.do(ctx, "POST", "/columns", nil, body, &col)
	return col, err
}

// UpdateColumn renames a column.
func (c *Client) UpdateColumn(ctx context.Context, id int64, title string) (Column, error) {
	body := map[string]string{"title": title}
	var col Column
	err := c.do(ctx, "PUT", "/columns/"+strconv.FormatInt(id, 10), nil, body, &col)
	return col, err
}

// DeleteColumn removes a column and all its cards.
func (c *Client) DeleteColumn(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", "/columns/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// UploadCardImage uploads an image for a card in the given column and returns
// its URL.
func (c *Client) UploadCardImage(ctx context.Context, columnID int64, filename string, content io.Reader) (string, error) {
	var res struct {
		ImageURL string `json:"imageUrl"`
	}
	err := c.upload(ctx, "/columns/"+strconv.FormatInt(columnID, 10)+"/card-image", "image", filename, content, &res)
	return res.ImageURL, err
}
