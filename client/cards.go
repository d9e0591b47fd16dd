package client

import (
	"context"
	"net/url"
	"sort"
	"strconv"
)

// CardPage is one page of a column's cards.
type CardPage struct {
	Cards      []Card `json:"cards"`
	TotalCount int    `json:"totalCount"`
	CursorID   *int64 `json:"cursorId"`
}

// ListCards returns up to size cards from a column, starting after cursor.
// Pass cursor 0 for the first page. CursorID in the result is set when more
// cards may follow.
func (c *Client) ListCards(ctx context.Context, columnID, cursor int64, size int) (CardPage, error) {
	q := url.Values{}
	q.Set("columnId", strconv.FormatInt(columnID, 10))
	q.Set("size", strconv.Itoa(size))
	if cursor > 0 {
		q.Set("cursorId", strconv.FormatInt(cursor, 10))
	}
	var res CardPage
	err := c.do(ctx, "GET", "/cards", q, nil, &res)
	return res, err
}

// Card page sizes: a column view is filled in one big first fetch, then
// grows a few cards at a time as the user scrolls.
const (
	InitialCardPageSize = 300
	CardPageSize        = 6
)

// CardLoader builds a Loader over a column's cards with the standard page
// sizes.
func (c *Client) CardLoader(columnID int64) *Loader[Card] {
	fetch := func(ctx context.Context, cursor int64, size int) ([]Card, error) {
		page, err := c.ListCards(ctx, columnID, cursor, size)
		return page.Cards, err
	}
	return NewLoaderSized(fetch, func(card Card) int64 { return card.ID }, InitialCardPageSize, CardPageSize)
}

// CardFields carries the fields of a card create or update. Nil fields are
// left untouched on update; Tags replaces the whole tag list when non-nil.
type CardFields struct {
	AssigneeUserID *int64   `json:"assigneeUserId,omitempty"`
	DashboardID    int64    `json:"dashboardId,omitempty"`
	ColumnID       *int64   `json:"columnId,omitempty"`
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	DueDate        *string  `json:"dueDate,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	ImageURL       *string  `json:"imageUrl,omitempty"`
}

// CreateCard adds a card to a column. Title, DashboardID and ColumnID are
// required.
func (c *Client) CreateCard(ctx context.Context, fields CardFields) (Card, error) {
	var card Card
	err := c.do(ctx, "POST", "/cards", nil, fields, &card)
	return card, err
}

// GetCard fetches one card.
func (c *Client) GetCard(ctx context.Context, id int64) (Card, error) {
	var card Card
	err := c.do(ctx, "GET", "/cards/"+strconv.FormatInt(id, 10), nil, nil, &card)
	return card, err
}

// UpdateCard changes a card. Setting ColumnID moves it between columns.
func (c *Client) UpdateCard(ctx context.Context, id int64, fields CardFields) (Card, error) {
	var card Card
	err := c.do(ctx, "PUT", "/cards/"+strconv.FormatInt(id, 10), nil, fields, &card)
	return card, err
}

// DeleteCard removes a card and its comments.
func (c *Client) DeleteCard(ctx context.Context, id int64) error {
	return c.do(ctx, "DELETE", "/cards/"+strconv.FormatInt(id, 10), nil, nil, nil)
}

// SortCards orders cards by due date, earliest first. Cards without a due
// date sort last, keeping their relative order.
func SortCards(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i].DueDate, cards[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
