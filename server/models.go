package main

import "time"

type User struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserRef is the embedded shape for assignees, comment authors,
// inviters and invitees.
type UserRef struct {
	ID              int64  `json:"id"`
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	Email           string `json:"email,omitempty"`
}

type Dashboard struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// CreatedByMe is computed per viewer, not stored.
	CreatedByMe bool `json:"createdByMe"`
}

type Column struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	DashboardID int64     `json:"dashboardId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Card struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Assignee    *UserRef   `json:"assignee,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	ColumnID    int64      `json:"columnId"`
	DashboardID int64      `json:"dashboardId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Comment struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CardID    int64     `json:"cardId"`
	Author    UserRef   `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Member is a (dashboard, user) relationship; its ID is the membership
// row id, not the user id.
type Member struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	IsOwner         bool      `json:"isOwner"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type DashboardRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Invitation is pending while InviteAccepted is null; accepting creates
// the member row, rejecting only records the decision.
type Invitation struct {
	ID             int64        `json:"id"`
	TeamID         string       `json:"teamId"`
	Inviter        UserRef      `json:"inviter"`
	Invitee        UserRef      `json:"invitee"`
	Dashboard      DashboardRef `json:"dashboard"`
	InviteAccepted *bool        `json:"inviteAccepted"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}
