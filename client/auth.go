package client

import (
	"context"
	"io"
)

type loginResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, email, nickname, password string) (User, error) {
	body := map[string]string{"email": email, "nickname": nickname, "password": password}
	var u User
	err := c.do(ctx, "POST", "/users", nil, body, &u)
	return u, err
}

// Login exchanges credentials for an access token and remembers the token on
// the client for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	body := map[string]string{"email": email, "password": password}
	var res loginResult
	if err := c.do(ctx, "POST", "/auth/login", nil, body, &res); err != nil {
		return User{}, err
	}
	c.Token = res.AccessToken
	return res.User, nil
}

// Me returns the signed-in user's profile.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, "GET", "/users/me", nil, nil, &u)
	return u, err
}

// ProfileUpdate carries the fields UpdateMe may change. Nil fields are left
// untouched.
type ProfileUpdate struct {
	Nickname        *string `json:"nickname,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// UpdateMe changes the signed-in user's profile.
func (c *Client) UpdateMe(ctx context.Context, upd ProfileUpdate) (User, error) {
	var u User
	err := c.do(ctx, "PUT", "/users/me", nil, upd, &u)
	return u, err
}

// ChangePassword replaces the account password after verifying the current
// one.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"password": current, "newPassword": next}
	return c.do(ctx, "PUT", "/auth/password", nil, body, nil)
}

// UploadProfileImage uploads an avatar image and returns its URL.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var res struct {
		ProfileImageURL string `json:"profileImageUrl"`
	}
	err := c.upload(ctx, "/users/me/image", "image", filename, content, &res)
	return res.ProfileImageURL, err
}
