// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// # Media

// MediaItem describes one uploaded file.
type MediaItem struct {
	ID           string    `json:"id"`
	FileName     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Width        *int      `json:"width,omitempty"`
	Height       *int      `json:"height,omitempty"`
	AltText      string    `json:"alt_text"`
	Folder       string    `json:"folder"`
	URL          string    `json:"url"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MediaUpload is one file to send.
type MediaUpload struct {
	FileName string
	Body     io.Reader
	Folder   string
	AltText  string
}

// MediaPatch edits alt text or folder.
type MediaPatch struct {
	AltText *string `json:"alt_text,omitempty"`
	Folder  *string `json:"folder,omitempty"`
}

const mediaPath = "media"

// ListMedia lists the library, optionally narrowed to one folder.
func (c *Client) ListMedia(ctx context.Context, folder string) ([]MediaItem, error) {
	var query url.Values
	if folder != "" {
		query = url.Values{"folder": []string{folder}}
	}

	var body struct {
		Items []MediaItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, mediaPath, query, nil, &body); err != nil {
		return nil, err
	}
	return body.Items, nil
}

// UploadMedia sends a multipart upload.
func (c *Client) UploadMedia(ctx context.Context, upload MediaUpload) (*MediaItem, error) {
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	for name, value := range map[string]string{"folder": upload.Folder, "alt_text": upload.AltText} {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("client: build upload: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, fmt.Errorf("client: build upload: %w", err)
	}
	if _, err := io.Copy(part, upload.Body); err != nil {
		return nil, fmt.Errorf("client: read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("client: build upload: %w", err)
	}

	var body struct {
		Item *MediaItem `json:"item"`
	}
	if err := c.send(ctx, http.MethodPost, mediaPath, nil, &form, writer.FormDataContentType(), &body); err != nil {
		return nil, err
	}
	return body.Item, nil
}

// UpdateMedia edits the metadata of one item.
func (c *Client) UpdateMedia(ctx context.Context, id string, patch MediaPatch) (*MediaItem, error) {
	var body struct {
		Item *MediaItem `json:"item"`
	}
	if err := c.do(ctx, http.MethodPut, mediaPath, idQuery("id", id), patch, &body); err != nil {
		return nil, err
	}
	return body.Item, nil
}

// DeleteMedia removes the object and its metadata.
func (c *Client) DeleteMedia(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, mediaPath, idQuery("id", id), nil, nil)
}

// # Users

// User is an admin-surface account.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewUser is the create payload. Role defaults to editor on the server.
type NewUser struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UserPatch is a partial account change.
type UserPatch struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

const usersPath = "users"

// ListUsers returns every account. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var body struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, usersPath, nil, nil, &body); err != nil {
		return nil, err
	}
	return body.Users, nil
}

// CreateUser registers an account and returns its id.
func (c *Client) CreateUser(ctx context.Context, user NewUser) (string, error) {
	var body MessageResponse
	if err := c.do(ctx, http.MethodPost, usersPath, nil, user, &body); err != nil {
		return "", err
	}
	return body.ID, nil
}

// UpdateUser applies a partial account change.
func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) error {
	return c.do(ctx, http.MethodPut, usersPath, idQuery("id", id), patch, nil)
}

// DeactivateUser blocks an account from signing in.
func (c *Client) DeactivateUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, usersPath, idQuery("id", id), nil, nil)
}

// # Activity

// Activity is one audit record.
type Activity struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListActivity returns recent audit records, newest first.
func (c *Client) ListActivity(ctx context.Context, limit int, entityTypes ...string) ([]Activity, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if len(entityTypes) > 0 {
		query.Set("entity_type", strings.Join(entityTypes, ","))
	}

	var body struct {
		Activity []Activity `json:"activity"`
	}
	if err := c.do(ctx, http.MethodGet, "activity", query, nil, &body); err != nil {
		return nil, err
	}
	return body.Activity, nil
}

// # Auth

// Login signs in and keeps the issued token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var body struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	credentials := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "auth/login", nil, credentials, &body); err != nil {
		return nil, err
	}

	c.SetToken(body.Token)
	return body.User, nil
}

// Logout revokes the current token and forgets it, even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetToken("")
	if c.Token() == "" {
		return nil
	}
	return c.do(ctx, http.MethodPost, "auth/logout", nil, nil, nil)
}

// Me returns the signed-in account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var body struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "auth/me", nil, nil, &body); err != nil {
		return nil, err
	}
	return body.User, nil
}
