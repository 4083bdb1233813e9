package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
	"github.com/TheShooter89/cheer-up-bot/internal/users"
)

type userBody struct {
	User users.User `json:"user"`
}

type userListBody struct {
	Users []users.User `json:"users"`
}

type localeBody struct {
	Locale string `json:"locale"`
}

// CreateUser registers a new user and returns the stored row.
func (c *Client) CreateUser(ctx context.Context, input users.NewUser) (users.User, error) {
	var body userBody
	if err := c.do(ctx, http.MethodPost, "/api/users", input, &body); err != nil {
		return users.User{}, err
	}
	return body.User, nil
}

// ListUsers returns every registered user.
func (c *Client) ListUsers(ctx context.Context) ([]users.User, error) {
	var body userListBody
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &body); err != nil {
		return nil, err
	}
	return body.Users, nil
}

// GetUserByID fetches a user by its API id.
func (c *Client) GetUserByID(ctx context.Context, id int64) (users.User, error) {
	var body userBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &body); err != nil {
		return users.User{}, err
	}
	return body.User, nil
}

// GetUserByUsername fetches a user by username.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (users.User, error) {
	var body userBody
	if err := c.do(ctx, http.MethodGet, "/api/users/name/"+username, nil, &body); err != nil {
		return users.User{}, err
	}
	return body.User, nil
}

// GetUserByTelegramID fetches a user by its Telegram account id.
func (c *Client) GetUserByTelegramID(ctx context.Context, telegramID int64) (users.User, error) {
	var body userBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/telegram/%d", telegramID), nil, &body); err != nil {
		return users.User{}, err
	}
	return body.User, nil
}

// GetOrCreateUser resolves the caller, registering it on first contact.
func (c *Client) GetOrCreateUser(ctx context.Context, input users.NewUser) (users.User, error) {
	row, err := c.GetUserByTelegramID(ctx, input.TelegramID)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return users.User{}, err
	}
	return c.CreateUser(ctx, input)
}

// DeleteUser removes a user row; deleting an absent row succeeds.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}

// Locale returns the user's locale; the API falls back to the default for
// unknown users.
func (c *Client) Locale(ctx context.Context, userID int64) (locales.Locale, error) {
	var body localeBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/locale/%d", userID), nil, &body); err != nil {
		return "", err
	}
	return locales.Parse(body.Locale), nil
}

// SetLocale updates the user's locale and returns the code the API applied.
func (c *Client) SetLocale(ctx context.Context, userID int64, locale locales.Locale) (locales.Locale, error) {
	var body localeBody
	input := localeBody{Locale: locale.String()}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/locale/%d", userID), input, &body); err != nil {
		return "", err
	}
	return locales.Parse(body.Locale), nil
}
