package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TheShooter89/cheer-up-bot/internal/notes"
	"github.com/TheShooter89/cheer-up-bot/internal/stats"
)

type noteBody struct {
	Note notes.Note `json:"note"`
}

type noteListBody struct {
	Notes []notes.Note `json:"notes"`
}

type deletedNoteBody struct {
	Note string `json:"note"`
}

type statsBody struct {
	Stats stats.Stats `json:"stats"`
}

type userStatsBody struct {
	Stats stats.UserStats `json:"stats"`
}

// CreateNote registers an uploaded file against its owner.
func (c *Client) CreateNote(ctx context.Context, input notes.NewNote) (notes.Note, error) {
	var body noteBody
	if err := c.do(ctx, http.MethodPost, "/api/notes", input, &body); err != nil {
		return notes.Note{}, err
	}
	return body.Note, nil
}

// ListNotes returns every registered note.
func (c *Client) ListNotes(ctx context.Context) ([]notes.Note, error) {
	var body noteListBody
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &body); err != nil {
		return nil, err
	}
	return body.Notes, nil
}

// GetNote fetches one note by id.
func (c *Client) GetNote(ctx context.Context, id int64) (notes.Note, error) {
	var body noteBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%d", id), nil, &body); err != nil {
		return notes.Note{}, err
	}
	return body.Note, nil
}

// NotesByUser returns the notes owned by one user.
func (c *Client) NotesByUser(ctx context.Context, userID int64) ([]notes.Note, error) {
	var body noteListBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/notes/user/%d", userID), nil, &body); err != nil {
		return nil, err
	}
	return body.Notes, nil
}

// RandomNote picks one uniformly random note; ErrNotFound when none exist.
func (c *Client) RandomNote(ctx context.Context) (notes.Note, error) {
	var body noteBody
	if err := c.do(ctx, http.MethodGet, "/api/notes/random", nil, &body); err != nil {
		return notes.Note{}, err
	}
	return body.Note, nil
}

// DeleteNote removes one note and returns the deleted file name, empty when
// nothing matched.
func (c *Client) DeleteNote(ctx context.Context, id int64) (string, error) {
	var body deletedNoteBody
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/%d", id), nil, &body); err != nil {
		return "", err
	}
	return body.Note, nil
}

// DeleteNotesByUser removes every note owned by one user.
func (c *Client) DeleteNotesByUser(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notes/user/%d", userID), nil, nil)
}

// Stats returns the global aggregate.
func (c *Client) Stats(ctx context.Context) (stats.Stats, error) {
	var body statsBody
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &body); err != nil {
		return stats.Stats{}, err
	}
	return body.Stats, nil
}

// UserStats returns one user's note count.
func (c *Client) UserStats(ctx context.Context, userID int64) (stats.UserStats, error) {
	var body userStatsBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/stats/user/%d", userID), nil, &body); err != nil {
		return stats.UserStats{}, err
	}
	return body.Stats, nil
}
