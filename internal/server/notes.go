package server

import (
	"errors"
	"net/http"

	"github.com/TheShooter89/cheer-up-bot/internal/notes"
	"github.com/gin-gonic/gin"
)

func (h *httpHandler) handleListNotes(c *gin.Context) {
	rows, err := h.notes.List(c.Request.Context())
	if err != nil {
		h.respondInternal(c, "failed to list notes", err)
		return
	}
	if rows == nil {
		rows = []notes.Note{}
	}
	c.JSON(http.StatusOK, gin.H{"notes": rows})
}

func (h *httpHandler) handleCreateNote(c *gin.Context) {
	var input notes.NewNote
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == 0 || input.FileName == "" {
		h.respondInvalid(c)
		return
	}

	row, err := h.notes.Create(c.Request.Context(), input)
	if err != nil {
		h.respondInternal(c, "failed to create note", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": row})
}

func (h *httpHandler) handleGetNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	row, err := h.notes.Get(c.Request.Context(), id)
	if errors.Is(err, notes.ErrNotFound) {
		h.respondNotFound(c)
		return
	}
	if err != nil {
		h.respondInternal(c, "failed to get note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": row})
}

// handleDeleteNote deletes one note. The response carries the deleted row's
// file name, or an empty string when nothing matched; both cases are 200.
func (h *httpHandler) handleDeleteNote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	row, matched, err := h.notes.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondInternal(c, "failed to delete note", err)
		return
	}
	fileName := ""
	if matched {
		fileName = row.FileName
	}
	c.JSON(http.StatusOK, gin.H{"note": fileName})
}

func (h *httpHandler) handleListNotesByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	rows, err := h.notes.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.respondInternal(c, "failed to list user notes", err)
		return
	}
	if rows == nil {
		rows = []notes.Note{}
	}
	c.JSON(http.StatusOK, gin.H{"notes": rows})
}

func (h *httpHandler) handleDeleteNotesByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	if _, err := h.notes.DeleteByUser(c.Request.Context(), userID); err != nil {
		h.respondInternal(c, "failed to delete user notes", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": "deleted"})
}

func (h *httpHandler) handleRandomNote(c *gin.Context) {
	row, err := h.notes.Random(c.Request.Context())
	if errors.Is(err, notes.ErrNotFound) {
		h.respondNotFound(c)
		return
	}
	if err != nil {
		h.respondInternal(c, "failed to pick random note", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": row})
}
