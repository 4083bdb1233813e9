package server

import (
	"errors"
	"net/http"

	"github.com/TheShooter89/cheer-up-bot/internal/users"
	"github.com/gin-gonic/gin"
)

func (h *httpHandler) handleListUsers(c *gin.Context) {
	rows, err := h.users.List(c.Request.Context())
	if err != nil {
		h.respondInternal(c, "failed to list users", err)
		return
	}
	if rows == nil {
		rows = []users.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": rows})
}

func (h *httpHandler) handleCreateUser(c *gin.Context) {
	var input users.NewUser
	if err := c.ShouldBindJSON(&input); err != nil || input.TelegramID == 0 {
		h.respondInvalid(c)
		return
	}

	row, err := h.users.Create(c.Request.Context(), input)
	if err != nil {
		h.respondInternal(c, "failed to create user", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": row})
}

func (h *httpHandler) handleGetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	row, err := h.users.GetByID(c.Request.Context(), id)
	if errors.Is(err, users.ErrNotFound) {
		h.respondNotFound(c)
		return
	}
	if err != nil {
		h.respondInternal(c, "failed to get user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": row})
}

func (h *httpHandler) handleDeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondInternal(c, "failed to delete user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": "deleted"})
}

func (h *httpHandler) handleGetUserByName(c *gin.Context) {
	row, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if errors.Is(err, users.ErrNotFound) {
		h.respondNotFound(c)
		return
	}
	if err != nil {
		h.respondInternal(c, "failed to get user by name", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": row})
}

func (h *httpHandler) handleGetUserByTelegramID(c *gin.Context) {
	telegramID, ok := pathID(c, "telegram_id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	row, err := h.users.GetByTelegramID(c.Request.Context(), telegramID)
	if errors.Is(err, users.ErrNotFound) {
		h.respondNotFound(c)
		return
	}
	if err != nil {
		h.respondInternal(c, "failed to get user by telegram id", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": row})
}

type localePayload struct {
	Locale string `json:"locale"`
}

func (h *httpHandler) handleGetLocale(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	locale, err := h.users.Locale(c.Request.Context(), userID)
	if err != nil {
		h.respondInternal(c, "failed to get locale", err)
		return
	}
	c.JSON(http.StatusOK, localePayload{Locale: locale.String()})
}

func (h *httpHandler) handleSetLocale(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	var input localePayload
	if err := c.ShouldBindJSON(&input); err != nil {
		h.respondInvalid(c)
		return
	}

	applied, err := h.users.SetLocale(c.Request.Context(), userID, input.Locale)
	if err != nil {
		h.respondInternal(c, "failed to set locale", err)
		return
	}
	c.JSON(http.StatusOK, localePayload{Locale: applied.String()})
}
