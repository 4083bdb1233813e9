package server

import (
	"errors"
	"net/http"

	"github.com/TheShooter89/cheer-up-bot/internal/stats"
	"github.com/gin-gonic/gin"
)

func (h *httpHandler) handleStats(c *gin.Context) {
	aggregate, err := h.stats.Global(c.Request.Context())
	if err != nil {
		h.respondInternal(c, "failed to compute stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": aggregate})
}

func (h *httpHandler) handleUserStats(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		h.respondInvalid(c)
		return
	}

	aggregate, err := h.stats.ByUser(c.Request.Context(), userID)
	if errors.Is(err, stats.ErrNotFound) {
		h.respondNotFound(c)
		return
	}
	if err != nil {
		h.respondInternal(c, "failed to compute user stats", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": aggregate})
}
