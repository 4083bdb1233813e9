package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/TheShooter89/cheer-up-bot/internal/notes"
	"github.com/TheShooter89/cheer-up-bot/internal/stats"
	"github.com/TheShooter89/cheer-up-bot/internal/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDContextKey = "cheerup_request_id"

var (
	errMissingUsersService = errors.New("users service dependency required")
	errMissingNotesService = errors.New("notes service dependency required")
	errMissingStatsService = errors.New("stats service dependency required")
)

// TokenValidator checks the service bearer token presented by the bots.
type TokenValidator interface {
	Enabled() bool
	Validate(token string) (string, error)
}

// Dependencies wires the services behind the REST surface.
type Dependencies struct {
	UsersService *users.Service
	NotesService *notes.Service
	StatsService *stats.Service
	Tokens       TokenValidator
	Logger       *zap.Logger
}

// NewHTTPHandler assembles the gin router for the CheerUp API.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.UsersService == nil {
		return nil, errMissingUsersService
	}
	if deps.NotesService == nil {
		return nil, errMissingNotesService
	}
	if deps.StatsService == nil {
		return nil, errMissingStatsService
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	handler := &httpHandler{
		users:  deps.UsersService,
		notes:  deps.NotesService,
		stats:  deps.StatsService,
		tokens: deps.Tokens,
		logger: logger,
	}

	router.Use(handler.tagRequest)

	api := router.Group("/api")
	api.Use(handler.authorizeRequest)

	api.GET("/users", handler.handleListUsers)
	api.POST("/users", handler.handleCreateUser)
	api.GET("/users/:id", handler.handleGetUser)
	api.DELETE("/users/:id", handler.handleDeleteUser)
	api.GET("/users/name/:username", handler.handleGetUserByName)
	api.GET("/users/telegram/:telegram_id", handler.handleGetUserByTelegramID)

	api.GET("/locale/:user_id", handler.handleGetLocale)
	api.PATCH("/locale/:user_id", handler.handleSetLocale)

	api.GET("/notes", handler.handleListNotes)
	api.POST("/notes", handler.handleCreateNote)
	api.GET("/notes/random", handler.handleRandomNote)
	api.GET("/notes/:id", handler.handleGetNote)
	api.DELETE("/notes/:id", handler.handleDeleteNote)
	api.GET("/notes/user/:user_id", handler.handleListNotesByUser)
	api.DELETE("/notes/user/:user_id", handler.handleDeleteNotesByUser)

	api.GET("/stats", handler.handleStats)
	api.GET("/stats/user/:user_id", handler.handleUserStats)

	return router, nil
}

type httpHandler struct {
	users  *users.Service
	notes  *notes.Service
	stats  *stats.Service
	tokens TokenValidator
	logger *zap.Logger
}

// tagRequest attaches a request id so log lines from one request correlate.
func (h *httpHandler) tagRequest(c *gin.Context) {
	requestID := uuid.NewString()
	c.Set(requestIDContextKey, requestID)
	c.Header("X-Request-Id", requestID)
	c.Next()
}

// authorizeRequest enforces the service bearer token when a signing secret
// is configured. Without one the API stays open, matching the original
// single-host deployment.
func (h *httpHandler) authorizeRequest(c *gin.Context) {
	if h.tokens == nil || !h.tokens.Enabled() {
		c.Next()
		return
	}

	header := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if !strings.HasPrefix(header, "Bearer ") || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	service, err := h.tokens.Validate(token)
	if err != nil {
		h.logger.Warn("service token validation failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	h.logger.Debug("service authorized",
		zap.String("service", service),
		zap.String("request_id", c.GetString(requestIDContextKey)))
	c.Next()
}

func (h *httpHandler) respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
}

func (h *httpHandler) respondInvalid(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
}

func (h *httpHandler) respondInternal(c *gin.Context, context string, err error) {
	h.logger.Error(context,
		zap.Error(err),
		zap.String("request_id", c.GetString(requestIDContextKey)))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
