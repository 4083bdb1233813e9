package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/TheShooter89/cheer-up-bot/internal/notes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the requested user has no stats row.
	ErrNotFound = errors.New("stats: not found")

	errMissingDatabase = errors.New("database handle is required")
	noOpLogger         = zap.NewNop()
)

const (
	perUserCountsQuery = `
SELECT u.username, COUNT(n.id) AS videonotes
FROM users u
LEFT JOIN notes n ON u.id = n.user_id
GROUP BY u.id`
	singleUserCountQuery = `
SELECT u.username, COUNT(n.id) AS videonotes
FROM users u
LEFT JOIN notes n ON u.id = n.user_id
WHERE u.id = ?
GROUP BY u.id`
)

// UserStats is the per-user slice of the aggregate.
type UserStats struct {
	Username   string `json:"username"`
	Videonotes int64  `json:"videonotes"`
}

// Stats is the on-demand aggregate over all users and notes. It is computed
// per request and never persisted.
type Stats struct {
	TotalVideonotes int64       `json:"total_videonotes"`
	Users           []UserStats `json:"users"`
}

// ServiceConfig describes the dependencies required by the stats service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service computes note-count aggregates.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService constructs the stats service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, fmt.Errorf("stats: %w", errMissingDatabase)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{db: cfg.Database, logger: logger}, nil
}

// Global returns the total note count plus per-user counts. Users without
// notes appear with a zero count.
func (s *Service) Global(ctx context.Context) (Stats, error) {
	var perUser []UserStats
	if err := s.db.WithContext(ctx).Raw(perUserCountsQuery).Scan(&perUser).Error; err != nil {
		s.logger.Error("stats query failed", zap.Error(err))
		return Stats{}, fmt.Errorf("stats: per-user counts: %w", err)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&notes.Note{}).Count(&total).Error; err != nil {
		s.logger.Error("stats count failed", zap.Error(err))
		return Stats{}, fmt.Errorf("stats: total count: %w", err)
	}

	if perUser == nil {
		perUser = []UserStats{}
	}
	return Stats{TotalVideonotes: total, Users: perUser}, nil
}

// ByUser returns one user's note count, or ErrNotFound for an unknown user.
func (s *Service) ByUser(ctx context.Context, userID int64) (UserStats, error) {
	var rows []UserStats
	if err := s.db.WithContext(ctx).Raw(singleUserCountQuery, userID).Scan(&rows).Error; err != nil {
		s.logger.Error("stats query failed", zap.Error(err), zap.Int64("user_id", userID))
		return UserStats{}, fmt.Errorf("stats: user counts: %w", err)
	}
	if len(rows) == 0 {
		return UserStats{}, ErrNotFound
	}
	return rows[0], nil
}
