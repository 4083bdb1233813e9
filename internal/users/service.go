package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the requested user row is absent.
	ErrNotFound = errors.New("users: not found")

	errMissingDatabase = errors.New("database handle is required")
	errMissingUsername = errors.New("username is required")
	noOpLogger         = zap.NewNop()
)

const (
	opServiceNew      = "users.service.new"
	opCreate          = "users.create"
	opGet             = "users.get"
	opList            = "users.list"
	opDelete          = "users.delete"
	opLocale          = "users.locale"
	opSetLocale       = "users.set_locale"
	localeJoinClause  = "LEFT JOIN locales l ON l.id = users.locale"
	localeColumnsExpr = "users.*, l.language AS locale_code"
)

// ServiceError carries an operation/reason code alongside the cause.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

// Code exposes the operation/reason code.
func (e *ServiceError) Code() string {
	return e.code
}

func newServiceError(operation, reason string, cause error) error {
	return &ServiceError{code: fmt.Sprintf("%s.%s", operation, reason), err: cause}
}

// ServiceConfig describes the dependencies required by the user service.
type ServiceConfig struct {
	Database      *gorm.DB
	DefaultLocale locales.Locale
	Logger        *zap.Logger
}

// Service manages user rows and their locale assignment.
type Service struct {
	db            *gorm.DB
	defaultLocale locales.Locale
	logger        *zap.Logger
}

// NewService constructs the user service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, newServiceError(opServiceNew, "missing_database", errMissingDatabase)
	}

	defaultLocale := cfg.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = locales.Default
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{db: cfg.Database, defaultLocale: defaultLocale, logger: logger}, nil
}

// query joins the locale lookup so every read carries the language code.
func (s *Service) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&User{}).
		Select(localeColumnsExpr).
		Joins(localeJoinClause)
}

// Create inserts a user and returns the freshly re-queried row. The locale
// code falls back to the configured default when unrecognized.
func (s *Service) Create(ctx context.Context, input NewUser) (User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		username = fmt.Sprintf("%d", input.TelegramID)
	}
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		firstName = username
	}

	locale := s.defaultLocale
	if locales.Supported(input.Locale) {
		locale = locales.Parse(input.Locale)
	}

	var localeRow locales.Record
	if err := s.db.WithContext(ctx).
		Where("language = ?", locale.String()).
		Take(&localeRow).Error; err != nil {
		s.logError(opCreate, "locale_lookup_failed", err, zap.String("locale", locale.String()))
		return User{}, newServiceError(opCreate, "locale_lookup_failed", err)
	}

	row := User{
		TelegramID: input.TelegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   input.LastName,
		LocaleID:   localeRow.ID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.logError(opCreate, "insert_failed", err, zap.Int64("telegram_id", input.TelegramID))
		return User{}, newServiceError(opCreate, "insert_failed", err)
	}

	return s.GetByID(ctx, row.ID)
}

// GetByID fetches a single user by primary key.
func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	var row User
	err := s.query(ctx).Where("users.id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		s.logError(opGet, "query_failed", err, zap.Int64("user_id", id))
		return User{}, newServiceError(opGet, "query_failed", err)
	}
	return row, nil
}

// GetByUsername fetches a single user by username.
func (s *Service) GetByUsername(ctx context.Context, username string) (User, error) {
	if strings.TrimSpace(username) == "" {
		return User{}, newServiceError(opGet, "missing_username", errMissingUsername)
	}
	var row User
	err := s.query(ctx).Where("users.username = ?", username).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		s.logError(opGet, "query_failed", err, zap.String("username", username))
		return User{}, newServiceError(opGet, "query_failed", err)
	}
	return row, nil
}

// GetByTelegramID fetches a single user by its Telegram account id.
func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (User, error) {
	var row User
	err := s.query(ctx).Where("users.telegram_id = ?", telegramID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		s.logError(opGet, "query_failed", err, zap.Int64("telegram_id", telegramID))
		return User{}, newServiceError(opGet, "query_failed", err)
	}
	return row, nil
}

// List returns every registered user.
func (s *Service) List(ctx context.Context) ([]User, error) {
	var rows []User
	if err := s.query(ctx).Order("users.id").Find(&rows).Error; err != nil {
		s.logError(opList, "query_failed", err)
		return nil, newServiceError(opList, "query_failed", err)
	}
	return rows, nil
}

// Delete removes a user row. Deleting an absent row is not an error.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&User{}, id).Error; err != nil {
		s.logError(opDelete, "delete_failed", err, zap.Int64("user_id", id))
		return newServiceError(opDelete, "delete_failed", err)
	}
	return nil
}

// Locale returns the user's locale, falling back to the default when the
// user (or its locale row) is absent.
func (s *Service) Locale(ctx context.Context, userID int64) (locales.Locale, error) {
	var row struct{ Language string }
	err := s.db.WithContext(ctx).
		Model(&User{}).
		Select("l.language AS language").
		Joins(localeJoinClause).
		Where("users.id = ?", userID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultLocale, nil
	}
	if err != nil {
		s.logError(opLocale, "query_failed", err, zap.Int64("user_id", userID))
		return "", newServiceError(opLocale, "query_failed", err)
	}
	return locales.Parse(row.Language), nil
}

// SetLocale updates the user's locale. Unsupported codes are normalized to
// the configured default before the update, and the applied locale is
// returned.
func (s *Service) SetLocale(ctx context.Context, userID int64, raw string) (locales.Locale, error) {
	locale := s.defaultLocale
	if locales.Supported(raw) {
		locale = locales.Parse(raw)
	}

	err := s.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("locale", gorm.Expr("(SELECT id FROM locales WHERE language = ?)", locale.String())).Error
	if err != nil {
		s.logError(opSetLocale, "update_failed", err,
			zap.Int64("user_id", userID),
			zap.String("locale", locale.String()))
		return "", newServiceError(opSetLocale, "update_failed", err)
	}
	return locale, nil
}

func (s *Service) logError(operation, reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", operation),
		zap.String("reason", reason),
	}
	if err != nil {
		attrs = append(attrs, zap.Error(err))
	}
	attrs = append(attrs, fields...)
	s.logger.Error("users service error", attrs...)
}
