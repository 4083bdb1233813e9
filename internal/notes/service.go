package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound indicates the requested note row is absent.
	ErrNotFound = errors.New("notes: not found")

	errMissingDatabase = errors.New("database handle is required")
	errMissingFileName = errors.New("file name is required")
	noOpLogger         = zap.NewNop()
)

const (
	opServiceNew   = "notes.service.new"
	opCreate       = "notes.create"
	opGet          = "notes.get"
	opList         = "notes.list"
	opRandom       = "notes.random"
	opDelete       = "notes.delete"
	opDeleteByUser = "notes.delete_by_user"
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

// ServiceConfig describes the dependencies required by the note service.
type ServiceConfig struct {
	Database *gorm.DB
	Logger   *zap.Logger
}

// Service manages video-note metadata rows.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService constructs the note service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Database == nil {
		return nil, newServiceError(opServiceNew, "missing_database", errMissingDatabase)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Service{db: cfg.Database, logger: logger}, nil
}

// Create inserts a note and returns the freshly re-queried row.
func (s *Service) Create(ctx context.Context, input NewNote) (Note, error) {
	if strings.TrimSpace(input.FileName) == "" {
		return Note{}, newServiceError(opCreate, "missing_file_name", errMissingFileName)
	}

	row := Note{UserID: input.UserID, FileName: input.FileName}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		s.logError(opCreate, "insert_failed", err, zap.Int64("user_id", input.UserID))
		return Note{}, newServiceError(opCreate, "insert_failed", err)
	}

	return s.Get(ctx, row.ID)
}

// Get fetches a single note by primary key.
func (s *Service) Get(ctx context.Context, id int64) (Note, error) {
	var row Note
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		s.logError(opGet, "query_failed", err, zap.Int64("note_id", id))
		return Note{}, newServiceError(opGet, "query_failed", err)
	}
	return row, nil
}

// List returns every registered note.
func (s *Service) List(ctx context.Context) ([]Note, error) {
	var rows []Note
	if err := s.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		s.logError(opList, "query_failed", err)
		return nil, newServiceError(opList, "query_failed", err)
	}
	return rows, nil
}

// ListByUser returns the notes owned by one user, oldest first.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Note, error) {
	var rows []Note
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		s.logError(opList, "query_failed", err, zap.Int64("user_id", userID))
		return nil, newServiceError(opList, "query_failed", err)
	}
	return rows, nil
}

// Random returns one uniformly random note, or ErrNotFound when the table
// is empty.
func (s *Service) Random(ctx context.Context) (Note, error) {
	var row Note
	err := s.db.WithContext(ctx).
		Order("RANDOM()").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Note{}, ErrNotFound
	}
	if err != nil {
		s.logError(opRandom, "query_failed", err)
		return Note{}, newServiceError(opRandom, "query_failed", err)
	}
	return row, nil
}

// Delete removes a note row and returns it when it existed. Deleting an
// absent row is not an error; the returned bool reports whether a row
// matched.
func (s *Service) Delete(ctx context.Context, id int64) (Note, bool, error) {
	row, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Note{}, false, nil
	}
	if err != nil {
		return Note{}, false, err
	}

	if err := s.db.WithContext(ctx).Delete(&Note{}, id).Error; err != nil {
		s.logError(opDelete, "delete_failed", err, zap.Int64("note_id", id))
		return Note{}, false, newServiceError(opDelete, "delete_failed", err)
	}
	return row, true, nil
}

// DeleteByUser removes every note owned by one user and reports how many
// rows matched.
func (s *Service) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Note{})
	if result.Error != nil {
		s.logError(opDeleteByUser, "delete_failed", result.Error, zap.Int64("user_id", userID))
		return 0, newServiceError(opDeleteByUser, "delete_failed", result.Error)
	}
	return result.RowsAffected, nil
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
	s.logger.Error("notes service error", attrs...)
}
