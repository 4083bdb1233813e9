// Package vnotes moves video-note files between Telegram and local
// disk. Files live under <root>/videonotes/<telegram_id>_<username>/
// and are named <file_id>.mpeg, so the database only has to remember
// the file name.
package vnotes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// FileResolver is the slice of *tgbotapi.BotAPI the store needs to turn
// a file id into a download path.
type FileResolver interface {
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// StoreConfig configures a Store.
type StoreConfig struct {
	Root       string
	BotToken   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Store reads and writes video-note files for both bots.
type Store struct {
	root       string
	botToken   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStore validates the config and builds a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("vnotes: storage root is required")
	}
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("vnotes: bot token is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		root:       cfg.Root,
		botToken:   cfg.BotToken,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// FileName renders the stored name for a Telegram file id.
func FileName(fileID string) string {
	return fileID + ".mpeg"
}

// UserFolder is the directory holding one uploader's files.
func (s *Store) UserFolder(telegramID int64, username string) string {
	return filepath.Join(s.root, "videonotes", fmt.Sprintf("%d_%s", telegramID, username))
}

// Path locates one stored file.
func (s *Store) Path(telegramID int64, username, fileName string) string {
	return filepath.Join(s.UserFolder(telegramID, username), fileName)
}

// Download fetches a video note from Telegram into the uploader's
// folder, creating it on first upload, and returns the stored file name.
func (s *Store) Download(ctx context.Context, resolver FileResolver, fileID string, telegramID int64, username string) (string, error) {
	file, err := resolver.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("vnotes: resolve telegram file: %w", err)
	}
	return s.downloadFromURL(ctx, file.Link(s.botToken), telegramID, username, fileID)
}

func (s *Store) downloadFromURL(ctx context.Context, url string, telegramID int64, username, fileID string) (string, error) {
	folder := s.UserFolder(telegramID, username)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("vnotes: create user folder: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("vnotes: build download request: %w", err)
	}
	response, err := s.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("vnotes: download file: %w", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vnotes: download file: status %d", response.StatusCode)
	}

	fileName := FileName(fileID)
	destination := filepath.Join(folder, fileName)
	output, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("vnotes: create file: %w", err)
	}
	defer output.Close()

	if _, err := io.Copy(output, response.Body); err != nil {
		os.Remove(destination)
		return "", fmt.Errorf("vnotes: write file: %w", err)
	}

	s.logger.Debug("video note stored",
		zap.String("file", fileName),
		zap.Int64("telegram_id", telegramID))
	return fileName, nil
}

// Remove deletes one stored file. A file already gone is not an error.
func (s *Store) Remove(telegramID int64, username, fileName string) error {
	err := os.Remove(s.Path(telegramID, username, fileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("vnotes: remove file: %w", err)
	}
	return nil
}

// RemoveUserFolder deletes an uploader's whole folder after an
// erase-all.
func (s *Store) RemoveUserFolder(telegramID int64, username string) error {
	if err := os.RemoveAll(s.UserFolder(telegramID, username)); err != nil {
		return fmt.Errorf("vnotes: remove user folder: %w", err)
	}
	return nil
}

// VideoNote builds the outgoing message sending one stored file back to
// a chat.
func (s *Store) VideoNote(chatID, telegramID int64, username, fileName string) tgbotapi.VideoNoteConfig {
	return tgbotapi.NewVideoNote(chatID, 0, tgbotapi.FilePath(s.Path(telegramID, username, fileName)))
}
