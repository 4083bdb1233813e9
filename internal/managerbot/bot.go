// Package managerbot is the maintenance Telegram bot: it ingests video
// notes from uploaders, registers them with the REST API and drives the
// delete and erase-all confirmation flows.
package managerbot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/TheShooter89/cheer-up-bot/internal/apiclient"
	"github.com/TheShooter89/cheer-up-bot/internal/botui"
	"github.com/TheShooter89/cheer-up-bot/internal/config"
	"github.com/TheShooter89/cheer-up-bot/internal/locales"
	"github.com/TheShooter89/cheer-up-bot/internal/notes"
	"github.com/TheShooter89/cheer-up-bot/internal/stats"
	"github.com/TheShooter89/cheer-up-bot/internal/users"
	"github.com/TheShooter89/cheer-up-bot/internal/vnotes"
)

// Telegram is the slice of *tgbotapi.BotAPI the bot drives. GetFile is
// what the video note store needs to resolve download links.
type Telegram interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// Config wires the bot's collaborators.
type Config struct {
	API           *apiclient.Client
	Store         *vnotes.Store
	Sessions      *botui.Sessions
	DefaultLocale locales.Locale
	Credits       config.Credits
	Logger        *zap.Logger
}

// Bot runs the maintenance bot's update loop.
type Bot struct {
	telegram      Telegram
	api           *apiclient.Client
	store         *vnotes.Store
	sessions      *botui.Sessions
	defaultLocale locales.Locale
	credits       config.Credits
	logger        *zap.Logger
}

// New validates the config and builds a Bot.
func New(telegram Telegram, cfg Config) (*Bot, error) {
	if telegram == nil {
		return nil, fmt.Errorf("managerbot: telegram client is required")
	}
	if cfg.API == nil {
		return nil, fmt.Errorf("managerbot: api client is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("managerbot: video note store is required")
	}
	sessions := cfg.Sessions
	if sessions == nil {
		var err error
		sessions, err = botui.NewSessions(0)
		if err != nil {
			return nil, err
		}
	}
	defaultLocale := cfg.DefaultLocale
	if defaultLocale == "" {
		defaultLocale = locales.Default
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		telegram:      telegram,
		api:           cfg.API,
		store:         cfg.Store,
		sessions:      sessions,
		defaultLocale: defaultLocale,
		credits:       cfg.Credits,
		logger:        logger,
	}, nil
}

// Run consumes updates until the context is canceled or the channel
// closes.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.telegram.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			b.telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches one update. Failures are logged and answered
// with the generic error page; the loop never stops on a bad update.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	user, locale, err := b.resolveUser(ctx, chatID, msg.From)
	if err != nil {
		b.fail(chatID, b.defaultLocale, "resolve user", err)
		return
	}

	kind := botui.ClassifyMessage(msg)
	switch kind {
	case botui.KindVideoNote:
		if err := b.uploadVideoNote(ctx, chatID, user, msg, locale); err != nil {
			b.fail(chatID, locale, "upload video note", err)
		}
	case botui.KindText:
		if err := b.handleCommand(ctx, chatID, user, msg, locale); err != nil {
			b.fail(chatID, locale, "handle command", err)
		}
	default:
		b.sendPage(chatID, botui.RenderPage(botui.PageUnsupportedInput, locale, botui.Params{
			Media: kind.Description(),
		}), nil, false)
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, user users.User, msg *tgbotapi.Message, locale locales.Locale) error {
	switch msg.Command() {
	case "ask_friend":
		return b.randomNote(ctx, chatID, locale)
	case "extra":
		return b.extra(ctx, chatID, msg.From, locale)
	case "upload":
		return b.uploadPage(ctx, chatID, locale)
	case "list":
		return b.list(ctx, chatID, user, locale)
	case "language":
		return b.language(chatID, locale)
	case "help":
		return b.help(chatID, locale)
	case "credits":
		return b.creditsPage(chatID, locale)
	default:
		// /start and any free text land on the start page.
		return b.start(chatID, msg.From, locale)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Clears the spinner on the tapped button.
	if _, err := b.telegram.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback query", zap.Error(err))
	}
	if query.Message == nil {
		b.logger.Warn("callback query without message", zap.String("data", query.Data))
		return
	}

	chatID := query.Message.Chat.ID
	user, locale, err := b.resolveUser(ctx, chatID, query.From)
	if err != nil {
		b.fail(chatID, b.defaultLocale, "resolve user", err)
		return
	}

	data, err := botui.ParseQueryData(query.Data)
	if err != nil {
		b.logger.Warn("malformed callback data", zap.String("data", query.Data), zap.Error(err))
		if err := b.start(chatID, query.From, locale); err != nil {
			b.fail(chatID, locale, "render start page", err)
		}
		return
	}

	switch data.Topic {
	case botui.TopicRandomNote:
		err = b.randomNote(ctx, chatID, locale)
	case botui.TopicExtra:
		err = b.extra(ctx, chatID, query.From, locale)
	case botui.TopicUpload:
		err = b.uploadPage(ctx, chatID, locale)
	case botui.TopicList:
		err = b.list(ctx, chatID, user, locale)
	case botui.TopicDelete:
		err = b.deleteNote(chatID, data.Payload, locale)
	case botui.TopicConfirmDelete:
		err = b.confirmDelete(ctx, chatID, data.Payload, locale)
	case botui.TopicEraseAll:
		err = b.eraseAll(chatID, user, data.Payload, locale)
	case botui.TopicConfirmEraseAll:
		err = b.confirmEraseAll(ctx, chatID, data.Payload, locale)
	case botui.TopicLanguage:
		err = b.language(chatID, locale)
	case botui.TopicSetLanguage:
		err = b.setLanguage(ctx, chatID, user, query.From, data.Payload)
	case botui.TopicHelp:
		err = b.help(chatID, locale)
	case botui.TopicCredits:
		err = b.creditsPage(chatID, locale)
	case botui.TopicHome:
		err = b.start(chatID, query.From, locale)
	default:
		b.logger.Warn("unknown callback topic", zap.String("topic", string(data.Topic)))
		err = b.start(chatID, query.From, locale)
	}
	if err != nil {
		b.fail(chatID, locale, "handle callback", err)
	}
}

// resolveUser returns the API user for a chat, registering it on first
// contact. The session cache only keeps id and locale; the full row is
// re-fetched when the cache hits because flows need telegram id and
// username for file paths.
func (b *Bot) resolveUser(ctx context.Context, chatID int64, from *tgbotapi.User) (users.User, locales.Locale, error) {
	if session, ok := b.sessions.Get(chatID); ok && session.UserID != 0 {
		row, err := b.api.GetUserByID(ctx, session.UserID)
		if err == nil {
			return row, session.Locale, nil
		}
		b.sessions.Forget(chatID)
	}
	if from == nil {
		return users.User{}, b.defaultLocale, fmt.Errorf("managerbot: update has no sender")
	}

	input := users.NewUser{
		TelegramID: from.ID,
		Username:   from.UserName,
		FirstName:  from.FirstName,
		Locale:     b.defaultLocale.String(),
	}
	if from.LastName != "" {
		lastName := from.LastName
		input.LastName = &lastName
	}
	row, err := b.api.GetOrCreateUser(ctx, input)
	if err != nil {
		return users.User{}, b.defaultLocale, err
	}

	locale := locales.Parse(row.LocaleCode)
	b.sessions.Put(chatID, botui.Session{UserID: row.ID, Locale: locale})
	return row, locale, nil
}

// uploadVideoNote stores the file on disk first and registers it with
// the API second; a failed registration removes the orphaned file so
// disk and database stay aligned.
func (b *Bot) uploadVideoNote(ctx context.Context, chatID int64, user users.User, msg *tgbotapi.Message, locale locales.Locale) error {
	b.sendPage(chatID, botui.RenderPage(botui.PageLoading, locale, botui.Params{}), nil, false)

	keyboard := botui.HomeKeyboard(locale)

	fileName, err := b.store.Download(ctx, b.telegram, msg.VideoNote.FileID, user.TelegramID, user.Username)
	if err != nil {
		b.logger.Error("video note download failed", zap.Error(err))
		return b.sendPage(chatID, botui.RenderPage(botui.PageUploadError, locale, botui.Params{}), &keyboard, false)
	}

	if _, err := b.api.CreateNote(ctx, notes.NewNote{UserID: user.ID, FileName: fileName}); err != nil {
		b.logger.Error("video note registration failed", zap.Error(err))
		if removeErr := b.store.Remove(user.TelegramID, user.Username, fileName); removeErr != nil {
			b.logger.Warn("failed to remove orphaned file", zap.String("file", fileName), zap.Error(removeErr))
		}
		return b.sendPage(chatID, botui.RenderPage(botui.PageUploadError, locale, botui.Params{}), &keyboard, false)
	}

	return b.sendPage(chatID, botui.RenderPage(botui.PageUploadSuccess, locale, botui.Params{}), &keyboard, false)
}

func (b *Bot) start(chatID int64, from *tgbotapi.User, locale locales.Locale) error {
	keyboard := botui.ManagerStartKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageManagerStart, locale, botui.Params{
		Username: displayName(from),
	}), &keyboard, false)
}

func (b *Bot) randomNote(ctx context.Context, chatID int64, locale locales.Locale) error {
	b.sendPage(chatID, botui.RenderPage(botui.PageLoading, locale, botui.Params{}), nil, false)

	note, err := b.api.RandomNote(ctx)
	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			return b.sendPage(chatID, botui.RenderPage(botui.PageError, locale, botui.Params{}), nil, false)
		}
		return err
	}
	owner, err := b.api.GetUserByID(ctx, note.UserID)
	if err != nil {
		return err
	}

	if _, err := b.telegram.Send(b.store.VideoNote(chatID, owner.TelegramID, owner.Username, note.FileName)); err != nil {
		return fmt.Errorf("managerbot: send video note: %w", err)
	}

	keyboard := botui.RandomNoteKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageRandomNote, locale, botui.Params{
		Username: owner.Username,
	}), &keyboard, false)
}

func (b *Bot) extra(ctx context.Context, chatID int64, from *tgbotapi.User, locale locales.Locale) error {
	aggregate, err := b.api.Stats(ctx)
	if err != nil {
		return err
	}

	keyboard := botui.ExtraKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageExtra, locale, botui.Params{
		Username:   displayName(from),
		TotalNotes: aggregate.TotalVideonotes,
		TotalUsers: len(aggregate.Users),
		NotesList:  formatUserStats(aggregate),
	}), &keyboard, false)
}

func (b *Bot) uploadPage(ctx context.Context, chatID int64, locale locales.Locale) error {
	aggregate, err := b.api.Stats(ctx)
	if err != nil {
		return err
	}

	keyboard := botui.UploadKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageUpload, locale, botui.Params{
		TotalNotes: aggregate.TotalVideonotes,
		TotalUsers: len(aggregate.Users),
	}), &keyboard, false)
}

// list replays every uploaded note with a delete button underneath and
// closes with the erase-all keyboard.
func (b *Bot) list(ctx context.Context, chatID int64, user users.User, locale locales.Locale) error {
	b.sendPage(chatID, botui.RenderPage(botui.PageLoading, locale, botui.Params{}), nil, false)

	rows, err := b.api.NotesByUser(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, note := range rows {
		videoNote := b.store.VideoNote(chatID, user.TelegramID, user.Username, note.FileName)
		videoNote.ReplyMarkup = botui.NoteEntryKeyboard(note.ID, locale)
		if _, err := b.telegram.Send(videoNote); err != nil {
			return fmt.Errorf("managerbot: send video note: %w", err)
		}
	}

	keyboard := botui.ListKeyboard(user.ID, locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageList, locale, botui.Params{
		Username: user.Username,
		Count:    len(rows),
	}), &keyboard, false)
}

// deleteNote shows the confirmation page for one note.
func (b *Bot) deleteNote(chatID int64, payload *botui.Payload, locale locales.Locale) error {
	keyboard := botui.HomeKeyboard(locale)
	if payload == nil {
		return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteError, locale, botui.Params{}), &keyboard, false)
	}
	noteID, ok := payload.Number()
	if !ok {
		return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteError, locale, botui.Params{}), &keyboard, false)
	}

	confirmKeyboard := botui.DeleteNoteKeyboard(noteID, locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteNote, locale, botui.Params{
		NoteID: noteID,
	}), &confirmKeyboard, false)
}

// confirmDelete removes the note from the API and best-effort removes
// the file on disk; a stale file only costs storage, never correctness.
func (b *Bot) confirmDelete(ctx context.Context, chatID int64, payload *botui.Payload, locale locales.Locale) error {
	keyboard := botui.HomeKeyboard(locale)
	if payload == nil {
		return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteError, locale, botui.Params{}), &keyboard, false)
	}
	noteID, ok := payload.Number()
	if !ok {
		return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteError, locale, botui.Params{}), &keyboard, false)
	}

	b.sendPage(chatID, botui.RenderPage(botui.PageLoading, locale, botui.Params{}), nil, false)

	note, err := b.api.GetNote(ctx, noteID)
	if err != nil {
		b.logger.Warn("note lookup before delete failed", zap.Int64("note_id", noteID), zap.Error(err))
		return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteError, locale, botui.Params{}), &keyboard, false)
	}

	fileName, err := b.api.DeleteNote(ctx, noteID)
	if err != nil || fileName == "" {
		b.logger.Warn("note delete failed", zap.Int64("note_id", noteID), zap.Error(err))
		return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteError, locale, botui.Params{}), &keyboard, false)
	}

	owner, err := b.api.GetUserByID(ctx, note.UserID)
	if err == nil {
		if removeErr := b.store.Remove(owner.TelegramID, owner.Username, fileName); removeErr != nil {
			b.logger.Warn("failed to remove file from disk", zap.String("file", fileName), zap.Error(removeErr))
		}
	}

	return b.sendPage(chatID, botui.RenderPage(botui.PageDeleteSuccess, locale, botui.Params{
		FileName: fileName,
	}), &keyboard, false)
}

// eraseAll shows the confirmation page; the payload defaults to the
// caller's own user id.
func (b *Bot) eraseAll(chatID int64, user users.User, payload *botui.Payload, locale locales.Locale) error {
	ownerID := user.ID
	if payload != nil {
		if parsed, ok := payload.Number(); ok {
			ownerID = parsed
		}
	}

	keyboard := botui.EraseAllKeyboard(ownerID, locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageEraseAll, locale, botui.Params{}), &keyboard, false)
}

func (b *Bot) confirmEraseAll(ctx context.Context, chatID int64, payload *botui.Payload, locale locales.Locale) error {
	keyboard := botui.HomeKeyboard(locale)
	if payload == nil {
		return b.sendPage(chatID, botui.RenderPage(botui.PageEraseError, locale, botui.Params{}), &keyboard, false)
	}
	ownerID, ok := payload.Number()
	if !ok {
		return b.sendPage(chatID, botui.RenderPage(botui.PageEraseError, locale, botui.Params{}), &keyboard, false)
	}

	b.sendPage(chatID, botui.RenderPage(botui.PageLoading, locale, botui.Params{}), nil, false)

	owner, err := b.api.GetUserByID(ctx, ownerID)
	if err != nil {
		b.logger.Warn("owner lookup before erase failed", zap.Int64("user_id", ownerID), zap.Error(err))
		return b.sendPage(chatID, botui.RenderPage(botui.PageEraseError, locale, botui.Params{}), &keyboard, false)
	}

	if err := b.api.DeleteNotesByUser(ctx, ownerID); err != nil {
		b.logger.Warn("erase all failed", zap.Int64("user_id", ownerID), zap.Error(err))
		return b.sendPage(chatID, botui.RenderPage(botui.PageEraseError, locale, botui.Params{}), &keyboard, false)
	}

	if removeErr := b.store.RemoveUserFolder(owner.TelegramID, owner.Username); removeErr != nil {
		b.logger.Warn("failed to remove user folder", zap.Int64("user_id", ownerID), zap.Error(removeErr))
	}

	return b.sendPage(chatID, botui.RenderPage(botui.PageEraseSuccess, locale, botui.Params{}), &keyboard, false)
}

func (b *Bot) language(chatID int64, locale locales.Locale) error {
	keyboard := botui.LanguageKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageLanguage, locale, botui.Params{}), &keyboard, false)
}

func (b *Bot) setLanguage(ctx context.Context, chatID int64, user users.User, from *tgbotapi.User, payload *botui.Payload) error {
	if payload == nil || payload.Text == "" {
		return b.help(chatID, b.defaultLocale)
	}
	applied, err := b.api.SetLocale(ctx, user.ID, locales.Parse(payload.Text))
	if err != nil {
		return err
	}
	b.sessions.SetLocale(chatID, applied)
	return b.start(chatID, from, applied)
}

func (b *Bot) help(chatID int64, locale locales.Locale) error {
	keyboard := botui.HelpKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageManagerHelp, locale, botui.Params{}), &keyboard, false)
}

func (b *Bot) creditsPage(chatID int64, locale locales.Locale) error {
	keyboard := botui.CreditsKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageCredits, locale, botui.Params{
		Author:      b.credits.Author,
		ProfileName: b.credits.ProfileName,
		ProfileURL:  b.credits.ProfileURL,
		RepoURL:     b.credits.RepoURL,
	}), &keyboard, true)
}

func (b *Bot) sendPage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup, disablePreview bool) error {
	message := tgbotapi.NewMessage(chatID, text)
	message.ParseMode = tgbotapi.ModeHTML
	message.DisableWebPagePreview = disablePreview
	if keyboard != nil {
		message.ReplyMarkup = *keyboard
	}
	if _, err := b.telegram.Send(message); err != nil {
		return fmt.Errorf("managerbot: send message: %w", err)
	}
	return nil
}

// fail logs the failure and best-effort shows the generic error page.
func (b *Bot) fail(chatID int64, locale locales.Locale, operation string, err error) {
	b.logger.Error("update handling failed",
		zap.String("operation", operation),
		zap.Int64("chat_id", chatID),
		zap.Error(err))
	b.sendPage(chatID, botui.RenderPage(botui.PageError, locale, botui.Params{}), nil, false)
}

func displayName(from *tgbotapi.User) string {
	switch {
	case from == nil:
		return "friend"
	case from.UserName != "":
		return from.UserName
	case from.FirstName != "":
		return from.FirstName
	default:
		return strconv.FormatInt(from.ID, 10)
	}
}

// formatUserStats renders the per-uploader lines on the extra page.
func formatUserStats(aggregate stats.Stats) string {
	lines := make([]string, 0, len(aggregate.Users))
	for _, row := range aggregate.Users {
		lines = append(lines, fmt.Sprintf("@%s uploaded %d notes", row.Username, row.Videonotes))
	}
	return strings.Join(lines, "\n")
}
