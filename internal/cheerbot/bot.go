// Package cheerbot is the consumer-facing Telegram bot: it delivers
// random video notes recorded by the user's friends and read-only pages
// around them. All state lives behind the REST API.
package cheerbot

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
	"github.com/TheShooter89/cheer-up-bot/internal/stats"
	"github.com/TheShooter89/cheer-up-bot/internal/users"
	"github.com/TheShooter89/cheer-up-bot/internal/vnotes"
)

// Telegram is the slice of *tgbotapi.BotAPI the bot drives.
type Telegram interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
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

// Bot runs the consumer bot's update loop.
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
		return nil, fmt.Errorf("cheerbot: telegram client is required")
	}
	if cfg.API == nil {
		return nil, fmt.Errorf("cheerbot: api client is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("cheerbot: video note store is required")
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
	userID, locale, err := b.resolveUser(ctx, chatID, msg.From)
	if err != nil {
		b.fail(chatID, b.defaultLocale, "resolve user", err)
		return
	}

	kind := botui.ClassifyMessage(msg)
	if kind != botui.KindText {
		b.sendPage(chatID, botui.RenderPage(botui.PageUnsupportedInput, locale, botui.Params{
			Media: kind.Description(),
		}), nil, false)
		return
	}

	switch msg.Command() {
	case "ask_friend":
		err = b.randomNote(ctx, chatID, locale)
	case "extra":
		err = b.extra(ctx, chatID, msg.From, locale)
	case "list":
		err = b.list(ctx, chatID, userID, msg.From, locale)
	case "help":
		err = b.help(chatID, locale)
	case "credits":
		err = b.creditsPage(chatID, locale)
	default:
		// /start and any free text land on the start page.
		err = b.start(chatID, msg.From, locale)
	}
	if err != nil {
		b.fail(chatID, locale, "handle message", err)
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
	userID, locale, err := b.resolveUser(ctx, chatID, query.From)
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
	case botui.TopicList:
		err = b.list(ctx, chatID, userID, query.From, locale)
	case botui.TopicHelp:
		err = b.help(chatID, locale)
	case botui.TopicCredits:
		err = b.creditsPage(chatID, locale)
	case botui.TopicLanguage:
		err = b.language(chatID, locale)
	case botui.TopicSetLanguage:
		err = b.setLanguage(ctx, chatID, userID, query.From, data.Payload)
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

// resolveUser returns the API user id and locale for a chat, registering
// the user on first contact and caching the result per chat.
func (b *Bot) resolveUser(ctx context.Context, chatID int64, from *tgbotapi.User) (int64, locales.Locale, error) {
	if session, ok := b.sessions.Get(chatID); ok && session.UserID != 0 {
		return session.UserID, session.Locale, nil
	}
	if from == nil {
		return 0, b.defaultLocale, fmt.Errorf("cheerbot: update has no sender")
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
		return 0, b.defaultLocale, err
	}

	locale := locales.Parse(row.LocaleCode)
	b.sessions.Put(chatID, botui.Session{UserID: row.ID, Locale: locale})
	return row.ID, locale, nil
}

func (b *Bot) start(chatID int64, from *tgbotapi.User, locale locales.Locale) error {
	keyboard := botui.StartKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageStart, locale, botui.Params{
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
		return fmt.Errorf("cheerbot: send video note: %w", err)
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

func (b *Bot) list(ctx context.Context, chatID, userID int64, from *tgbotapi.User, locale locales.Locale) error {
	b.sendPage(chatID, botui.RenderPage(botui.PageLoading, locale, botui.Params{}), nil, false)

	rows, err := b.api.NotesByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, note := range rows {
		owner, err := b.api.GetUserByID(ctx, note.UserID)
		if err != nil {
			return err
		}
		if _, err := b.telegram.Send(b.store.VideoNote(chatID, owner.TelegramID, owner.Username, note.FileName)); err != nil {
			return fmt.Errorf("cheerbot: send video note: %w", err)
		}
	}

	keyboard := botui.HomeKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageList, locale, botui.Params{
		Username: displayName(from),
		Count:    len(rows),
	}), &keyboard, false)
}

func (b *Bot) help(chatID int64, locale locales.Locale) error {
	keyboard := botui.HelpKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageHelp, locale, botui.Params{}), &keyboard, false)
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

func (b *Bot) language(chatID int64, locale locales.Locale) error {
	keyboard := botui.LanguageKeyboard(locale)
	return b.sendPage(chatID, botui.RenderPage(botui.PageLanguage, locale, botui.Params{}), &keyboard, false)
}

func (b *Bot) setLanguage(ctx context.Context, chatID, userID int64, from *tgbotapi.User, payload *botui.Payload) error {
	if payload == nil || payload.Text == "" {
		return b.help(chatID, b.defaultLocale)
	}
	applied, err := b.api.SetLocale(ctx, userID, locales.Parse(payload.Text))
	if err != nil {
		return err
	}
	b.sessions.SetLocale(chatID, applied)
	return b.start(chatID, from, applied)
}

func (b *Bot) sendPage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup, disablePreview bool) error {
	message := tgbotapi.NewMessage(chatID, text)
	message.ParseMode = tgbotapi.ModeHTML
	message.DisableWebPagePreview = disablePreview
	if keyboard != nil {
		message.ReplyMarkup = *keyboard
	}
	if _, err := b.telegram.Send(message); err != nil {
		return fmt.Errorf("cheerbot: send message: %w", err)
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
