package botui

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
)

// StartKeyboard is the consumer bot's home keyboard.
func StartKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.askFriend, QueryData{Topic: TopicRandomNote}),
			Button(labels.goExtra, QueryData{Topic: TopicExtra}),
		),
	)
}

// ManagerStartKeyboard is the maintenance bot's home keyboard.
func ManagerStartKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.listAll, QueryData{Topic: TopicList}),
			Button(labels.goHelp, QueryData{Topic: TopicHelp}),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goUpload, QueryData{Topic: TopicUpload}),
		),
	)
}

// RandomNoteKeyboard follows the caption under a delivered note.
func RandomNoteKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.askFriend, QueryData{Topic: TopicRandomNote}),
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// ExtraKeyboard follows the stats page.
func ExtraKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goCredits, QueryData{Topic: TopicCredits}),
			Button(labels.goHelp, QueryData{Topic: TopicHelp}),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// ListKeyboard closes the note listing; the erase-all button carries the
// owner's user id so the confirmation step knows whose notes to drop.
func ListKeyboard(ownerID int64, locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.eraseAll, UserPayload(TopicEraseAll, ownerID)),
			Button(labels.goHelp, QueryData{Topic: TopicHelp}),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// NoteEntryKeyboard hangs a delete button under one listed note.
func NoteEntryKeyboard(noteID int64, locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.deleteNote, NotePayload(TopicDelete, noteID)),
		),
	)
}

// DeleteNoteKeyboard asks for confirmation before deleting one note.
func DeleteNoteKeyboard(noteID int64, locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.confirmDelete, NotePayload(TopicConfirmDelete, noteID)),
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// EraseAllKeyboard asks for confirmation before erasing every note.
func EraseAllKeyboard(ownerID int64, locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.confirmErase, UserPayload(TopicConfirmEraseAll, ownerID)),
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// HomeKeyboard is the single-button keyboard closing result pages.
func HomeKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// UploadKeyboard follows the upload instructions page.
func UploadKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.listAll, QueryData{Topic: TopicList}),
			Button(labels.goHelp, QueryData{Topic: TopicHelp}),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// CreditsKeyboard follows the credits page.
func CreditsKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goLanguage, QueryData{Topic: TopicLanguage}),
			Button(labels.goHelp, QueryData{Topic: TopicHelp}),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// HelpKeyboard follows the help page.
func HelpKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goLanguage, QueryData{Topic: TopicLanguage}),
			Button(labels.goCredits, QueryData{Topic: TopicCredits}),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}

// LanguageKeyboard lists one row per supported language plus home.
func LanguageKeyboard(locale locales.Locale) tgbotapi.InlineKeyboardMarkup {
	labels := labelsFor(locale)
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			Button(labelLanguageEN, TextPayload(TopicSetLanguage, locales.LocaleEN.String())),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labelLanguageES, TextPayload(TopicSetLanguage, locales.LocaleES.String())),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labelLanguageIT, TextPayload(TopicSetLanguage, locales.LocaleIT.String())),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labelLanguageUA, TextPayload(TopicSetLanguage, locales.LocaleUA.String())),
		),
		tgbotapi.NewInlineKeyboardRow(
			Button(labels.goHome, QueryData{Topic: TopicHome}),
		),
	)
}
