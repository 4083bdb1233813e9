package botui

import "github.com/TheShooter89/cheer-up-bot/internal/locales"

// labelSet holds every button caption for one locale.
type labelSet struct {
	askFriend     string
	goExtra       string
	listAll       string
	goHelp        string
	goHome        string
	goUpload      string
	goCredits     string
	goLanguage    string
	deleteNote    string
	confirmDelete string
	eraseAll      string
	confirmErase  string
}

var buttonLabels = map[locales.Locale]labelSet{
	locales.LocaleEN: {
		askFriend:     "🫂️ Ask a friend",
		goExtra:       "✨️ Extra",
		listAll:       "📃️ List all notes",
		goHelp:        "❓️ Help",
		goHome:        "🏠️ Home",
		goUpload:      "📤️ Upload",
		goCredits:     "🎖️ Credits",
		goLanguage:    "🌍️ Language",
		deleteNote:    "🗑️ Delete",
		confirmDelete: "🗑️ Yes, delete it",
		eraseAll:      "🚨️ Erase all notes",
		confirmErase:  "🚨️ Yes, erase everything",
	},
	locales.LocaleES: {
		askFriend:     "🫂️ Pide a un amigo",
		goExtra:       "✨️ Extra",
		listAll:       "📃️ Listar todas las notas",
		goHelp:        "❓️ Ayuda",
		goHome:        "🏠️ Inicio",
		goUpload:      "📤️ Subir",
		goCredits:     "🎖️ Créditos",
		goLanguage:    "🌍️ Idioma",
		deleteNote:    "🗑️ Borrar",
		confirmDelete: "🗑️ Sí, bórrala",
		eraseAll:      "🚨️ Borrar todas las notas",
		confirmErase:  "🚨️ Sí, borra todo",
	},
	locales.LocaleIT: {
		askFriend:     "🫂️ Chiedi a un amico",
		goExtra:       "✨️ Extra",
		listAll:       "📃️ Elenca tutte le note",
		goHelp:        "❓️ Aiuto",
		goHome:        "🏠️ Home",
		goUpload:      "📤️ Carica",
		goCredits:     "🎖️ Crediti",
		goLanguage:    "🌍️ Lingua",
		deleteNote:    "🗑️ Elimina",
		confirmDelete: "🗑️ Sì, eliminala",
		eraseAll:      "🚨️ Cancella tutte le note",
		confirmErase:  "🚨️ Sì, cancella tutto",
	},
	locales.LocaleUA: {
		askFriend:     "🫂️ Запитай друга",
		goExtra:       "✨️ Додатково",
		listAll:       "📃️ Список усіх нотаток",
		goHelp:        "❓️ Допомога",
		goHome:        "🏠️ Головна",
		goUpload:      "📤️ Завантажити",
		goCredits:     "🎖️ Автори",
		goLanguage:    "🌍️ Мова",
		deleteNote:    "🗑️ Видалити",
		confirmDelete: "🗑️ Так, видалити",
		eraseAll:      "🚨️ Стерти всі нотатки",
		confirmErase:  "🚨️ Так, стерти все",
	},
}

// Language picker captions are the same in every locale.
const (
	labelLanguageEN = "🇬🇧️ English"
	labelLanguageES = "🇪🇸️ Español"
	labelLanguageIT = "🇮🇹️ Italiano"
	labelLanguageUA = "🇺🇦️ Українська"
)

func labelsFor(locale locales.Locale) labelSet {
	set, ok := buttonLabels[locale]
	if !ok {
		return buttonLabels[locales.Default]
	}
	return set
}
