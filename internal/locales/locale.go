package locales

import "strings"

// Locale is a two-letter language code selecting which template text to render.
type Locale string

const (
	// LocaleEN is the English locale and the package-wide fallback.
	LocaleEN Locale = "en"
	// LocaleES is the Spanish locale.
	LocaleES Locale = "es"
	// LocaleIT is the Italian locale.
	LocaleIT Locale = "it"
	// LocaleUA is the Ukrainian locale.
	LocaleUA Locale = "ua"
)

// Default is the locale used whenever a code is missing or unrecognized.
const Default = LocaleEN

// All lists every supported locale in seed order.
func All() []Locale {
	return []Locale{LocaleEN, LocaleES, LocaleIT, LocaleUA}
}

// Parse maps a raw code to a supported Locale, falling back to Default for
// anything unrecognized.
func Parse(raw string) Locale {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case LocaleEN:
		return LocaleEN
	case LocaleES:
		return LocaleES
	case LocaleIT:
		return LocaleIT
	case LocaleUA:
		return LocaleUA
	default:
		return Default
	}
}

// Supported reports whether the raw code names a locale without falling back.
func Supported(raw string) bool {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case LocaleEN, LocaleES, LocaleIT, LocaleUA:
		return true
	default:
		return false
	}
}

// String returns the underlying language code.
func (l Locale) String() string {
	return string(l)
}
