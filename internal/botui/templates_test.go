package botui

import (
	"strings"
	"testing"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
)

func TestRenderPageInterpolatesParams(t *testing.T) {
	rendered := RenderPage(PageRandomNote, locales.LocaleEN, Params{Username: "tanque"})
	if !strings.Contains(rendered, "@tanque") {
		t.Fatalf("expected username in page, got %q", rendered)
	}
}

func TestRenderPageTranslatesEveryLocale(t *testing.T) {
	seen := map[string]bool{}
	for _, locale := range locales.All() {
		rendered := RenderPage(PageEraseAll, locale, Params{})
		if rendered == "" {
			t.Fatalf("expected erase-all page for %q", locale)
		}
		if seen[rendered] {
			t.Fatalf("expected a distinct translation for %q", locale)
		}
		seen[rendered] = true
	}
}

func TestRenderPageFallsBackToDefaultLocale(t *testing.T) {
	fallback := RenderPage(PageStart, locales.Locale("de"), Params{Username: "tanque"})
	expected := RenderPage(PageStart, locales.Default, Params{Username: "tanque"})
	if fallback != expected {
		t.Fatalf("expected unknown locale to render the default text")
	}
}

func TestRenderPageUnknownPageIsEmpty(t *testing.T) {
	if rendered := RenderPage(Page("nope"), locales.LocaleEN, Params{}); rendered != "" {
		t.Fatalf("expected empty render for unknown page, got %q", rendered)
	}
}

func TestRenderCreditsPageCarriesAuthorLinks(t *testing.T) {
	rendered := RenderPage(PageCredits, locales.LocaleIT, Params{
		Author:      "tanque",
		ProfileName: "TheShooter89",
		ProfileURL:  "https://github.com/TheShooter89",
		RepoURL:     "https://github.com/TheShooter89/cheer-up-bot",
	})
	for _, expected := range []string{"tanque", "TheShooter89", "https://github.com/TheShooter89/cheer-up-bot"} {
		if !strings.Contains(rendered, expected) {
			t.Fatalf("expected credits page to contain %q, got %q", expected, rendered)
		}
	}
}

func TestEveryPageHasDefaultLocaleText(t *testing.T) {
	for page, byLocale := range pageText {
		if byLocale[locales.Default] == "" {
			t.Fatalf("page %q has no default locale text", page)
		}
	}
}
