package botui

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestClassifyMessagePrefersVideoNote(t *testing.T) {
	msg := &tgbotapi.Message{
		VideoNote: &tgbotapi.VideoNote{FileID: "abc"},
		Text:      "caption-ish text",
	}
	if kind := ClassifyMessage(msg); kind != KindVideoNote {
		t.Fatalf("expected video note, got %s", kind)
	}
}

func TestClassifyMessageRecognizesEveryKind(t *testing.T) {
	cases := []struct {
		message  *tgbotapi.Message
		expected MessageKind
	}{
		{&tgbotapi.Message{Text: "/start"}, KindText},
		{&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "p"}}}, KindPhoto},
		{&tgbotapi.Message{Video: &tgbotapi.Video{FileID: "v"}}, KindVideo},
		{&tgbotapi.Message{Voice: &tgbotapi.Voice{FileID: "v"}}, KindVoice},
		{&tgbotapi.Message{Audio: &tgbotapi.Audio{FileID: "a"}}, KindAudio},
		{&tgbotapi.Message{Document: &tgbotapi.Document{FileID: "d"}}, KindDocument},
		{&tgbotapi.Message{}, KindUnknown},
		{nil, KindUnknown},
	}
	for _, testCase := range cases {
		if kind := ClassifyMessage(testCase.message); kind != testCase.expected {
			t.Fatalf("expected %s, got %s", testCase.expected, kind)
		}
	}
}

func TestSessionsEvictOldestBeyondCapacity(t *testing.T) {
	sessions, err := NewSessions(2)
	if err != nil {
		t.Fatalf("failed to create sessions: %v", err)
	}

	sessions.Put(1, Session{UserID: 1})
	sessions.Put(2, Session{UserID: 2})
	sessions.Put(3, Session{UserID: 3})

	if _, ok := sessions.Get(1); ok {
		t.Fatalf("expected oldest session to be evicted")
	}
	if session, ok := sessions.Get(3); !ok || session.UserID != 3 {
		t.Fatalf("expected newest session to survive, got %#v (ok=%v)", session, ok)
	}
}

func TestSessionsSetLocaleKeepsUserID(t *testing.T) {
	sessions, err := NewSessions(0)
	if err != nil {
		t.Fatalf("failed to create sessions: %v", err)
	}

	sessions.Put(7, Session{UserID: 99, Locale: "en"})
	sessions.SetLocale(7, "ua")

	session, ok := sessions.Get(7)
	if !ok {
		t.Fatalf("expected session to survive locale update")
	}
	if session.UserID != 99 || session.Locale != "ua" {
		t.Fatalf("unexpected session %#v", session)
	}
}
