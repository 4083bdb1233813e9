// Package botui holds the Telegram-facing building blocks both bots
// share: callback query data, inline keyboards, localized page
// templates, message classification and the per-chat session cache.
package botui

import (
	"encoding/json"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Topic routes a tapped inline button to its handler.
type Topic string

const (
	TopicRandomNote      Topic = "random_note"
	TopicList            Topic = "list"
	TopicDelete          Topic = "delete"
	TopicConfirmDelete   Topic = "confirm_delete"
	TopicEraseAll        Topic = "erase_all"
	TopicConfirmEraseAll Topic = "confirm_erase_all"
	TopicHome            Topic = "home"
	TopicExtra           Topic = "extra"
	TopicUpload          Topic = "upload"
	TopicCredits         Topic = "credits"
	TopicLanguage        Topic = "language"
	TopicHelp            Topic = "help"
	TopicSetLanguage     Topic = "set_language"
)

// Payload carries at most one value alongside a topic. Telegram caps
// callback data at 64 bytes, so payloads stay minimal.
type Payload struct {
	Text     string `json:"text,omitempty"`
	Username string `json:"username,omitempty"`
	UserID   int64  `json:"user_id,omitempty"`
	NoteID   int64  `json:"note_id,omitempty"`
}

// Number returns the numeric value a confirm handler needs, trying the
// id fields first and falling back to parsing the text field.
func (p Payload) Number() (int64, bool) {
	if p.NoteID != 0 {
		return p.NoteID, true
	}
	if p.UserID != 0 {
		return p.UserID, true
	}
	if p.Text != "" {
		parsed, err := strconv.ParseInt(p.Text, 10, 64)
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// QueryData is the JSON document stored in a button's callback data.
type QueryData struct {
	Topic   Topic    `json:"topic"`
	Payload *Payload `json:"payload,omitempty"`
}

// TextPayload builds a QueryData carrying a short text value.
func TextPayload(topic Topic, text string) QueryData {
	return QueryData{Topic: topic, Payload: &Payload{Text: text}}
}

// NotePayload builds a QueryData carrying a note id.
func NotePayload(topic Topic, noteID int64) QueryData {
	return QueryData{Topic: topic, Payload: &Payload{NoteID: noteID}}
}

// UserPayload builds a QueryData carrying a user id.
func UserPayload(topic Topic, userID int64) QueryData {
	return QueryData{Topic: topic, Payload: &Payload{UserID: userID}}
}

// Encode renders the callback data string for a button.
func (d QueryData) Encode() (string, error) {
	encoded, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("botui: encode callback data: %w", err)
	}
	return string(encoded), nil
}

// ParseQueryData decodes a callback query's data. Malformed data is an
// error the caller degrades to the start page, never a crash.
func ParseQueryData(raw string) (QueryData, error) {
	var data QueryData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return QueryData{}, fmt.Errorf("botui: parse callback data: %w", err)
	}
	if data.Topic == "" {
		return QueryData{}, fmt.Errorf("botui: callback data has no topic")
	}
	return data, nil
}

// Button builds an inline button whose callback data is the marshaled
// QueryData.
func Button(label string, data QueryData) tgbotapi.InlineKeyboardButton {
	encoded, err := data.Encode()
	if err != nil {
		encoded = string(data.Topic)
	}
	return tgbotapi.NewInlineKeyboardButtonData(label, encoded)
}
