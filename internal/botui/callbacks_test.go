package botui

import (
	"strings"
	"testing"
)

func TestQueryDataRoundTripKeepsTopicAndPayload(t *testing.T) {
	original := NotePayload(TopicConfirmDelete, 42)

	encoded, err := original.Encode()
	if err != nil {
		t.Fatalf("expected encode to succeed: %v", err)
	}

	decoded, err := ParseQueryData(encoded)
	if err != nil {
		t.Fatalf("expected parse to succeed: %v", err)
	}
	if decoded.Topic != TopicConfirmDelete {
		t.Fatalf("unexpected topic %q", decoded.Topic)
	}
	if decoded.Payload == nil || decoded.Payload.NoteID != 42 {
		t.Fatalf("unexpected payload %#v", decoded.Payload)
	}
}

func TestQueryDataWithoutPayloadOmitsPayloadKey(t *testing.T) {
	encoded, err := QueryData{Topic: TopicHome}.Encode()
	if err != nil {
		t.Fatalf("expected encode to succeed: %v", err)
	}
	if strings.Contains(encoded, "payload") {
		t.Fatalf("expected payload key to be omitted, got %s", encoded)
	}
}

// Telegram rejects callback data above 64 bytes, so every encoded
// QueryData must stay below that limit for realistic autoincrement ids.
func TestEncodedQueryDataFitsTelegramLimit(t *testing.T) {
	samples := []QueryData{
		{Topic: TopicHome},
		NotePayload(TopicConfirmDelete, 1_234_567_890),
		UserPayload(TopicConfirmEraseAll, 1_234_567_890),
		TextPayload(TopicSetLanguage, "ua"),
	}
	for _, sample := range samples {
		encoded, err := sample.Encode()
		if err != nil {
			t.Fatalf("expected encode to succeed: %v", err)
		}
		if len(encoded) > 64 {
			t.Fatalf("callback data %q is %d bytes, above the 64-byte limit", encoded, len(encoded))
		}
	}
}

func TestParseQueryDataRejectsMalformedData(t *testing.T) {
	for _, raw := range []string{"", "none", "{\"payload\":{}}", "{not json"} {
		if _, err := ParseQueryData(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestPayloadNumberPrefersIDsOverText(t *testing.T) {
	number, ok := Payload{NoteID: 7}.Number()
	if !ok || number != 7 {
		t.Fatalf("expected note id 7, got %d (ok=%v)", number, ok)
	}

	number, ok = Payload{UserID: 3}.Number()
	if !ok || number != 3 {
		t.Fatalf("expected user id 3, got %d (ok=%v)", number, ok)
	}

	number, ok = Payload{Text: "12"}.Number()
	if !ok || number != 12 {
		t.Fatalf("expected parsed text 12, got %d (ok=%v)", number, ok)
	}

	if _, ok := (Payload{Text: "twelve"}).Number(); ok {
		t.Fatalf("expected non-numeric text to fail")
	}
}
