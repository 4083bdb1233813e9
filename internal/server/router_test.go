package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/TheShooter89/cheer-up-bot/internal/auth"
	"github.com/TheShooter89/cheer-up-bot/internal/locales"
	"github.com/TheShooter89/cheer-up-bot/internal/notes"
	"github.com/TheShooter89/cheer-up-bot/internal/stats"
	"github.com/TheShooter89/cheer-up-bot/internal/users"
)

func newTestHandler(t *testing.T, tokens TokenValidator) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&locales.Record{}, &users.User{}, &notes.Note{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	for _, locale := range locales.All() {
		if err := db.Create(&locales.Record{Language: locale.String()}).Error; err != nil {
			t.Fatalf("failed to seed locale %q: %v", locale, err)
		}
	}

	usersService, err := users.NewService(users.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to create users service: %v", err)
	}
	notesService, err := notes.NewService(notes.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to create notes service: %v", err)
	}
	statsService, err := stats.NewService(stats.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to create stats service: %v", err)
	}

	handler, err := NewHTTPHandler(Dependencies{
		UsersService: usersService,
		NotesService: notesService,
		StatsService: statsService,
		Tokens:       tokens,
	})
	if err != nil {
		t.Fatalf("failed to create handler: %v", err)
	}
	return handler
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}

func TestCreateUserAppliesDefaultLocale(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := doJSON(t, handler, http.MethodPost, "/api/users", users.NewUser{
		TelegramID: 42,
		Username:   "tanque",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var body struct {
		User users.User `json:"user"`
	}
	decodeBody(t, recorder, &body)
	if body.User.Username != "tanque" {
		t.Fatalf("unexpected username %q", body.User.Username)
	}
	if body.User.LocaleCode != "en" {
		t.Fatalf("expected default locale en, got %q", body.User.LocaleCode)
	}
}

func TestCreateUserWithoutTelegramIDIsInvalid(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := doJSON(t, handler, http.MethodPost, "/api/users", users.NewUser{Username: "tanque"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestGetMissingUserReturns404(t *testing.T) {
	handler := newTestHandler(t, nil)

	for _, path := range []string{"/api/users/99", "/api/users/name/absent", "/api/users/telegram/99"} {
		recorder := doJSON(t, handler, http.MethodGet, path, nil)
		if recorder.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", path, recorder.Code)
		}
		var body struct {
			Error string `json:"error"`
		}
		decodeBody(t, recorder, &body)
		if body.Error != "not_found" {
			t.Fatalf("unexpected error body %q", body.Error)
		}
	}
}

func TestLocaleRoundTripNormalizesUnsupportedCode(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := doJSON(t, handler, http.MethodPost, "/api/users", users.NewUser{TelegramID: 42, Username: "tanque"})
	var created struct {
		User users.User `json:"user"`
	}
	decodeBody(t, recorder, &created)

	recorder = doJSON(t, handler, http.MethodPatch,
		fmt.Sprintf("/api/locale/%d", created.User.ID),
		map[string]string{"locale": "it"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var patched struct {
		Locale string `json:"locale"`
	}
	decodeBody(t, recorder, &patched)
	if patched.Locale != "it" {
		t.Fatalf("expected it, got %q", patched.Locale)
	}

	recorder = doJSON(t, handler, http.MethodPatch,
		fmt.Sprintf("/api/locale/%d", created.User.ID),
		map[string]string{"locale": "klingon"})
	decodeBody(t, recorder, &patched)
	if patched.Locale != "en" {
		t.Fatalf("expected unsupported code to normalize to en, got %q", patched.Locale)
	}
}

func TestGetLocaleForMissingUserFallsBack(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := doJSON(t, handler, http.MethodGet, "/api/locale/99", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var body struct {
		Locale string `json:"locale"`
	}
	decodeBody(t, recorder, &body)
	if body.Locale != "en" {
		t.Fatalf("expected fallback en, got %q", body.Locale)
	}
}

func TestRandomNoteOnEmptyTableReturns404(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := doJSON(t, handler, http.MethodGet, "/api/notes/random", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

// Upload, deliver, delete: the happy path both bots drive end to end.
func TestNoteLifecycleAcrossEndpoints(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := doJSON(t, handler, http.MethodPost, "/api/users", users.NewUser{TelegramID: 42, Username: "tanque"})
	var created struct {
		User users.User `json:"user"`
	}
	decodeBody(t, recorder, &created)

	recorder = doJSON(t, handler, http.MethodPost, "/api/notes", notes.NewNote{
		UserID:   created.User.ID,
		FileName: "file-1.mpeg",
	})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var note struct {
		Note notes.Note `json:"note"`
	}
	decodeBody(t, recorder, &note)

	recorder = doJSON(t, handler, http.MethodGet, "/api/notes/random", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var random struct {
		Note notes.Note `json:"note"`
	}
	decodeBody(t, recorder, &random)
	if random.Note.ID != note.Note.ID {
		t.Fatalf("expected the single note back, got %#v", random.Note)
	}

	recorder = doJSON(t, handler, http.MethodGet, "/api/stats", nil)
	var aggregate struct {
		Stats stats.Stats `json:"stats"`
	}
	decodeBody(t, recorder, &aggregate)
	if aggregate.Stats.TotalVideonotes != 1 {
		t.Fatalf("expected 1 total note, got %d", aggregate.Stats.TotalVideonotes)
	}

	recorder = doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/notes/%d", note.Note.ID), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var deleted struct {
		Note string `json:"note"`
	}
	decodeBody(t, recorder, &deleted)
	if deleted.Note != "file-1.mpeg" {
		t.Fatalf("expected deleted file name, got %q", deleted.Note)
	}

	// deleting again still succeeds, with an empty file name
	recorder = doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/notes/%d", note.Note.ID), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat delete, got %d", recorder.Code)
	}
	decodeBody(t, recorder, &deleted)
	if deleted.Note != "" {
		t.Fatalf("expected empty file name, got %q", deleted.Note)
	}
}

func TestDeleteNotesByUserClearsOnlyThatUser(t *testing.T) {
	handler := newTestHandler(t, nil)

	ids := map[string]int64{}
	for i, username := range []string{"tanque", "che"} {
		recorder := doJSON(t, handler, http.MethodPost, "/api/users", users.NewUser{
			TelegramID: int64(i + 1),
			Username:   username,
		})
		var created struct {
			User users.User `json:"user"`
		}
		decodeBody(t, recorder, &created)
		ids[username] = created.User.ID

		doJSON(t, handler, http.MethodPost, "/api/notes", notes.NewNote{
			UserID:   created.User.ID,
			FileName: username + ".mpeg",
		})
	}

	recorder := doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/notes/user/%d", ids["tanque"]), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	recorder = doJSON(t, handler, http.MethodGet, "/api/notes", nil)
	var remaining struct {
		Notes []notes.Note `json:"notes"`
	}
	decodeBody(t, recorder, &remaining)
	if len(remaining.Notes) != 1 || remaining.Notes[0].UserID != ids["che"] {
		t.Fatalf("expected only che's note to remain, got %#v", remaining.Notes)
	}
}

func TestInvalidIDsReturn400(t *testing.T) {
	handler := newTestHandler(t, nil)

	for _, path := range []string{"/api/users/abc", "/api/notes/abc", "/api/locale/abc", "/api/stats/user/abc"} {
		recorder := doJSON(t, handler, http.MethodGet, path, nil)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", path, recorder.Code)
		}
	}
}

func TestRequestsCarryARequestID(t *testing.T) {
	handler := newTestHandler(t, nil)

	recorder := doJSON(t, handler, http.MethodGet, "/api/users", nil)
	if recorder.Header().Get("X-Request-Id") == "" {
		t.Fatalf("expected X-Request-Id header")
	}
}

func TestAuthorizationEnforcedWhenTokensEnabled(t *testing.T) {
	tokens := auth.NewServiceTokens(auth.ServiceTokensConfig{SigningSecret: []byte("super-secret")})
	handler := newTestHandler(t, tokens)

	recorder := doJSON(t, handler, http.MethodGet, "/api/users", nil)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", recorder.Code)
	}

	tokenString, err := tokens.Issue("cheerup-bot")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	request := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	request.Header.Set("Authorization", "Bearer "+tokenString)
	authorized := httptest.NewRecorder()
	handler.ServeHTTP(authorized, request)
	if authorized.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", authorized.Code)
	}
}
