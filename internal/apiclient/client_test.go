package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
	"github.com/TheShooter89/cheer-up-bot/internal/users"
)

type staticIssuer struct {
	token string
}

func (i staticIssuer) Enabled() bool { return i.token != "" }

func (i staticIssuer) Issue(serviceName string) (string, error) {
	if serviceName == "" {
		return "", errors.New("missing service name")
	}
	return i.token, nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenIssuer) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Config{
		BaseURL:     server.URL,
		ServiceName: "cheerup-bot",
		Tokens:      tokens,
		HTTPClient:  server.Client(),
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{BaseURL: "  "}); err == nil {
		t.Fatalf("expected missing base url to be rejected")
	}
}

func TestGetUserDecodesWrappedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/7" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"user":{"id":7,"telegram_id":42,"username":"tanque","locale":"it"}}`)
	}, nil)

	row, err := client.GetUserByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if row.ID != 7 || row.Username != "tanque" || row.LocaleCode != "it" {
		t.Fatalf("unexpected row %#v", row)
	}
}

func TestMissingRowsComeBackAsErrNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not_found"}`)
	}, nil)

	if _, err := client.GetUserByID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.RandomNote(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServerErrorsCarryStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"internal"}`)
	}, nil)

	_, err := client.ListUsers(context.Background())
	if err == nil {
		t.Fatalf("expected error on 500")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("500 must not map to ErrNotFound")
	}
}

func TestBearerTokenAttachedWhenIssuerEnabled(t *testing.T) {
	var seen string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"users":[]}`)
	}, staticIssuer{token: "signed-token"})

	if _, err := client.ListUsers(context.Background()); err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if seen != "Bearer signed-token" {
		t.Fatalf("unexpected authorization header %q", seen)
	}
}

func TestNoAuthorizationHeaderWhenIssuerDisabled(t *testing.T) {
	var seen string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"users":[]}`)
	}, staticIssuer{})

	if _, err := client.ListUsers(context.Background()); err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if seen != "" {
		t.Fatalf("expected no authorization header, got %q", seen)
	}
}

func TestGetOrCreateUserRegistersOnFirstContact(t *testing.T) {
	var created bool
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/users/telegram/42":
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"not_found"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/users":
			created = true
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"user":{"id":1,"telegram_id":42,"username":"tanque","locale":"en"}}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}, nil)

	row, err := client.GetOrCreateUser(context.Background(), users.NewUser{TelegramID: 42, Username: "tanque"})
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if !created {
		t.Fatalf("expected a create call after the 404")
	}
	if row.ID != 1 {
		t.Fatalf("unexpected row %#v", row)
	}
}

func TestGetOrCreateUserSkipsCreateForKnownUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			t.Errorf("known user must not be re-created")
		}
		fmt.Fprint(w, `{"user":{"id":1,"telegram_id":42,"username":"tanque","locale":"en"}}`)
	}, nil)

	row, err := client.GetOrCreateUser(context.Background(), users.NewUser{TelegramID: 42})
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if row.ID != 1 {
		t.Fatalf("unexpected row %#v", row)
	}
}

func TestDeleteNoteReturnsFileName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/notes/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"note":"file-1.mpeg"}`)
	}, nil)

	fileName, err := client.DeleteNote(context.Background(), 7)
	if err != nil {
		t.Fatalf("delete note failed: %v", err)
	}
	if fileName != "file-1.mpeg" {
		t.Fatalf("unexpected file name %q", fileName)
	}
}

func TestSetLocaleParsesAppliedCode(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method %s", r.Method)
		}
		fmt.Fprint(w, `{"locale":"ua"}`)
	}, nil)

	applied, err := client.SetLocale(context.Background(), 1, locales.LocaleUA)
	if err != nil {
		t.Fatalf("set locale failed: %v", err)
	}
	if applied != locales.LocaleUA {
		t.Fatalf("unexpected locale %q", applied)
	}
}
