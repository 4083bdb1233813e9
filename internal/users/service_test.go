package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/TheShooter89/cheer-up-bot/internal/locales"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()
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

	if err := db.AutoMigrate(&locales.Record{}, &User{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	for _, locale := range locales.All() {
		if err := db.Create(&locales.Record{Language: locale.String()}).Error; err != nil {
			t.Fatalf("failed to seed locale %q: %v", locale, err)
		}
	}
	return db
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService(ServiceConfig{Database: openTestDatabase(t)})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service
}

func TestCreateDefaultsUsernameFirstNameAndLocale(t *testing.T) {
	service := newTestService(t)

	row, err := service.Create(context.Background(), NewUser{TelegramID: 42})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if row.Username != "42" {
		t.Fatalf("expected username to default to telegram id, got %q", row.Username)
	}
	if row.FirstName != "42" {
		t.Fatalf("expected first name to default to username, got %q", row.FirstName)
	}
	if row.LocaleCode != locales.Default.String() {
		t.Fatalf("expected default locale, got %q", row.LocaleCode)
	}
}

func TestCreateStoresProvidedLocale(t *testing.T) {
	service := newTestService(t)

	row, err := service.Create(context.Background(), NewUser{
		TelegramID: 42,
		Username:   "tanque",
		FirstName:  "Tanque",
		Locale:     "it",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if row.LocaleCode != "it" {
		t.Fatalf("expected italian locale, got %q", row.LocaleCode)
	}
}

func TestCreateNormalizesUnsupportedLocale(t *testing.T) {
	service := newTestService(t)

	row, err := service.Create(context.Background(), NewUser{
		TelegramID: 42,
		Username:   "tanque",
		Locale:     "de",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if row.LocaleCode != locales.Default.String() {
		t.Fatalf("expected fallback locale, got %q", row.LocaleCode)
	}
}

func TestLookupsReturnTheSameRow(t *testing.T) {
	service := newTestService(t)

	created, err := service.Create(context.Background(), NewUser{
		TelegramID: 42,
		Username:   "tanque",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	byID, err := service.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id failed: %v", err)
	}
	byUsername, err := service.GetByUsername(context.Background(), "tanque")
	if err != nil {
		t.Fatalf("get by username failed: %v", err)
	}
	byTelegramID, err := service.GetByTelegramID(context.Background(), 42)
	if err != nil {
		t.Fatalf("get by telegram id failed: %v", err)
	}

	if byID != created || byUsername != created || byTelegramID != created {
		t.Fatalf("expected identical rows, got %#v / %#v / %#v", byID, byUsername, byTelegramID)
	}
}

func TestGetMissingUserReturnsErrNotFound(t *testing.T) {
	service := newTestService(t)

	if _, err := service.GetByID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetByUsername(context.Background(), "absent"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.GetByTelegramID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	service := newTestService(t)

	created, err := service.Create(context.Background(), NewUser{TelegramID: 42, Username: "tanque"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := service.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := service.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if _, err := service.GetByID(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected row to be gone, got %v", err)
	}
}

func TestLocaleFallsBackForMissingUser(t *testing.T) {
	service := newTestService(t)

	locale, err := service.Locale(context.Background(), 99)
	if err != nil {
		t.Fatalf("locale lookup failed: %v", err)
	}
	if locale != locales.Default {
		t.Fatalf("expected default locale, got %q", locale)
	}
}

func TestSetLocaleUpdatesAndNormalizes(t *testing.T) {
	service := newTestService(t)

	created, err := service.Create(context.Background(), NewUser{TelegramID: 42, Username: "tanque"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	applied, err := service.SetLocale(context.Background(), created.ID, "ua")
	if err != nil {
		t.Fatalf("set locale failed: %v", err)
	}
	if applied != locales.LocaleUA {
		t.Fatalf("expected ua, got %q", applied)
	}
	locale, err := service.Locale(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("locale lookup failed: %v", err)
	}
	if locale != locales.LocaleUA {
		t.Fatalf("expected stored ua, got %q", locale)
	}

	applied, err = service.SetLocale(context.Background(), created.ID, "klingon")
	if err != nil {
		t.Fatalf("set locale failed: %v", err)
	}
	if applied != locales.Default {
		t.Fatalf("expected unsupported code to normalize to default, got %q", applied)
	}
}
