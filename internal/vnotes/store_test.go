package vnotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestStorePathLayout(t *testing.T) {
	store, err := NewStore(StoreConfig{Root: "_data", BotToken: "token"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	expected := filepath.Join("_data", "videonotes", "42_tanque", "file-1.mpeg")
	if path := store.Path(42, "tanque", "file-1.mpeg"); path != expected {
		t.Fatalf("expected path %q, got %q", expected, path)
	}
}

func TestFileNameAppendsMpegExtension(t *testing.T) {
	if name := FileName("abc123"); name != "abc123.mpeg" {
		t.Fatalf("unexpected file name %q", name)
	}
}

func TestDownloadWritesFileIntoUserFolder(t *testing.T) {
	payload := []byte("video-note-bytes")
	fileServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer fileServer.Close()

	root := t.TempDir()
	store, err := NewStore(StoreConfig{Root: root, BotToken: "token"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	// Point the download at the test server instead of api.telegram.org.
	store.httpClient = fileServer.Client()

	fileName, err := store.downloadFromURL(context.Background(), fileServer.URL, 42, "tanque", "file-1")
	if err != nil {
		t.Fatalf("download failed: %v", err)
	}
	if fileName != "file-1.mpeg" {
		t.Fatalf("unexpected file name %q", fileName)
	}

	written, err := os.ReadFile(store.Path(42, "tanque", fileName))
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(written) != string(payload) {
		t.Fatalf("stored file content mismatch")
	}
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	store, err := NewStore(StoreConfig{Root: t.TempDir(), BotToken: "token"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Remove(42, "tanque", "absent.mpeg"); err != nil {
		t.Fatalf("expected missing file removal to succeed, got %v", err)
	}
}

func TestRemoveUserFolderDeletesEverything(t *testing.T) {
	root := t.TempDir()
	store, err := NewStore(StoreConfig{Root: root, BotToken: "token"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	folder := store.UserFolder(42, "tanque")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		t.Fatalf("failed to create folder: %v", err)
	}
	if err := os.WriteFile(filepath.Join(folder, "a.mpeg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := store.RemoveUserFolder(42, "tanque"); err != nil {
		t.Fatalf("remove user folder failed: %v", err)
	}
	if _, err := os.Stat(folder); !os.IsNotExist(err) {
		t.Fatalf("expected folder to be gone, got %v", err)
	}
}
