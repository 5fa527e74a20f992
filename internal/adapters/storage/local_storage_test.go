package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalStorage(dir, "/uploads/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Save(context.Background(), "id proof.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("url = %q, want /uploads/ prefix", url)
	}
	if strings.Contains(url, " ") {
		t.Errorf("url = %q, spaces should be sanitized", url)
	}

	storedName := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, storedName))
	if err != nil {
		t.Fatalf("stored file not readable: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("stored content = %q, want %q", data, "content")
	}
}

func TestSaveUsesUniqueNames(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalStorage(dir, "/uploads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url1, err := store.Save(context.Background(), "photo.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	url2, err := store.Save(context.Background(), "photo.jpg", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if url1 == url2 {
		t.Error("two uploads of the same file name should get distinct URLs")
	}
}

func TestSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()

	store, err := NewLocalStorage(dir, "/uploads")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(url, "..") {
		t.Errorf("url = %q, path components should be stripped", url)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading upload dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one stored file, found %d", len(entries))
	}
	if strings.Contains(entries[0].Name(), string(filepath.Separator)) {
		t.Errorf("stored name %q contains a path separator", entries[0].Name())
	}
}
