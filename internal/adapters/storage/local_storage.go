package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage writes uploaded files under a base directory and serves
// them at a public base URL.
type LocalStorage struct {
	baseDir string
	baseURL string
}

// NewLocalStorage creates a local storage backend, ensuring the base
// directory exists.
func NewLocalStorage(baseDir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &LocalStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the file with a unique name and returns its public URL
func (s *LocalStorage) Save(ctx context.Context, fileName string, r io.Reader) (string, error) {
	storedName := uuid.New().String() + "-" + sanitizeFileName(fileName)

	f, err := os.Create(filepath.Join(s.baseDir, storedName))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.baseURL + "/" + storedName, nil
}

// sanitizeFileName strips path separators and whitespace from client
// supplied names
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == string(filepath.Separator) {
		return "file"
	}
	return name
}
