// Package storage persists uploaded resume files on the local filesystem.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ResumeStore saves and serves resume files. The production implementation
// writes to a local directory; tests use t.TempDir.
type ResumeStore interface {
	Save(ctx context.Context, userID uint, fileName string, r io.Reader) (string, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Remove(ctx context.Context, storageKey string) error
}

// LocalStore implements ResumeStore using the local filesystem.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a resume store rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save writes the reader to disk under a name built from the user id, a UTC
// timestamp, and a random suffix so concurrent uploads never collide.
// The caller validates extension and size before calling Save.
func (s *LocalStore) Save(ctx context.Context, userID uint, fileName string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	finalName := fmt.Sprintf("%d_%s_%s%s", userID, time.Now().UTC().Format("20060102T150405"), randomSuffix(), ext)

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(s.baseDir, finalName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		// Partial file is useless; best effort to remove it.
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write body: %w", err)
	}

	return finalName, nil
}

// Open opens a stored resume for reading.
func (s *LocalStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := filepath.Clean(storageKey)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid storage key")
	}

	return os.Open(filepath.Join(s.baseDir, clean))
}

// Remove deletes a stored resume.
func (s *LocalStore) Remove(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(storageKey)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage key")
	}

	return os.Remove(filepath.Join(s.baseDir, clean))
}

func randomSuffix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
