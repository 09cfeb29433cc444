package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// TokenStore keeps the session token between screens, and across restarts
// for the durable backends.
type TokenStore interface {
	Save(ctx context.Context, token string) error
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// MemoryStore lives for the process only.
type MemoryStore struct {
	value atomic.Value // string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Save(_ context.Context, token string) error {
	s.value.Store(token)
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (string, error) {
	if v, ok := s.value.Load().(string); ok && v != "" {
		return v, nil
	}
	return "", ErrNoToken
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.value.Store("")
	return nil
}

// FileStore writes the token to a single 0600 file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (s *FileStore) Save(_ context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("mkdir token dir: %w", err)
	}
	return os.WriteFile(s.Path, []byte(token), 0o600)
}

func (s *FileStore) Load(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
