// Package storage is the durable client-side store backing the cart, the
// session identity and the local order-history mirror. It plays the role the
// browser's localStorage played for the web storefront: a small keyed JSON
// store in the user's profile, read at startup and rewritten on every
// mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Storage keys. Fixed: state written by older storefront builds is picked up
// under the same names.
const (
	KeyCart    = "carritoMatadero"
	KeyUser    = "usuarioMatadero"
	KeyHistory = "historialPedidosMatadero"
)

// Store is a keyed JSON blob store.
type Store interface {
	// Get decodes the value under key into v. ok is false when the key is
	// absent; v is left untouched in that case.
	Get(key string, v any) (ok bool, err error)
	// Set encodes v and durably writes it under key.
	Set(key string, v any) error
	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string) error
}

// FileStore keeps one JSON file per key inside a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *FileStore) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	// Write-then-rename so a crash never leaves a truncated snapshot.
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
