// Package cache persists lookup results (vehicle menus, location searches)
// as JSON files under the footprint cache directory, each with a TTL.
//
// Keys are hashed with SHA-256, so any string is a valid key. A store built
// with a zero TTL is disabled: reads miss and writes are dropped.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const cacheFileExtension = ".json"

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// FileStore is a directory of JSON cache entries. Safe for concurrent use.
type FileStore struct {
	directory string
	ttl       time.Duration

	mu sync.RWMutex
}

// NewFileStore creates the cache directory if needed. ttlSeconds of zero
// returns a disabled store and touches nothing on disk.
func NewFileStore(directory string, ttlSeconds int) (*FileStore, error) {
	if ttlSeconds <= 0 {
		return &FileStore{}, nil
	}
	if directory == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(directory, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{
		directory: directory,
		ttl:       time.Duration(ttlSeconds) * time.Second,
	}, nil
}

// Key joins parts into a cache key, e.g. Key("vehicle", "make", "2012").
func Key(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(norm, ":")
}

// IsEnabled returns true if caching is enabled.
func (s *FileStore) IsEnabled() bool {
	return s != nil && s.ttl > 0
}

// Directory returns the cache directory path.
func (s *FileStore) Directory() string {
	return s.directory
}

// TTL returns the lifetime given to new entries.
func (s *FileStore) TTL() time.Duration {
	return s.ttl
}

// Get returns the entry for key. Expired entries are removed and reported
// as ErrCacheExpired.
func (s *FileStore) Get(key string) (*Entry, error) {
	if !s.IsEnabled() {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	path := s.keyToFilePath(key)

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry Entry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}

	if entry.IsExpired() {
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		return nil, ErrCacheExpired
	}
	return &entry, nil
}

// Set stores data under key, replacing any existing entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if !s.IsEnabled() {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	entryData, err := json.MarshalIndent(NewEntry(key, data, s.ttl), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.keyToFilePath(key)
	tempPath := path + ".tmp"
	if err = os.WriteFile(tempPath, entryData, 0600); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err = os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}

// GetJSON decodes the entry for key into v.
func (s *FileStore) GetJSON(key string, v any) error {
	entry, err := s.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(entry.Data, v)
}

// SetJSON encodes v and stores it under key.
func (s *FileStore) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}
	return s.Set(key, data)
}

// Delete removes the entry for key. Missing entries are not an error.
func (s *FileStore) Delete(key string) error {
	if !s.IsEnabled() {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyToFilePath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// Clear removes every cache entry and returns how many were removed.
func (s *FileStore) Clear() (int, error) {
	return s.removeWhere(func(string) bool { return true })
}

// CleanupExpired removes expired entries and returns how many were removed.
// Unreadable files are skipped.
func (s *FileStore) CleanupExpired() (int, error) {
	return s.removeWhere(func(path string) bool {
		data, err := os.ReadFile(path)
		if err != nil {
			return false
		}
		var entry Entry
		if err = json.Unmarshal(data, &entry); err != nil {
			return false
		}
		return entry.IsExpired()
	})
}

func (s *FileStore) removeWhere(match func(path string) bool) (int, error) {
	if !s.IsEnabled() {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := s.cacheFilesLocked()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, f := range files {
		if !match(f) {
			continue
		}
		if err = os.Remove(f); err != nil {
			return removed, fmt.Errorf("failed to remove cache file %s: %w", filepath.Base(f), err)
		}
		removed++
	}
	return removed, nil
}

// Stats returns the entry count (including expired ones) and total bytes.
func (s *FileStore) Stats() (count int, size int64, err error) {
	if !s.IsEnabled() {
		return 0, 0, ErrCacheDisabled
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := s.cacheFilesLocked()
	if err != nil {
		return 0, 0, err
	}
	for _, f := range files {
		info, statErr := os.Stat(f)
		if statErr != nil {
			continue
		}
		count++
		size += info.Size()
	}
	return count, size, nil
}

func (s *FileStore) cacheFilesLocked() ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != cacheFileExtension {
			continue
		}
		files = append(files, filepath.Join(s.directory, e.Name()))
	}
	return files, nil
}

func (s *FileStore) keyToFilePath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.directory, hex.EncodeToString(sum[:])+cacheFileExtension)
}
