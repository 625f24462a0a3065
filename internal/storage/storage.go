package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Keys() ([]string, error)
	Close() error
}

// ExpandPath replaces a leading ~/ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// EnsureDir expands path and creates it if needed.
func EnsureDir(path string) (string, error) {
	dir, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

// MemoryStore keeps entries in a map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryStore) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedKeys(m.entries), nil
}

func (m *MemoryStore) Close() error {
	return nil
}

// FileName is the index file FileStore keeps in the data directory.
const FileName = "files.json"

type fileIndex struct {
	Files     map[string]string `json:"files"`
	UpdatedAt string            `json:"updated_at"`
}

// FileStore keeps the index in a JSON file, rewritten on every Put.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewFileStore opens (or starts) the index file in dataDir.
func NewFileStore(dataDir string) (*FileStore, error) {
	dir, err := EnsureDir(dataDir)
	if err != nil {
		return nil, err
	}

	s := &FileStore{
		path:    filepath.Join(dir, FileName),
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading index: %w", err)
	}

	var idx fileIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	if idx.Files != nil {
		s.entries = idx.Files
	}
	return s, nil
}

// Path returns the index file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.entries[key]
	return v, ok, nil
}

func (s *FileStore) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok && old == value {
		return nil
	}

	// The in-memory index only changes once the new file is in place.
	next := make(map[string]string, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v
	}
	next[key] = value

	data, err := json.MarshalIndent(fileIndex{
		Files:     next,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}

	// Write to a sibling file first so an interrupted run leaves the old index intact.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing index: %w", err)
	}
	s.entries = next
	return nil
}

func (s *FileStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.entries), nil
}

func (s *FileStore) Close() error {
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
