package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// PreferencesFile is the JSON file format for the unit preference store.
type PreferencesFile struct {
	Version string            `json:"version"`
	Units   map[string]string `json:"units"`
}

// PreferenceStore persists the last display unit chosen per system between sessions.
type PreferenceStore struct {
	path    string
	mu      sync.RWMutex
	version string
	units   map[string]string
}

// NewPreferenceStore creates a new PreferenceStore and loads it from disk.
func NewPreferenceStore(path string) (*PreferenceStore, error) {
	s := &PreferenceStore{
		path:    path,
		version: "1.0",
		units:   make(map[string]string),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create preferences directory: %w", err)
	}

	if err := s.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return s, nil
}

// Load reads the preferences from disk.
func (s *PreferenceStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file PreferencesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}

	s.version = file.Version
	s.units = file.Units
	if s.units == nil {
		s.units = make(map[string]string)
	}

	return nil
}

// Save writes the preferences to disk atomically.
func (s *PreferenceStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file := PreferencesFile{
		Version: s.version,
		Units:   s.units,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Get returns the preferred unit for a system.
func (s *PreferenceStore) Get(systemID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	unit, ok := s.units[systemID]
	return unit, ok
}

// Set records the preferred unit for a system.
func (s *PreferenceStore) Set(systemID, unit string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.units[systemID] = unit
}

// Forget removes the preference for a system.
func (s *PreferenceStore) Forget(systemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.units, systemID)
}
