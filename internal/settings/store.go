package settings

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store persists settings as a small JSON file. A missing or corrupt file is
// not an error: Load falls back to defaults so the app always starts.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store writing to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted settings, filling gaps with defaults.
func (st *Store) Load() Settings {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("settings_read_failed", "path", st.path, "error", err)
		}
		return Default()
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		slog.Warn("settings_corrupt", "path", st.path, "error", err)
		return Default()
	}
	return s.withDefaults()
}

// Save persists the settings, creating the parent directory if needed.
func (st *Store) Save(s Settings) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := json.MarshalIndent(s.withDefaults(), "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(st.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(st.path, data, 0o644)
}
