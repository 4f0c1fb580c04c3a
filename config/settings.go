package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Settings is the on-disk configuration document for the web frontend.
type Settings struct {
	Server  ServerSettings  `json:"server"`
	Backend BackendSettings `json:"backend"`
	UI      UISettings      `json:"ui"`
	Log     LogSettings     `json:"log"`
	Startup StartupSettings `json:"startup"`
}

// ServerSettings controls the HTTP listener serving the pages.
type ServerSettings struct {
	Host                   string `json:"host"`
	Port                   int    `json:"port"`
	ShutdownTimeoutSeconds int    `json:"shutdownTimeoutSeconds"`
}

// BackendSettings describes the recommendation REST API.
type BackendSettings struct {
	BaseURL      string `json:"baseUrl"`
	UserID       int64  `json:"userId"`
	HistoryLimit int    `json:"historyLimit"`
	// RequestTimeoutSeconds of 0 leaves requests unbounded.
	RequestTimeoutSeconds int    `json:"requestTimeoutSeconds"`
	UserAgent             string `json:"userAgent"`
}

// UISettings tunes page rendering.
type UISettings struct {
	Title string `json:"title"`
	// MountCacheSize bounds how many rendered card lists stay interactive.
	MountCacheSize int `json:"mountCacheSize"`
}

// LogSettings configures the rotating log file. An empty File logs to stdout only.
type LogSettings struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
	Compress   bool   `json:"compress"`
}

// StartupSettings controls the backend reachability probe run at boot.
type StartupSettings struct {
	ProbeAttempts    uint `json:"probeAttempts"`
	ProbeDelayMillis int  `json:"probeDelayMillis"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Host:                   "0.0.0.0",
			Port:                   5173,
			ShutdownTimeoutSeconds: 10,
		},
		Backend: BackendSettings{
			BaseURL:      "http://localhost:8080/api",
			UserID:       1,
			HistoryLimit: 50,
			UserAgent:    "tubewise/1.0",
		},
		UI: UISettings{
			Title:          "AI Recommender",
			MountCacheSize: 64,
		},
		Log: LogSettings{
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Startup: StartupSettings{
			ProbeAttempts:    5,
			ProbeDelayMillis: 500,
		},
	}
}

// Addr returns the listen address.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Manager loads and saves Settings as JSON.
type Manager struct {
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

// NewManager returns a manager backed by the OS filesystem.
func NewManager(path string) *Manager {
	return NewManagerFs(afero.NewOsFs(), path)
}

// NewManagerFs returns a manager backed by the given filesystem.
func NewManagerFs(fsys afero.Fs, path string) *Manager {
	return &Manager{fs: fsys, path: path}
}

// Path returns the settings file location.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the settings file. Fields absent from the file keep their
// defaults; a missing file yields DefaultSettings. Environment overrides are
// applied last.
func (m *Manager) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings := DefaultSettings()

	data, err := afero.ReadFile(m.fs, m.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return settings, fmt.Errorf("read settings %s: %w", m.path, err)
	default:
		if err := json.Unmarshal(data, &settings); err != nil {
			return DefaultSettings(), fmt.Errorf("parse settings %s: %w", m.path, err)
		}
	}

	if err := applyEnv(&settings, os.LookupEnv); err != nil {
		return settings, err
	}
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// Save writes settings atomically (temp file + rename).
func (m *Manager) Save(settings Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(m.path)
	if dir != "" && dir != "." {
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}

	tmp := m.path + ".tmp"
	if err := afero.WriteFile(m.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if err := m.fs.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Validate rejects settings the frontend cannot run with.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Backend.BaseURL) == "" {
		return errors.New("backend.baseUrl is required")
	}
	if s.Backend.UserID <= 0 {
		return fmt.Errorf("backend.userId must be positive, got %d", s.Backend.UserID)
	}
	if s.Backend.HistoryLimit <= 0 {
		return fmt.Errorf("backend.historyLimit must be positive, got %d", s.Backend.HistoryLimit)
	}
	if s.Server.Port <= 0 || s.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", s.Server.Port)
	}
	return nil
}

const (
	envBackendURL = "TUBEWISE_BACKEND_URL"
	envUserID     = "TUBEWISE_USER_ID"
	envListen     = "TUBEWISE_LISTEN"
)

func applyEnv(s *Settings, lookup func(string) (string, bool)) error {
	if v, ok := lookup(envBackendURL); ok && strings.TrimSpace(v) != "" {
		s.Backend.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(envUserID); ok && strings.TrimSpace(v) != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envUserID, err)
		}
		s.Backend.UserID = id
	}
	if v, ok := lookup(envListen); ok && strings.TrimSpace(v) != "" {
		if err := s.Server.SetListen(v); err != nil {
			return fmt.Errorf("%s: %w", envListen, err)
		}
	}
	return nil
}

// SetListen parses a host:port pair into the server settings.
func (s *ServerSettings) SetListen(addr string) error {
	addr = strings.TrimSpace(addr)
	idx := strings.LastIndex(addr, ":")
	if idx < 0 {
		return fmt.Errorf("listen address %q must be host:port", addr)
	}
	port, err := strconv.Atoi(addr[idx+1:])
	if err != nil {
		return fmt.Errorf("listen port: %w", err)
	}
	s.Host = addr[:idx]
	s.Port = port
	return nil
}
