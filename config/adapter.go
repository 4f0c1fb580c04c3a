package config

import (
	"log"
	"sync"
	"time"

	"tubewise/services/recommender"
)

// ConfigAdapter adapts Settings to the shapes the services consume.
type ConfigAdapter struct {
	manager *Manager
	mu      sync.RWMutex
}

// NewConfigAdapter creates a new config adapter
func NewConfigAdapter(manager *Manager) *ConfigAdapter {
	return &ConfigAdapter{
		manager: manager,
	}
}

// ClientConfig returns the recommender client configuration. On a load
// failure the defaults are returned so the frontend can still come up.
func (ca *ConfigAdapter) ClientConfig() recommender.Config {
	ca.mu.RLock()
	defer ca.mu.RUnlock()

	settings, err := ca.manager.Load()
	if err != nil {
		log.Printf("[config] falling back to default backend settings: %v", err)
		settings = DefaultSettings()
	}
	return ToClientConfig(settings.Backend)
}

// ToClientConfig converts backend settings into a recommender.Config.
func ToClientConfig(b BackendSettings) recommender.Config {
	return recommender.Config{
		BaseURL:      b.BaseURL,
		UserID:       b.UserID,
		HistoryLimit: b.HistoryLimit,
		Timeout:      time.Duration(b.RequestTimeoutSeconds) * time.Second,
		UserAgent:    b.UserAgent,
	}
}
