package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"familyfit/internal/domain"

	log "github.com/sirupsen/logrus"
)

// SyncService records the cloud endpoint configuration and reports the sync
// indicator. It never contacts the endpoint.
type SyncService struct {
	mu    sync.RWMutex
	store domain.KVStore
	cfg   domain.SyncConfig
}

// NewSyncService creates a SyncService backed by the given store.
func NewSyncService(store domain.KVStore) *SyncService {
	return &SyncService{store: store}
}

// Load reads the recorded configuration. Missing or malformed configuration
// means local-only mode.
func (s *SyncService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = domain.SyncConfig{}
	raw, ok, err := s.store.Get(ctx, domain.SyncConfigKey)
	if err != nil {
		log.Warnf("load sync config: %s", err)
		return
	}
	if !ok {
		return
	}
	var cfg domain.SyncConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		log.Warnf("load sync config: %s", err)
		return
	}
	s.cfg = cfg
}

// Status returns the sync indicator. The access key is never included.
func (s *SyncService) Status() domain.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.cfg.Configured() {
		return domain.SyncStatus{Mode: "local"}
	}
	return domain.SyncStatus{Configured: true, Endpoint: s.cfg.URL, Mode: "cloud"}
}

// Configure validates and records a new endpoint configuration.
func (s *SyncService) Configure(ctx context.Context, endpoint, key string) error {
	if key == "" {
		return &domain.ValidationError{Field: "key", Message: "is required"}
	}
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &domain.ValidationError{Field: "url", Message: "must be an http(s) URL"}
	}

	cfg := domain.SyncConfig{URL: endpoint, Key: key}
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Set(ctx, domain.SyncConfigKey, string(data)); err != nil {
		return fmt.Errorf("save sync config: %w", err)
	}
	s.cfg = cfg
	return nil
}
