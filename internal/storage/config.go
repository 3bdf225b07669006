package storage

import (
	"fmt"

	"parkspot-backend/internal/config"
)

// New builds the configured object store. Only the local mock is
// implemented; cloud stores plug in behind StorageInterface.
func New(cfg config.StorageConfig) (StorageInterface, error) {
	switch cfg.Type {
	case "", "mock":
		mock, err := NewMockStorageService(cfg.BaseURL, cfg.UploadDir)
		if err != nil {
			return nil, err
		}
		return mock, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}
