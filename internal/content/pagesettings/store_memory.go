// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagesettings

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
)

// MemoryRepository is the in-process [Repository] behind the demo data source and tests.
type MemoryRepository struct {
	mu       sync.Mutex
	settings map[string]*Settings
}

// NewMemoryRepository creates an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{settings: make(map[string]*Settings)}
}

func (repository *MemoryRepository) Get(_ context.Context, ownerID string) (*Settings, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	settings, found := repository.settings[ownerID]
	if !found {
		return nil, apperr.NotFound(resourceSettings)
	}
	return settings.Clone(), nil
}

func (repository *MemoryRepository) Upsert(_ context.Context, settings *Settings) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	settings.UpdatedAt = time.Now().UTC()
	repository.settings[settings.OwnerID] = settings.Clone()
	return nil
}

func (repository *MemoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.settings, ownerID)
	return nil
}
