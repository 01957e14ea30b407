// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package file

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
)

// MemoryRepository is the in-process [Repository] behind the demo data source and tests.
type MemoryRepository struct {
	mu    sync.Mutex
	files map[string]*File
}

// NewMemoryRepository creates an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{files: make(map[string]*File)}
}

func (repository *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*File, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	files := make([]*File, 0)
	for _, file := range repository.files {
		if file.OwnerID == ownerID {
			files = append(files, file.Meta())
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].CreatedAt.After(files[j].CreatedAt) })
	return files, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, ownerID, id string) (*File, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	file, found := repository.files[id]
	if !found || file.OwnerID != ownerID {
		return nil, apperr.NotFound(resourceFile)
	}
	return file.Clone(), nil
}

func (repository *MemoryRepository) FindPublic(_ context.Context, id string) (*File, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	file, found := repository.files[id]
	if !found {
		return nil, apperr.NotFound(resourceFile)
	}
	return file.Clone(), nil
}

func (repository *MemoryRepository) Create(_ context.Context, file *File) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	file.CreatedAt, file.UpdatedAt = now, now
	file.Views = 0
	repository.files[file.ID] = file.Clone()
	return nil
}

// Seed stores a file verbatim.
func (repository *MemoryRepository) Seed(file *File) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.files[file.ID] = file.Clone()
}

func (repository *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	file, found := repository.files[id]
	if !found || file.OwnerID != ownerID {
		return apperr.NotFound(resourceFile)
	}
	delete(repository.files, id)
	return nil
}

func (repository *MemoryRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count := 0
	for _, file := range repository.files {
		if file.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (repository *MemoryRepository) IncrementViews(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	file, found := repository.files[id]
	if !found || file.OwnerID != ownerID {
		return apperr.NotFound(resourceFile)
	}
	file.Views++
	file.UpdatedAt = time.Now().UTC()
	return nil
}

func (repository *MemoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, file := range repository.files {
		if file.OwnerID == ownerID {
			delete(repository.files, id)
		}
	}
	return nil
}
