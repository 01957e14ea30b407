// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/pkg/pagination"
)

// MemoryRepository is the in-process [Repository] behind the demo data source and tests.
type MemoryRepository struct {
	mu    sync.Mutex
	forms map[string]*Form
}

// NewMemoryRepository creates an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{forms: make(map[string]*Form)}
}

func (repository *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*Form, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	forms := make([]*Form, 0)
	for _, form := range repository.forms {
		if form.OwnerID == ownerID {
			forms = append(forms, form.Clone())
		}
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].CreatedAt.After(forms[j].CreatedAt) })
	return forms, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, ownerID, id string) (*Form, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	form, found := repository.forms[id]
	if !found || form.OwnerID != ownerID {
		return nil, apperr.NotFound(resourceForm)
	}
	return form.Clone(), nil
}

func (repository *MemoryRepository) FindPublic(_ context.Context, id string) (*Form, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	form, found := repository.forms[id]
	if !found {
		return nil, apperr.NotFound(resourceForm)
	}
	return form.Clone(), nil
}

func (repository *MemoryRepository) Create(_ context.Context, form *Form) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	form.CreatedAt, form.UpdatedAt = now, now
	form.Views = 0
	repository.forms[form.ID] = form.Clone()
	return nil
}

// Seed stores a form verbatim.
func (repository *MemoryRepository) Seed(form *Form) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.forms[form.ID] = form.Clone()
}

func (repository *MemoryRepository) Update(_ context.Context, form *Form) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, found := repository.forms[form.ID]
	if !found || existing.OwnerID != form.OwnerID {
		return apperr.NotFound(resourceForm)
	}
	form.UpdatedAt = time.Now().UTC()
	form.Views = existing.Views
	form.CreatedAt = existing.CreatedAt
	repository.forms[form.ID] = form.Clone()
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	form, found := repository.forms[id]
	if !found || form.OwnerID != ownerID {
		return apperr.NotFound(resourceForm)
	}
	delete(repository.forms, id)
	return nil
}

func (repository *MemoryRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count := 0
	for _, form := range repository.forms {
		if form.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (repository *MemoryRepository) IncrementViews(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	form, found := repository.forms[id]
	if !found || form.OwnerID != ownerID {
		return apperr.NotFound(resourceForm)
	}
	form.Views++
	form.UpdatedAt = time.Now().UTC()
	return nil
}

func (repository *MemoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, form := range repository.forms {
		if form.OwnerID == ownerID {
			delete(repository.forms, id)
		}
	}
	return nil
}

// MemoryResponseRepository is the in-process [ResponseRepository].
type MemoryResponseRepository struct {
	mu        sync.Mutex
	responses []*Response
}

// NewMemoryResponseRepository creates an empty [MemoryResponseRepository].
func NewMemoryResponseRepository() *MemoryResponseRepository {
	return &MemoryResponseRepository{}
}

func (repository *MemoryResponseRepository) Create(_ context.Context, response *Response) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	response.CreatedAt = time.Now().UTC()
	repository.responses = append(repository.responses, response.Clone())
	return nil
}

func (repository *MemoryResponseRepository) ListByForm(_ context.Context, ownerID, formID string, params pagination.Params) ([]*Response, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	matched := make([]*Response, 0)
	for index := len(repository.responses) - 1; index >= 0; index-- {
		response := repository.responses[index]
		if response.FormID == formID && response.OwnerID == ownerID {
			matched = append(matched, response.Clone())
		}
	}

	start, end := params.Window(len(matched))
	return matched[start:end], len(matched), nil
}

func (repository *MemoryResponseRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	kept := repository.responses[:0]
	for _, response := range repository.responses {
		if response.OwnerID != ownerID {
			kept = append(kept, response)
		}
	}
	repository.responses = kept
	return nil
}
