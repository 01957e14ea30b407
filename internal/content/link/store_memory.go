// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

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
	links map[string]*Link
}

// NewMemoryRepository creates an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{links: make(map[string]*Link)}
}

func (repository *MemoryRepository) ListByOwner(_ context.Context, ownerID string, visibleOnly bool) ([]*Link, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	links := make([]*Link, 0)
	for _, link := range repository.links {
		if link.OwnerID != ownerID || (visibleOnly && !link.Visible) {
			continue
		}
		links = append(links, link.Clone())
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Order != links[j].Order {
			return links[i].Order < links[j].Order
		}
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})
	return links, nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, ownerID, id string) (*Link, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	link, found := repository.links[id]
	if !found || link.OwnerID != ownerID {
		return nil, apperr.NotFound(resourceLink)
	}
	return link.Clone(), nil
}

func (repository *MemoryRepository) FindOwner(_ context.Context, id string) (string, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	link, found := repository.links[id]
	if !found {
		return "", apperr.NotFound(resourceLink)
	}
	return link.OwnerID, nil
}

func (repository *MemoryRepository) Create(_ context.Context, link *Link) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	order := -1
	for _, existing := range repository.links {
		if existing.OwnerID == link.OwnerID && existing.Order > order {
			order = existing.Order
		}
	}

	now := time.Now().UTC()
	link.Order = order + 1
	link.Clicks = 0
	link.CreatedAt, link.UpdatedAt = now, now

	if link.Spotlight {
		repository.clearSpotlightLocked(link.OwnerID, link.ID, now)
	}
	repository.links[link.ID] = link.Clone()
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, link *Link) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, found := repository.links[link.ID]
	if !found || existing.OwnerID != link.OwnerID {
		return apperr.NotFound(resourceLink)
	}

	now := time.Now().UTC()
	link.UpdatedAt = now
	link.Clicks = existing.Clicks
	link.CreatedAt = existing.CreatedAt

	if link.Spotlight {
		repository.clearSpotlightLocked(link.OwnerID, link.ID, now)
	}
	repository.links[link.ID] = link.Clone()
	return nil
}

func (repository *MemoryRepository) clearSpotlightLocked(ownerID, keepID string, now time.Time) {
	for id, existing := range repository.links {
		if existing.OwnerID == ownerID && id != keepID && existing.Spotlight {
			existing.Spotlight = false
			existing.UpdatedAt = now
		}
	}
}

func (repository *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	link, found := repository.links[id]
	if !found || link.OwnerID != ownerID {
		return apperr.NotFound(resourceLink)
	}
	delete(repository.links, id)
	return nil
}

func (repository *MemoryRepository) CountByOwner(_ context.Context, ownerID string) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count := 0
	for _, link := range repository.links {
		if link.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (repository *MemoryRepository) IncrementClicks(_ context.Context, ownerID, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	link, found := repository.links[id]
	if !found || link.OwnerID != ownerID {
		return apperr.NotFound(resourceLink)
	}
	link.Clicks++
	link.UpdatedAt = time.Now().UTC()
	return nil
}

func (repository *MemoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, link := range repository.links {
		if link.OwnerID == ownerID {
			delete(repository.links, id)
		}
	}
	return nil
}

func (repository *MemoryRepository) TotalsByOwner(_ context.Context, ownerIDs []string) (map[string]Totals, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	wanted := make(map[string]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		wanted[id] = struct{}{}
	}

	totals := make(map[string]Totals, len(ownerIDs))
	for _, link := range repository.links {
		if _, ok := wanted[link.OwnerID]; !ok {
			continue
		}
		entry := totals[link.OwnerID]
		entry.Links++
		entry.Clicks += link.Clicks
		totals[link.OwnerID] = entry
	}
	return totals, nil
}

func (repository *MemoryRepository) GlobalTotals(_ context.Context) (Totals, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var totals Totals
	for _, link := range repository.links {
		totals.Links++
		totals.Clicks += link.Clicks
	}
	return totals, nil
}

// Seed stores a link verbatim, keeping its order, clicks and timestamps.
func (repository *MemoryRepository) Seed(link *Link) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.links[link.ID] = link.Clone()
}
