// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is the in-process [Repository] behind the demo data source and tests.
type MemoryRepository struct {
	mu     sync.Mutex
	events []Event
}

// NewMemoryRepository creates an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (repository *MemoryRepository) Append(_ context.Context, event *Event) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.events = append(repository.events, *event)
	return nil
}

type bucketKey struct {
	day      time.Time
	kind     Type
	device   Device
	referrer string
	linkID   string
}

func (repository *MemoryRepository) Aggregate(_ context.Context, ownerID string, since time.Time) ([]Bucket, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	counts := make(map[bucketKey]int64)
	order := make([]bucketKey, 0)
	for _, event := range repository.events {
		if event.OwnerID != ownerID || event.CreatedAt.Before(since) {
			continue
		}
		key := bucketKey{
			day:      startOfDay(event.CreatedAt),
			kind:     event.Type,
			device:   event.Device,
			referrer: event.Referrer,
			linkID:   event.LinkID,
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, Bucket{
			Day: key.day, Type: key.kind, Device: key.device,
			Referrer: key.referrer, LinkID: key.linkID, Count: counts[key],
		})
	}
	return buckets, nil
}

func (repository *MemoryRepository) CountByType(_ context.Context) (map[Type]int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	counts := make(map[Type]int64)
	for _, event := range repository.events {
		counts[event.Type]++
	}
	return counts, nil
}

func (repository *MemoryRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	kept := repository.events[:0]
	for _, event := range repository.events {
		if event.OwnerID != ownerID {
			kept = append(kept, event)
		}
	}
	repository.events = kept
	return nil
}

// Len returns the number of stored events.
func (repository *MemoryRepository) Len() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.events)
}
