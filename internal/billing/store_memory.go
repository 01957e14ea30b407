// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
)

// MemoryOrderRepository is the in-process [OrderRepository] behind the demo data source and tests.
type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]*Order
}

// NewMemoryOrderRepository creates an empty [MemoryOrderRepository].
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]*Order)}
}

func (repository *MemoryOrderRepository) Create(_ context.Context, order *Order) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.orders[order.ID]; exists {
		return apperr.Conflict(resourceOrder + " already exists")
	}
	now := time.Now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now

	copied := *order
	repository.orders[order.ID] = &copied
	return nil
}

func (repository *MemoryOrderRepository) FindByProviderRef(_ context.Context, ownerID string, provider Provider, providerRef string) (*Order, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, order := range repository.orders {
		if order.OwnerID == ownerID && order.Provider == provider && order.ProviderRef == providerRef {
			copied := *order
			return &copied, nil
		}
	}
	return nil, apperr.NotFound(resourceOrder)
}

func (repository *MemoryOrderRepository) MarkPaid(_ context.Context, id string) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	order, found := repository.orders[id]
	if !found {
		return false, apperr.NotFound(resourceOrder)
	}
	if order.Status == StatusPaid {
		return false, nil
	}
	order.Status = StatusPaid
	order.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (repository *MemoryOrderRepository) DeleteByOwner(_ context.Context, ownerID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, order := range repository.orders {
		if order.OwnerID == ownerID {
			delete(repository.orders, id)
		}
	}
	return nil
}
