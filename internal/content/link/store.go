// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import "context"

// resourceLink names links in NOT_FOUND messages.
const resourceLink = "Link"

// Repository defines persistence for links. Every method except [Repository.FindOwner]
// and the aggregate readers is scoped by owner id.
type Repository interface {
	// ListByOwner returns the owner's links by ascending order index.
	ListByOwner(ctx context.Context, ownerID string, visibleOnly bool) ([]*Link, error)
	FindByID(ctx context.Context, ownerID, id string) (*Link, error)

	// FindOwner resolves the owner of a link for public click tracking.
	FindOwner(ctx context.Context, id string) (string, error)

	// Create assigns link.Order as max(order)+1 and clears other spotlights when link.Spotlight is set.
	Create(ctx context.Context, link *Link) error

	// Update persists every mutable field and clears other spotlights when link.Spotlight is set.
	Update(ctx context.Context, link *Link) error
	Delete(ctx context.Context, ownerID, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// IncrementClicks adds one click and stamps updated-at.
	IncrementClicks(ctx context.Context, ownerID, id string) error

	DeleteByOwner(ctx context.Context, ownerID string) error
	TotalsByOwner(ctx context.Context, ownerIDs []string) (map[string]Totals, error)
	GlobalTotals(ctx context.Context) (Totals, error)
}
