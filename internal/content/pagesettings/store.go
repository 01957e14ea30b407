// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagesettings

import "context"

// Repository defines persistence for page settings, one row per owner.
type Repository interface {
	// Get returns NOT_FOUND when the owner never saved settings.
	Get(ctx context.Context, ownerID string) (*Settings, error)
	Upsert(ctx context.Context, settings *Settings) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
