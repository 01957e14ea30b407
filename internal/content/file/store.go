// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package file

import "context"

// Repository defines persistence for files, scoped by owner except [Repository.FindPublic].
type Repository interface {
	// ListByOwner returns metadata (no content), newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*File, error)
	FindByID(ctx context.Context, ownerID, id string) (*File, error)
	FindPublic(ctx context.Context, id string) (*File, error)
	Create(ctx context.Context, file *File) error
	Delete(ctx context.Context, ownerID, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)

	// IncrementViews adds one view and stamps updated-at.
	IncrementViews(ctx context.Context, ownerID, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}
