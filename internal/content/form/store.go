// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"

	"github.com/taibuivan/sociallink/pkg/pagination"
)

// Repository defines persistence for forms, scoped by owner except [Repository.FindPublic].
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*Form, error)
	FindByID(ctx context.Context, ownerID, id string) (*Form, error)
	FindPublic(ctx context.Context, id string) (*Form, error)
	Create(ctx context.Context, form *Form) error
	Update(ctx context.Context, form *Form) error
	Delete(ctx context.Context, ownerID, id string) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	IncrementViews(ctx context.Context, ownerID, id string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// ResponseRepository defines persistence for form responses.
type ResponseRepository interface {
	Create(ctx context.Context, response *Response) error

	// ListByForm returns a page of responses, newest first.
	ListByForm(ctx context.Context, ownerID, formID string, params pagination.Params) ([]*Response, int, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}
