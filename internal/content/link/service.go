// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/pkg/pointer"
	"github.com/taibuivan/sociallink/pkg/uuid"
)

// Service implements owner-scoped link management.
type Service struct {
	repository Repository
	plans      policy.PlanResolver
	evaluator  *policy.Evaluator
}

// NewService constructs a new link [Service].
func NewService(repository Repository, plans policy.PlanResolver, evaluator *policy.Evaluator) *Service {
	return &Service{repository: repository, plans: plans, evaluator: evaluator}
}

// Repository exposes the store for the tracker, resolver and admin cascade.
func (service *Service) Repository() Repository {
	return service.repository
}

// CreateInput holds a new link. Visible defaults to true.
type CreateInput struct {
	Title     string
	Variant   Variant
	Visible   *bool
	Spotlight bool
}

// UpdateInput holds a partial link update. Nil fields are unchanged.
type UpdateInput struct {
	Title     *string
	Variant   Variant
	Visible   *bool
	Spotlight *bool
	Order     *int
}

// List returns every link of the owner, hidden ones included.
func (service *Service) List(context context.Context, ownerID string) ([]*Link, error) {
	return service.repository.ListByOwner(context, ownerID, false)
}

// Get returns one of the owner's links.
func (service *Service) Get(context context.Context, ownerID, id string) (*Link, error) {
	return service.repository.FindByID(context, ownerID, id)
}

/*
Create adds a link at the end of the owner's list.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: CreateInput

Returns:
  - *Link: The stored link with its order index
  - error: VALIDATION_ERROR, PLAN_LIMIT_REACHED or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input CreateInput) (*Link, error) {

	// ── 1. Validate ──
	if err := validateLink(strings.TrimSpace(input.Title), input.Variant); err != nil {
		return nil, err
	}

	// ── 2. Plan limit ──
	if err := service.checkLimit(context, ownerID); err != nil {
		return nil, err
	}

	// ── 3. Persist ──
	link := &Link{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(input.Title),
		Type:      input.Variant.Kind(),
		Variant:   input.Variant,
		Visible:   input.Visible == nil || *input.Visible,
		Spotlight: input.Spotlight,
	}
	if err := service.repository.Create(context, link); err != nil {
		return nil, fmt.Errorf("link_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "link_created",
		slog.String("link_id", link.ID),
		slog.String("type", string(link.Type)),
	)
	return link, nil
}

func (service *Service) checkLimit(context context.Context, ownerID string) error {
	plan, err := service.plans.EffectivePlan(context, ownerID)
	if err != nil {
		return err
	}
	count, err := service.repository.CountByOwner(context, ownerID)
	if err != nil {
		return fmt.Errorf("link_service_count_failed: %w", err)
	}
	return service.evaluator.CheckCreate(plan, policy.ResourceLink, count)
}

/*
Update applies a partial update to one of the owner's links.

Parameters:
  - context: context.Context
  - ownerID: string
  - id: string
  - input: UpdateInput

Returns:
  - *Link: The updated link
  - error: NOT_FOUND, VALIDATION_ERROR or storage failures
*/
func (service *Service) Update(context context.Context, ownerID, id string, input UpdateInput) (*Link, error) {
	link, err := service.repository.FindByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		link.Title = strings.TrimSpace(*input.Title)
	}
	if input.Variant != nil {
		link.Type = input.Variant.Kind()
		link.Variant = input.Variant
	}
	pointer.Apply(&link.Visible, input.Visible)
	pointer.Apply(&link.Spotlight, input.Spotlight)
	pointer.Apply(&link.Order, input.Order)

	if err := validateLink(link.Title, link.Variant); err != nil {
		return nil, err
	}

	if err := service.repository.Update(context, link); err != nil {
		return nil, fmt.Errorf("link_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "link_updated", slog.String("link_id", link.ID))
	return link, nil
}

// Delete hard-deletes one of the owner's links.
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := service.repository.Delete(context, ownerID, id); err != nil {
		return err
	}
	ctxutil.GetLogger(context).InfoContext(context, "link_deleted", slog.String("link_id", id))
	return nil
}

// OwnerOf resolves which account a link belongs to.
func (service *Service) OwnerOf(context context.Context, id string) (string, error) {
	return service.repository.FindOwner(context, id)
}

// IncrementClicks adds one click to one of the owner's links.
func (service *Service) IncrementClicks(context context.Context, ownerID, id string) error {
	return service.repository.IncrementClicks(context, ownerID, id)
}

func validateLink(title string, variant Variant) error {
	v := &validate.Validator{}
	v.Required("title", title).MaxLen("title", title, maxTitleLength)
	if variant == nil {
		v.Custom("type", true, "Unknown link type")
	} else {
		variant.Validate(v)
	}
	return v.Err()
}
