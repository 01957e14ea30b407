// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/pkg/pagination"
	"github.com/taibuivan/sociallink/pkg/uuid"
)

// Service implements form management and response collection.
type Service struct {
	forms     Repository
	responses ResponseRepository
	plans     policy.PlanResolver
	evaluator *policy.Evaluator
}

// NewService constructs a new form [Service].
func NewService(forms Repository, responses ResponseRepository, plans policy.PlanResolver, evaluator *policy.Evaluator) *Service {
	return &Service{forms: forms, responses: responses, plans: plans, evaluator: evaluator}
}

// Input holds a form definition. On update, nil fields are unchanged.
type Input struct {
	Title       *string
	Description *string
	Fields      []Field
}

// List returns the owner's forms.
func (service *Service) List(context context.Context, ownerID string) ([]*Form, error) {
	return service.forms.ListByOwner(context, ownerID)
}

// Get returns a form by id for public rendering.
func (service *Service) Get(context context.Context, id string) (*Form, error) {
	return service.forms.FindPublic(context, id)
}

/*
Create defines a new form for the owner.

Returns:
  - *Form: The stored form
  - error: VALIDATION_ERROR, PLAN_LIMIT_REACHED or storage failures
*/
func (service *Service) Create(context context.Context, ownerID string, input Input) (*Form, error) {
	form := &Form{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Fields:  normalizeFields(input.Fields),
	}
	if input.Title != nil {
		form.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		form.Description = strings.TrimSpace(*input.Description)
	}

	if err := validateForm(form.Title, form.Description, form.Fields); err != nil {
		return nil, err
	}

	plan, err := service.plans.EffectivePlan(context, ownerID)
	if err != nil {
		return nil, err
	}
	count, err := service.forms.CountByOwner(context, ownerID)
	if err != nil {
		return nil, fmt.Errorf("form_service_count_failed: %w", err)
	}
	if err := service.evaluator.CheckCreate(plan, policy.ResourceForm, count); err != nil {
		return nil, err
	}

	if err := service.forms.Create(context, form); err != nil {
		return nil, fmt.Errorf("form_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "form_created",
		slog.String("form_id", form.ID),
		slog.Int("fields", len(form.Fields)),
	)
	return form, nil
}

// Update applies a partial update to one of the owner's forms.
func (service *Service) Update(context context.Context, ownerID, id string, input Input) (*Form, error) {
	form, err := service.forms.FindByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		form.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		form.Description = strings.TrimSpace(*input.Description)
	}
	if input.Fields != nil {
		form.Fields = normalizeFields(input.Fields)
	}

	if err := validateForm(form.Title, form.Description, form.Fields); err != nil {
		return nil, err
	}

	if err := service.forms.Update(context, form); err != nil {
		return nil, fmt.Errorf("form_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "form_updated", slog.String("form_id", form.ID))
	return form, nil
}

// Delete removes one of the owner's forms. Its responses are not touched.
func (service *Service) Delete(context context.Context, ownerID, id string) error {
	if err := service.forms.Delete(context, ownerID, id); err != nil {
		return err
	}
	ctxutil.GetLogger(context).InfoContext(context, "form_deleted", slog.String("form_id", id))
	return nil
}

// IncrementViews counts one view of one of the owner's forms.
func (service *Service) IncrementViews(context context.Context, ownerID, id string) error {
	return service.forms.IncrementViews(context, ownerID, id)
}

/*
Submit records a visitor's response.

Parameters:
  - context: context.Context
  - formID: string
  - answers: map[string]string (Field id to value)

Returns:
  - *Response: The stored response with unknown fields dropped
  - error: NOT_FOUND for an unknown form, VALIDATION_ERROR for bad answers
*/
func (service *Service) Submit(context context.Context, formID string, answers map[string]string) (*Response, error) {
	form, err := service.forms.FindPublic(context, formID)
	if err != nil {
		return nil, err
	}

	accepted, err := form.CheckAnswers(answers)
	if err != nil {
		return nil, err
	}

	response := &Response{
		ID:      uuid.New(),
		FormID:  form.ID,
		OwnerID: form.OwnerID,
		Answers: accepted,
	}
	if err := service.responses.Create(context, response); err != nil {
		return nil, fmt.Errorf("form_service_submit_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "form_response_received",
		slog.String("form_id", form.ID),
		slog.String("response_id", response.ID),
	)
	return response, nil
}

// Responses returns a page of responses to one of the owner's forms.
func (service *Service) Responses(context context.Context, ownerID, formID string, params pagination.Params) ([]*Response, int, error) {
	if _, err := service.forms.FindByID(context, ownerID, formID); err != nil {
		return nil, 0, err
	}
	return service.responses.ListByForm(context, ownerID, formID, params)
}

// DeleteAllForOwner removes every form and response of an account.
func (service *Service) DeleteAllForOwner(context context.Context, ownerID string) error {
	if err := service.responses.DeleteByOwner(context, ownerID); err != nil {
		return err
	}
	return service.forms.DeleteByOwner(context, ownerID)
}
