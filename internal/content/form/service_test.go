// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/pkg/pagination"
	"github.com/taibuivan/sociallink/pkg/pointer"
)

const (
	ownerA = "0190a000-0000-7000-8000-00000000000a"
	ownerB = "0190a000-0000-7000-8000-00000000000b"
)

type stubPlans map[string]policy.Plan

func (plans stubPlans) EffectivePlan(_ context.Context, userID string) (policy.Plan, error) {
	if plan, ok := plans[userID]; ok {
		return plan, nil
	}
	return policy.PlanFree, nil
}

func newTestService() *Service {
	return NewService(NewMemoryRepository(), NewMemoryResponseRepository(), stubPlans{ownerA: policy.PlanPro}, policy.NewEvaluator())
}

func contactFields() []Field {
	return []Field{
		{ID: "name", Label: "Name", Type: FieldText, Required: true},
		{ID: "email", Label: "Email", Type: FieldEmail, Required: true},
		{ID: "topic", Label: "Topic", Type: FieldSelect, Options: []string{"Hire", "Collab"}},
		{ID: "budget", Label: "Budget", Type: FieldNumber},
	}
}

func mustCreate(t *testing.T, service *Service, ownerID string) *Form {
	t.Helper()
	form, err := service.Create(context.Background(), ownerID, Input{Title: pointer.To("Contact"), Fields: contactFields()})
	require.NoError(t, err)
	return form
}

func TestCreate_Validation(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.Create(ctx, ownerA, Input{Title: pointer.To("Empty")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(ctx, ownerA, Input{Title: pointer.To("Bad"), Fields: []Field{{Label: "Pick", Type: FieldSelect}}})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(ctx, ownerA, Input{Title: pointer.To("Dupe"), Fields: []Field{
		{ID: "a", Label: "A"}, {ID: "a", Label: "B"},
	}})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	form, err := service.Create(ctx, ownerA, Input{Title: pointer.To("Ok"), Fields: []Field{{Label: "Anything"}}})
	require.NoError(t, err)
	assert.NotEmpty(t, form.Fields[0].ID, "missing field ids are generated")
	assert.Equal(t, FieldText, form.Fields[0].Type)
}

func TestCreate_PlanLimit(t *testing.T) {
	service := newTestService()

	mustCreate(t, service, ownerB)
	_, err := service.Create(context.Background(), ownerB, Input{Title: pointer.To("Second"), Fields: contactFields()})
	assert.True(t, apperr.HasCode(err, apperr.CodePlanLimitReached))
}

func TestSubmit(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	form := mustCreate(t, service, ownerA)

	t.Run("drops unknown fields", func(t *testing.T) {
		response, err := service.Submit(ctx, form.ID, map[string]string{"name": "Bo", "email": "bo@x.io", "extra": "nope"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"name": "Bo", "email": "bo@x.io"}, response.Answers)
	})

	t.Run("checks answers", func(t *testing.T) {
		_, err := service.Submit(ctx, form.ID, map[string]string{"email": "not-an-email", "topic": "Other", "budget": "lots"})
		require.Error(t, err)
		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Len(t, appErr.Details, 4)
	})

	t.Run("unknown form", func(t *testing.T) {
		_, err := service.Submit(ctx, "0190a000-0000-7000-8000-0000000000ff", map[string]string{})
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestResponses_OwnerScoped(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	form := mustCreate(t, service, ownerA)

	for _, name := range []string{"one", "two", "three"} {
		_, err := service.Submit(ctx, form.ID, map[string]string{"name": name, "email": name + "@x.io"})
		require.NoError(t, err)
	}

	page, total, err := service.Responses(ctx, ownerA, form.ID, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "three", page[0].Answers["name"], "newest first")

	_, _, err = service.Responses(ctx, ownerB, form.ID, pagination.Params{Page: 1, Limit: 2})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDelete_KeepsResponses(t *testing.T) {
	forms := NewMemoryRepository()
	responses := NewMemoryResponseRepository()
	service := NewService(forms, responses, stubPlans{}, policy.NewEvaluator())
	ctx := context.Background()
	form := mustCreate(t, service, ownerA)

	_, err := service.Submit(ctx, form.ID, map[string]string{"name": "Bo", "email": "bo@x.io"})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, ownerA, form.ID))

	orphaned, total, err := responses.ListByForm(ctx, ownerA, form.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, orphaned, 1)

	require.NoError(t, service.DeleteAllForOwner(ctx, ownerA))
	_, total, err = responses.ListByForm(ctx, ownerA, form.ID, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUpdate(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	form := mustCreate(t, service, ownerA)

	updated, err := service.Update(ctx, ownerA, form.ID, Input{Description: pointer.To("Say hi")})
	require.NoError(t, err)
	assert.Equal(t, "Say hi", updated.Description)
	assert.Len(t, updated.Fields, 4)

	_, err = service.Update(ctx, ownerB, form.ID, Input{Title: pointer.To("Mine")})
	assert.True(t, apperr.IsNotFound(err))
}
