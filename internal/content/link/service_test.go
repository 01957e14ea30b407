// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
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

func newTestService() (*Service, *MemoryRepository) {
	repository := NewMemoryRepository()
	plans := stubPlans{ownerA: policy.PlanPro}
	return NewService(repository, plans, policy.NewEvaluator()), repository
}

func mustCreate(t *testing.T, service *Service, ownerID, title string, spotlight bool) *Link {
	t.Helper()
	link, err := service.Create(context.Background(), ownerID, CreateInput{
		Title:     title,
		Variant:   LinkVariant{URL: "https://example.com/" + title},
		Spotlight: spotlight,
	})
	require.NoError(t, err)
	return link
}

func TestCreate_AssignsNextOrder(t *testing.T) {
	service, _ := newTestService()

	first := mustCreate(t, service, ownerA, "one", false)
	second := mustCreate(t, service, ownerA, "two", false)
	other := mustCreate(t, service, ownerB, "three", false)

	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, 0, other.Order, "order is per owner")
	assert.True(t, first.Visible)
}

func TestCreate_ValidatesVariant(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Create(context.Background(), ownerA, CreateInput{Title: "x", Variant: LinkVariant{URL: "not a url"}})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	_, err = service.Create(context.Background(), ownerA, CreateInput{Title: "", Variant: GalleryVariant{}})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Details, 2)
}

func TestCreate_EnforcesPlanLimit(t *testing.T) {
	service, _ := newTestService()
	limit := policy.NewEvaluator().Limits(policy.PlanFree).MaxLinks

	for i := 0; i < limit; i++ {
		mustCreate(t, service, ownerB, "l", false)
	}

	_, err := service.Create(context.Background(), ownerB, CreateInput{Title: "over", Variant: LinkVariant{URL: "https://x.dev"}})
	assert.True(t, apperr.HasCode(err, apperr.CodePlanLimitReached))
}

func TestSpotlight_IsExclusivePerOwner(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first := mustCreate(t, service, ownerA, "one", true)
	otherOwner := mustCreate(t, service, ownerB, "b", true)
	second := mustCreate(t, service, ownerA, "two", true)

	links, err := service.List(ctx, ownerA)
	require.NoError(t, err)
	spotlighted := 0
	for _, link := range links {
		if link.Spotlight {
			spotlighted++
			assert.Equal(t, second.ID, link.ID)
		}
	}
	assert.Equal(t, 1, spotlighted)

	_, err = service.Update(ctx, ownerA, first.ID, UpdateInput{Spotlight: pointer.To(true)})
	require.NoError(t, err)

	refreshed, err := service.Get(ctx, ownerA, second.ID)
	require.NoError(t, err)
	assert.False(t, refreshed.Spotlight)

	untouched, err := service.Get(ctx, ownerB, otherOwner.ID)
	require.NoError(t, err)
	assert.True(t, untouched.Spotlight)
}

func TestUpdate_ScopedToOwner(t *testing.T) {
	service, _ := newTestService()
	link := mustCreate(t, service, ownerA, "one", false)

	_, err := service.Update(context.Background(), ownerB, link.ID, UpdateInput{Title: pointer.To("stolen")})
	assert.True(t, apperr.IsNotFound(err))

	err = service.Delete(context.Background(), ownerB, link.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdate_HidesLink(t *testing.T) {
	service, repository := newTestService()
	link := mustCreate(t, service, ownerA, "one", false)

	_, err := service.Update(context.Background(), ownerA, link.ID, UpdateInput{Visible: pointer.To(false)})
	require.NoError(t, err)

	visible, err := repository.ListByOwner(context.Background(), ownerA, true)
	require.NoError(t, err)
	assert.Empty(t, visible)
}

func TestIncrementClicks_OnlyTargetLink(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()
	target := mustCreate(t, service, ownerA, "target", false)
	sibling := mustCreate(t, service, ownerA, "sibling", false)

	require.NoError(t, service.IncrementClicks(ctx, ownerA, target.ID))
	require.NoError(t, service.IncrementClicks(ctx, ownerA, target.ID))

	got, err := service.Get(ctx, ownerA, target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Clicks, "identical calls add up")

	untouched, err := service.Get(ctx, ownerA, sibling.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), untouched.Clicks)

	assert.True(t, apperr.IsNotFound(service.IncrementClicks(ctx, ownerB, target.ID)))
}

func TestTotals(t *testing.T) {
	service, repository := newTestService()
	ctx := context.Background()
	link := mustCreate(t, service, ownerA, "one", false)
	mustCreate(t, service, ownerA, "two", false)
	mustCreate(t, service, ownerB, "three", false)
	require.NoError(t, service.IncrementClicks(ctx, ownerA, link.ID))

	totals, err := repository.TotalsByOwner(ctx, []string{ownerA})
	require.NoError(t, err)
	assert.Equal(t, Totals{Links: 2, Clicks: 1}, totals[ownerA])
	assert.NotContains(t, totals, ownerB)

	global, err := repository.GlobalTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{Links: 3, Clicks: 1}, global)

	require.NoError(t, repository.DeleteByOwner(ctx, ownerA))
	count, err := repository.CountByOwner(ctx, ownerA)
	require.NoError(t, err)
	assert.Zero(t, count)
}
