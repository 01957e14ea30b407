// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/analytics"
	"github.com/taibuivan/sociallink/internal/billing"
	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/content/pagesettings"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/users/auth"
	"github.com/taibuivan/sociallink/pkg/pagination"
	"github.com/taibuivan/sociallink/pkg/pointer"
)

const (
	rootID  = "0190b000-0000-7000-8000-000000000001"
	staffID = "0190b000-0000-7000-8000-000000000002"
	annID   = "0190b000-0000-7000-8000-000000000003"
	bobID   = "0190b000-0000-7000-8000-000000000004"
	missing = "0190b000-0000-7000-8000-0000000000ff"
)

type fixture struct {
	service  *Service
	users    *auth.MemoryUserRepository
	sessions *auth.MemorySessionRepository
	links    *link.MemoryRepository
	files    *file.MemoryRepository
	forms    *form.MemoryRepository
	settings *pagesettings.MemoryRepository
	events   *analytics.MemoryRepository
	orders   *billing.MemoryOrderRepository
}

type freePlans struct{}

func (freePlans) EffectivePlan(context.Context, string) (policy.Plan, error) {
	return policy.PlanFree, nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	users := auth.NewMemoryUserRepository()
	for _, user := range []*auth.User{
		{ID: rootID, Email: "root@example.com", Username: "root", Role: sec.RoleSuperAdmin, Plan: policy.PlanFree, Status: auth.StatusActive},
		{ID: staffID, Email: "staff@example.com", Username: "staff", Role: sec.RoleAdmin, Plan: policy.PlanFree, Status: auth.StatusActive},
		{ID: annID, Email: "ann@example.com", Username: "ann", Role: sec.RoleUser, Plan: policy.PlanFree, Status: auth.StatusActive},
		{ID: bobID, Email: "bob@example.com", Username: "bob", Role: sec.RoleUser, Plan: policy.PlanPro, Status: auth.StatusActive},
	} {
		require.NoError(t, users.Create(ctx, user))
	}

	sessions := auth.NewMemorySessionRepository()
	require.NoError(t, sessions.Create(ctx, &auth.Session{ID: "s-ann", UserID: annID, TokenHash: "hash-ann", ExpiresAt: time.Now().Add(time.Hour)}))

	links := link.NewMemoryRepository()
	links.Seed(&link.Link{ID: "l-ann-1", OwnerID: annID, Title: "Blog", Type: link.TypeLink, Variant: link.LinkVariant{URL: "https://ann.dev"}, Visible: true, Clicks: 4})
	links.Seed(&link.Link{ID: "l-ann-2", OwnerID: annID, Title: "Shop", Type: link.TypeLink, Variant: link.LinkVariant{URL: "https://shop.ann.dev"}, Visible: true, Clicks: 1})
	links.Seed(&link.Link{ID: "l-bob-1", OwnerID: bobID, Title: "Bob", Type: link.TypeLink, Variant: link.LinkVariant{URL: "https://bob.dev"}, Visible: true, Clicks: 2})

	files := file.NewMemoryRepository()
	files.Seed(&file.File{ID: "f-ann", OwnerID: annID, Name: "notes.txt", Type: file.TypeText, Content: "hi", MimeType: "text/plain", Size: 2})

	forms := form.NewMemoryRepository()
	forms.Seed(&form.Form{ID: "form-ann", OwnerID: annID, Title: "Contact", Fields: []form.Field{{ID: "name", Label: "Name", Type: form.FieldText}}})
	responses := form.NewMemoryResponseRepository()

	pages := pagesettings.NewMemoryRepository()
	require.NoError(t, pages.Upsert(ctx, &pagesettings.Settings{OwnerID: annID, ThemeID: "midnight"}))

	events := analytics.NewMemoryRepository()
	require.NoError(t, events.Append(ctx, &analytics.Event{ID: "e-1", OwnerID: annID, Type: analytics.TypePageView, CreatedAt: time.Now()}))
	require.NoError(t, events.Append(ctx, &analytics.Event{ID: "e-2", OwnerID: bobID, Type: analytics.TypeLinkClick, LinkID: "l-bob-1", CreatedAt: time.Now()}))

	orders := billing.NewMemoryOrderRepository()
	require.NoError(t, orders.Create(ctx, &billing.Order{ID: "o-ann", OwnerID: annID, Provider: billing.ProviderStripe, ProviderRef: "cs_1", ProductID: "pro-monthly", Status: billing.StatusPending}))

	evaluator := policy.NewEvaluator()
	fileService := file.NewService(files, nil, freePlans{}, evaluator)
	formService := form.NewService(forms, responses, freePlans{}, evaluator)
	linkService := link.NewService(links, freePlans{}, evaluator)
	analyticsService := analytics.NewService(events, users, linkService, fileService, formService)
	billingService := billing.NewService(orders, users, billing.Gateways{})

	cascade := []CascadeStep{
		{Name: "links", Delete: links.DeleteByOwner},
		{Name: "files", Delete: fileService.DeleteAllForOwner},
		{Name: "forms", Delete: formService.DeleteAllForOwner},
		{Name: "page_settings", Delete: pages.DeleteByOwner},
		{Name: "events", Delete: analyticsService.DeleteByOwner},
		{Name: "orders", Delete: billingService.DeleteByOwner},
	}

	return &fixture{
		service:  NewService(users, sessions, links, analyticsService, cascade),
		users:    users,
		sessions: sessions,
		links:    links,
		files:    files,
		forms:    forms,
		settings: pages,
		events:   events,
		orders:   orders,
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, code), "expected %s, got %v", code, err)
}

func TestList_IncludesLinkActivity(t *testing.T) {
	fx := newFixture(t)

	accounts, total, err := fx.service.List(context.Background(), auth.ListFilter{Query: "ann"}, pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, 1, total)
	require.Len(t, accounts, 1)
	assert.Equal(t, annID, accounts[0].ID)
	assert.Equal(t, 2, accounts[0].Links)
	assert.Equal(t, int64(5), accounts[0].Clicks)
}

func TestUpdate_AdminModeratesUsers(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	account, err := fx.service.Update(ctx, staffID, annID, UpdateInput{
		Status: pointer.To(auth.StatusBlocked),
		Plan:   pointer.To(policy.PlanBusiness),
	})
	require.NoError(t, err)
	assert.Equal(t, auth.StatusBlocked, account.Status)
	assert.Equal(t, policy.PlanBusiness, account.Plan)
	assert.Nil(t, account.PlanExpiresAt)

	_, err = fx.sessions.FindByTokenHash(ctx, "hash-ann")
	assert.True(t, apperr.IsNotFound(err), "blocking revokes sessions")
}

func TestUpdate_AdminPlanClearsExpiry(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	expiry := time.Now().Add(24 * time.Hour)
	require.NoError(t, fx.users.UpdatePlan(ctx, bobID, policy.PlanPro, &expiry))

	account, err := fx.service.Update(ctx, staffID, bobID, UpdateInput{Plan: pointer.To(policy.PlanPro)})
	require.NoError(t, err)
	assert.Nil(t, account.PlanExpiresAt)
}

func TestUpdate_RoleRules(t *testing.T) {
	tests := []struct {
		name    string
		actorID string
		target  string
		input   UpdateInput
		code    string
	}{
		{"user cannot moderate", annID, bobID, UpdateInput{Status: pointer.To(auth.StatusBlocked)}, apperr.CodeForbidden},
		{"admin cannot grant admin", staffID, annID, UpdateInput{Role: pointer.To(sec.RoleAdmin)}, apperr.CodeForbidden},
		{"admin cannot touch super-admin", staffID, rootID, UpdateInput{Plan: pointer.To(policy.PlanPro)}, apperr.CodeForbidden},
		{"no self demotion", rootID, rootID, UpdateInput{Role: pointer.To(sec.RoleUser)}, apperr.CodeForbidden},
		{"no self block", staffID, staffID, UpdateInput{Status: pointer.To(auth.StatusBlocked)}, apperr.CodeForbidden},
		{"unknown role", rootID, annID, UpdateInput{Role: pointer.To(sec.UserRole("owner"))}, apperr.CodeValidation},
		{"unknown plan", rootID, annID, UpdateInput{Plan: pointer.To(policy.Plan("gold"))}, apperr.CodeValidation},
		{"unknown target", rootID, missing, UpdateInput{Plan: pointer.To(policy.PlanPro)}, apperr.CodeNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(t)
			_, err := fx.service.Update(context.Background(), tc.actorID, tc.target, tc.input)
			assertCode(t, err, tc.code)
		})
	}
}

func TestUpdate_SuperAdminGrantsAdmin(t *testing.T) {
	fx := newFixture(t)

	account, err := fx.service.Update(context.Background(), rootID, annID, UpdateInput{Role: pointer.To(sec.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, account.Role)
}

func TestUpdate_ActorRoleIsReloaded(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.Update(ctx, rootID, staffID, UpdateInput{Role: pointer.To(sec.RoleUser)})
	require.NoError(t, err)

	_, err = fx.service.Update(ctx, staffID, annID, UpdateInput{Plan: pointer.To(policy.PlanPro)})
	assertCode(t, err, apperr.CodeForbidden)
}

func TestDelete_CascadesOwnedData(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.service.Delete(ctx, staffID, annID))

	_, err := fx.users.FindByID(ctx, annID)
	assert.True(t, apperr.IsNotFound(err))

	remaining, err := fx.links.ListByOwner(ctx, annID, false)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	files, err := fx.files.ListByOwner(ctx, annID)
	require.NoError(t, err)
	assert.Empty(t, files)

	forms, err := fx.forms.ListByOwner(ctx, annID)
	require.NoError(t, err)
	assert.Empty(t, forms)

	_, err = fx.settings.Get(ctx, annID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = fx.orders.FindByProviderRef(ctx, annID, billing.ProviderStripe, "cs_1")
	assert.True(t, apperr.IsNotFound(err))

	_, err = fx.sessions.FindByTokenHash(ctx, "hash-ann")
	assert.True(t, apperr.IsNotFound(err))

	assert.Equal(t, 1, fx.events.Len(), "only the other account's event is left")

	bobLinks, err := fx.links.ListByOwner(ctx, bobID, false)
	require.NoError(t, err)
	assert.Len(t, bobLinks, 1)
}

func TestDelete_RoleRules(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	assertCode(t, fx.service.Delete(ctx, staffID, staffID), apperr.CodeForbidden)
	assertCode(t, fx.service.Delete(ctx, staffID, rootID), apperr.CodeForbidden)
	assertCode(t, fx.service.Delete(ctx, annID, bobID), apperr.CodeForbidden)
	assertCode(t, fx.service.Delete(ctx, staffID, missing), apperr.CodeNotFound)

	_, err := fx.users.FindByID(ctx, bobID)
	assert.NoError(t, err)
}

func TestDelete_StopsAtFailingStep(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	failing := NewService(fx.users, fx.sessions, fx.links, nil, []CascadeStep{
		{Name: "links", Delete: fx.links.DeleteByOwner},
		{Name: "files", Delete: func(context.Context, string) error { return assert.AnError }},
	})

	err := failing.Delete(ctx, staffID, annID)
	require.ErrorIs(t, err, assert.AnError)

	_, err = fx.users.FindByID(ctx, annID)
	assert.NoError(t, err, "the account survives a failed cascade")
}

func TestStats(t *testing.T) {
	fx := newFixture(t)

	stats, err := fx.service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Accounts.Total)
	assert.Equal(t, 3, stats.Accounts.ByPlan[policy.PlanFree])
	assert.Equal(t, 1, stats.Accounts.ByPlan[policy.PlanPro])
	assert.Equal(t, 3, stats.Links)
	assert.Equal(t, int64(7), stats.Clicks)
	assert.Equal(t, int64(1), stats.Events.PageViews)
	assert.Equal(t, int64(1), stats.Events.LinkClicks)
}

func TestSettings_DefaultsAndUpdate(t *testing.T) {
	service := NewSettingsService(NewMemorySettingsRepository())
	ctx := context.Background()

	enabled, err := service.SignupsEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)

	themeID, err := service.DefaultThemeID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", themeID)

	updated, err := service.Update(ctx, SettingsInput{
		SignupsEnabled:    pointer.To(false),
		MaintenanceNotice: pointer.To("  Back at noon  "),
		DefaultThemeID:    pointer.To("paper"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Back at noon", updated.MaintenanceNotice)
	assert.False(t, updated.UpdatedAt.IsZero())

	enabled, err = service.SignupsEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	themeID, err = service.DefaultThemeID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "paper", themeID)
}

func TestSettings_Validation(t *testing.T) {
	service := NewSettingsService(NewMemorySettingsRepository())

	_, err := service.Update(context.Background(), SettingsInput{DefaultThemeID: pointer.To("chartreuse")})
	assertCode(t, err, apperr.CodeValidation)

	settings, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "default", settings.DefaultThemeID, "a rejected update is not saved")
}
