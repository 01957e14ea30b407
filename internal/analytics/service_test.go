// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

const (
	annID   = "0190a000-0000-7000-8000-00000000000a"
	bobID   = "0190a000-0000-7000-8000-00000000000b"
	linkOne = "0190a000-0000-7000-8000-0000000000c1"
	linkTwo = "0190a000-0000-7000-8000-0000000000c2"
	bobLink = "0190a000-0000-7000-8000-0000000000c3"
	annFile = "0190a000-0000-7000-8000-0000000000d1"
	annForm = "0190a000-0000-7000-8000-0000000000e1"
)

type fixture struct {
	service *Service
	events  *MemoryRepository
	links   *link.MemoryRepository
	files   *file.MemoryRepository
	forms   *form.MemoryRepository
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
		{ID: annID, Email: "ann@example.com", Username: "ann", DisplayName: "Ann", Role: "user", Plan: policy.PlanFree, Status: auth.StatusActive},
		{ID: bobID, Email: "bob@example.com", Username: "bob", DisplayName: "Bob", Role: "user", Plan: policy.PlanFree, Status: auth.StatusActive},
	} {
		require.NoError(t, users.Create(ctx, user))
	}

	links := link.NewMemoryRepository()
	links.Seed(&link.Link{ID: linkOne, OwnerID: annID, Title: "Blog", Type: link.TypeLink, Variant: link.LinkVariant{URL: "https://ann.dev"}, Visible: true, Clicks: 5})
	links.Seed(&link.Link{ID: linkTwo, OwnerID: annID, Title: "Shop", Type: link.TypeLink, Variant: link.LinkVariant{URL: "https://shop.ann.dev"}, Visible: true, Order: 1})
	links.Seed(&link.Link{ID: bobLink, OwnerID: bobID, Title: "Bob", Type: link.TypeLink, Variant: link.LinkVariant{URL: "https://bob.dev"}, Visible: true})

	files := file.NewMemoryRepository()
	files.Seed(&file.File{ID: annFile, OwnerID: annID, Name: "notes.txt", Type: file.TypeText, Content: "hi", MimeType: "text/plain", Size: 2})

	forms := form.NewMemoryRepository()
	forms.Seed(&form.Form{ID: annForm, OwnerID: annID, Title: "Contact", Fields: []form.Field{{ID: "name", Label: "Name", Type: form.FieldText}}})

	evaluator := policy.NewEvaluator()
	events := NewMemoryRepository()
	service := NewService(events, users,
		link.NewService(links, freePlans{}, evaluator),
		file.NewService(files, nil, freePlans{}, evaluator),
		form.NewService(forms, form.NewMemoryResponseRepository(), freePlans{}, evaluator),
	)
	return &fixture{service: service, events: events, links: links, files: files, forms: forms}
}

func TestTrack_LinkClickIncrementsOnlyThatLink(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, fx.service.Track(ctx, TrackInput{Type: TypeLinkClick, Username: "Ann", LinkID: linkOne}))
	}

	clicked, err := fx.links.FindByID(ctx, annID, linkOne)
	require.NoError(t, err)
	assert.Equal(t, int64(7), clicked.Clicks)

	sibling, err := fx.links.FindByID(ctx, annID, linkTwo)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sibling.Clicks)
	assert.Equal(t, 2, fx.events.Len())
}

func TestTrack_ViewsAndPageViews(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.service.Track(ctx, TrackInput{Type: TypeFileView, UserID: annID, FileID: annFile}))
	require.NoError(t, fx.service.Track(ctx, TrackInput{Type: TypeFormView, UserID: annID, FormID: annForm}))
	require.NoError(t, fx.service.Track(ctx, TrackInput{Type: TypePageView, Username: "ann"}))

	stored, err := fx.files.FindByID(ctx, annID, annFile)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Views)

	storedForm, err := fx.forms.FindByID(ctx, annID, annForm)
	require.NoError(t, err)
	assert.Equal(t, int64(1), storedForm.Views)
	assert.Equal(t, 3, fx.events.Len())
}

func TestTrack_Errors(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	err := fx.service.Track(ctx, TrackInput{Type: "hover", Username: "ann"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	err = fx.service.Track(ctx, TrackInput{Type: TypePageView})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	err = fx.service.Track(ctx, TrackInput{Type: TypeLinkClick, Username: "ann"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation), "linkClick needs a linkId")

	err = fx.service.Track(ctx, TrackInput{Type: TypePageView, Username: "nobody"})
	assert.True(t, apperr.IsNotFound(err))

	err = fx.service.Track(ctx, TrackInput{Type: TypeLinkClick, Username: "ann", LinkID: bobLink})
	assert.True(t, apperr.IsNotFound(err), "a link of another owner is not found")

	assert.Equal(t, 0, fx.events.Len())
}

func TestTrack_DerivesDeviceAndReferrer(t *testing.T) {
	fx := newFixture(t)
	ctx := ctxutil.WithClientMeta(context.Background(), ctxutil.ClientMeta{
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Mobile",
		Referrer:  "https://www.instagram.com/ann",
	})

	require.NoError(t, fx.service.Track(ctx, TrackInput{Type: TypePageView, UserID: annID}))

	buckets, err := fx.events.Aggregate(ctx, annID, time.Time{})
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, DeviceMobile, buckets[0].Device)
	assert.Equal(t, "Instagram", buckets[0].Referrer)
}

func TestSummary(t *testing.T) {
	fx := newFixture(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	seed := func(at time.Time, event Event) {
		event.OwnerID = annID
		event.CreatedAt = at
		require.NoError(t, fx.events.Append(context.Background(), &event))
	}
	seed(now.Add(-time.Hour), Event{Type: TypePageView, Device: DeviceMobile, Referrer: "Instagram"})
	seed(now.Add(-2*time.Hour), Event{Type: TypePageView, Device: DeviceDesktop, Referrer: ReferrerDirect})
	seed(now.AddDate(0, 0, -1), Event{Type: TypePageView, Device: DeviceMobile, Referrer: "Instagram"})
	seed(now.AddDate(0, 0, -1), Event{Type: TypeLinkClick, LinkID: linkTwo, Device: DeviceMobile, Referrer: "Instagram"})
	seed(now, Event{Type: TypeLinkClick, LinkID: linkTwo, Device: DeviceMobile, Referrer: "Instagram"})
	seed(now, Event{Type: TypeLinkClick, LinkID: linkOne, Device: DeviceDesktop, Referrer: ReferrerDirect})
	seed(now.AddDate(0, 0, -10), Event{Type: TypePageView, Device: DeviceDesktop, Referrer: "Google"})

	fx.service.now = func() time.Time { return now }

	summary, err := fx.service.Summary(context.Background(), annID, 7)
	require.NoError(t, err)

	assert.Equal(t, Totals{PageViews: 3, LinkClicks: 3}, summary.Totals)
	require.Len(t, summary.Daily, 7)
	assert.Equal(t, "2026-03-04", summary.Daily[0].Date)
	assert.Equal(t, "2026-03-10", summary.Daily[6].Date)
	assert.Equal(t, Totals{PageViews: 2, LinkClicks: 2}, summary.Daily[6].Totals)
	assert.Equal(t, Totals{PageViews: 1, LinkClicks: 1}, summary.Daily[5].Totals)
	assert.Equal(t, Totals{}, summary.Daily[0].Totals)

	assert.Equal(t, []Share{{Label: "Mobile", Count: 4}, {Label: "Desktop", Count: 2}}, summary.Devices)
	assert.Equal(t, []Share{{Label: "Instagram", Count: 4}, {Label: "Direct", Count: 2}}, summary.Referrers)
	assert.Equal(t, []TopLink{{LinkID: linkTwo, Title: "Shop", Clicks: 2}, {LinkID: linkOne, Title: "Blog", Clicks: 1}}, summary.TopLinks)
	assert.InDelta(t, 1.0, summary.ClickThroughRate, 0.0001)

	_, err = fx.service.Summary(context.Background(), annID, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	_, err = fx.service.Summary(context.Background(), annID, MaxSummaryDays+1)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

func TestDeleteByOwner(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.service.RecordPageView(ctx, annID))
	require.NoError(t, fx.service.RecordPageView(ctx, bobID))
	require.NoError(t, fx.service.DeleteByOwner(ctx, annID))

	totals, err := fx.service.PlatformTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.PageViews)
}
