// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/sociallink/internal/analytics"
	"github.com/taibuivan/sociallink/internal/billing"
	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/content/pagesettings"
	"github.com/taibuivan/sociallink/internal/platform/blob"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/users/admin"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

// Demo credentials. Both accounts share DemoPassword.
const (
	DemoUsername = "demo"
	DemoEmail    = "demo@sociallink.app"
	AdminEmail   = "admin@sociallink.app"
	DemoPassword = "demo1234"
)

const (
	demoUserID  = "01900000-0000-7000-8000-000000000001"
	demoAdminID = "01900000-0000-7000-8000-000000000002"
	demoFormID  = "01900000-0000-7000-8000-000000000301"
	demoFileID  = "01900000-0000-7000-8000-000000000201"
)

/*
NewDemo builds an in-memory data source seeded with a showcase account and a
super-admin.

Description: Nothing survives a restart. Uploads go to an in-memory blob store.
*/
func NewDemo() (*DataSource, error) {
	ctx := context.Background()
	now := time.Now().UTC()

	users := auth.NewMemoryUserRepository()
	links := link.NewMemoryRepository()
	files := file.NewMemoryRepository()
	forms := form.NewMemoryRepository()
	pages := pagesettings.NewMemoryRepository()
	events := analytics.NewMemoryRepository()

	// ── 1. Accounts ──
	hash, err := sec.HashPassword(DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("datasource: hash demo password: %w", err)
	}
	for _, account := range []*auth.User{
		{
			ID: demoUserID, Email: DemoEmail, PasswordHash: hash, DisplayName: "Demo Creator",
			Username: DemoUsername, Bio: "Designer, writer and weekend baker.", Website: "https://sociallink.app",
			Role: sec.RoleUser, Plan: policy.PlanPro, Status: auth.StatusActive,
		},
		{
			ID: demoAdminID, Email: AdminEmail, PasswordHash: hash, DisplayName: "Platform Admin",
			Username: "admin", Role: sec.RoleSuperAdmin, Plan: policy.PlanBusiness, Status: auth.StatusActive,
		},
	} {
		if err := users.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("datasource: seed account %s: %w", account.Username, err)
		}
	}

	// ── 2. Content ──
	for _, item := range demoLinks(now) {
		links.Seed(item)
	}
	files.Seed(&file.File{
		ID: demoFileID, OwnerID: demoUserID, Name: "press-kit.txt", Type: file.TypeText,
		Content: "Demo Creator makes things on the internet.", MimeType: "text/plain", Size: 42,
		CreatedAt: now, UpdatedAt: now,
	})
	forms.Seed(&form.Form{
		ID: demoFormID, OwnerID: demoUserID, Title: "Work with me", Description: "Tell me about your project.",
		Fields: []form.Field{
			{ID: "name", Label: "Name", Type: form.FieldText, Required: true},
			{ID: "email", Label: "Email", Type: form.FieldEmail, Required: true},
			{ID: "budget", Label: "Budget", Type: form.FieldSelect, Options: []string{"< $1k", "$1k - $5k", "> $5k"}},
		},
		CreatedAt: now, UpdatedAt: now,
	})
	if err := pages.Upsert(ctx, &pagesettings.Settings{
		OwnerID: demoUserID,
		ThemeID: "sunset",
		Socials: []pagesettings.Social{
			{Platform: "instagram", URL: "https://instagram.com/sociallink"},
			{Platform: "youtube", URL: "https://youtube.com/@sociallink"},
		},
		UpdatedAt: now,
	}); err != nil {
		return nil, fmt.Errorf("datasource: seed page settings: %w", err)
	}

	// ── 3. A week of activity ──
	for _, event := range demoEvents(now) {
		if err := events.Append(ctx, event); err != nil {
			return nil, fmt.Errorf("datasource: seed events: %w", err)
		}
	}

	return &DataSource{
		Kind:         KindDemo,
		Users:        users,
		Sessions:     auth.NewMemorySessionRepository(),
		ResetTokens:  auth.NewMemoryResetTokenRepository(),
		Links:        links,
		Files:        files,
		Blobs:        blob.NewMemoryStore(),
		Forms:        forms,
		Responses:    form.NewMemoryResponseRepository(),
		PageSettings: pages,
		Events:       events,
		Orders:       billing.NewMemoryOrderRepository(),
		Platform:     admin.NewMemorySettingsRepository(),
	}, nil
}

func demoLinks(now time.Time) []*link.Link {
	seeded := []struct {
		title     string
		variant   link.Variant
		spotlight bool
		clicks    int64
	}{
		{"Latest project", link.LinkVariant{URL: "https://sociallink.app/blog"}, true, 42},
		{"Book a call", link.ButtonVariant{URL: "https://cal.com/sociallink"}, false, 17},
		{"Studio tour", link.VideoVariant{VideoURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}, false, 9},
		{"Work mix", link.MusicVariant{MusicURL: "https://open.spotify.com/playlist/37i9dQZF1DX5trt9i14X7j"}, false, 5},
		{"Tip jar", link.CryptoVariant{Network: "ethereum", Address: "0x0000000000000000000000000000000000000000"}, false, 1},
	}

	links := make([]*link.Link, 0, len(seeded))
	for index, entry := range seeded {
		links = append(links, &link.Link{
			ID:        fmt.Sprintf("01900000-0000-7000-8000-0000000001%02d", index+1),
			OwnerID:   demoUserID,
			Title:     entry.title,
			Type:      entry.variant.Kind(),
			Variant:   entry.variant,
			Visible:   true,
			Spotlight: entry.spotlight,
			Order:     index,
			Clicks:    entry.clicks,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return links
}

func demoEvents(now time.Time) []*analytics.Event {
	devices := []analytics.Device{analytics.DeviceMobile, analytics.DeviceDesktop, analytics.DeviceMobile, analytics.DeviceTablet}
	referrers := []string{"Instagram", "Direct", "Twitter", "Google"}

	var events []*analytics.Event
	sequence := 0
	for day := 0; day < 7; day++ {
		at := now.AddDate(0, 0, -day)
		for visit := 0; visit < 3+day%3; visit++ {
			sequence++
			view := &analytics.Event{
				ID:        fmt.Sprintf("01900000-0000-7000-8000-0000000a%04d", sequence),
				OwnerID:   demoUserID,
				Type:      analytics.TypePageView,
				Device:    devices[(day+visit)%len(devices)],
				Referrer:  referrers[visit%len(referrers)],
				CreatedAt: at,
			}
			events = append(events, view)

			if visit%2 == 0 {
				sequence++
				click := *view
				click.ID = fmt.Sprintf("01900000-0000-7000-8000-0000000a%04d", sequence)
				click.Type = analytics.TypeLinkClick
				click.LinkID = fmt.Sprintf("01900000-0000-7000-8000-0000000001%02d", visit%3+1)
				events = append(events, &click)
			}
		}
	}
	return events
}
