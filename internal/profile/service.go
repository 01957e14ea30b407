// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/catalog/theme"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/content/pagesettings"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

// # Sources

// LinkSource lists an owner's links.
type LinkSource interface {
	ListByOwner(context context.Context, ownerID string, visibleOnly bool) ([]*link.Link, error)
}

// FileSource lists an owner's file metadata.
type FileSource interface {
	List(context context.Context, ownerID string) ([]*file.File, error)
}

// FormSource lists an owner's forms.
type FormSource interface {
	List(context context.Context, ownerID string) ([]*form.Form, error)
}

// SettingsSource returns an owner's page settings, or the defaults.
type SettingsSource interface {
	Get(context context.Context, ownerID string) (*pagesettings.Settings, error)
}

// PageViewRecorder records a page view for an owner.
type PageViewRecorder interface {
	RecordPageView(context context.Context, ownerID string) error
}

// Sources groups what a profile is composed from.
type Sources struct {
	Users    auth.UserRepository
	Links    LinkSource
	Files    FileSource
	Forms    FormSource
	Settings SettingsSource
	Views    PageViewRecorder
}

// Service resolves public profiles.
type Service struct {
	sources Sources
	baseURL string
	now     func() time.Time
}

// NewService constructs a new profile [Service]. baseURL is where public pages
// are served, without a trailing slash.
func NewService(sources Sources, baseURL string) *Service {
	return &Service{
		sources: sources,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// normalize lowercases a username, rejecting anything that cannot be a page slug.
func normalize(username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if !validate.IsUsername(username) {
		return "", apperr.NotFound("Profile")
	}
	return username, nil
}

/*
Resolve builds the public page for username.

Description: Unknown and blocked accounts get a placeholder page with IsDemo set.
A real account's page schedules a page view in the background; failures there
are logged and never reach the caller.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Profile: The composed page
  - error: NOT_FOUND for a malformed username, or storage failures
*/
func (service *Service) Resolve(context context.Context, username string) (*Profile, error) {

	// ── 1. Lookup ──
	username, err := normalize(username)
	if err != nil {
		return nil, err
	}

	user, err := service.sources.Users.FindByUsername(context, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return placeholder(username, service.baseURL), nil
		}
		return nil, fmt.Errorf("profile_service_lookup_failed: %w", err)
	}
	if user.IsBlocked() {
		return placeholder(username, service.baseURL), nil
	}

	// ── 2. Compose ──
	profile, err := service.compose(context, user)
	if err != nil {
		return nil, err
	}

	// ── 3. Page view ──
	service.recordView(context, user.ID)
	return profile, nil
}

func (service *Service) compose(context context.Context, user *auth.User) (*Profile, error) {
	links, err := service.sources.Links.ListByOwner(context, user.ID, true)
	if err != nil {
		return nil, fmt.Errorf("profile_service_links_failed: %w", err)
	}
	files, err := service.sources.Files.List(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("profile_service_files_failed: %w", err)
	}
	forms, err := service.sources.Forms.List(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("profile_service_forms_failed: %w", err)
	}
	settings, err := service.sources.Settings.Get(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("profile_service_settings_failed: %w", err)
	}

	name := user.DisplayName
	if name == "" {
		name = displayName(user.Username)
	}
	plan := user.EffectivePlan(service.now())

	socials := settings.Socials
	if socials == nil {
		socials = []pagesettings.Social{}
	}

	return &Profile{
		Name:         name,
		Username:     user.Username,
		Bio:          user.Bio,
		Avatar:       user.AvatarURL,
		Website:      user.Website,
		Plan:         plan,
		ShowBranding: plan == policy.PlanFree,
		Links:        links,
		Files:        files,
		Forms:        forms,
		Theme:        theme.Resolve(settings.ThemeID, settings.CustomBackground, settings.CustomAccent),
		SEO:          service.seo(name, user, settings.SEO),
		Socials:      socials,
	}, nil
}

// seo fills the unset metadata fields with values derived from the account.
func (service *Service) seo(name string, user *auth.User, custom pagesettings.SEO) SEO {
	seo := SEO{
		Title:        custom.Title,
		Description:  custom.Description,
		Keywords:     custom.Keywords,
		OGImage:      custom.OGImage,
		CanonicalURL: custom.CanonicalURL,
	}
	if seo.Title == "" {
		seo.Title = name + " | " + brandName
	}
	if seo.Description == "" {
		seo.Description = user.Bio
	}
	if seo.OGImage == "" && !strings.HasPrefix(user.AvatarURL, "data:") {
		seo.OGImage = user.AvatarURL
	}
	if seo.CanonicalURL == "" {
		seo.CanonicalURL = service.PublicURL(user.Username)
	}
	return seo
}

// recordView schedules the page view on a detached context so it survives the response.
func (service *Service) recordView(context context.Context, ownerID string) {
	if service.sources.Views == nil {
		return
	}
	detached := ctxutil.WithClientMeta(ctxutil.Detach(context), ctxutil.GetClientMeta(context))

	go func() {
		if err := service.sources.Views.RecordPageView(detached, ownerID); err != nil {
			ctxutil.GetLogger(detached).WarnContext(detached, "analytics_event_dropped",
				slog.String("user_id", ownerID),
				slog.String("type", "pageView"),
				slog.Any("error", err),
			)
		}
	}()
}

// PublicURL returns the address of username's public page.
func (service *Service) PublicURL(username string) string {
	return service.baseURL + "/" + username
}

// # QR Codes

// QR size bounds, in pixels.
const (
	DefaultQRSize = 256
	MinQRSize     = 128
	MaxQRSize     = 1024
)

var qrLevels = map[string]qrcode.RecoveryLevel{
	"low":     qrcode.Low,
	"medium":  qrcode.Medium,
	"high":    qrcode.High,
	"highest": qrcode.Highest,
}

/*
QRCode renders a PNG QR code pointing at username's public page.

Parameters:
  - context: context.Context
  - username: string
  - size: int (128 to 1024 pixels)
  - level: string (low, medium, high or highest)

Returns:
  - []byte: PNG image
  - error: NOT_FOUND for a malformed username, VALIDATION_ERROR for bad options
*/
func (service *Service) QRCode(context context.Context, username string, size int, level string) ([]byte, error) {
	username, err := normalize(username)
	if err != nil {
		return nil, err
	}

	recovery, known := qrLevels[level]
	v := &validate.Validator{}
	v.Range("size", size, MinQRSize, MaxQRSize).
		Custom("level", !known, "Must be one of: low, medium, high, highest")
	if err := v.Err(); err != nil {
		return nil, err
	}

	target := service.PublicURL(username)
	png, err := qrcode.Encode(target, recovery, size)
	if err != nil {
		return nil, fmt.Errorf("profile_service_qr_failed: %w", err)
	}

	ctxutil.GetLogger(context).DebugContext(context, "profile_qr_generated",
		slog.String("username", username),
		slog.Int("size", size),
		slog.String("level", level),
	)
	return png, nil
}
