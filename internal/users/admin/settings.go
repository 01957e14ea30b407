// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/sociallink/internal/catalog/theme"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/validate"
)

// PlatformSettings are the operator-controlled switches of the platform.
type PlatformSettings struct {
	SignupsEnabled    bool      `json:"signupsEnabled"`
	MaintenanceNotice string    `json:"maintenanceNotice"`
	DefaultThemeID    string    `json:"defaultThemeId"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DefaultPlatformSettings is what a fresh install runs with.
func DefaultPlatformSettings() *PlatformSettings {
	return &PlatformSettings{SignupsEnabled: true, DefaultThemeID: theme.Default().ID}
}

const (
	settingsKey        = "platform"
	resourceSettings   = "Platform settings"
	maxMaintenanceText = 500
)

// SettingsRepository persists the platform settings document.
type SettingsRepository interface {

	// Get returns the stored settings, or apperr.NotFound when none were saved.
	Get(context context.Context) (*PlatformSettings, error)

	// Save replaces the stored settings.
	Save(context context.Context, settings *PlatformSettings) error
}

// SettingsService reads and edits the platform settings. It also serves as the
// signup gate and the default theme source for new pages.
type SettingsService struct {
	repository SettingsRepository
}

// NewSettingsService constructs a new [SettingsService].
func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

// Get returns the current settings, falling back to the defaults.
func (service *SettingsService) Get(context context.Context) (*PlatformSettings, error) {
	settings, err := service.repository.Get(context)
	if err != nil {
		if apperr.IsNotFound(err) {
			return DefaultPlatformSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// SettingsInput is a partial settings update.
type SettingsInput struct {
	SignupsEnabled    *bool   `json:"signupsEnabled"`
	MaintenanceNotice *string `json:"maintenanceNotice"`
	DefaultThemeID    *string `json:"defaultThemeId"`
}

/*
Update applies a partial settings update.

Returns:
  - *PlatformSettings: The saved settings
  - error: VALIDATION_ERROR for unknown themes or an oversized notice
*/
func (service *SettingsService) Update(context context.Context, input SettingsInput) (*PlatformSettings, error) {
	settings, err := service.Get(context)
	if err != nil {
		return nil, err
	}

	if input.SignupsEnabled != nil {
		settings.SignupsEnabled = *input.SignupsEnabled
	}
	if input.MaintenanceNotice != nil {
		settings.MaintenanceNotice = strings.TrimSpace(*input.MaintenanceNotice)
	}
	if input.DefaultThemeID != nil {
		settings.DefaultThemeID = strings.TrimSpace(*input.DefaultThemeID)
	}

	_, knownTheme := theme.Find(settings.DefaultThemeID)
	v := &validate.Validator{}
	v.MaxLen("maintenanceNotice", settings.MaintenanceNotice, maxMaintenanceText).
		Custom("defaultThemeId", !knownTheme, "Unknown theme")
	if err := v.Err(); err != nil {
		return nil, err
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := service.repository.Save(context, settings); err != nil {
		return nil, fmt.Errorf("admin_settings_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "platform_settings_updated",
		slog.Bool("signups_enabled", settings.SignupsEnabled),
		slog.String("default_theme_id", settings.DefaultThemeID),
	)
	return settings, nil
}

// SignupsEnabled implements the auth signup gate.
func (service *SettingsService) SignupsEnabled(context context.Context) (bool, error) {
	settings, err := service.Get(context)
	if err != nil {
		return false, err
	}
	return settings.SignupsEnabled, nil
}

// DefaultThemeID implements the page settings theme default.
func (service *SettingsService) DefaultThemeID(context context.Context) (string, error) {
	settings, err := service.Get(context)
	if err != nil {
		return "", err
	}
	return settings.DefaultThemeID, nil
}
