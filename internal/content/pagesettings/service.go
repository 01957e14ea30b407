// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagesettings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/catalog/theme"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/pkg/slice"
)

// ThemeDefaults supplies the theme new pages start with.
type ThemeDefaults interface {
	DefaultThemeID(ctx context.Context) (string, error)
}

// Service implements page customization.
type Service struct {
	repository Repository
	plans      policy.PlanResolver
	evaluator  *policy.Evaluator
	defaults   ThemeDefaults
}

// NewService constructs a new page settings [Service]. A nil defaults source
// uses the first catalog theme.
func NewService(repository Repository, plans policy.PlanResolver, evaluator *policy.Evaluator, defaults ThemeDefaults) *Service {
	return &Service{repository: repository, plans: plans, evaluator: evaluator, defaults: defaults}
}

// Repository exposes the store for the admin cascade.
func (service *Service) Repository() Repository {
	return service.repository
}

/*
Get returns the owner's settings, or the defaults when none were saved.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - *Settings: Stored or default settings
  - error: Storage failures
*/
func (service *Service) Get(context context.Context, ownerID string) (*Settings, error) {
	settings, err := service.repository.Get(context, ownerID)
	if err == nil {
		return settings, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}
	return &Settings{OwnerID: ownerID, ThemeID: service.defaultThemeID(context), Socials: []Social{}}, nil
}

func (service *Service) defaultThemeID(context context.Context) string {
	if service.defaults != nil {
		if id, err := service.defaults.DefaultThemeID(context); err == nil && id != "" {
			return id
		}
	}
	return theme.Default().ID
}

// UpdateInput holds a partial settings update. Nil fields are unchanged; an
// empty color clears the override.
type UpdateInput struct {
	ThemeID          *string
	CustomBackground *string
	CustomAccent     *string
	SEO              *SEO
	Socials          []Social
}

/*
Update applies a partial settings update.

Description: A theme change is checked against the owner's plan; premium
themes need a paid plan. Unchanged themes are not re-checked, so a downgraded
account keeps its current theme.

Parameters:
  - context: context.Context
  - ownerID: string
  - input: UpdateInput

Returns:
  - *Settings: The saved settings
  - error: VALIDATION_ERROR, FORBIDDEN or storage failures
*/
func (service *Service) Update(context context.Context, ownerID string, input UpdateInput) (*Settings, error) {
	settings, err := service.Get(context, ownerID)
	if err != nil {
		return nil, err
	}

	// ── 1. Theme access ──
	if input.ThemeID != nil {
		themeID := strings.TrimSpace(*input.ThemeID)
		if themeID != settings.ThemeID {
			plan, err := service.plans.EffectivePlan(context, ownerID)
			if err != nil {
				return nil, err
			}
			if err := service.evaluator.CheckTheme(plan, themeID); err != nil {
				return nil, err
			}
		}
		settings.ThemeID = themeID
	}

	// ── 2. Apply the rest ──
	if input.CustomBackground != nil {
		settings.CustomBackground = strings.TrimSpace(*input.CustomBackground)
	}
	if input.CustomAccent != nil {
		settings.CustomAccent = strings.TrimSpace(*input.CustomAccent)
	}
	if input.SEO != nil {
		settings.SEO = trimSEO(*input.SEO)
	}
	if input.Socials != nil {
		settings.Socials = slice.Map(input.Socials, func(social Social) Social {
			return Social{
				Platform: strings.ToLower(strings.TrimSpace(social.Platform)),
				URL:      strings.TrimSpace(social.URL),
			}
		})
	}

	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	// ── 3. Persist ──
	if err := service.repository.Upsert(context, settings); err != nil {
		return nil, fmt.Errorf("pagesettings_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "page_settings_updated",
		slog.String("user_id", ownerID),
		slog.String("theme_id", settings.ThemeID),
	)
	return settings, nil
}

func trimSEO(seo SEO) SEO {
	return SEO{
		Title:        strings.TrimSpace(seo.Title),
		Description:  strings.TrimSpace(seo.Description),
		Keywords:     strings.TrimSpace(seo.Keywords),
		OGImage:      strings.TrimSpace(seo.OGImage),
		CanonicalURL: strings.TrimSpace(seo.CanonicalURL),
	}
}

func validateSettings(settings *Settings) error {
	v := &validate.Validator{}
	v.HexColor("customBackground", settings.CustomBackground).
		HexColor("customAccent", settings.CustomAccent).
		MaxLen("seo.title", settings.SEO.Title, 70).
		MaxLen("seo.description", settings.SEO.Description, 160).
		MaxLen("seo.keywords", settings.SEO.Keywords, 255).
		URL("seo.ogImage", settings.SEO.OGImage).
		URL("seo.canonicalUrl", settings.SEO.CanonicalURL).
		Custom("socials", len(settings.Socials) > maxSocials, fmt.Sprintf("Maximum %d social links", maxSocials))

	for index, social := range settings.Socials {
		prefix := fmt.Sprintf("socials[%d].", index)
		v.Required(prefix+"platform", social.Platform).
			MaxLen(prefix+"platform", social.Platform, 30).
			Required(prefix+"url", social.URL).
			URL(prefix+"url", social.URL)
	}
	return v.Err()
}

// ThemeOption is a catalog entry annotated for the caller.
type ThemeOption struct {
	theme.Theme
	Accessible bool `json:"accessible"`
}

// Themes returns the catalog with an accessibility flag for the given plan.
func (service *Service) Themes(plan policy.Plan) []ThemeOption {
	catalog := theme.Catalog()
	options := make([]ThemeOption, 0, len(catalog))
	for _, entry := range catalog {
		options = append(options, ThemeOption{Theme: entry, Accessible: service.evaluator.CanUseTheme(plan, entry)})
	}
	return options
}

// PlanFor resolves the caller's plan; anonymous callers are treated as free.
func (service *Service) PlanFor(context context.Context, userID string) policy.Plan {
	if userID == "" {
		return policy.PlanFree
	}
	plan, err := service.plans.EffectivePlan(context, userID)
	if err != nil {
		return policy.PlanFree
	}
	return plan
}
