// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package policy centralizes what each subscription plan may do.

Every create path (links, files, forms) and every theme change asks the [Evaluator]
before writing. The public profile renderer never does: a downgraded account keeps
its previously selected premium theme.

Limits:

	plan      links  files  forms  file size  premium themes
	free      10     3      1      2 MiB      no
	pro       100    50     20     10 MiB     yes
	business  -      -      -      25 MiB     yes
*/
package policy

import (
	"context"
	"fmt"

	"github.com/taibuivan/sociallink/internal/catalog/theme"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
)

// # Plans

// Plan is a subscription tier.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

// IsValid reports whether p is a known plan.
func (p Plan) IsValid() bool {
	switch p {
	case PlanFree, PlanPro, PlanBusiness:
		return true
	}
	return false
}

// IsPaid reports whether p is above the free tier.
func (p Plan) IsPaid() bool {
	return p == PlanPro || p == PlanBusiness
}

// # Limits

// Resource is something a plan caps the count of.
type Resource string

const (
	ResourceLink Resource = "links"
	ResourceFile Resource = "files"
	ResourceForm Resource = "forms"
)

// Unlimited marks a count limit that does not apply.
const Unlimited = -1

const mebibyte = 1 << 20

// Limits is the allowance of one plan.
type Limits struct {
	MaxLinks      int   `json:"maxLinks"`
	MaxFiles      int   `json:"maxFiles"`
	MaxForms      int   `json:"maxForms"`
	MaxFileBytes  int64 `json:"maxFileBytes"`
	PremiumThemes bool  `json:"premiumThemes"`
}

// max returns the count limit for resource.
func (l Limits) max(resource Resource) int {
	switch resource {
	case ResourceLink:
		return l.MaxLinks
	case ResourceFile:
		return l.MaxFiles
	case ResourceForm:
		return l.MaxForms
	}
	return 0
}

var defaultLimits = map[Plan]Limits{
	PlanFree:     {MaxLinks: 10, MaxFiles: 3, MaxForms: 1, MaxFileBytes: 2 * mebibyte},
	PlanPro:      {MaxLinks: 100, MaxFiles: 50, MaxForms: 20, MaxFileBytes: 10 * mebibyte, PremiumThemes: true},
	PlanBusiness: {MaxLinks: Unlimited, MaxFiles: Unlimited, MaxForms: Unlimited, MaxFileBytes: 25 * mebibyte, PremiumThemes: true},
}

// # Evaluator

// PlanResolver looks up the plan currently in force for an account.
type PlanResolver interface {
	EffectivePlan(ctx context.Context, userID string) (Plan, error)
}

// Evaluator answers plan questions. It is immutable and safe for concurrent use.
type Evaluator struct {
	limits map[Plan]Limits
}

// NewEvaluator returns an evaluator over the standard plan table.
func NewEvaluator() *Evaluator {
	return &Evaluator{limits: defaultLimits}
}

// Limits returns the allowance for plan. Unknown plans get the free allowance.
func (evaluator *Evaluator) Limits(plan Plan) Limits {
	if limits, found := evaluator.limits[plan]; found {
		return limits
	}
	return evaluator.limits[PlanFree]
}

/*
CheckCreate verifies that an owner holding current items of resource may add one more.

Returns:
  - error: apperr PLAN_LIMIT_REACHED (403) when the plan's cap is already reached
*/
func (evaluator *Evaluator) CheckCreate(plan Plan, resource Resource, current int) error {
	limit := evaluator.Limits(plan).max(resource)
	if limit == Unlimited || current < limit {
		return nil
	}
	return apperr.PlanLimit(fmt.Sprintf("The %s plan allows up to %d %s. Upgrade to add more.", plan, limit, resource))
}

// CheckFileSize verifies that a file of size bytes fits the plan.
func (evaluator *Evaluator) CheckFileSize(plan Plan, size int64) error {
	limit := evaluator.Limits(plan).MaxFileBytes
	if size <= limit {
		return nil
	}
	return apperr.PlanLimit(fmt.Sprintf("The %s plan allows files up to %d MiB", plan, limit/mebibyte))
}

// CanUseTheme reports whether plan may select entry.
func (evaluator *Evaluator) CanUseTheme(plan Plan, entry theme.Theme) bool {
	return !entry.Premium || evaluator.Limits(plan).PremiumThemes
}

/*
CheckTheme verifies a theme selection before it is saved.

Returns:
  - error: VALIDATION_ERROR for an unknown id, FORBIDDEN for a premium theme on a plan without access
*/
func (evaluator *Evaluator) CheckTheme(plan Plan, themeID string) error {
	entry, found := theme.Find(themeID)
	if !found {
		return apperr.ValidationError("Validation failed", apperr.FieldError{Field: "themeId", Message: "Unknown theme"})
	}
	if !evaluator.CanUseTheme(plan, entry) {
		return apperr.Forbidden(fmt.Sprintf("The %s theme requires a Pro or Business plan", entry.Name))
	}
	return nil
}
