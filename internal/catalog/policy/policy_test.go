// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package policy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/catalog/theme"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
)

func TestEvaluator_CheckCreate(t *testing.T) {
	evaluator := NewEvaluator()

	tests := []struct {
		name     string
		plan     Plan
		resource Resource
		current  int
		allowed  bool
	}{
		{"free under link cap", PlanFree, ResourceLink, 9, true},
		{"free at link cap", PlanFree, ResourceLink, 10, false},
		{"free second form", PlanFree, ResourceForm, 1, false},
		{"free third file", PlanFree, ResourceFile, 2, true},
		{"pro at link cap", PlanPro, ResourceLink, 100, false},
		{"pro under form cap", PlanPro, ResourceForm, 19, true},
		{"business unlimited", PlanBusiness, ResourceLink, 100_000, true},
		{"unknown plan treated as free", Plan("gold"), ResourceLink, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := evaluator.CheckCreate(tt.plan, tt.resource, tt.current)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodePlanLimitReached, appError.Code)
			assert.Equal(t, http.StatusForbidden, appError.HTTPStatus)
		})
	}
}

func TestEvaluator_CheckFileSize(t *testing.T) {
	evaluator := NewEvaluator()

	assert.NoError(t, evaluator.CheckFileSize(PlanFree, 2<<20))
	assert.True(t, apperr.HasCode(evaluator.CheckFileSize(PlanFree, 2<<20+1), apperr.CodePlanLimitReached))
	assert.NoError(t, evaluator.CheckFileSize(PlanPro, 10<<20))
	assert.NoError(t, evaluator.CheckFileSize(PlanBusiness, 25<<20))
	assert.Error(t, evaluator.CheckFileSize(PlanBusiness, 25<<20+1))
}

func TestEvaluator_ThemeAccess(t *testing.T) {
	evaluator := NewEvaluator()

	var premium theme.Theme
	for _, entry := range theme.Catalog() {
		if entry.Premium {
			premium = entry
			break
		}
	}
	require.NotEmpty(t, premium.ID)

	assert.False(t, evaluator.CanUseTheme(PlanFree, premium))
	assert.True(t, evaluator.CanUseTheme(PlanPro, premium))
	assert.True(t, evaluator.CanUseTheme(PlanBusiness, premium))
	assert.True(t, evaluator.CanUseTheme(PlanFree, theme.Default()))

	assert.True(t, apperr.HasCode(evaluator.CheckTheme(PlanFree, premium.ID), apperr.CodeForbidden))
	assert.NoError(t, evaluator.CheckTheme(PlanPro, premium.ID))
	assert.True(t, apperr.HasCode(evaluator.CheckTheme(PlanPro, "nope"), apperr.CodeValidation))
}

func TestPlan(t *testing.T) {
	assert.True(t, PlanPro.IsValid())
	assert.False(t, Plan("gold").IsValid())
	assert.True(t, PlanBusiness.IsPaid())
	assert.False(t, PlanFree.IsPaid())
}
