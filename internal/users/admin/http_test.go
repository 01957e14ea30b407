// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/constants"
	"github.com/taibuivan/sociallink/internal/platform/middleware"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

type harness struct {
	*fixture
	router http.Handler
	tokens map[string]string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	issuer, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	tokens := map[string]string{}
	for id, identity := range map[string]struct {
		username string
		role     sec.UserRole
	}{
		rootID:  {"root", sec.RoleSuperAdmin},
		staffID: {"staff", sec.RoleAdmin},
		annID:   {"ann", sec.RoleUser},
	} {
		token, err := issuer.GenerateAccessToken(id, identity.username, string(identity.role), time.Minute)
		require.NoError(t, err)
		tokens[id] = token
	}

	fx := newFixture(t)
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(issuer))
	router.Mount("/api/admin", NewHandler(fx.service, NewSettingsService(NewMemorySettingsRepository())).Routes())

	return &harness{fixture: fx, router: router, tokens: tokens}
}

func (h *harness) do(method, path, body, actorID string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token, found := h.tokens[actorID]; found {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	h.router.ServeHTTP(recorder, request)
	return recorder
}

func TestHTTP_RequiresAdminRole(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/api/admin/users", "", "").Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/admin/stats", "", annID).Code)

	recorder := h.do(http.MethodPatch, "/api/admin/users/"+bobID, `{"status":"blocked"}`, annID)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	bob, err := h.users.FindByID(context.Background(), bobID)
	require.NoError(t, err)
	assert.Equal(t, auth.StatusActive, bob.Status)
}

func TestHTTP_ListUsers(t *testing.T) {
	h := newHarness(t)

	recorder := h.do(http.MethodGet, "/api/admin/users?plan=pro&limit=5", "", staffID)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []struct {
			ID     string `json:"id"`
			Links  int    `json:"links"`
			Clicks int64  `json:"clicks"`
		} `json:"data"`
		Meta struct {
			Total int `json:"total"`
			Limit int `json:"limit"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	require.Len(t, body.Data, 1)
	assert.Equal(t, bobID, body.Data[0].ID)
	assert.Equal(t, 1, body.Data[0].Links)
	assert.Equal(t, int64(2), body.Data[0].Clicks)
	assert.Equal(t, 1, body.Meta.Total)
	assert.Equal(t, 5, body.Meta.Limit)
}

func TestHTTP_UpdateUser(t *testing.T) {
	h := newHarness(t)

	recorder := h.do(http.MethodPatch, "/api/admin/users/"+annID, `{"plan":"pro"}`, staffID)
	require.Equal(t, http.StatusOK, recorder.Code)

	ann, err := h.users.FindByID(context.Background(), annID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanPro, ann.Plan)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPatch, "/api/admin/users/"+annID, `{"role":"admin"}`, staffID).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodPatch, "/api/admin/users/"+annID, `{"role":"admin"}`, rootID).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPatch, "/api/admin/users/not-a-uuid", `{}`, rootID).Code)
}

func TestHTTP_DeleteUser(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/api/admin/users/"+staffID, "", staffID).Code)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/admin/users/"+annID, "", staffID).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/admin/users/"+annID, "", staffID).Code)
}

func TestHTTP_Settings(t *testing.T) {
	h := newHarness(t)

	recorder := h.do(http.MethodPatch, "/api/admin/settings", `{"signupsEnabled":false}`, staffID)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = h.do(http.MethodGet, "/api/admin/settings", "", staffID)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data PlatformSettings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.False(t, body.Data.SignupsEnabled)
	assert.Equal(t, "default", body.Data.DefaultThemeID)
}

func TestHTTP_ListUsersByPlans(t *testing.T) {
	h := newHarness(t)

	recorder := h.do(http.MethodGet, "/api/admin/users?plan=Free,business&status=active", "", staffID)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Meta.Total)
}
