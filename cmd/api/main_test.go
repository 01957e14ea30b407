// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/api"
	"github.com/taibuivan/sociallink/internal/billing"
	"github.com/taibuivan/sociallink/internal/datasource"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/config"
	"github.com/taibuivan/sociallink/internal/platform/constants"
	"github.com/taibuivan/sociallink/internal/platform/sec"
)

type app struct {
	t      *testing.T
	router http.Handler
	source *datasource.DataSource
}

func newApp(t *testing.T) *app {
	t.Helper()

	cfg := &config.Config{
		ServerPort:    "0",
		Environment:   "development",
		DataSource:    constants.DataSourceDemo,
		PublicBaseURL: "http://localhost:3000",
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	source, err := datasource.NewDemo()
	require.NoError(t, err)
	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	handlers := wireHandlers(cfg, source, tokens, billing.Gateways{})
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(api.HealthDependencies{
		Source:        string(source.Kind),
		CheckDatabase: source.CheckDatabase,
		CheckCache:    source.CheckCache,
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return &app{t: t, router: api.NewRouter(ctx, cfg, log, tokens, handlers), source: source}
}

func (a *app) do(method, path, body, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	a.router.ServeHTTP(recorder, request)
	return recorder
}

func (a *app) decode(recorder *httptest.ResponseRecorder, target any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(recorder.Body.Bytes(), target))
}

type sessionEnvelope struct {
	Data struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"id"`
			Username string `json:"username"`
			Plan     string `json:"plan"`
			Role     string `json:"role"`
		} `json:"user"`
	} `json:"data"`
}

func (a *app) login(email string) string {
	a.t.Helper()
	recorder := a.do(http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"`+datasource.DemoPassword+`"}`, "")
	require.Equal(a.t, http.StatusOK, recorder.Code, recorder.Body.String())

	var body sessionEnvelope
	a.decode(recorder, &body)
	return body.Data.Token
}

func TestHealthProbes(t *testing.T) {
	a := newApp(t)

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", "").Code)

	recorder := a.do(http.MethodGet, "/ready", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"source":"demo"`)
}

func TestPublicProfile(t *testing.T) {
	a := newApp(t)

	var body struct {
		Data struct {
			Username string `json:"username"`
			IsDemo   bool   `json:"isDemo"`
			Links    []any  `json:"links"`
		} `json:"data"`
	}

	recorder := a.do(http.MethodGet, "/api/profile/demo", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	a.decode(recorder, &body)
	assert.False(t, body.Data.IsDemo)
	assert.Len(t, body.Data.Links, 5)

	recorder = a.do(http.MethodGet, "/api/profile/nobody-here", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	a.decode(recorder, &body)
	assert.True(t, body.Data.IsDemo)
	assert.Equal(t, "nobody-here", body.Data.Username)

	recorder = a.do(http.MethodGet, "/api/profile/demo/qr", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "image/png", recorder.Header().Get("Content-Type"))
}

func TestSignupDerivesUniqueUsernames(t *testing.T) {
	a := newApp(t)

	var first sessionEnvelope
	recorder := a.do(http.MethodPost, "/api/auth/signup", `{"email":"a@b.com","password":"password1","name":"Ann"}`, "")
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	a.decode(recorder, &first)
	assert.Equal(t, "ann", first.Data.User.Username)
	assert.Equal(t, "free", first.Data.User.Plan)
	assert.Equal(t, "user", first.Data.User.Role)

	var second sessionEnvelope
	recorder = a.do(http.MethodPost, "/api/auth/signup", `{"email":"c@d.com","password":"password1","name":"Ann"}`, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	a.decode(recorder, &second)
	assert.Equal(t, "ann1", second.Data.User.Username)
}

func TestLinkClickIsVisibleToOwner(t *testing.T) {
	a := newApp(t)
	token := a.login(datasource.DemoEmail)

	var links struct {
		Data []struct {
			ID     string `json:"id"`
			Clicks int64  `json:"clicks"`
		} `json:"data"`
	}
	recorder := a.do(http.MethodGet, "/api/links", "", token)
	require.Equal(t, http.StatusOK, recorder.Code)
	a.decode(recorder, &links)
	require.NotEmpty(t, links.Data)
	target, before := links.Data[0].ID, links.Data[0].Clicks

	recorder = a.do(http.MethodPost, "/api/links/click", `{"linkId":"`+target+`"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = a.do(http.MethodGet, "/api/links/"+target, "", token)
	require.Equal(t, http.StatusOK, recorder.Code)

	var single struct {
		Data struct {
			Clicks int64 `json:"clicks"`
		} `json:"data"`
	}
	a.decode(recorder, &single)
	assert.Equal(t, before+1, single.Data.Clicks)
}

func TestOwnerRoutesRequireAuth(t *testing.T) {
	a := newApp(t)

	for _, path := range []string{"/api/account", "/api/page-settings", "/api/billing/products", "/api/links", "/api/analytics/summary"} {
		assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, path, "", "").Code, path)
	}
}

func TestAdminRoutes(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	operator, err := a.source.Users.FindByEmail(ctx, datasource.AdminEmail)
	require.NoError(t, err)

	userToken := a.login(datasource.DemoEmail)
	recorder := a.do(http.MethodPatch, "/api/admin/users/"+operator.ID, `{"status":"blocked"}`, userToken)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	unchanged, err := a.source.Users.FindByEmail(ctx, datasource.AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, operator.Status, unchanged.Status)

	adminToken := a.login(datasource.AdminEmail)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/admin/stats", "", adminToken).Code)

	// Closing signups through the admin surface gates the auth surface.
	require.Equal(t, http.StatusOK, a.do(http.MethodPatch, "/api/admin/settings", `{"signupsEnabled":false}`, adminToken).Code)
	recorder = a.do(http.MethodPost, "/api/auth/signup", `{"email":"late@b.com","password":"password1","name":"Late"}`, "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestBlockedAccountLosesAccessImmediately(t *testing.T) {
	a := newApp(t)
	ctx := context.Background()

	demo, err := a.source.Users.FindByEmail(ctx, datasource.DemoEmail)
	require.NoError(t, err)

	userToken := a.login(datasource.DemoEmail)
	require.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/account", "", userToken).Code)

	adminToken := a.login(datasource.AdminEmail)
	require.Equal(t, http.StatusOK, a.do(http.MethodPatch, "/api/admin/users/"+demo.ID, `{"status":"blocked"}`, adminToken).Code)

	// The access token is still unexpired but the account is blocked.
	for _, path := range []string{"/api/account", "/api/links", "/api/page-settings"} {
		recorder := a.do(http.MethodGet, path, "", userToken)
		assert.Equal(t, http.StatusForbidden, recorder.Code, path)
		assert.Contains(t, recorder.Body.String(), apperr.CodeAccountBlocked, path)
	}

	// Anonymous visitors are unaffected.
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/themes", "", "").Code)
}

func TestThemesCatalog(t *testing.T) {
	a := newApp(t)

	recorder := a.do(http.MethodGet, "/api/themes", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"midnight"`)
}
