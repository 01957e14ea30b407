// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/platform/constants"
	"github.com/taibuivan/sociallink/internal/platform/middleware"
	"github.com/taibuivan/sociallink/internal/platform/sec"
)

func newTestRouter(t *testing.T) (http.Handler, *fixture) {
	t.Helper()

	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)

	f := newFixture(nil)
	f.service.tokenProvider = tokens

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.Mount("/api/auth", NewHandler(f.service, true).Routes())
	return router, f
}

func doJSON(handler http.Handler, method, path, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	for _, apply := range mutate {
		apply(request)
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

type authEnvelope struct {
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

func TestHTTP_SignupThenMe(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doJSON(router, http.MethodPost, "/api/auth/signup", `{"email":"a@b.com","password":"password1","name":"Ann"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var body authEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ann", body.Data.User.Username)
	assert.Equal(t, "free", body.Data.User.Plan)
	assert.Equal(t, "user", body.Data.User.Role)
	assert.NotContains(t, recorder.Body.String(), "password")

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.RefreshTokenCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	me := doJSON(router, http.MethodGet, "/api/auth/me", "", func(request *http.Request) {
		request.Header.Set("Authorization", "Bearer "+body.Data.Token)
	})
	assert.Equal(t, http.StatusOK, me.Code)
	assert.Contains(t, me.Body.String(), `"username":"ann"`)
}

func TestHTTP_SignupValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doJSON(router, http.MethodPost, "/api/auth/signup", `{"email":"nope","password":"short","name":""}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")

	recorder = doJSON(router, http.MethodPost, "/api/auth/signup", `{not json`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHTTP_MeRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doJSON(router, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHTTP_LoginRefreshLogout(t *testing.T) {
	router, _ := newTestRouter(t)
	doJSON(router, http.MethodPost, "/api/auth/signup", `{"email":"a@b.com","password":"password1","name":"Ann"}`)

	login := doJSON(router, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"password1"}`)
	require.Equal(t, http.StatusOK, login.Code)
	refreshCookie := login.Result().Cookies()[0]

	refresh := doJSON(router, http.MethodPost, "/api/auth/refresh", "", func(request *http.Request) {
		request.AddCookie(refreshCookie)
	})
	require.Equal(t, http.StatusOK, refresh.Code)
	assert.Contains(t, refresh.Body.String(), `"tokenType":"Bearer"`)
	rotated := refresh.Result().Cookies()[0]

	logout := doJSON(router, http.MethodPost, "/api/auth/logout", "", func(request *http.Request) {
		request.AddCookie(rotated)
	})
	assert.Equal(t, http.StatusNoContent, logout.Code)

	again := doJSON(router, http.MethodPost, "/api/auth/refresh", "", func(request *http.Request) {
		request.AddCookie(rotated)
	})
	assert.Equal(t, http.StatusUnauthorized, again.Code)
}

func TestHTTP_ForgotPasswordIsGeneric(t *testing.T) {
	router, _ := newTestRouter(t)

	recorder := doJSON(router, http.MethodPost, "/api/auth/forgot-password", `{"email":"ghost@b.com"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "If this email is registered")
}
