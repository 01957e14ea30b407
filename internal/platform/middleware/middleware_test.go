// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/sec"
)

type stubVerifier struct {
	claims *sec.AuthClaims
}

func (verifier stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

type stubConfig struct {
	development bool
	origins     []string
}

func (cfg stubConfig) IsDevelopment() bool       { return cfg.development }
func (cfg stubConfig) AllowedOrigins() []string { return cfg.origins }

func okHandler() http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
}

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequireRole covers anonymous, under-privileged and admin callers.
*/
func TestRequireRole(t *testing.T) {
	chain := func(role string) http.Handler {
		verifier := stubVerifier{claims: &sec.AuthClaims{UserID: "acc-1", Role: role}}
		return Authenticate(verifier)(RequireRole(sec.RoleAdmin)(okHandler()))
	}

	anonymous := serve(chain("user"), httptest.NewRequest(http.MethodGet, "/api/admin/users", nil))
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	request := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	request.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, http.StatusForbidden, serve(chain("user"), request).Code)
	assert.Equal(t, http.StatusOK, serve(chain("super-admin"), request).Code)
}

type stubGate struct {
	blocked map[string]bool
}

func (gate stubGate) CheckActive(_ context.Context, userID string) error {
	if gate.blocked[userID] {
		return apperr.AccountBlocked()
	}
	return nil
}

/*
TestRejectInactive stops tokens of blocked accounts and lets anonymous callers through.
*/
func TestRejectInactive(t *testing.T) {
	chain := func(userID string) http.Handler {
		verifier := stubVerifier{claims: &sec.AuthClaims{UserID: userID, Role: "user"}}
		gate := stubGate{blocked: map[string]bool{"acc-blocked": true}}
		return Authenticate(verifier)(RejectInactive(gate)(okHandler()))
	}

	assert.Equal(t, http.StatusOK, serve(chain("acc-blocked"), httptest.NewRequest(http.MethodGet, "/api/links", nil)).Code)

	request := httptest.NewRequest(http.MethodGet, "/api/links", nil)
	request.Header.Set("Authorization", "Bearer good")
	assert.Equal(t, http.StatusOK, serve(chain("acc-1"), request).Code)

	blocked := serve(chain("acc-blocked"), request)
	assert.Equal(t, http.StatusForbidden, blocked.Code)
	assert.Contains(t, blocked.Body.String(), apperr.CodeAccountBlocked)

	assert.Equal(t, http.StatusOK, serve(RejectInactive(nil)(okHandler()), request).Code)
}

/*
TestAuthenticate_RejectsMalformedHeader ensures a bad scheme or token is a 401.
*/
func TestAuthenticate_RejectsMalformedHeader(t *testing.T) {
	handler := Authenticate(stubVerifier{})(okHandler())

	for _, header := range []string{"Basic abc", "Bearer", "Bearer nope"} {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", header)
		assert.Equal(t, http.StatusUnauthorized, serve(handler, request).Code, header)
	}
}

/*
TestCORS_AllowList verifies only configured origins are echoed outside development.
*/
func TestCORS_AllowList(t *testing.T) {
	handler := CORS(stubConfig{origins: []string{"https://sociallink.app"}})(okHandler())

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://sociallink.app")
	assert.Equal(t, "https://sociallink.app", serve(handler, request).Header().Get("Access-Control-Allow-Origin"))

	request.Header.Set("Origin", "https://evil.example")
	assert.Empty(t, serve(handler, request).Header().Get("Access-Control-Allow-Origin"))
}

/*
TestRateLimiter_BurstThenReject checks the bucket drains and idle clients are swept.
*/
func TestRateLimiter_BurstThenReject(t *testing.T) {
	limiter := &rateLimiter{clients: make(map[string]*rateLimitClient), rps: 1, burst: 2}
	now := time.Now()

	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.True(t, limiter.allow("10.0.0.1", now))
	assert.False(t, limiter.allow("10.0.0.1", now))
	assert.True(t, limiter.allow("10.0.0.2", now))

	limiter.sweep(now.Add(time.Hour), time.Minute)
	assert.Empty(t, limiter.clients)
}

/*
TestRateLimit_Middleware returns 429 once the burst is spent.
*/
func TestRateLimit_Middleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := RateLimitWith(ctx, 0.001, 1)(okHandler())
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, serve(handler, request).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(handler, request).Code)
}

/*
TestClientMeta_CapturesHeaders ensures analytics inputs reach the context.
*/
func TestClientMeta_CapturesHeaders(t *testing.T) {
	var captured ctxutil.ClientMeta
	handler := ClientMeta()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		captured = ctxutil.GetClientMeta(request.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("User-Agent", "Mozilla/5.0 (iPhone)")
	request.Header.Set("Referer", "https://www.instagram.com/")
	request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	serve(handler, request)

	assert.Equal(t, "Mozilla/5.0 (iPhone)", captured.UserAgent)
	assert.Equal(t, "https://www.instagram.com/", captured.Referrer)
	assert.Equal(t, "203.0.113.9", captured.IPAddress)
}

/*
TestPanicRecovery converts a panic into a 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := PanicRecovery(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	assert.Equal(t, http.StatusInternalServerError, serve(handler, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}
