// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/catalog/product"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/constants"
	"github.com/taibuivan/sociallink/internal/platform/middleware"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

const (
	annID          = "0190a000-0000-7000-8000-00000000000a"
	bobID          = "0190a000-0000-7000-8000-00000000000b"
	razorpaySecret = "rzp_test_secret"
)

type fakeCheckout struct {
	sessions map[string]*CheckoutSession
}

func (gateway *fakeCheckout) CreateCheckout(_ context.Context, ownerID string, entry product.Product) (*CheckoutSession, error) {
	session := &CheckoutSession{ID: "cs_" + entry.ID + "_" + ownerID[len(ownerID)-1:], ClientSecret: "secret_" + entry.ID}
	gateway.sessions[session.ID] = session
	return session, nil
}

func (gateway *fakeCheckout) RetrieveCheckout(_ context.Context, sessionID string) (*CheckoutSession, error) {
	session, found := gateway.sessions[sessionID]
	if !found {
		return nil, apperr.NotFound("Session")
	}
	copied := *session
	return &copied, nil
}

type fakeOrders struct {
	created int
}

func (gateway *fakeOrders) CreateOrder(_ context.Context, amount int64, currency, receipt string) (string, error) {
	gateway.created++
	return "order_" + receipt[:8], nil
}

func (gateway *fakeOrders) KeyID() string { return "rzp_test_key" }

type fixture struct {
	service  *Service
	users    *auth.MemoryUserRepository
	checkout *fakeCheckout
	now      time.Time
}

func newFixture(t *testing.T, gateways Gateways) *fixture {
	t.Helper()
	users := auth.NewMemoryUserRepository()
	for _, user := range []*auth.User{
		{ID: annID, Email: "ann@example.com", Username: "ann", Role: "user", Plan: policy.PlanFree, Status: auth.StatusActive},
		{ID: bobID, Email: "bob@example.com", Username: "bob", Role: "user", Plan: policy.PlanFree, Status: auth.StatusActive},
	} {
		require.NoError(t, users.Create(context.Background(), user))
	}

	service := NewService(NewMemoryOrderRepository(), users, gateways)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return now }

	checkout, _ := gateways.Checkout.(*fakeCheckout)
	return &fixture{service: service, users: users, checkout: checkout, now: now}
}

func configured() Gateways {
	return Gateways{
		Checkout:       &fakeCheckout{sessions: map[string]*CheckoutSession{}},
		Orders:         &fakeOrders{},
		RazorpaySecret: razorpaySecret,
	}
}

func TestUnconfiguredProviders(t *testing.T) {
	fx := newFixture(t, Gateways{})
	ctx := context.Background()

	_, err := fx.service.StartCheckout(ctx, annID, "pro_monthly")
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
	_, err = fx.service.CreateRazorpayOrder(ctx, annID, "pro_monthly")
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
	_, err = fx.service.VerifyRazorpay(ctx, annID, VerifyInput{OrderID: "o", PaymentID: "p", Signature: "s"})
	assert.True(t, apperr.HasCode(err, apperr.CodeServiceUnavailable))
}

func TestStripeCheckout(t *testing.T) {
	fx := newFixture(t, configured())
	ctx := context.Background()

	_, err := fx.service.StartCheckout(ctx, annID, "gold_forever")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	checkout, err := fx.service.StartCheckout(ctx, annID, "business_yearly")
	require.NoError(t, err)
	assert.Equal(t, "secret_business_yearly", checkout.ClientSecret)

	// ── Not paid yet ──
	status, err := fx.service.ConfirmCheckout(ctx, annID, checkout.SessionID)
	require.NoError(t, err)
	assert.False(t, status.Paid)
	assert.Equal(t, policy.PlanFree, status.Plan)

	// ── Other owners cannot confirm it ──
	_, err = fx.service.ConfirmCheckout(ctx, bobID, checkout.SessionID)
	assert.True(t, apperr.IsNotFound(err))

	// ── Paid ──
	fx.checkout.sessions[checkout.SessionID].Complete = true
	fx.checkout.sessions[checkout.SessionID].Paid = true

	status, err = fx.service.ConfirmCheckout(ctx, annID, checkout.SessionID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanBusiness, status.Plan)
	require.NotNil(t, status.PlanExpiresAt)
	assert.Equal(t, fx.now.AddDate(0, 0, 365), *status.PlanExpiresAt)

	stored, err := fx.users.FindByID(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanBusiness, stored.Plan)

	// ── A second confirmation does not extend the plan ──
	fx.service.now = func() time.Time { return fx.now.Add(24 * time.Hour) }
	status, err = fx.service.ConfirmCheckout(ctx, annID, checkout.SessionID)
	require.NoError(t, err)
	assert.Equal(t, fx.now.AddDate(0, 0, 365), *status.PlanExpiresAt)
}

func TestRazorpayVerify(t *testing.T) {
	fx := newFixture(t, configured())
	ctx := context.Background()

	order, err := fx.service.CreateRazorpayOrder(ctx, annID, "pro_monthly")
	require.NoError(t, err)
	assert.Equal(t, int64(74900), order.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "rzp_test_key", order.KeyID)

	// ── Bad signature leaves the plan untouched ──
	_, err = fx.service.VerifyRazorpay(ctx, annID, VerifyInput{OrderID: order.OrderID, PaymentID: "pay_1", Signature: "deadbeef"})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidSignature))
	stored, err := fx.users.FindByID(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanFree, stored.Plan)

	// ── Valid signature for another owner's order ──
	signature := sec.SignHMAC(order.OrderID+"|pay_1", razorpaySecret)
	_, err = fx.service.VerifyRazorpay(ctx, bobID, VerifyInput{OrderID: order.OrderID, PaymentID: "pay_1", Signature: signature})
	assert.True(t, apperr.IsNotFound(err))

	// ── Valid ──
	state, err := fx.service.VerifyRazorpay(ctx, annID, VerifyInput{OrderID: order.OrderID, PaymentID: "pay_1", Signature: signature})
	require.NoError(t, err)
	assert.Equal(t, policy.PlanPro, state.Plan)
	assert.Equal(t, fx.now.AddDate(0, 0, 30), *state.PlanExpiresAt)
}

// flakyUsers fails the next failures plan updates.
type flakyUsers struct {
	*auth.MemoryUserRepository
	failures int
}

func (repository *flakyUsers) UpdatePlan(context context.Context, userID string, plan policy.Plan, expiresAt *time.Time) error {
	if repository.failures > 0 {
		repository.failures--
		return errors.New("db down")
	}
	return repository.MemoryUserRepository.UpdatePlan(context, userID, plan, expiresAt)
}

func TestRazorpayVerify_RetriesFailedUpgrade(t *testing.T) {
	fx := newFixture(t, configured())
	ctx := context.Background()

	users := &flakyUsers{MemoryUserRepository: fx.users, failures: 1}
	service := NewService(NewMemoryOrderRepository(), users, configured())
	service.now = fx.service.now

	order, err := service.CreateRazorpayOrder(ctx, annID, "pro_monthly")
	require.NoError(t, err)
	input := VerifyInput{
		OrderID:   order.OrderID,
		PaymentID: "pay_1",
		Signature: sec.SignHMAC(order.OrderID+"|pay_1", razorpaySecret),
	}

	// ── The upgrade fails and the order stays pending ──
	_, err = service.VerifyRazorpay(ctx, annID, input)
	require.Error(t, err)
	stored, err := fx.users.FindByID(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanFree, stored.Plan)

	// ── A retry applies it ──
	state, err := service.VerifyRazorpay(ctx, annID, input)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanPro, state.Plan)
	assert.Equal(t, fx.now.AddDate(0, 0, 30), *state.PlanExpiresAt)

	stored, err = fx.users.FindByID(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanPro, stored.Plan)

	// ── Later confirmations do not extend it ──
	service.now = func() time.Time { return fx.now.Add(48 * time.Hour) }
	state, err = service.VerifyRazorpay(ctx, annID, input)
	require.NoError(t, err)
	assert.Equal(t, fx.now.AddDate(0, 0, 30), *state.PlanExpiresAt)
}

func TestCancel(t *testing.T) {
	fx := newFixture(t, configured())
	ctx := context.Background()

	expiry := fx.now.AddDate(0, 1, 0)
	require.NoError(t, fx.users.UpdatePlan(ctx, annID, policy.PlanPro, &expiry))

	state, err := fx.service.Cancel(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanFree, state.Plan)

	stored, err := fx.users.FindByID(ctx, annID)
	require.NoError(t, err)
	assert.Equal(t, policy.PlanFree, stored.Plan)
	assert.Nil(t, stored.PlanExpiresAt)
}

func TestHTTP_Billing(t *testing.T) {
	fx := newFixture(t, configured())
	tokens, err := sec.NewEphemeralTokenService(constants.AuthIssuer)
	require.NoError(t, err)
	token, err := tokens.GenerateAccessToken(annID, "ann", string(sec.RoleUser), time.Minute)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokens))
	router.With(middleware.RequireAuth).Mount("/api/billing", NewHandler(fx.service).Routes())

	send := func(method, path, body, bearer string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			request.Header.Set("Authorization", "Bearer "+bearer)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodGet, "/api/billing/products", "", "").Code)

	products := send(http.MethodGet, "/api/billing/products", "", token)
	require.Equal(t, http.StatusOK, products.Code)
	assert.Contains(t, products.Body.String(), `"pro_trial"`)

	created := send(http.MethodPost, "/api/billing/razorpay/order", `{"productId":"pro_yearly"}`, token)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	rejected := send(http.MethodPost, "/api/billing/razorpay/verify", `{"orderId":"x","paymentId":"y","signature":"z"}`, token)
	assert.Equal(t, http.StatusBadRequest, rejected.Code)
	assert.Contains(t, rejected.Body.String(), apperr.CodeInvalidSignature)

	cancelled := send(http.MethodPost, "/api/billing/cancel", "", token)
	require.Equal(t, http.StatusOK, cancelled.Code)
	assert.Contains(t, cancelled.Body.String(), `"plan":"free"`)
}
