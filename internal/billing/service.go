// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/catalog/product"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/internal/users/auth"
	"github.com/taibuivan/sociallink/pkg/uuid"
)

const currencyINR = "INR"

// Gateways holds the configured payment providers. A nil gateway disables its provider.
type Gateways struct {
	Checkout       CheckoutGateway
	Orders         OrderGateway
	RazorpaySecret string
}

// Service implements plan purchases.
type Service struct {
	orders   OrderRepository
	users    auth.UserRepository
	gateways Gateways
	now      func() time.Time
}

// NewService constructs a new billing [Service].
func NewService(orders OrderRepository, users auth.UserRepository, gateways Gateways) *Service {
	return &Service{
		orders:   orders,
		users:    users,
		gateways: gateways,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PlanState is an account's subscription after a billing operation.
type PlanState struct {
	Plan          policy.Plan `json:"plan"`
	PlanExpiresAt *time.Time  `json:"planExpiresAt"`
}

// Products returns the purchasable catalog.
func (service *Service) Products() []product.Product {
	return product.Catalog()
}

func findProduct(productID string) (product.Product, error) {
	entry, found := product.Find(productID)
	if !found {
		return product.Product{}, validate.RequiredError("productId", "Unknown product")
	}
	return entry, nil
}

// # Stripe

// Checkout is what the client mounts the embedded Stripe form with.
type Checkout struct {
	ClientSecret string `json:"clientSecret"`
	SessionID    string `json:"sessionId"`
}

/*
StartCheckout opens a Stripe embedded checkout for productID.

Parameters:
  - context: context.Context
  - ownerID: string
  - productID: string

Returns:
  - *Checkout: Client secret and session id
  - error: SERVICE_UNAVAILABLE when Stripe is not configured, VALIDATION_ERROR for unknown products
*/
func (service *Service) StartCheckout(context context.Context, ownerID, productID string) (*Checkout, error) {
	if service.gateways.Checkout == nil {
		return nil, apperr.ServiceUnavailable("Stripe is not configured")
	}
	entry, err := findProduct(productID)
	if err != nil {
		return nil, err
	}

	session, err := service.gateways.Checkout.CreateCheckout(context, ownerID, entry)
	if err != nil {
		return nil, err
	}

	order := &Order{
		ID: uuid.New(), OwnerID: ownerID, Provider: ProviderStripe, ProviderRef: session.ID,
		ProductID: entry.ID, Amount: entry.USDCents, Currency: "USD", Status: StatusPending,
	}
	if err := service.orders.Create(context, order); err != nil {
		return nil, fmt.Errorf("billing_service_checkout_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "billing_checkout_started",
		slog.String("user_id", ownerID),
		slog.String("provider", string(ProviderStripe)),
		slog.String("product_id", entry.ID),
	)
	return &Checkout{ClientSecret: session.ClientSecret, SessionID: session.ID}, nil
}

// SessionStatus reports a checkout session back to the client.
type SessionStatus struct {
	SessionID string `json:"sessionId"`
	Complete  bool   `json:"complete"`
	Paid      bool   `json:"paid"`
	PlanState
}

/*
ConfirmCheckout checks a Stripe session and applies the upgrade once it is paid.

Returns:
  - *SessionStatus: Session state and the account's resulting plan
  - error: NOT_FOUND when the session was not started by this owner
*/
func (service *Service) ConfirmCheckout(context context.Context, ownerID, sessionID string) (*SessionStatus, error) {
	if service.gateways.Checkout == nil {
		return nil, apperr.ServiceUnavailable("Stripe is not configured")
	}

	order, err := service.orders.FindByProviderRef(context, ownerID, ProviderStripe, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := service.gateways.Checkout.RetrieveCheckout(context, sessionID)
	if err != nil {
		return nil, err
	}

	status := &SessionStatus{SessionID: sessionID, Complete: session.Complete, Paid: session.Paid}
	if session.Complete && session.Paid {
		state, err := service.fulfil(context, order)
		if err != nil {
			return nil, err
		}
		status.PlanState = *state
		return status, nil
	}

	state, err := service.currentPlan(context, ownerID)
	if err != nil {
		return nil, err
	}
	status.PlanState = *state
	return status, nil
}

// # Razorpay

// RazorpayOrder is what the client opens Razorpay checkout with.
type RazorpayOrder struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// CreateRazorpayOrder registers a Razorpay order for productID in INR paise.
func (service *Service) CreateRazorpayOrder(context context.Context, ownerID, productID string) (*RazorpayOrder, error) {
	if service.gateways.Orders == nil {
		return nil, apperr.ServiceUnavailable("Razorpay is not configured")
	}
	entry, err := findProduct(productID)
	if err != nil {
		return nil, err
	}

	order := &Order{
		ID: uuid.New(), OwnerID: ownerID, Provider: ProviderRazorpay,
		ProductID: entry.ID, Amount: entry.INRPaise, Currency: currencyINR, Status: StatusPending,
	}
	order.ProviderRef, err = service.gateways.Orders.CreateOrder(context, order.Amount, order.Currency, order.ID)
	if err != nil {
		return nil, err
	}
	if err := service.orders.Create(context, order); err != nil {
		return nil, fmt.Errorf("billing_service_order_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "billing_checkout_started",
		slog.String("user_id", ownerID),
		slog.String("provider", string(ProviderRazorpay)),
		slog.String("product_id", entry.ID),
	)
	return &RazorpayOrder{
		OrderID:  order.ProviderRef,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    service.gateways.Orders.KeyID(),
	}, nil
}

// VerifyInput is the Razorpay checkout callback payload.
type VerifyInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

/*
VerifyRazorpay checks a payment signature and applies the upgrade.

Description: The signature is HMAC-SHA256 of "orderId|paymentId" keyed with the
Razorpay key secret. A mismatch leaves the plan untouched.

Returns:
  - *PlanState: The account's resulting plan
  - error: INVALID_SIGNATURE on mismatch, NOT_FOUND for orders of other owners
*/
func (service *Service) VerifyRazorpay(context context.Context, ownerID string, input VerifyInput) (*PlanState, error) {
	if service.gateways.Orders == nil {
		return nil, apperr.ServiceUnavailable("Razorpay is not configured")
	}

	v := &validate.Validator{}
	v.Required("orderId", input.OrderID).
		Required("paymentId", input.PaymentID).
		Required("signature", input.Signature)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if !sec.VerifyHMAC(input.OrderID+"|"+input.PaymentID, input.Signature, service.gateways.RazorpaySecret) {
		ctxutil.GetLogger(context).WarnContext(context, "billing_signature_rejected",
			slog.String("user_id", ownerID),
			slog.String("order_id", input.OrderID),
		)
		return nil, apperr.InvalidSignature()
	}

	order, err := service.orders.FindByProviderRef(context, ownerID, ProviderRazorpay, input.OrderID)
	if err != nil {
		return nil, err
	}
	return service.fulfil(context, order)
}

// # Plan Changes

// fulfil upgrades the owner of order and then marks it paid. The order stays
// pending until the upgrade is stored, so a failed upgrade can be retried.
// Repeated confirmations of a paid order return the current plan without
// extending it again.
func (service *Service) fulfil(context context.Context, order *Order) (*PlanState, error) {
	if order.Status == StatusPaid {
		return service.currentPlan(context, order.OwnerID)
	}

	entry, err := findProduct(order.ProductID)
	if err != nil {
		return nil, err
	}
	expiresAt := service.now().AddDate(0, 0, entry.PeriodDays)
	if err := service.users.UpdatePlan(context, order.OwnerID, entry.Plan, &expiresAt); err != nil {
		return nil, fmt.Errorf("billing_service_upgrade_failed: %w", err)
	}

	transitioned, err := service.orders.MarkPaid(context, order.ID)
	if err != nil {
		return nil, fmt.Errorf("billing_service_fulfil_failed: %w", err)
	}
	if !transitioned {
		// A concurrent confirmation got there first.
		return service.currentPlan(context, order.OwnerID)
	}

	ctxutil.GetLogger(context).InfoContext(context, "billing_plan_upgraded",
		slog.String("user_id", order.OwnerID),
		slog.String("provider", string(order.Provider)),
		slog.String("plan", string(entry.Plan)),
		slog.Time("expires_at", expiresAt),
	)
	return &PlanState{Plan: entry.Plan, PlanExpiresAt: &expiresAt}, nil
}

// Cancel moves the owner back to the free plan.
func (service *Service) Cancel(context context.Context, ownerID string) (*PlanState, error) {
	if err := service.users.UpdatePlan(context, ownerID, policy.PlanFree, nil); err != nil {
		return nil, fmt.Errorf("billing_service_cancel_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "billing_plan_cancelled", slog.String("user_id", ownerID))
	return &PlanState{Plan: policy.PlanFree}, nil
}

func (service *Service) currentPlan(context context.Context, ownerID string) (*PlanState, error) {
	user, err := service.users.FindByID(context, ownerID)
	if err != nil {
		return nil, err
	}
	return &PlanState{Plan: user.EffectivePlan(service.now()), PlanExpiresAt: user.PlanExpiresAt}, nil
}

// DeleteByOwner removes every order of the owner.
func (service *Service) DeleteByOwner(context context.Context, ownerID string) error {
	return service.orders.DeleteByOwner(context, ownerID)
}
