// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/taibuivan/sociallink/internal/catalog/product"
)

// StripeGateway implements [CheckoutGateway] with Stripe embedded checkout.
type StripeGateway struct {
	api       *client.API
	returnURL string
}

// NewStripeGateway creates a gateway for secretKey. returnURL may contain the
// {CHECKOUT_SESSION_ID} placeholder.
func NewStripeGateway(secretKey, returnURL string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api, returnURL: returnURL}
}

func (gateway *StripeGateway) CreateCheckout(context context.Context, ownerID string, entry product.Product) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		UIMode:            stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ReturnURL:         stripe.String(gateway.returnURL),
		ClientReferenceID: stripe.String(ownerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(entry.USDCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(entry.Name),
				},
			},
			Quantity: stripe.Int64(1),
		}},
	}
	params.Context = context
	params.AddMetadata("productId", entry.ID)
	params.AddMetadata("userId", ownerID)

	session, err := gateway.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe_checkout_create_failed: %w", err)
	}
	return toCheckoutSession(session), nil
}

func (gateway *StripeGateway) RetrieveCheckout(context context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = context

	session, err := gateway.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe_checkout_retrieve_failed: %w", err)
	}
	return toCheckoutSession(session), nil
}

func toCheckoutSession(session *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:           session.ID,
		ClientSecret: session.ClientSecret,
		Complete:     session.Status == stripe.CheckoutSessionStatusComplete,
		Paid:         session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
}
