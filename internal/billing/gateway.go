// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"

	"github.com/taibuivan/sociallink/internal/catalog/product"
)

// CheckoutSession is the provider-neutral view of a Stripe checkout session.
type CheckoutSession struct {
	ID           string
	ClientSecret string
	Complete     bool
	Paid         bool
}

// CheckoutGateway creates and inspects hosted checkout sessions.
type CheckoutGateway interface {
	CreateCheckout(context context.Context, ownerID string, entry product.Product) (*CheckoutSession, error)
	RetrieveCheckout(context context.Context, sessionID string) (*CheckoutSession, error)
}

// OrderGateway creates provider-side orders that the client pays against.
type OrderGateway interface {

	// CreateOrder registers amount (minor units) in currency and returns the provider's order id.
	CreateOrder(context context.Context, amount int64, currency, receipt string) (string, error)

	// KeyID is the public key the client checkout is opened with.
	KeyID() string
}
