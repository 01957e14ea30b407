// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import "context"

// OrderRepository defines persistence for billing orders.
type OrderRepository interface {

	// Create stores a new order.
	Create(context context.Context, order *Order) error

	/*
		FindByProviderRef returns the owner's order created with the provider's reference.

		Returns:
		  - *Order: The order
		  - error: apperr.NotFound when the reference is unknown or belongs to another owner
	*/
	FindByProviderRef(context context.Context, ownerID string, provider Provider, providerRef string) (*Order, error)

	/*
		MarkPaid moves a pending order to paid.

		Returns:
		  - bool: False when the order was already paid
		  - error: apperr.NotFound or storage failures
	*/
	MarkPaid(context context.Context, id string) (bool, error)

	// DeleteByOwner removes every order of the owner.
	DeleteByOwner(context context.Context, ownerID string) error
}
