// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package billing upgrades accounts through Stripe embedded checkout or Razorpay
orders.

Every checkout first stores a pending [Order]. Confirmation reads the product
from that record, never from the client, then marks it paid and moves the
account to the product's plan until now + the product's period.
*/
package billing

import "time"

// Provider names a payment processor.
type Provider string

const (
	ProviderStripe   Provider = "stripe"
	ProviderRazorpay Provider = "razorpay"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

const resourceOrder = "Order"

// Order records one checkout attempt.
type Order struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Provider    Provider  `json:"provider"`
	ProviderRef string    `json:"providerRef"`
	ProductID   string    `json:"productId"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
