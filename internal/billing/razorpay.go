// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements [OrderGateway] with the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
	keyID  string
}

// NewRazorpayGateway creates a gateway for the given key pair.
func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret), keyID: keyID}
}

// CreateOrder implements [OrderGateway]. The Razorpay client has no context
// support, so cancellation is only checked before the call.
func (gateway *RazorpayGateway) CreateOrder(context context.Context, amount int64, currency, receipt string) (string, error) {
	if err := context.Err(); err != nil {
		return "", err
	}

	body, err := gateway.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay_order_create_failed: %w", err)
	}

	orderID, ok := body["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay_order_create_failed: response has no order id")
	}
	return orderID, nil
}

func (gateway *RazorpayGateway) KeyID() string {
	return gateway.keyID
}
