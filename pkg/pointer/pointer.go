// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

PATCH payloads decode absent fields as nil pointers; these helpers let services
apply only the fields a caller actually sent.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Apply assigns *p to *target when p is non-nil and reports whether it did.
func Apply[T any](target *T, p *T) bool {
	if p == nil {
		return false
	}
	*target = *p
	return true
}
