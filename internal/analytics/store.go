// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"time"
)

// Bucket is one grouped slice of the owner's events.
type Bucket struct {
	Day      time.Time
	Type     Type
	Device   Device
	Referrer string
	LinkID   string
	Count    int64
}

// Repository defines persistence for analytics events.
type Repository interface {

	// Append stores one event.
	Append(context context.Context, event *Event) error

	/*
		Aggregate groups the owner's events created at or after since by UTC day,
		type, device, referrer and link.

		Returns:
		  - []Bucket: One entry per non-empty group
		  - error: Storage failures
	*/
	Aggregate(context context.Context, ownerID string, since time.Time) ([]Bucket, error)

	// CountByType returns platform-wide totals per event type.
	CountByType(context context.Context) (map[Type]int64, error)

	// DeleteByOwner removes every event of the owner.
	DeleteByOwner(context context.Context, ownerID string) error
}
