// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package product is the static catalog of purchasable subscription products.
package product

import (
	"slices"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
)

// Interval is the billing cadence of a product.
type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalYearly  Interval = "yearly"
	IntervalTrial   Interval = "trial"
)

// Product is one priced catalog entry. Amounts are in minor units.
type Product struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Plan       policy.Plan `json:"plan"`
	Interval   Interval    `json:"interval"`
	USDCents   int64       `json:"usdCents"`
	INRPaise   int64       `json:"inrPaise"`
	PeriodDays int         `json:"periodDays"`
}

var catalog = []Product{
	{ID: "pro_monthly", Name: "Pro (monthly)", Plan: policy.PlanPro, Interval: IntervalMonthly, USDCents: 900, INRPaise: 74900, PeriodDays: 30},
	{ID: "pro_yearly", Name: "Pro (yearly)", Plan: policy.PlanPro, Interval: IntervalYearly, USDCents: 9000, INRPaise: 749000, PeriodDays: 365},
	{ID: "pro_trial", Name: "Pro (7-day trial)", Plan: policy.PlanPro, Interval: IntervalTrial, USDCents: 100, INRPaise: 9900, PeriodDays: 7},
	{ID: "business_monthly", Name: "Business (monthly)", Plan: policy.PlanBusiness, Interval: IntervalMonthly, USDCents: 2900, INRPaise: 239900, PeriodDays: 30},
	{ID: "business_yearly", Name: "Business (yearly)", Plan: policy.PlanBusiness, Interval: IntervalYearly, USDCents: 29000, INRPaise: 2399000, PeriodDays: 365},
}

// Catalog returns a copy of every product.
func Catalog() []Product {
	return slices.Clone(catalog)
}

// Find looks a product up by id.
func Find(id string) (Product, bool) {
	for _, entry := range catalog {
		if entry.ID == id {
			return entry, true
		}
	}
	return Product{}, false
}
