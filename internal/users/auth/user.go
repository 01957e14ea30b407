// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the account and session layer.

It owns the Account entity (every tenant of the platform), the credential
lifecycle (signup, login, refresh rotation, password reset) and the account
repositories shared by the rest of the system.

# Architecture

Entities here depend only on platform primitives and the plan enum. Other
domains reference accounts by ID and read them through [UserRepository].
*/
package auth

import (
	"time"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/sec"
)

// # Domain Entities

// Status is the moderation state of an account.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusBlocked
}

// User is a registered account. Its username is the public page slug.
type User struct {
	ID            string       `json:"id"`
	Email         string       `json:"email"`
	PasswordHash  string       `json:"-"`
	DisplayName   string       `json:"name"`
	Username      string       `json:"username"`
	Bio           string       `json:"bio"`
	AvatarURL     string       `json:"avatar"`
	Website       string       `json:"website"`
	Role          sec.UserRole `json:"role"`
	Plan          policy.Plan  `json:"plan"`
	PlanExpiresAt *time.Time   `json:"planExpiresAt"`
	Status        Status       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// EffectivePlan returns the plan in force at now. A paid plan past its expiry is free.
func (u *User) EffectivePlan(now time.Time) policy.Plan {
	if !u.Plan.IsValid() {
		return policy.PlanFree
	}
	if u.Plan.IsPaid() && u.PlanExpiresAt != nil && !now.Before(*u.PlanExpiresAt) {
		return policy.PlanFree
	}
	return u.Plan
}

// IsBlocked reports whether the account is suspended.
func (u *User) IsBlocked() bool {
	return u.Status == StatusBlocked
}

// Clone returns a copy that shares no pointers with u.
func (u *User) Clone() *User {
	clone := *u
	if u.PlanExpiresAt != nil {
		expiry := *u.PlanExpiresAt
		clone.PlanExpiresAt = &expiry
	}
	return &clone
}

// Session represents an active refresh-token session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `json:"isRevoked"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Queries

// ListFilter narrows an account listing. Empty fields match everything.
type ListFilter struct {
	// Query matches email, username or display name, case-insensitively.
	Query  string
	Status Status
	// Plans keeps accounts on any of the listed plans. Empty means every plan.
	Plans []policy.Plan
}

// Stats is a platform-wide account census.
type Stats struct {
	Total    int                 `json:"total"`
	ByPlan   map[policy.Plan]int `json:"byPlan"`
	ByStatus map[Status]int      `json:"byStatus"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldName            = "name"
	FieldUsername        = "username"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldAccessToken     = "token"
	FieldTokenType       = "tokenType"
	FieldExpiresIn       = "expiresIn"
	FieldUser            = "user"
	FieldMessage         = "message"
)
