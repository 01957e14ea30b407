// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a session/refresh token remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random secure token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32

	// MinPasswordLength applies to signup, reset and change.
	MinPasswordLength = 8

	// derivedUsernameLength caps the base of an auto-generated username, leaving
	// room for a numeric suffix within the 30 character limit.
	derivedUsernameLength = 24

	// maxUsernameAttempts bounds the suffix search when deriving a free username.
	maxUsernameAttempts = 1000
)
