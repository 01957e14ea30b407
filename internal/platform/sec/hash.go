// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordCost is the bcrypt work factor for new hashes.
	PasswordCost = 11

	// MaxPasswordBytes is the longest input bcrypt reads.
	MaxPasswordBytes = 72
)

// ErrPasswordTooLong rejects passwords bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("sec: password exceeds 72 bytes")

// HashPassword hashes a plain-text password with bcrypt at [PasswordCost].
func HashPassword(plainTextPassword string) (string, error) {
	if len(plainTextPassword) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword)) == nil
}

// NeedsRehash reports whether existingHash was made with a weaker cost than
// [PasswordCost], or cannot be read at all.
func NeedsRehash(existingHash string) bool {
	cost, err := bcrypt.Cost([]byte(existingHash))
	return err != nil || cost < PasswordCost
}
