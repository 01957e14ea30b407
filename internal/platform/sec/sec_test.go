// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/sociallink/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies a generated token verifies with the same claims.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewEphemeralTokenService("sociallink.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("acc-1", "ann", string(sec.RoleUser), time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.UserID)
	assert.Equal(t, "ann", claims.Username)
	assert.Equal(t, "user", claims.Role)
}

/*
TestTokenService_RejectsForeignKey ensures tokens from another key pair fail verification.
*/
func TestTokenService_RejectsForeignKey(t *testing.T) {
	issuer, err := sec.NewEphemeralTokenService("sociallink.test")
	require.NoError(t, err)
	other, err := sec.NewEphemeralTokenService("sociallink.test")
	require.NoError(t, err)

	token, err := issuer.GenerateAccessToken("acc-1", "ann", "user", time.Minute)
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsExpired ensures expired tokens are refused.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service, err := sec.NewEphemeralTokenService("sociallink.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("acc-1", "ann", "user", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("password1")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("password1", hash))
	assert.False(t, sec.CheckPasswordHash("password2", hash))
	assert.False(t, sec.NeedsRehash(hash))

	weak, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, sec.NeedsRehash(string(weak)))
	assert.True(t, sec.NeedsRehash("not-a-hash"))

	_, err = sec.HashPassword(strings.Repeat("x", sec.MaxPasswordBytes+1))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Len(t, sec.HashToken(first), 64)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
}

func TestVerifyHMAC(t *testing.T) {
	signature := sec.SignHMAC("order_1|pay_1", "secret")

	assert.True(t, sec.VerifyHMAC("order_1|pay_1", signature, "secret"))
	assert.False(t, sec.VerifyHMAC("order_1|pay_2", signature, "secret"))
	assert.False(t, sec.VerifyHMAC("order_1|pay_1", signature, "other"))
}

func TestUserRole_Hierarchy(t *testing.T) {
	assert.True(t, sec.RoleSuperAdmin.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleAdmin.IsStaff())
	assert.False(t, sec.RoleUser.IsStaff())
	assert.False(t, sec.UserRole("moderator").IsValid())
}
