// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/pkg/slug"
	"github.com/taibuivan/sociallink/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given account.
	GenerateAccessToken(userID, username, role string, timeToLive time.Duration) (string, error)
}

// SignupGate decides whether new accounts may be created right now.
type SignupGate interface {
	SignupsEnabled(context context.Context) (bool, error)
}

// ResetNotifier delivers a password reset token to the account owner.
type ResetNotifier interface {
	SendPasswordReset(context context.Context, user *User, token string) error
}

// LogNotifier writes reset links to the structured log. It stands in for a mail
// provider in development and demo deployments.
type LogNotifier struct {
	baseURL string
}

// NewLogNotifier builds links under baseURL (the public web origin).
func NewLogNotifier(baseURL string) *LogNotifier {
	return &LogNotifier{baseURL: strings.TrimRight(baseURL, "/")}
}

// SendPasswordReset implements [ResetNotifier].
func (notifier *LogNotifier) SendPasswordReset(context context.Context, user *User, token string) error {
	ctxutil.GetLogger(context).InfoContext(context, "password_reset_link_issued",
		slog.String("user_id", user.ID),
		slog.String("link", notifier.baseURL+"/reset-password?token="+token),
	)
	return nil
}

// Service implements account authentication use cases.
type Service struct {
	userRepository       UserRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
	signupGate           SignupGate
	notifier             ResetNotifier
	now                  func() time.Time
}

// NewService constructs a new [Service]. A nil gate allows every signup; a nil
// notifier drops reset tokens after storing them.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
	gate SignupGate,
	notifier ResetNotifier,
) *Service {
	return &Service{
		userRepository:       userRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
		signupGate:           gate,
		notifier:             notifier,
		now:                  time.Now,
	}
}

// Users exposes the account repository to sibling packages (account, admin).
func (service *Service) Users() UserRepository {
	return service.userRepository
}

// Sessions exposes the session store for account removal.
func (service *Service) Sessions() SessionRepository {
	return service.sessionRepository
}

// # Registration Flow

// SignupInput holds the data required to open a new account.
type SignupInput struct {
	Email     string
	Password  string
	Name      string
	UserAgent string
	IPAddress string
}

/*
Signup creates an account and logs it in.

Description: The username is derived from the display name (or the email local
part when the name has no usable characters) and suffixed 1, 2, ... until it is
free. New accounts start as active users on the free plan.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *LoginSession: Tokens plus the created account
  - error: FORBIDDEN when signups are closed, CONFLICT for a registered email
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*LoginSession, error) {

	// ── 1. Platform gate ──
	if service.signupGate != nil {
		enabled, err := service.signupGate.SignupsEnabled(context)
		if err != nil {
			return nil, fmt.Errorf("auth_service_signup_gate_failed: %w", err)
		}
		if !enabled {
			return nil, apperr.Forbidden("Signups are currently disabled")
		}
	}

	// ── 2. Email uniqueness ──
	email := NormalizeEmail(input.Email)
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, err
	}

	// ── 3. Identity ──
	name := strings.TrimSpace(input.Name)
	username, err := service.deriveUsername(context, name, email)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(FieldPassword, input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		DisplayName:  name,
		Username:     username,
		Role:         sec.RoleUser,
		Plan:         policy.PlanFree,
		Status:       StatusActive,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("Email or username is already registered")
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	// ── 4. Session ──
	return service.issueSession(context, user, input.UserAgent, input.IPAddress)
}

// deriveUsername returns the first free username built from name or email.
func (service *Service) deriveUsername(context context.Context, name, email string) (string, error) {
	base := slug.Compact(name, derivedUsernameLength)
	if base == "" {
		local, _, _ := strings.Cut(email, "@")
		base = slug.Compact(local, derivedUsernameLength)
	}
	if base == "" {
		base = "user"
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = base + strconv.Itoa(attempt)
		}

		available, err := service.IsUsernameAvailable(context, candidate, "")
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
	}

	return "", apperr.Conflict("Could not find a free username, please pick one")
}

/*
IsUsernameAvailable reports whether username can be claimed by the account exceptID
(empty for a new account). Reserved names are never available.

Parameters:
  - context: context.Context
  - username: string (already normalized)
  - exceptID: string

Returns:
  - bool: true when free
  - error: Storage failures
*/
func (service *Service) IsUsernameAvailable(context context.Context, username, exceptID string) (bool, error) {
	if IsReservedUsername(username) {
		return false, nil
	}

	existing, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	return existing.ID == exceptID, nil
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Email or username
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession represents a successfully established account session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates credentials and issues security tokens.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - error: UNAUTHORIZED for bad credentials, ACCOUNT_BLOCKED for suspended accounts
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	login := strings.ToLower(strings.TrimSpace(input.Login))

	user, err := service.userRepository.FindByEmail(context, login)
	if apperr.IsNotFound(err) {
		user, err = service.userRepository.FindByUsername(context, login)
	}
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	if user.IsBlocked() {
		return nil, apperr.AccountBlocked()
	}

	if sec.NeedsRehash(user.PasswordHash) {
		service.upgradeHash(context, user.ID, input.Password)
	}

	return service.issueSession(context, user, input.UserAgent, input.IPAddress)
}

// upgradeHash re-hashes a verified password at the current cost. Failures keep
// the old hash and are only logged.
func (service *Service) upgradeHash(context context.Context, userID, password string) {
	hashed, err := sec.HashPassword(password)
	if err == nil {
		err = service.userRepository.UpdatePassword(context, userID, hashed)
	}
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "password_rehash_failed",
			slog.String("user_id", userID), slog.Any("error", err))
	}
}

// hashPassword turns an over-long password into a field error on field.
func hashPassword(field, password string) (string, error) {
	hashed, err := sec.HashPassword(password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return "", validate.RequiredError(field, fmt.Sprintf("Maximum %d bytes", sec.MaxPasswordBytes))
	}
	if err != nil {
		return "", fmt.Errorf("auth_service_hash_failed: %w", err)
	}
	return hashed, nil
}

// issueSession signs an access token and persists a fresh refresh session.
func (service *Service) issueSession(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Username, string(user.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := service.now().Add(RefreshTokenTTL)
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

/*
Logout permanently revokes the session behind refreshToken. Unknown tokens are ignored.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
RefreshSession implements refresh token rotation.

Description: The presented token is revoked before a new pair is issued, so a
replayed token fails the second time.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New session credentials
  - error: UNAUTHORIZED or ACCOUNT_BLOCKED
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired refresh token")
	}

	if err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}
	if user.IsBlocked() {
		return nil, apperr.AccountBlocked()
	}

	return service.issueSession(context, user, userAgent, ipAddress)
}

/*
Me returns the account behind an authenticated request.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: The account
  - error: UNAUTHORIZED when the account was deleted after the token was issued
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}
	return user, nil
}

// CheckActive rejects access tokens of accounts that were blocked or deleted after the token was issued.
func (service *Service) CheckActive(context context.Context, userID string) error {
	user, err := service.Me(context, userID)
	if err != nil {
		return err
	}
	if user.IsBlocked() {
		return apperr.AccountBlocked()
	}
	return nil
}

// EffectivePlan returns the plan in force for an account, downgrading expired paid plans.
func (service *Service) EffectivePlan(context context.Context, userID string) (policy.Plan, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return "", err
	}
	return user.EffectivePlan(service.now()), nil
}

// # Password Recovery

/*
RequestPasswordReset starts the forgot-password flow.

Description: Unknown emails succeed silently so the endpoint cannot be used to
probe which addresses are registered.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Token generation or storage failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, NormalizeEmail(email))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	if service.notifier != nil {
		if err := service.notifier.SendPasswordReset(context, user, token); err != nil {
			return fmt.Errorf("auth_service_send_reset_failed: %w", err)
		}
	}
	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Consumes the token, stores the new hash and revokes every session.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - error: VALIDATION_ERROR for a bad token, or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	hashedPassword, err := hashPassword(FieldPassword, newPassword)
	if err != nil {
		return err
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	_ = service.sessionRepository.RevokeAll(context, userID)
	_ = service.resetTokenRepository.Delete(context, token)
	return nil
}

/*
ChangePassword rotates credentials for an authenticated account.

Description: Verifies the current password, then revokes every other session.
currentRefreshToken may be empty, in which case all sessions are revoked.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string
  - currentRefreshToken: string

Returns:
  - error: UNAUTHORIZED for a wrong current password, or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := hashPassword(FieldNewPassword, newPassword)
	if err != nil {
		return err
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	if currentRefreshToken != "" {
		if session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(currentRefreshToken)); err == nil {
			_ = service.sessionRepository.RevokeOthers(context, userID, session.ID)
			return nil
		}
	}
	_ = service.sessionRepository.RevokeAll(context, userID)
	return nil
}
