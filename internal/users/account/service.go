// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements self-service management of the signed-in account:
reading and editing public profile fields (including the username, which is
the public page slug) and changing the password.

Storage belongs to the auth package; this package only applies the rules of
who may change what.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

// # Service Layer

// Service orchestrates profile edits and credential changes for the account owner.
type Service struct {
	authService *auth.Service
	users       auth.UserRepository
}

// NewService constructs a new [Service] on top of the auth service.
func NewService(authService *auth.Service) *Service {
	return &Service{authService: authService, users: authService.Users()}
}

/*
GetProfile retrieves the full private view of an account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated account
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	return service.authService.Me(context, userID)
}

// UpdateProfileInput defines the mutable subset of account fields. Nil means unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	Username    *string
	Bio         *string
	AvatarURL   *string
	Website     *string
}

/*
UpdateProfile applies a partial set of changes to an account.

Description: A username change is normalized to lowercase and rejected with a
409 when reserved or owned by another account.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated account
  - error: CONFLICT for a taken username, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.authService.Me(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := NormalizeUsername(*input.Username)
		if username != user.Username {
			available, err := service.authService.IsUsernameAvailable(context, username, user.ID)
			if err != nil {
				return nil, fmt.Errorf("account_service_username_check_failed: %w", err)
			}
			if !available {
				return nil, apperr.Conflict("Username is already taken")
			}
			user.Username = username
		}
	}
	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.AvatarURL != nil {
		user.AvatarURL = strings.TrimSpace(*input.AvatarURL)
	}
	if input.Website != nil {
		user.Website = strings.TrimSpace(*input.Website)
	}

	if err := service.users.Update(context, user); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("Username is already taken")
		}
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_profile_updated", slog.String("user_id", userID))
	return user, nil
}

/*
ChangePassword verifies the current password and stores a new one.

Parameters:
  - context: context.Context
  - userID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: UNAUTHORIZED for a wrong current password
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword string) error {
	if err := service.authService.ChangePassword(context, userID, currentPassword, newPassword, ""); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_password_changed", slog.String("user_id", userID))
	return nil
}

// NormalizeUsername trims and lowercases a username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
