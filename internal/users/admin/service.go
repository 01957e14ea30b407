// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin is the operator surface: account moderation, platform statistics
and platform settings.

Role rules:

  - Only a super-admin may grant or revoke the admin and super-admin roles.
  - Only a super-admin may modify or delete a super-admin.
  - Nobody may block, demote or delete themselves.
*/
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/sociallink/internal/analytics"
	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/ctxutil"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/internal/platform/validate"
	"github.com/taibuivan/sociallink/internal/users/auth"
	"github.com/taibuivan/sociallink/pkg/pagination"
	"github.com/taibuivan/sociallink/pkg/pointer"
	"github.com/taibuivan/sociallink/pkg/slice"
)

// LinkTotals reports link activity for accounts.
type LinkTotals interface {
	TotalsByOwner(context context.Context, ownerIDs []string) (map[string]link.Totals, error)
	GlobalTotals(context context.Context) (link.Totals, error)
}

// EventTotals reports platform-wide analytics.
type EventTotals interface {
	PlatformTotals(context context.Context) (analytics.Totals, error)
}

// CascadeStep removes one kind of owned data when an account is deleted.
type CascadeStep struct {
	Name   string
	Delete func(context context.Context, ownerID string) error
}

// Service implements account moderation.
type Service struct {
	users    auth.UserRepository
	sessions auth.SessionRepository
	links    LinkTotals
	events   EventTotals
	cascade  []CascadeStep
}

// NewService constructs a new admin [Service]. cascade runs in order before the
// account's sessions and the account itself are removed.
func NewService(users auth.UserRepository, sessions auth.SessionRepository, links LinkTotals, events EventTotals, cascade []CascadeStep) *Service {
	return &Service{users: users, sessions: sessions, links: links, events: events, cascade: cascade}
}

// Account is an account as operators see it.
type Account struct {
	*auth.User
	Links  int   `json:"links"`
	Clicks int64 `json:"clicks"`
}

/*
List returns a page of accounts with their link activity.

Parameters:
  - context: context.Context
  - filter: auth.ListFilter
  - params: pagination.Params

Returns:
  - []*Account: The page
  - int: Total matching accounts
  - error: Storage failures
*/
func (service *Service) List(context context.Context, filter auth.ListFilter, params pagination.Params) ([]*Account, int, error) {
	users, total, err := service.users.List(context, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("admin_service_list_failed: %w", err)
	}

	ids := slice.Map(users, func(user *auth.User) string { return user.ID })
	totals, err := service.links.TotalsByOwner(context, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("admin_service_list_failed: %w", err)
	}

	accounts := make([]*Account, 0, len(users))
	for _, user := range users {
		activity := totals[user.ID]
		accounts = append(accounts, &Account{User: user, Links: activity.Links, Clicks: activity.Clicks})
	}
	return accounts, total, nil
}

// Get returns one account with its link activity.
func (service *Service) Get(context context.Context, id string) (*Account, error) {
	user, err := service.users.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	totals, err := service.links.TotalsByOwner(context, []string{id})
	if err != nil {
		return nil, fmt.Errorf("admin_service_get_failed: %w", err)
	}
	activity := totals[id]
	return &Account{User: user, Links: activity.Links, Clicks: activity.Clicks}, nil
}

// UpdateInput is a moderation change. Nil fields are unchanged.
type UpdateInput struct {
	Status *auth.Status
	Role   *sec.UserRole
	Plan   *policy.Plan
}

func validateUpdate(input UpdateInput) error {
	v := &validate.Validator{}
	if input.Status != nil {
		v.Custom("status", !input.Status.IsValid(), "Must be one of: active, blocked")
	}
	if input.Role != nil {
		v.Custom("role", !input.Role.IsValid(), "Must be one of: user, admin, super-admin")
	}
	if input.Plan != nil {
		v.Custom("plan", !input.Plan.IsValid(), "Must be one of: free, pro, business")
	}
	return v.Err()
}

// actor reloads the caller so role checks never trust a stale token.
func (service *Service) actor(context context.Context, actorID string) (*auth.User, error) {
	actor, err := service.users.FindByID(context, actorID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Account no longer exists")
		}
		return nil, err
	}
	if !actor.Role.AtLeast(sec.RoleAdmin) {
		return nil, apperr.Forbidden("Insufficient permissions")
	}
	return actor, nil
}

/*
Update changes an account's status, role or plan.

Description: A plan set here has no expiry. Blocking an account revokes its
sessions.

Parameters:
  - context: context.Context
  - actorID: string (The operator making the change)
  - id: string
  - input: UpdateInput

Returns:
  - *Account: The updated account
  - error: VALIDATION_ERROR, FORBIDDEN per the role rules, or NOT_FOUND
*/
func (service *Service) Update(context context.Context, actorID, id string, input UpdateInput) (*Account, error) {
	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	// ── 1. Load both sides ──
	actor, err := service.actor(context, actorID)
	if err != nil {
		return nil, err
	}
	target, err := service.users.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// ── 2. Role rules ──
	superAdmin := actor.Role == sec.RoleSuperAdmin
	if target.Role == sec.RoleSuperAdmin && !superAdmin {
		return nil, apperr.Forbidden("Only a super-admin may modify a super-admin")
	}
	if input.Role != nil && *input.Role != target.Role {
		if (input.Role.IsStaff() || target.Role.IsStaff()) && !superAdmin {
			return nil, apperr.Forbidden("Only a super-admin may grant or revoke admin roles")
		}
		if actor.ID == target.ID {
			return nil, apperr.Forbidden("You cannot change your own role")
		}
	}
	if input.Status != nil && *input.Status == auth.StatusBlocked && actor.ID == target.ID {
		return nil, apperr.Forbidden("You cannot block yourself")
	}

	// ── 3. Apply ──
	pointer.Apply(&target.Status, input.Status)
	pointer.Apply(&target.Role, input.Role)
	if pointer.Apply(&target.Plan, input.Plan) {
		target.PlanExpiresAt = nil
	}
	if err := service.users.Update(context, target); err != nil {
		return nil, fmt.Errorf("admin_service_update_failed: %w", err)
	}

	if target.IsBlocked() {
		if err := service.sessions.RevokeAll(context, target.ID); err != nil {
			return nil, fmt.Errorf("admin_service_revoke_failed: %w", err)
		}
	}

	ctxutil.GetLogger(context).InfoContext(context, "admin_account_updated",
		slog.String("actor_id", actor.ID),
		slog.String("user_id", target.ID),
		slog.String("role", string(target.Role)),
		slog.String("status", string(target.Status)),
		slog.String("plan", string(target.Plan)),
	)
	return service.Get(context, target.ID)
}

/*
Delete removes an account and everything it owns.

Description: Owned data goes first, in cascade order, then sessions, then the
account row. A failure stops the cascade; rerunning the delete finishes it.

Returns:
  - error: FORBIDDEN per the role rules, NOT_FOUND, or the first failing step
*/
func (service *Service) Delete(context context.Context, actorID, id string) error {
	actor, err := service.actor(context, actorID)
	if err != nil {
		return err
	}
	if actor.ID == id {
		return apperr.Forbidden("You cannot delete yourself")
	}
	target, err := service.users.FindByID(context, id)
	if err != nil {
		return err
	}
	if target.Role == sec.RoleSuperAdmin && actor.Role != sec.RoleSuperAdmin {
		return apperr.Forbidden("Only a super-admin may delete a super-admin")
	}

	logger := ctxutil.GetLogger(context)
	for _, step := range service.cascade {
		if err := step.Delete(context, id); err != nil {
			return fmt.Errorf("admin_cascade_%s_failed: %w", step.Name, err)
		}
		logger.DebugContext(context, "admin_cascade_step_done", slog.String("user_id", id), slog.String("step", step.Name))
	}
	if err := service.sessions.DeleteByUser(context, id); err != nil {
		return fmt.Errorf("admin_cascade_sessions_failed: %w", err)
	}
	if err := service.users.Delete(context, id); err != nil {
		return err
	}

	logger.InfoContext(context, "admin_account_deleted",
		slog.String("actor_id", actor.ID),
		slog.String("user_id", id),
	)
	return nil
}

// Stats is the platform census shown on the admin dashboard.
type Stats struct {
	Accounts *auth.Stats      `json:"accounts"`
	Links    int              `json:"links"`
	Clicks   int64            `json:"clicks"`
	Events   analytics.Totals `json:"events"`
}

// Stats returns totals by plan and status plus content and event activity.
func (service *Service) Stats(context context.Context) (*Stats, error) {
	accounts, err := service.users.Stats(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_stats_failed: %w", err)
	}
	links, err := service.links.GlobalTotals(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_stats_failed: %w", err)
	}
	events, err := service.events.PlatformTotals(context)
	if err != nil {
		return nil, fmt.Errorf("admin_service_stats_failed: %w", err)
	}
	return &Stats{Accounts: accounts, Links: links.Links, Clicks: links.Clicks, Events: events}, nil
}
