// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/cache"
)

// CachedUserRepository fronts FindByUsername with a short-TTL in-process cache.
//
// Public profile pages resolve accounts by username on every hit; everything else
// passes straight through. Every write through this repository evicts the
// affected username so the owner sees their own edits immediately. Writes made
// by other instances are visible after the cache TTL.
type CachedUserRepository struct {
	UserRepository
	cache *cache.Cache
}

// NewCachedUserRepository wraps next with cache.
func NewCachedUserRepository(next UserRepository, cache *cache.Cache) *CachedUserRepository {
	return &CachedUserRepository{UserRepository: next, cache: cache}
}

func usernameKey(username string) string {
	return "account:username:" + strings.ToLower(username)
}

// FindByUsername implements [UserRepository] with read-through caching.
func (repository *CachedUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	key := usernameKey(username)
	if cached, found := repository.cache.Get(key); found {
		if user, ok := cached.(*User); ok {
			return user.Clone(), nil
		}
	}

	user, err := repository.UserRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	repository.cache.Set(key, user.Clone())
	return user, nil
}

// Update implements [UserRepository], evicting both the old and the new username.
func (repository *CachedUserRepository) Update(context context.Context, user *User) error {
	repository.evictByID(context, user.ID)
	if err := repository.UserRepository.Update(context, user); err != nil {
		return err
	}
	repository.cache.Delete(usernameKey(user.Username))
	return nil
}

// UpdatePassword implements [UserRepository].
func (repository *CachedUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	repository.evictByID(context, userID)
	return repository.UserRepository.UpdatePassword(context, userID, newHash)
}

// UpdatePlan implements [UserRepository].
func (repository *CachedUserRepository) UpdatePlan(context context.Context, userID string, plan policy.Plan, expiresAt *time.Time) error {
	repository.evictByID(context, userID)
	return repository.UserRepository.UpdatePlan(context, userID, plan, expiresAt)
}

// Delete implements [UserRepository].
func (repository *CachedUserRepository) Delete(context context.Context, id string) error {
	repository.evictByID(context, id)
	return repository.UserRepository.Delete(context, id)
}

// evictByID drops the cached entry of the account's current username.
func (repository *CachedUserRepository) evictByID(context context.Context, userID string) {
	if current, err := repository.UserRepository.FindByID(context, userID); err == nil {
		repository.cache.Delete(usernameKey(current.Username))
	}
}
