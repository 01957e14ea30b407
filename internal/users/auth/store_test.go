// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/cache"
	"github.com/taibuivan/sociallink/internal/platform/sec"
	"github.com/taibuivan/sociallink/pkg/pagination"
)

func newUser(id, email, username string) *User {
	return &User{
		ID: id, Email: email, Username: username, DisplayName: username,
		Role: sec.RoleUser, Plan: policy.PlanFree, Status: StatusActive,
	}
}

func TestRedisResetTokenRepository(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	repository := NewResetTokenRepository(client)
	ctx := context.Background()

	require.NoError(t, repository.Set(ctx, "tok", "user-1", time.Hour))
	assert.True(t, server.Exists("auth:reset_token:tok"))

	userID, err := repository.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	server.FastForward(2 * time.Hour)
	_, err = repository.Get(ctx, "tok")
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	require.NoError(t, repository.Set(ctx, "tok2", "user-2", time.Hour))
	require.NoError(t, repository.Delete(ctx, "tok2"))
	_, err = repository.Get(ctx, "tok2")
	assert.Error(t, err)
}

func TestMemoryResetTokenRepository_Expiry(t *testing.T) {
	repository := NewMemoryResetTokenRepository()
	now := time.Now()
	repository.now = func() time.Time { return now }

	require.NoError(t, repository.Set(context.Background(), "tok", "user-1", time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := repository.Get(context.Background(), "tok")
	assert.Error(t, err)
}

func TestMemoryUserRepository_Uniqueness(t *testing.T) {
	repository := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repository.Create(ctx, newUser("1", "a@b.com", "ann")))
	assert.True(t, apperr.IsConflict(repository.Create(ctx, newUser("2", "A@B.com", "bob"))))
	assert.True(t, apperr.IsConflict(repository.Create(ctx, newUser("3", "c@b.com", "ANN"))))

	found, err := repository.FindByUsername(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, "1", found.ID)
}

func TestMemoryUserRepository_ListAndStats(t *testing.T) {
	repository := NewMemoryUserRepository()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"ann", "bob", "cat"} {
		user := newUser(name, name+"@b.com", name)
		user.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repository.Create(ctx, user))
	}
	require.NoError(t, repository.UpdatePlan(ctx, "bob", policy.PlanPro, nil))

	page, total, err := repository.List(ctx, ListFilter{}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, "cat", page[0].ID, "newest first")

	page, total, err = repository.List(ctx, ListFilter{Query: "BO"}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "bob", page[0].ID)

	_, total, err = repository.List(ctx, ListFilter{Plans: []policy.Plan{policy.PlanPro}}, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	stats, err := repository.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByPlan[policy.PlanFree])
	assert.Equal(t, 1, stats.ByPlan[policy.PlanPro])
	assert.Equal(t, 3, stats.ByStatus[StatusActive])
}

// countingRepository counts username lookups that reach the backing store.
type countingRepository struct {
	*MemoryUserRepository
	lookups int
}

func (repository *countingRepository) FindByUsername(context context.Context, username string) (*User, error) {
	repository.lookups++
	return repository.MemoryUserRepository.FindByUsername(context, username)
}

func TestCachedUserRepository(t *testing.T) {
	ctx := context.Background()
	backing := &countingRepository{MemoryUserRepository: NewMemoryUserRepository()}
	require.NoError(t, backing.Create(ctx, newUser("1", "a@b.com", "ann")))

	profileCache, err := cache.New(time.Minute)
	require.NoError(t, err)
	defer profileCache.Close()

	repository := NewCachedUserRepository(backing, profileCache)

	_, err = repository.FindByUsername(ctx, "ann")
	require.NoError(t, err)
	profileCache.Wait()

	cached, err := repository.FindByUsername(ctx, "ANN")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.lookups, "second lookup is served from cache")

	// Renaming evicts the old username.
	cached.Username = "annie"
	require.NoError(t, repository.Update(ctx, cached))

	_, err = repository.FindByUsername(ctx, "ann")
	assert.True(t, apperr.IsNotFound(err))

	renamed, err := repository.FindByUsername(ctx, "annie")
	require.NoError(t, err)
	assert.Equal(t, "1", renamed.ID)
}
