// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package datasource selects the backing store for every repository at startup.

Two implementations exist:

  - Live: PostgreSQL repositories, Redis reset tokens and object storage.
  - Demo: seeded in-memory repositories, for local runs without infrastructure.

Handlers and services never know which one they talk to.
*/
package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/sociallink/internal/analytics"
	"github.com/taibuivan/sociallink/internal/billing"
	"github.com/taibuivan/sociallink/internal/content/file"
	"github.com/taibuivan/sociallink/internal/content/form"
	"github.com/taibuivan/sociallink/internal/content/link"
	"github.com/taibuivan/sociallink/internal/content/pagesettings"
	"github.com/taibuivan/sociallink/internal/platform/blob"
	"github.com/taibuivan/sociallink/internal/platform/cache"
	pgstore "github.com/taibuivan/sociallink/internal/platform/postgres"
	redisstore "github.com/taibuivan/sociallink/internal/platform/redis"
	"github.com/taibuivan/sociallink/internal/users/admin"
	"github.com/taibuivan/sociallink/internal/users/auth"
)

// Kind names a data source implementation.
type Kind string

const (
	KindLive Kind = "live"
	KindDemo Kind = "demo"
)

// DataSource holds one implementation of every repository.
type DataSource struct {
	Kind Kind

	Users       auth.UserRepository
	Sessions    auth.SessionRepository
	ResetTokens auth.ResetTokenRepository

	Links        link.Repository
	Files        file.Repository
	Blobs        blob.Store
	Forms        form.Repository
	Responses    form.ResponseRepository
	PageSettings pagesettings.Repository

	Events   analytics.Repository
	Orders   billing.OrderRepository
	Platform admin.SettingsRepository

	pool   *pgxpool.Pool
	redis  *redis.Client
	closer func()
}

/*
NewLive builds the PostgreSQL backed data source.

Parameters:
  - pool: *pgxpool.Pool (required)
  - client: *redis.Client (nil keeps reset tokens in process memory)
  - blobs: blob.Store (nil stores uploads inline in the database)
  - cacheTTL: time.Duration (TTL of the username lookup cache)

Returns:
  - *DataSource
  - error: When the cache cannot be created
*/
func NewLive(pool *pgxpool.Pool, client *redis.Client, blobs blob.Store, cacheTTL time.Duration) (*DataSource, error) {
	if pool == nil {
		return nil, fmt.Errorf("datasource: live source needs a database pool")
	}

	userCache, err := cache.New(cacheTTL)
	if err != nil {
		return nil, fmt.Errorf("datasource: %w", err)
	}

	var resetTokens auth.ResetTokenRepository = auth.NewMemoryResetTokenRepository()
	if client != nil {
		resetTokens = auth.NewResetTokenRepository(client)
	}

	return &DataSource{
		Kind:         KindLive,
		Users:        auth.NewCachedUserRepository(auth.NewUserRepository(pool), userCache),
		Sessions:     auth.NewSessionRepository(pool),
		ResetTokens:  resetTokens,
		Links:        link.NewPostgresRepository(pool),
		Files:        file.NewPostgresRepository(pool),
		Blobs:        blobs,
		Forms:        form.NewPostgresRepository(pool),
		Responses:    form.NewPostgresResponseRepository(pool),
		PageSettings: pagesettings.NewPostgresRepository(pool),
		Events:       analytics.NewPostgresRepository(pool),
		Orders:       billing.NewPostgresOrderRepository(pool),
		Platform:     admin.NewPostgresSettingsRepository(pool),
		pool:         pool,
		redis:        client,
		closer:       userCache.Close,
	}, nil
}

// CheckDatabase pings PostgreSQL. The demo source has no database and always passes.
func (source *DataSource) CheckDatabase(context context.Context) error {
	if source.pool == nil {
		return nil
	}
	return pgstore.Ping(context, source.pool)
}

// CheckCache pings Redis when one is attached.
func (source *DataSource) CheckCache(context context.Context) error {
	if source.redis == nil {
		return nil
	}
	return redisstore.Ping(context, source.redis)
}

// Close releases what the data source created. Pools and clients passed in stay
// open; their owner closes them.
func (source *DataSource) Close() {
	if source.closer != nil {
		source.closer()
	}
}
