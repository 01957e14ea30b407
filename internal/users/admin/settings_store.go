// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/database/schema"
	"github.com/taibuivan/sociallink/internal/platform/dberr"
)

// PostgresSettingsRepository stores the settings as one JSONB row of system.setting.
type PostgresSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSettingsRepository creates a new PostgreSQL implementation of [SettingsRepository].
func NewPostgresSettingsRepository(pool *pgxpool.Pool) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{pool: pool}
}

func (repository *PostgresSettingsRepository) Get(context context.Context) (*PlatformSettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.SystemSetting.Value, schema.SystemSetting.Table, schema.SystemSetting.Key)

	settings := &PlatformSettings{}
	if err := repository.pool.QueryRow(context, query, settingsKey).Scan(settings); err != nil {
		return nil, dberr.Wrap(err, resourceSettings)
	}
	return settings, nil
}

func (repository *PostgresSettingsRepository) Save(context context.Context, settings *PlatformSettings) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s) VALUES ($1, $2, $3)
		ON CONFLICT (%[2]s) DO UPDATE SET %[3]s = EXCLUDED.%[3]s, %[4]s = EXCLUDED.%[4]s`,
		schema.SystemSetting.Table, schema.SystemSetting.Key, schema.SystemSetting.Value, schema.SystemSetting.UpdatedAt)

	_, err := repository.pool.Exec(context, query, settingsKey, settings, settings.UpdatedAt)
	return dberr.Wrap(err, resourceSettings)
}

// MemorySettingsRepository is the in-process [SettingsRepository].
type MemorySettingsRepository struct {
	mu       sync.Mutex
	settings *PlatformSettings
}

// NewMemorySettingsRepository creates an empty [MemorySettingsRepository].
func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

func (repository *MemorySettingsRepository) Get(_ context.Context) (*PlatformSettings, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.settings == nil {
		return nil, apperr.NotFound(resourceSettings)
	}
	copied := *repository.settings
	return &copied, nil
}

func (repository *MemorySettingsRepository) Save(_ context.Context, settings *PlatformSettings) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	copied := *settings
	repository.settings = &copied
	return nil
}
