// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagesettings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sociallink/internal/platform/database/schema"
	"github.com/taibuivan/sociallink/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over content.pagesettings.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	table           = schema.ContentPageSettings
	settingsColumns = strings.Join(table.Columns(), ", ")
)

// Get returns the owner's settings.
func (repository *PostgresRepository) Get(context context.Context, ownerID string) (*Settings, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, settingsColumns, table.Table, table.OwnerID)

	settings := &Settings{}
	err := repository.pool.QueryRow(context, query, ownerID).Scan(
		&settings.OwnerID, &settings.ThemeID, &settings.CustomBackground, &settings.CustomAccent,
		&settings.SEO.Title, &settings.SEO.Description, &settings.SEO.Keywords, &settings.SEO.OGImage,
		&settings.SEO.CanonicalURL, &settings.Socials, &settings.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceSettings)
	}
	if settings.Socials == nil {
		settings.Socials = []Social{}
	}
	return settings, nil
}

// Upsert inserts or replaces the owner's settings.
func (repository *PostgresRepository) Upsert(context context.Context, settings *Settings) error {
	settings.UpdatedAt = time.Now().UTC()
	if settings.Socials == nil {
		settings.Socials = []Social{}
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (%[3]s) DO UPDATE SET
			%[4]s = EXCLUDED.%[4]s, %[5]s = EXCLUDED.%[5]s, %[6]s = EXCLUDED.%[6]s,
			%[7]s = EXCLUDED.%[7]s, %[8]s = EXCLUDED.%[8]s, %[9]s = EXCLUDED.%[9]s,
			%[10]s = EXCLUDED.%[10]s, %[11]s = EXCLUDED.%[11]s, %[12]s = EXCLUDED.%[12]s,
			%[13]s = EXCLUDED.%[13]s`,
		table.Table, settingsColumns, table.OwnerID,
		table.ThemeID, table.CustomBackground, table.CustomAccent,
		table.SEOTitle, table.SEODescription, table.SEOKeywords,
		table.SEOOGImage, table.SEOCanonicalURL, table.Socials,
		table.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		settings.OwnerID, settings.ThemeID, settings.CustomBackground, settings.CustomAccent,
		settings.SEO.Title, settings.SEO.Description, settings.SEO.Keywords, settings.SEO.OGImage,
		settings.SEO.CanonicalURL, settings.Socials, settings.UpdatedAt,
	)
	return dberr.Wrap(err, resourceSettings)
}

// DeleteByOwner removes the owner's settings row.
func (repository *PostgresRepository) DeleteByOwner(context context.Context, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.OwnerID)
	_, err := repository.pool.Exec(context, query, ownerID)
	return dberr.Wrap(err, resourceSettings)
}
