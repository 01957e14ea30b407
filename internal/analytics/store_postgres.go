// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sociallink/internal/platform/database/schema"
	"github.com/taibuivan/sociallink/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over analytics.event.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var table = schema.AnalyticsEvent

// nullable maps an empty id to SQL NULL.
func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func (repository *PostgresRepository) Append(context context.Context, event *Event) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		table.Table, strings.Join(table.Columns(), ", "))

	_, err := repository.pool.Exec(context, query,
		event.ID, event.OwnerID, event.Type,
		nullable(event.LinkID), nullable(event.FileID), nullable(event.FormID),
		event.Device, event.Referrer, event.CreatedAt,
	)
	return dberr.Wrap(err, resourceEvent)
}

func (repository *PostgresRepository) Aggregate(context context.Context, ownerID string, since time.Time) ([]Bucket, error) {
	query := fmt.Sprintf(`
		SELECT (%[1]s AT TIME ZONE 'UTC')::date AS day, %[2]s, %[3]s, %[4]s, %[5]s, COUNT(*)
		FROM %[6]s
		WHERE %[7]s = $1 AND %[1]s >= $2
		GROUP BY 1, 2, 3, 4, 5`,
		table.CreatedAt, table.Type, table.Device, table.Referrer, table.LinkID,
		table.Table, table.OwnerID)

	rows, err := repository.pool.Query(context, query, ownerID, since)
	if err != nil {
		return nil, dberr.Wrap(err, resourceEvent)
	}
	defer rows.Close()

	buckets := make([]Bucket, 0)
	for rows.Next() {
		var bucket Bucket
		var linkID *string
		if err := rows.Scan(&bucket.Day, &bucket.Type, &bucket.Device, &bucket.Referrer, &linkID, &bucket.Count); err != nil {
			return nil, dberr.Wrap(err, resourceEvent)
		}
		if linkID != nil {
			bucket.LinkID = *linkID
		}
		buckets = append(buckets, bucket)
	}
	return buckets, dberr.Wrap(rows.Err(), resourceEvent)
}

func (repository *PostgresRepository) CountByType(context context.Context) (map[Type]int64, error) {
	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM %[2]s GROUP BY %[1]s`, table.Type, table.Table)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceEvent)
	}
	defer rows.Close()

	counts := make(map[Type]int64)
	for rows.Next() {
		var eventType Type
		var count int64
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, dberr.Wrap(err, resourceEvent)
		}
		counts[eventType] = count
	}
	return counts, dberr.Wrap(rows.Err(), resourceEvent)
}

func (repository *PostgresRepository) DeleteByOwner(context context.Context, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.OwnerID)
	_, err := repository.pool.Exec(context, query, ownerID)
	return dberr.Wrap(err, resourceEvent)
}
