// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package link

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/database/schema"
	"github.com/taibuivan/sociallink/internal/platform/dberr"
	"github.com/taibuivan/sociallink/internal/platform/postgres"
)

// PostgresRepository implements [Repository] over content.link.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	table       = schema.ContentLink
	linkColumns = strings.Join(table.Columns(), ", ")
)

// scanLink hydrates a Link from a row selected with linkColumns.
func scanLink(row pgx.Row) (*Link, error) {
	link := &Link{}
	var payload []byte
	err := row.Scan(
		&link.ID, &link.OwnerID, &link.Title, &link.Type, &payload, &link.Visible,
		&link.Spotlight, &link.Order, &link.Clicks, &link.CreatedAt, &link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	link.Variant, err = DecodeVariant(link.Type, payload)
	if err != nil {
		return nil, fmt.Errorf("link_payload_decode_failed: %w", err)
	}
	return link, nil
}

/*
ListByOwner returns the owner's links ordered for display.

Parameters:
  - context: context.Context
  - ownerID: string
  - visibleOnly: bool (Skip hidden links)

Returns:
  - []*Link: Links by ascending order index
  - error: Storage failures
*/
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string, visibleOnly bool) ([]*Link, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, linkColumns, table.Table, table.OwnerID)
	if visibleOnly {
		query += fmt.Sprintf(` AND %s`, table.IsVisible)
	}
	query += fmt.Sprintf(` ORDER BY %s ASC, %s ASC`, table.SortOrder, table.CreatedAt)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceLink)
	}
	defer rows.Close()

	links := make([]*Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceLink)
		}
		links = append(links, link)
	}
	return links, dberr.Wrap(rows.Err(), resourceLink)
}

// FindByID retrieves one of the owner's links.
func (repository *PostgresRepository) FindByID(context context.Context, ownerID, id string) (*Link, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		linkColumns, table.Table, table.ID, table.OwnerID)

	link, err := scanLink(repository.pool.QueryRow(context, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceLink)
	}
	return link, nil
}

// FindOwner resolves the owner id of a link.
func (repository *PostgresRepository) FindOwner(context context.Context, id string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, table.OwnerID, table.Table, table.ID)

	var ownerID string
	if err := repository.pool.QueryRow(context, query, id).Scan(&ownerID); err != nil {
		return "", dberr.Wrap(err, resourceLink)
	}
	return ownerID, nil
}

/*
Create inserts a link at the end of the owner's list.

Description: The order index and the spotlight reset run in one transaction so
the owner never has two spotlighted links.

Parameters:
  - context: context.Context
  - link: *Link (Order is assigned)

Returns:
  - error: Storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, link *Link) error {
	payload, err := json.Marshal(link.Variant)
	if err != nil {
		return fmt.Errorf("link_payload_encode_failed: %w", err)
	}

	now := time.Now().UTC()
	link.CreatedAt, link.UpdatedAt = now, now

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s)
		SELECT $1, $2, $3, $4, $5, $6, $7, COALESCE(MAX(%[3]s), -1) + 1, 0, $8, $8
		FROM %[1]s WHERE %[4]s = $2
		RETURNING %[3]s`,
		table.Table, linkColumns, table.SortOrder, table.OwnerID,
	)

	err = postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if link.Spotlight {
			if err := clearSpotlight(context, tx, link.OwnerID, link.ID); err != nil {
				return err
			}
		}
		return tx.QueryRow(context, query,
			link.ID, link.OwnerID, link.Title, link.Type, payload, link.Visible, link.Spotlight, now,
		).Scan(&link.Order)
	})
	return dberr.Wrap(err, resourceLink)
}

// Update persists every mutable field of a link.
func (repository *PostgresRepository) Update(context context.Context, link *Link) error {
	payload, err := json.Marshal(link.Variant)
	if err != nil {
		return fmt.Errorf("link_payload_encode_failed: %w", err)
	}
	link.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1 AND %s = $2`,
		table.Table,
		table.Title, table.Type, table.Payload, table.IsVisible, table.IsSpotlight, table.SortOrder, table.UpdatedAt,
		table.ID, table.OwnerID,
	)

	err = postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if link.Spotlight {
			if err := clearSpotlight(context, tx, link.OwnerID, link.ID); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(context, query,
			link.ID, link.OwnerID, link.Title, link.Type, payload, link.Visible, link.Spotlight, link.Order, link.UpdatedAt,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(resourceLink)
		}
		return nil
	})
	return dberr.Wrap(err, resourceLink)
}

// clearSpotlight unsets the spotlight on every other link of the owner.
func clearSpotlight(context context.Context, tx pgx.Tx, ownerID, keepID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = FALSE, %s = NOW() WHERE %s = $1 AND %s <> $2 AND %s`,
		table.Table, table.IsSpotlight, table.UpdatedAt, table.OwnerID, table.ID, table.IsSpotlight)
	_, err := tx.Exec(context, query, ownerID, keepID)
	return err
}

// Delete hard-deletes one of the owner's links.
func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.ID, table.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceLink)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceLink)
	}
	return nil
}

// CountByOwner returns how many links the owner has.
func (repository *PostgresRepository) CountByOwner(context context.Context, ownerID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, table.Table, table.OwnerID)

	var count int
	if err := repository.pool.QueryRow(context, query, ownerID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, resourceLink)
	}
	return count, nil
}

// IncrementClicks adds one click in a single atomic statement.
func (repository *PostgresRepository) IncrementClicks(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1, %s = NOW() WHERE %s = $1 AND %s = $2`,
		table.Table, table.Clicks, table.Clicks, table.UpdatedAt, table.ID, table.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceLink)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceLink)
	}
	return nil
}

// DeleteByOwner removes every link of an account.
func (repository *PostgresRepository) DeleteByOwner(context context.Context, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.OwnerID)
	_, err := repository.pool.Exec(context, query, ownerID)
	return dberr.Wrap(err, resourceLink)
}

// TotalsByOwner returns link counts and click sums for the given accounts.
func (repository *PostgresRepository) TotalsByOwner(context context.Context, ownerIDs []string) (map[string]Totals, error) {
	totals := make(map[string]Totals, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return totals, nil
	}

	query := fmt.Sprintf(`
		SELECT %[1]s, COUNT(*), COALESCE(SUM(%[2]s), 0)::bigint
		FROM %[3]s WHERE %[1]s = ANY($1::uuid[])
		GROUP BY %[1]s`,
		table.OwnerID, table.Clicks, table.Table,
	)

	rows, err := repository.pool.Query(context, query, ownerIDs)
	if err != nil {
		return nil, dberr.Wrap(err, resourceLink)
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID string
		var entry Totals
		if err := rows.Scan(&ownerID, &entry.Links, &entry.Clicks); err != nil {
			return nil, dberr.Wrap(err, resourceLink)
		}
		totals[ownerID] = entry
	}
	return totals, dberr.Wrap(rows.Err(), resourceLink)
}

// GlobalTotals returns platform-wide link and click counts.
func (repository *PostgresRepository) GlobalTotals(context context.Context) (Totals, error) {
	query := fmt.Sprintf(`SELECT COUNT(*), COALESCE(SUM(%s), 0)::bigint FROM %s`, table.Clicks, table.Table)

	var totals Totals
	err := repository.pool.QueryRow(context, query).Scan(&totals.Links, &totals.Clicks)
	return totals, dberr.Wrap(err, resourceLink)
}
