// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package file

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/database/schema"
	"github.com/taibuivan/sociallink/internal/platform/dberr"
)

// PostgresRepository implements [Repository] over content.file.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	table       = schema.ContentFile
	metaColumns = strings.Join(table.MetaColumns(), ", ")
)

func scanMeta(row pgx.Row, extra ...any) (*File, error) {
	file := &File{}
	targets := append([]any{
		&file.ID, &file.OwnerID, &file.Name, &file.Type, &file.MimeType,
		&file.Size, &file.Views, &file.StorageKey, &file.CreatedAt, &file.UpdatedAt,
	}, extra...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return file, nil
}

// ListByOwner returns file metadata, newest first.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]*File, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		metaColumns, table.Table, table.OwnerID, table.CreatedAt)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceFile)
	}
	defer rows.Close()

	files := make([]*File, 0)
	for rows.Next() {
		file, err := scanMeta(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceFile)
		}
		files = append(files, file)
	}
	return files, dberr.Wrap(rows.Err(), resourceFile)
}

func (repository *PostgresRepository) findOne(context context.Context, where string, args ...any) (*File, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s`, metaColumns, table.Content, table.Table, where)

	var content string
	file, err := scanMeta(repository.pool.QueryRow(context, query, args...), &content)
	if err != nil {
		return nil, dberr.Wrap(err, resourceFile)
	}
	file.Content = content
	return file, nil
}

// FindByID retrieves one of the owner's files with its content.
func (repository *PostgresRepository) FindByID(context context.Context, ownerID, id string) (*File, error) {
	return repository.findOne(context, fmt.Sprintf(`%s = $1 AND %s = $2`, table.ID, table.OwnerID), id, ownerID)
}

// FindPublic retrieves any file by id with its content.
func (repository *PostgresRepository) FindPublic(context context.Context, id string) (*File, error) {
	return repository.findOne(context, fmt.Sprintf(`%s = $1`, table.ID), id)
}

// Create inserts a file row.
func (repository *PostgresRepository) Create(context context.Context, file *File) error {
	now := time.Now().UTC()
	file.CreatedAt, file.UpdatedAt = now, now

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $8, $9)`,
		table.Table, metaColumns, table.Content,
	)

	_, err := repository.pool.Exec(context, query,
		file.ID, file.OwnerID, file.Name, file.Type, file.MimeType, file.Size,
		file.StorageKey, now, file.Content,
	)
	return dberr.Wrap(err, resourceFile)
}

// Delete hard-deletes one of the owner's files.
func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, table.Table, table.ID, table.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceFile)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceFile)
	}
	return nil
}

// CountByOwner returns how many files the owner has.
func (repository *PostgresRepository) CountByOwner(context context.Context, ownerID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, table.Table, table.OwnerID)

	var count int
	if err := repository.pool.QueryRow(context, query, ownerID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, resourceFile)
	}
	return count, nil
}

// IncrementViews adds one view in a single atomic statement.
func (repository *PostgresRepository) IncrementViews(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1, %s = NOW() WHERE %s = $1 AND %s = $2`,
		table.Table, table.Views, table.Views, table.UpdatedAt, table.ID, table.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceFile)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceFile)
	}
	return nil
}

// DeleteByOwner removes every file row of an account.
func (repository *PostgresRepository) DeleteByOwner(context context.Context, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.OwnerID)
	_, err := repository.pool.Exec(context, query, ownerID)
	return dberr.Wrap(err, resourceFile)
}
