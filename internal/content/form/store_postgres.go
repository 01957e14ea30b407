// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package form

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
	"github.com/taibuivan/sociallink/pkg/pagination"
)

const resourceResponse = "Form response"

var (
	formTable       = schema.ContentForm
	formColumns     = strings.Join(formTable.Columns(), ", ")
	responseTable   = schema.ContentFormResponse
	responseColumns = strings.Join(responseTable.Columns(), ", ")
)

// # Form Repository

// PostgresRepository implements [Repository] over content.form. Fields are stored as JSONB.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func scanForm(row pgx.Row) (*Form, error) {
	form := &Form{}
	err := row.Scan(
		&form.ID, &form.OwnerID, &form.Title, &form.Description, &form.Fields,
		&form.Views, &form.CreatedAt, &form.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return form, nil
}

// ListByOwner returns the owner's forms, newest first.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerID string) ([]*Form, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		formColumns, formTable.Table, formTable.OwnerID, formTable.CreatedAt)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceForm)
	}
	defer rows.Close()

	forms := make([]*Form, 0)
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceForm)
		}
		forms = append(forms, form)
	}
	return forms, dberr.Wrap(rows.Err(), resourceForm)
}

// FindByID retrieves one of the owner's forms.
func (repository *PostgresRepository) FindByID(context context.Context, ownerID, id string) (*Form, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		formColumns, formTable.Table, formTable.ID, formTable.OwnerID)

	form, err := scanForm(repository.pool.QueryRow(context, query, id, ownerID))
	if err != nil {
		return nil, dberr.Wrap(err, resourceForm)
	}
	return form, nil
}

// FindPublic retrieves any form by id.
func (repository *PostgresRepository) FindPublic(context context.Context, id string) (*Form, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, formColumns, formTable.Table, formTable.ID)

	form, err := scanForm(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceForm)
	}
	return form, nil
}

// Create inserts a form.
func (repository *PostgresRepository) Create(context context.Context, form *Form) error {
	now := time.Now().UTC()
	form.CreatedAt, form.UpdatedAt = now, now

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, 0, $6, $6)`, formTable.Table, formColumns)

	_, err := repository.pool.Exec(context, query, form.ID, form.OwnerID, form.Title, form.Description, form.Fields, now)
	return dberr.Wrap(err, resourceForm)
}

// Update persists the title, description and fields of a form.
func (repository *PostgresRepository) Update(context context.Context, form *Form) error {
	form.UpdatedAt = time.Now().UTC()

	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6 WHERE %s = $1 AND %s = $2`,
		formTable.Table, formTable.Title, formTable.Description, formTable.Fields, formTable.UpdatedAt,
		formTable.ID, formTable.OwnerID)

	tag, err := repository.pool.Exec(context, query, form.ID, form.OwnerID, form.Title, form.Description, form.Fields, form.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceForm)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceForm)
	}
	return nil
}

// Delete hard-deletes one of the owner's forms. Responses are kept.
func (repository *PostgresRepository) Delete(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, formTable.Table, formTable.ID, formTable.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceForm)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceForm)
	}
	return nil
}

// CountByOwner returns how many forms the owner has.
func (repository *PostgresRepository) CountByOwner(context context.Context, ownerID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, formTable.Table, formTable.OwnerID)

	var count int
	if err := repository.pool.QueryRow(context, query, ownerID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, resourceForm)
	}
	return count, nil
}

// IncrementViews adds one view in a single atomic statement.
func (repository *PostgresRepository) IncrementViews(context context.Context, ownerID, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1, %s = NOW() WHERE %s = $1 AND %s = $2`,
		formTable.Table, formTable.Views, formTable.Views, formTable.UpdatedAt, formTable.ID, formTable.OwnerID)

	tag, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(err, resourceForm)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceForm)
	}
	return nil
}

// DeleteByOwner removes every form of an account.
func (repository *PostgresRepository) DeleteByOwner(context context.Context, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, formTable.Table, formTable.OwnerID)
	_, err := repository.pool.Exec(context, query, ownerID)
	return dberr.Wrap(err, resourceForm)
}

// # Response Repository

// PostgresResponseRepository implements [ResponseRepository] over content.formresponse.
type PostgresResponseRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresResponseRepository creates a new PostgreSQL implementation of [ResponseRepository].
func NewPostgresResponseRepository(pool *pgxpool.Pool) *PostgresResponseRepository {
	return &PostgresResponseRepository{pool: pool}
}

// Create inserts a response.
func (repository *PostgresResponseRepository) Create(context context.Context, response *Response) error {
	response.CreatedAt = time.Now().UTC()

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)`, responseTable.Table, responseColumns)

	_, err := repository.pool.Exec(context, query,
		response.ID, response.FormID, response.OwnerID, response.Answers, response.CreatedAt)
	return dberr.Wrap(err, resourceResponse)
}

/*
ListByForm returns a page of a form's responses.

Description: Uses COUNT(*) OVER() to return the total alongside the page.

Returns:
  - []*Response: Newest first
  - int: Total responses of the form
  - error: Storage failures
*/
func (repository *PostgresResponseRepository) ListByForm(context context.Context, ownerID, formID string, params pagination.Params) ([]*Response, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM %s WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC
		LIMIT $3 OFFSET $4`,
		responseColumns, responseTable.Table, responseTable.FormID, responseTable.OwnerID, responseTable.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, formID, ownerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceResponse)
	}
	defer rows.Close()

	responses := make([]*Response, 0)
	total := 0
	for rows.Next() {
		response := &Response{}
		if err := rows.Scan(
			&response.ID, &response.FormID, &response.OwnerID, &response.Answers, &response.CreatedAt, &total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, resourceResponse)
		}
		responses = append(responses, response)
	}
	return responses, total, dberr.Wrap(rows.Err(), resourceResponse)
}

// DeleteByOwner removes every response collected by an account.
func (repository *PostgresResponseRepository) DeleteByOwner(context context.Context, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, responseTable.Table, responseTable.OwnerID)
	_, err := repository.pool.Exec(context, query, ownerID)
	return dberr.Wrap(err, resourceResponse)
}
