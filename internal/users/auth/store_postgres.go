// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/internal/platform/database/schema"
	"github.com/taibuivan/sociallink/internal/platform/dberr"
	"github.com/taibuivan/sociallink/pkg/pagination"
	"github.com/taibuivan/sociallink/pkg/slice"
)

// resourceAccount names accounts in NOT_FOUND and CONFLICT messages.
const resourceAccount = "Account"

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns is the select list matching [scanUser].
var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// scanUser hydrates a User from a row selected with userColumns.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Username,
		&user.Bio, &user.AvatarURL, &user.Website, &user.Role, &user.Plan,
		&user.PlanExpiresAt, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new account into users.account.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on a duplicate email/username, or storage failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		schema.UserAccount.Table, userColumns,
	)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID, user.Email, user.PasswordHash, user.DisplayName, user.Username,
		user.Bio, user.AvatarURL, user.Website, user.Role, user.Plan,
		user.PlanExpiresAt, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	return dberr.Wrap(err, resourceAccount)
}

/*
FindByID retrieves an account by primary key.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceAccount)
	}
	return user, nil
}

/*
FindByEmail retrieves an account by its email, case-insensitively.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, resourceAccount)
	}
	return user, nil
}

/*
FindByUsername retrieves an account by its public page slug, case-insensitively.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, resourceAccount)
	}
	return user, nil
}

/*
Update persists every mutable account field and refreshes updatedat.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: apperr.NotFound, apperr.Conflict or storage failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6,
		    %s = $7, %s = $8, %s = $9, %s = $10, %s = $11
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.DisplayName, schema.UserAccount.Username, schema.UserAccount.Bio,
		schema.UserAccount.AvatarURL, schema.UserAccount.Website,
		schema.UserAccount.Role, schema.UserAccount.Plan, schema.UserAccount.PlanExpiresAt,
		schema.UserAccount.Status, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	user.UpdatedAt = time.Now().UTC()
	tag, err := repository.pool.Exec(context, query,
		user.ID, user.DisplayName, user.Username, user.Bio, user.AvatarURL, user.Website,
		user.Role, user.Plan, user.PlanExpiresAt, user.Status, user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, resourceAccount)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceAccount)
	}
	return nil
}

/*
UpdatePassword updates only the password hash for a specific account.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Password, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return dberr.Wrap(err, resourceAccount)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceAccount)
	}
	return nil
}

/*
UpdatePlan sets plan and expiry in a single statement.

Parameters:
  - context: context.Context
  - userID: string
  - plan: policy.Plan
  - expiresAt: *time.Time

Returns:
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) UpdatePlan(context context.Context, userID string, plan policy.Plan, expiresAt *time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Plan, schema.UserAccount.PlanExpiresAt,
		schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, plan, expiresAt)
	if err != nil {
		return dberr.Wrap(err, resourceAccount)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceAccount)
	}
	return nil
}

/*
List returns a filtered page of accounts and the total count.

Description: Uses COUNT(*) OVER() so the total arrives with the page in one round-trip.

Parameters:
  - context: context.Context
  - filter: ListFilter
  - params: pagination.Params

Returns:
  - []*User: The page, newest first
  - int: Total matching rows
  - error: Storage failures
*/
func (repository *PostgresUserRepository) List(context context.Context, filter ListFilter, params pagination.Params) ([]*User, int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE 1=1`,
		userColumns, schema.UserAccount.Table))

	if query := strings.TrimSpace(filter.Query); query != "" {
		args = append(args, "%"+strings.ToLower(query)+"%")
		queryBuilder.WriteString(fmt.Sprintf(` AND (LOWER(%s) LIKE $%d OR LOWER(%s) LIKE $%d OR LOWER(%s) LIKE $%d)`,
			schema.UserAccount.Email, len(args),
			schema.UserAccount.Username, len(args),
			schema.UserAccount.DisplayName, len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		queryBuilder.WriteString(fmt.Sprintf(` AND %s = $%d`, schema.UserAccount.Status, len(args)))
	}
	if len(filter.Plans) > 0 {
		args = append(args, slice.Map(filter.Plans, func(plan policy.Plan) string { return string(plan) }))
		queryBuilder.WriteString(fmt.Sprintf(` AND %s = ANY($%d)`, schema.UserAccount.Plan, len(args)))
	}

	args = append(args, params.Limit, params.Offset())
	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY %s DESC, %s DESC LIMIT $%d OFFSET $%d`,
		schema.UserAccount.CreatedAt, schema.UserAccount.ID, len(args)-1, len(args)))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceAccount)
	}
	defer rows.Close()

	users := make([]*User, 0, params.Limit)
	total := 0
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.Username,
			&user.Bio, &user.AvatarURL, &user.Website, &user.Role, &user.Plan,
			&user.PlanExpiresAt, &user.Status, &user.CreatedAt, &user.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(err, resourceAccount)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceAccount)
	}

	return users, total, nil
}

/*
Stats counts accounts grouped by plan and status.

Returns:
  - *Stats: Census
  - error: Storage failures
*/
func (repository *PostgresUserRepository) Stats(context context.Context) (*Stats, error) {
	query := fmt.Sprintf(`SELECT %s, %s, COUNT(*) FROM %s GROUP BY %s, %s`,
		schema.UserAccount.Plan, schema.UserAccount.Status, schema.UserAccount.Table,
		schema.UserAccount.Plan, schema.UserAccount.Status)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, resourceAccount)
	}
	defer rows.Close()

	stats := newStats()
	for rows.Next() {
		var plan policy.Plan
		var status Status
		var count int
		if err := rows.Scan(&plan, &status, &count); err != nil {
			return nil, dberr.Wrap(err, resourceAccount)
		}
		stats.add(plan, status, count)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceAccount)
	}

	return stats, nil
}

/*
Delete removes the account row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresUserRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceAccount)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceAccount)
	}
	return nil
}

// newStats returns a census with every plan and status present at zero.
func newStats() *Stats {
	return &Stats{
		ByPlan: map[policy.Plan]int{
			policy.PlanFree: 0, policy.PlanPro: 0, policy.PlanBusiness: 0,
		},
		ByStatus: map[Status]int{
			StatusActive: 0, StatusBlocked: 0,
		},
	}
}

func (stats *Stats) add(plan policy.Plan, status Status, count int) {
	stats.Total += count
	stats.ByPlan[plan] += count
	stats.ByStatus[status] += count
}

// # Session Repository

// PostgresSessionRepository implements the SessionRepository interface.
type PostgresSessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new PostgreSQL implementation of SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{pool: pool}
}

/*
Create persists a new session record into users.session.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures
*/
func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserSession.Table, strings.Join(schema.UserSession.Columns(), ", "))

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := repository.pool.Exec(context, query,
		session.ID, session.UserID, session.TokenHash, session.UserAgent,
		session.IPAddress, session.ExpiresAt, session.IsRevoked, session.CreatedAt,
	)
	return dberr.Wrap(err, "Session")
}

/*
FindByTokenHash retrieves an active session by its unique token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or storage failures
*/
func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()`,
		strings.Join(schema.UserSession.Columns(), ", "), schema.UserSession.Table,
		schema.UserSession.TokenHash, schema.UserSession.IsRevoked, schema.UserSession.ExpiresAt,
	)

	session := &Session{}
	err := repository.pool.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash, &session.UserAgent,
		&session.IPAddress, &session.ExpiresAt, &session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Session")
	}
	return session, nil
}

/*
Revoke marks a specific session as revoked.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Revocation failures
*/
func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.ID)
	_, err := repository.pool.Exec(context, query, sessionID)
	return dberr.Wrap(err, "Session")
}

/*
RevokeAll marks all active sessions for an account as revoked.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch revocation failures
*/
func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.UserID, schema.UserSession.IsRevoked)
	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "Session")
}

/*
RevokeOthers marks all active sessions for an account as revoked, except for one.

Parameters:
  - context: context.Context
  - userID: string
  - currentSessionID: string

Returns:
  - error: Filtered revocation failures
*/
func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s != $2 AND %s = FALSE`,
		schema.UserSession.Table, schema.UserSession.IsRevoked, schema.UserSession.UserID,
		schema.UserSession.ID, schema.UserSession.IsRevoked)
	_, err := repository.pool.Exec(context, query, userID, currentSessionID)
	return dberr.Wrap(err, "Session")
}

/*
DeleteByUser removes every session row of an account.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Cleanup failures
*/
func (repository *PostgresSessionRepository) DeleteByUser(context context.Context, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.UserSession.Table, schema.UserSession.UserID)
	_, err := repository.pool.Exec(context, query, userID)
	return dberr.Wrap(err, "Session")
}
