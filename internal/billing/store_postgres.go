// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sociallink/internal/platform/database/schema"
	"github.com/taibuivan/sociallink/internal/platform/dberr"
)

// PostgresOrderRepository implements [OrderRepository] over billing.order.
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderRepository creates a new PostgreSQL implementation of [OrderRepository].
func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool}
}

var (
	table        = schema.BillingOrder
	orderColumns = strings.Join(table.Columns(), ", ")
)

func (repository *PostgresOrderRepository) Create(context context.Context, order *Order) error {
	now := time.Now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, table.Table, orderColumns)
	_, err := repository.pool.Exec(context, query,
		order.ID, order.OwnerID, order.Provider, order.ProviderRef, order.ProductID,
		order.Amount, order.Currency, order.Status, order.CreatedAt, order.UpdatedAt,
	)
	return dberr.Wrap(err, resourceOrder)
}

func (repository *PostgresOrderRepository) FindByProviderRef(context context.Context, ownerID string, provider Provider, providerRef string) (*Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3`,
		orderColumns, table.Table, table.OwnerID, table.Provider, table.ProviderRef)

	order := &Order{}
	err := repository.pool.QueryRow(context, query, ownerID, provider, providerRef).Scan(
		&order.ID, &order.OwnerID, &order.Provider, &order.ProviderRef, &order.ProductID,
		&order.Amount, &order.Currency, &order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceOrder)
	}
	return order, nil
}

// MarkPaid flips the status in one conditional update so concurrent confirmations upgrade once.
func (repository *PostgresOrderRepository) MarkPaid(context context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1 AND %s = $3`,
		table.Table, table.Status, table.UpdatedAt, table.ID, table.Status)

	result, err := repository.pool.Exec(context, query, id, StatusPaid, StatusPending)
	if err != nil {
		return false, dberr.Wrap(err, resourceOrder)
	}
	return result.RowsAffected() == 1, nil
}

func (repository *PostgresOrderRepository) DeleteByOwner(context context.Context, ownerID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table.Table, table.OwnerID)
	_, err := repository.pool.Exec(context, query, ownerID)
	return dberr.Wrap(err, resourceOrder)
}
