package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yeongunheo/kitchenpos/internal/models"
)

// CreateOrder persists a new order row.
func (r *repo) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.OrderedAt == 0 {
		order.OrderedAt = time.Now().Unix()
	}

	_, err := r.q.Exec(ctx,
		"INSERT INTO orders (id, order_table_id, status, ordered_at) VALUES ($1, $2, $3, $4)",
		order.ID, order.OrderTableID, string(order.Status), order.OrderedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// ExistsActiveOrderForTables reports whether any of the tables has an order
// whose status is one of statuses.
func (r *repo) ExistsActiveOrderForTables(ctx context.Context, tableIDs []string, statuses []models.OrderStatus) (bool, error) {
	if len(tableIDs) == 0 || len(statuses) == 0 {
		return false, nil
	}

	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}

	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM orders
			WHERE order_table_id = ANY($1) AND status = ANY($2)
		)`,
		tableIDs, names,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check active orders: %w", err)
	}
	return exists, nil
}

// ExistsActiveOrderForTable is ExistsActiveOrderForTables for a single table.
func (r *repo) ExistsActiveOrderForTable(ctx context.Context, tableID string, statuses []models.OrderStatus) (bool, error) {
	return r.ExistsActiveOrderForTables(ctx, []string{tableID}, statuses)
}
