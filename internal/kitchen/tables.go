package kitchen

import (
	"context"
	"fmt"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/events"
	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

// Tables manages order table occupancy.
type Tables struct {
	store storage.Store
	opts  Options
}

// NewTables creates a Tables backed by store.
func NewTables(store storage.Store, opts Options) *Tables {
	return &Tables{store: store, opts: opts.withDefaults()}
}

// CreateOrderTable adds an ungrouped table. An empty table cannot be seated.
func (t *Tables) CreateOrderTable(ctx context.Context, numberOfGuests int, empty bool) (*models.OrderTable, error) {
	if numberOfGuests < 0 {
		return nil, apperr.ErrInvalidGuestCount.WithDetail("%d guests", numberOfGuests)
	}
	if empty && numberOfGuests > 0 {
		return nil, apperr.ErrTableIsEmpty.WithDetail("%d guests at an empty table", numberOfGuests)
	}

	table := &models.OrderTable{NumberOfGuests: numberOfGuests, Empty: empty}
	if err := t.store.CreateOrderTable(ctx, table); err != nil {
		return nil, fmt.Errorf("failed to create order table: %w", err)
	}

	t.opts.Logger.Info("Order table created", "order_table_id", table.ID, "empty", table.Empty)
	return table, nil
}

// GetOrderTable returns the table with the given ID.
func (t *Tables) GetOrderTable(ctx context.Context, tableID string) (*models.OrderTable, error) {
	table, err := t.store.GetOrderTable(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order table: %w", err)
	}
	if table == nil {
		return nil, apperr.ErrOrderTableNotFound.WithDetail("order table %s", tableID)
	}
	return table, nil
}

// ListOrderTables returns every table.
func (t *Tables) ListOrderTables(ctx context.Context) ([]*models.OrderTable, error) {
	tables, err := t.store.ListOrderTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list order tables: %w", err)
	}
	return tables, nil
}

// ChangeEmpty sets the table's empty flag. It is refused while the table has
// a cooking or eating order. Group membership does not block it, and the
// guest count is left as is.
func (t *Tables) ChangeEmpty(ctx context.Context, tableID string, empty bool) (*models.OrderTable, error) {
	var table *models.OrderTable
	err := t.store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
		var err error
		table, err = loadOrderTable(ctx, repo, tableID)
		if err != nil {
			return err
		}

		active, err := repo.ExistsActiveOrderForTable(ctx, tableID, models.ActiveOrderStatuses())
		if err != nil {
			return fmt.Errorf("failed to check active orders: %w", err)
		}
		if active {
			return apperr.ErrActiveOrdersBlockEmptyChange.WithDetail("order table %s", tableID)
		}

		table.Empty = empty
		return conflictToApp(repo.UpdateOrderTable(ctx, table))
	})
	if err != nil {
		err = conflictToApp(err)
		logRejection(t.opts.Logger, "Empty change rejected", err, "order_table_id", tableID)
		return nil, err
	}

	t.opts.Logger.Info("Order table emptiness changed", "order_table_id", table.ID, "empty", table.Empty)
	publish(ctx, t.opts, events.OrderTableEmptyChanged(table))
	return table, nil
}

// ChangeNumberOfGuests sets the guest count of an occupied table.
func (t *Tables) ChangeNumberOfGuests(ctx context.Context, tableID string, numberOfGuests int) (*models.OrderTable, error) {
	var table *models.OrderTable
	err := t.store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
		var err error
		table, err = loadOrderTable(ctx, repo, tableID)
		if err != nil {
			return err
		}

		if numberOfGuests < 0 {
			return apperr.ErrInvalidGuestCount.WithDetail("%d guests", numberOfGuests)
		}
		if table.Empty {
			return apperr.ErrTableIsEmpty.WithDetail("order table %s", tableID)
		}

		table.NumberOfGuests = numberOfGuests
		return conflictToApp(repo.UpdateOrderTable(ctx, table))
	})
	if err != nil {
		err = conflictToApp(err)
		logRejection(t.opts.Logger, "Guest change rejected", err, "order_table_id", tableID)
		return nil, err
	}

	t.opts.Logger.Info("Order table guests changed", "order_table_id", table.ID, "guests", table.NumberOfGuests)
	return table, nil
}

func loadOrderTable(ctx context.Context, repo storage.Repository, tableID string) (*models.OrderTable, error) {
	table, err := repo.GetOrderTable(ctx, tableID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order table: %w", err)
	}
	if table == nil {
		return nil, apperr.ErrOrderTableNotFound.WithDetail("order table %s", tableID)
	}
	return table, nil
}
