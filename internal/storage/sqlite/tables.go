package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

const orderTableColumns = "id, table_group_id, number_of_guests, empty, version"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanOrderTable(row scanner) (*models.OrderTable, error) {
	table := &models.OrderTable{}
	var groupID sql.NullString
	if err := row.Scan(&table.ID, &groupID, &table.NumberOfGuests, &table.Empty, &table.Version); err != nil {
		return nil, err
	}
	if groupID.Valid {
		table.TableGroupID = groupID.String
	}
	return table, nil
}

// nullableGroupID maps an empty group reference to NULL.
func nullableGroupID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// CreateOrderTable persists a new order table.
func (r *repo) CreateOrderTable(ctx context.Context, table *models.OrderTable) error {
	if table.ID == "" {
		table.ID = uuid.New().String()
	}

	_, err := r.q.ExecContext(ctx,
		"INSERT INTO order_tables (id, table_group_id, number_of_guests, empty, version) VALUES (?, ?, ?, ?, ?)",
		table.ID, nullableGroupID(table.TableGroupID), table.NumberOfGuests, table.Empty, table.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order table: %w", err)
	}
	return nil
}

// GetOrderTable retrieves an order table by ID.
func (r *repo) GetOrderTable(ctx context.Context, tableID string) (*models.OrderTable, error) {
	row := r.q.QueryRowContext(ctx,
		"SELECT "+orderTableColumns+" FROM order_tables WHERE id = ?",
		tableID,
	)
	table, err := scanOrderTable(row)
	if err == sql.ErrNoRows {
		return nil, nil // Order table not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order table: %w", err)
	}
	return table, nil
}

// FindOrderTablesByIDs retrieves the order tables among ids that exist.
func (r *repo) FindOrderTablesByIDs(ctx context.Context, ids []string) ([]*models.OrderTable, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryOrderTables(ctx,
		"SELECT "+orderTableColumns+" FROM order_tables WHERE id IN ("+placeholders(len(ids))+") ORDER BY id",
		stringArgs(ids)...,
	)
}

// FindOrderTablesByGroupID retrieves the order tables currently in a group.
func (r *repo) FindOrderTablesByGroupID(ctx context.Context, tableGroupID string) ([]*models.OrderTable, error) {
	return r.queryOrderTables(ctx,
		"SELECT "+orderTableColumns+" FROM order_tables WHERE table_group_id = ? ORDER BY id",
		tableGroupID,
	)
}

// ListOrderTables retrieves all order tables.
func (r *repo) ListOrderTables(ctx context.Context) ([]*models.OrderTable, error) {
	return r.queryOrderTables(ctx, "SELECT "+orderTableColumns+" FROM order_tables ORDER BY id")
}

func (r *repo) queryOrderTables(ctx context.Context, query string, args ...any) ([]*models.OrderTable, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order tables: %w", err)
	}
	defer rows.Close()

	var tables []*models.OrderTable
	for rows.Next() {
		table, err := scanOrderTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order table: %w", err)
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order tables: %w", err)
	}
	return tables, nil
}

// UpdateOrderTable writes the table's group reference, guest count and
// emptiness, guarded by its version.
func (r *repo) UpdateOrderTable(ctx context.Context, table *models.OrderTable) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE order_tables
		 SET table_group_id = ?, number_of_guests = ?, empty = ?, version = version + 1
		 WHERE id = ? AND version = ?`,
		nullableGroupID(table.TableGroupID), table.NumberOfGuests, table.Empty, table.ID, table.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update order table: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated order table: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("order table %s at version %d: %w", table.ID, table.Version, storage.ErrConflict)
	}

	table.Version++
	return nil
}

// CreateTableGroup persists a table group and its formation snapshot.
func (r *repo) CreateTableGroup(ctx context.Context, group *models.TableGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return r.atomically(ctx, func(q querier) error {
		_, err := q.ExecContext(ctx,
			"INSERT INTO table_groups (id, created_at) VALUES (?, ?)",
			group.ID, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert table group: %w", err)
		}

		for _, table := range group.OrderTables {
			_, err = q.ExecContext(ctx,
				"INSERT INTO table_group_members (table_group_id, order_table_id, number_of_guests, empty) VALUES (?, ?, ?, ?)",
				group.ID, table.ID, table.NumberOfGuests, table.Empty,
			)
			if err != nil {
				return fmt.Errorf("failed to insert table group member: %w", err)
			}
		}
		return nil
	})
}

// GetTableGroup retrieves a table group and its formation snapshot.
func (r *repo) GetTableGroup(ctx context.Context, tableGroupID string) (*models.TableGroup, error) {
	group := &models.TableGroup{}
	err := r.q.QueryRowContext(ctx,
		"SELECT id, created_at FROM table_groups WHERE id = ?",
		tableGroupID,
	).Scan(&group.ID, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Table group not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table group: %w", err)
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT order_table_id, number_of_guests, empty
		 FROM table_group_members WHERE table_group_id = ? ORDER BY order_table_id`,
		tableGroupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get table group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		table := models.OrderTable{TableGroupID: group.ID}
		if err := rows.Scan(&table.ID, &table.NumberOfGuests, &table.Empty); err != nil {
			return nil, fmt.Errorf("failed to scan table group member: %w", err)
		}
		group.OrderTables = append(group.OrderTables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate table group members: %w", err)
	}

	return group, nil
}
