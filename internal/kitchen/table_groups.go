package kitchen

import (
	"context"
	"fmt"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/events"
	"github.com/yeongunheo/kitchenpos/internal/metrics"
	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

// minGroupSize is the smallest number of tables a group may join.
const minGroupSize = 2

// TableGroups joins order tables into groups and releases them.
//
// Current membership lives on the tables (OrderTable.TableGroupID). A
// TableGroup row is the record of one grouping and is kept after ungrouping.
type TableGroups struct {
	store storage.Store
	opts  Options
}

// NewTableGroups creates a TableGroups backed by store.
func NewTableGroups(store storage.Store, opts Options) *TableGroups {
	return &TableGroups{store: store, opts: opts.withDefaults()}
}

// Group joins the given tables into a new group. Every table must exist, be
// empty and not already be grouped. On success each table carries the new
// group's ID and is no longer empty; on failure no table changes. The
// returned group holds the tables as they were before grouping.
//
// Checks run in order, the first failure wins: at least two IDs, no ID
// repeated, every ID resolves to a table, every table eligible.
func (g *TableGroups) Group(ctx context.Context, orderTableIDs []string) (*models.TableGroup, error) {
	var group *models.TableGroup
	err := g.store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
		if len(orderTableIDs) < minGroupSize {
			return apperr.ErrTooFewTables.WithDetail("got %d", len(orderTableIDs))
		}
		seen := make(map[string]struct{}, len(orderTableIDs))
		for _, id := range orderTableIDs {
			if _, dup := seen[id]; dup {
				return apperr.ErrDuplicateTables.WithDetail("order table %s", id)
			}
			seen[id] = struct{}{}
		}

		tables, err := repo.FindOrderTablesByIDs(ctx, orderTableIDs)
		if err != nil {
			return fmt.Errorf("failed to load order tables: %w", err)
		}
		if len(tables) != len(orderTableIDs) {
			return apperr.ErrOrderTableNotFound.WithDetail("%s", missingIDs(orderTableIDs, tables))
		}

		for _, table := range tables {
			if !table.Empty || table.IsGrouped() {
				return apperr.ErrTableNotEligible.WithDetail("order table %s (empty=%t, grouped=%t)",
					table.ID, table.Empty, table.IsGrouped())
			}
		}

		group = &models.TableGroup{}
		for _, table := range tables {
			group.OrderTables = append(group.OrderTables, *table)
		}
		if err := repo.CreateTableGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to create table group: %w", err)
		}

		for i, table := range tables {
			table.TableGroupID = group.ID
			table.Empty = false
			if err := repo.UpdateOrderTable(ctx, table); err != nil {
				return conflictToApp(fmt.Errorf("failed to stamp order table %s: %w", table.ID, err))
			}
			group.OrderTables[i].TableGroupID = group.ID
		}
		return nil
	})
	if err != nil {
		err = conflictToApp(err)
		g.opts.Metrics.TableGroupOutcome(metrics.OutcomeRejected)
		logRejection(g.opts.Logger, "Table group rejected", err, "tables", len(orderTableIDs))
		return nil, err
	}

	g.opts.Metrics.TableGroupOutcome(metrics.OutcomeCreated)
	g.opts.Logger.Info("Table group created", "table_group_id", group.ID, "tables", len(group.OrderTables))
	publish(ctx, g.opts, events.TableGroupCreated(group))
	return group, nil
}

// Ungroup releases every table currently in the group. It is refused while
// any member has a cooking or eating order. A group with no current members,
// or an unknown ID, is a successful no-op.
func (g *TableGroups) Ungroup(ctx context.Context, tableGroupID string) error {
	var released []string
	err := g.store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
		tables, err := repo.FindOrderTablesByGroupID(ctx, tableGroupID)
		if err != nil {
			return fmt.Errorf("failed to load group members: %w", err)
		}
		if len(tables) == 0 {
			return nil
		}

		ids := make([]string, len(tables))
		for i, table := range tables {
			ids[i] = table.ID
		}

		active, err := repo.ExistsActiveOrderForTables(ctx, ids, models.ActiveOrderStatuses())
		if err != nil {
			return fmt.Errorf("failed to check active orders: %w", err)
		}
		if active {
			return apperr.ErrActiveOrdersBlockUngroup.WithDetail("table group %s", tableGroupID)
		}

		for _, table := range tables {
			table.TableGroupID = ""
			if err := repo.UpdateOrderTable(ctx, table); err != nil {
				return conflictToApp(fmt.Errorf("failed to release order table %s: %w", table.ID, err))
			}
		}
		released = ids
		return nil
	})
	if err != nil {
		err = conflictToApp(err)
		g.opts.Metrics.TableGroupOutcome(metrics.OutcomeRejected)
		logRejection(g.opts.Logger, "Ungroup rejected", err, "table_group_id", tableGroupID)
		return err
	}

	if len(released) == 0 {
		g.opts.Logger.Debug("Ungroup found no members", "table_group_id", tableGroupID)
		return nil
	}

	g.opts.Metrics.TableGroupOutcome(metrics.OutcomeUngrouped)
	g.opts.Logger.Info("Table group ungrouped", "table_group_id", tableGroupID, "tables", len(released))
	publish(ctx, g.opts, events.TableGroupUngrouped(tableGroupID, released))
	return nil
}

// GetTableGroup returns the group record with its formation snapshot and the
// tables that are members right now.
func (g *TableGroups) GetTableGroup(ctx context.Context, tableGroupID string) (*models.TableGroup, []*models.OrderTable, error) {
	group, err := g.store.GetTableGroup(ctx, tableGroupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get table group: %w", err)
	}
	if group == nil {
		return nil, nil, apperr.ErrTableGroupNotFound.WithDetail("table group %s", tableGroupID)
	}

	members, err := g.store.FindOrderTablesByGroupID(ctx, tableGroupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get group members: %w", err)
	}
	return group, members, nil
}

func missingIDs(requested []string, found []*models.OrderTable) []string {
	have := make(map[string]struct{}, len(found))
	for _, table := range found {
		have[table.ID] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
