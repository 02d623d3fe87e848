package kitchen

import (
	"context"
	"testing"
	"time"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/events"
	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
	"github.com/yeongunheo/kitchenpos/internal/storage/sqlite"
)

func TestCreateOrderTable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.kitchen.Tables.CreateOrderTable(ctx, -1, false); err == nil {
		t.Fatal("Expected error for negative guests")
	} else {
		assertErr(t, err, apperr.ErrInvalidGuestCount)
	}

	_, err := env.kitchen.Tables.CreateOrderTable(ctx, 2, true)
	assertErr(t, err, apperr.ErrTableIsEmpty)

	table := env.createTable(t, 0, true)
	if table.ID == "" || table.IsGrouped() {
		t.Errorf("Unexpected new table: %+v", table)
	}

	tables, err := env.kitchen.Tables.ListOrderTables(ctx)
	if err != nil {
		t.Fatalf("ListOrderTables failed: %v", err)
	}
	if len(tables) != 1 {
		t.Errorf("Expected 1 table, got %d", len(tables))
	}

	_, err = env.kitchen.Tables.GetOrderTable(ctx, "missing")
	assertErr(t, err, apperr.ErrOrderTableNotFound)
}

func TestChangeEmpty(t *testing.T) {
	ctx := context.Background()

	t.Run("toggles and round-trips without touching guests", func(t *testing.T) {
		env := newTestEnv(t)
		table := env.createTable(t, 4, false)

		updated, err := env.kitchen.Tables.ChangeEmpty(ctx, table.ID, true)
		if err != nil {
			t.Fatalf("ChangeEmpty(true) failed: %v", err)
		}
		if !updated.Empty || updated.NumberOfGuests != 4 {
			t.Errorf("Unexpected table after ChangeEmpty(true): %+v", updated)
		}

		updated, err = env.kitchen.Tables.ChangeEmpty(ctx, table.ID, false)
		if err != nil {
			t.Fatalf("ChangeEmpty(false) failed: %v", err)
		}
		if updated.Empty || updated.NumberOfGuests != 4 {
			t.Errorf("Unexpected table after ChangeEmpty(false): %+v", updated)
		}

		stored := env.reload(t, table.ID)
		if stored.Empty || stored.Version != 2 {
			t.Errorf("Stored table = %+v, want non-empty at version 2", stored)
		}

		types := env.publisher.types()
		if len(types) != 2 || types[0] != events.TypeOrderTableEmptyChanged {
			t.Errorf("Unexpected events: %v", types)
		}
	})

	t.Run("unknown table", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.kitchen.Tables.ChangeEmpty(ctx, "missing", true)
		assertErr(t, err, apperr.ErrOrderTableNotFound)
	})

	for _, status := range models.ActiveOrderStatuses() {
		t.Run("blocked by "+string(status)+" order", func(t *testing.T) {
			env := newTestEnv(t)
			table := env.createTable(t, 2, false)
			env.createOrder(t, table.ID, status)

			_, err := env.kitchen.Tables.ChangeEmpty(ctx, table.ID, true)
			assertErr(t, err, apperr.ErrActiveOrdersBlockEmptyChange)

			if stored := env.reload(t, table.ID); stored.Empty {
				t.Error("Table should still be occupied")
			}
			if len(env.publisher.types()) != 0 {
				t.Error("No event expected for a rejected change")
			}
		})
	}

	t.Run("completed order does not block", func(t *testing.T) {
		env := newTestEnv(t)
		table := env.createTable(t, 2, false)
		env.createOrder(t, table.ID, models.OrderStatusCompletion)

		if _, err := env.kitchen.Tables.ChangeEmpty(ctx, table.ID, true); err != nil {
			t.Fatalf("ChangeEmpty failed: %v", err)
		}
	})

	t.Run("grouped table may change emptiness", func(t *testing.T) {
		env := newTestEnv(t)
		t1 := env.createTable(t, 0, true)
		t2 := env.createTable(t, 0, true)
		if _, err := env.kitchen.TableGroups.Group(ctx, []string{t1.ID, t2.ID}); err != nil {
			t.Fatalf("Group failed: %v", err)
		}

		updated, err := env.kitchen.Tables.ChangeEmpty(ctx, t1.ID, true)
		if err != nil {
			t.Fatalf("ChangeEmpty failed: %v", err)
		}
		if !updated.IsGrouped() {
			t.Error("Group reference should be untouched")
		}
	})

	t.Run("publish failure does not fail the change", func(t *testing.T) {
		env := newTestEnv(t)
		env.publisher.err = context.DeadlineExceeded
		table := env.createTable(t, 0, false)

		if _, err := env.kitchen.Tables.ChangeEmpty(ctx, table.ID, true); err != nil {
			t.Fatalf("ChangeEmpty failed: %v", err)
		}
		if !env.reload(t, table.ID).Empty {
			t.Error("Change should be committed")
		}
	})
}

func TestChangeNumberOfGuests(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	occupied := env.createTable(t, 2, false)
	empty := env.createTable(t, 0, true)

	tests := []struct {
		name    string
		tableID string
		guests  int
		wantErr *apperr.Error
	}{
		{name: "occupied table", tableID: occupied.ID, guests: 6},
		{name: "zero guests allowed", tableID: occupied.ID, guests: 0},
		{name: "negative guests", tableID: occupied.ID, guests: -1, wantErr: apperr.ErrInvalidGuestCount},
		{name: "empty table", tableID: empty.ID, guests: 3, wantErr: apperr.ErrTableIsEmpty},
		{name: "unknown table", tableID: "missing", guests: 3, wantErr: apperr.ErrOrderTableNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := env.store.GetOrderTable(ctx, tt.tableID)

			table, err := env.kitchen.Tables.ChangeNumberOfGuests(ctx, tt.tableID, tt.guests)
			if tt.wantErr != nil {
				assertErr(t, err, tt.wantErr)
				if before != nil {
					if after := env.reload(t, tt.tableID); after.NumberOfGuests != before.NumberOfGuests {
						t.Errorf("Guests changed on failure: %d -> %d", before.NumberOfGuests, after.NumberOfGuests)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("ChangeNumberOfGuests failed: %v", err)
			}
			if table.NumberOfGuests != tt.guests {
				t.Errorf("Guests = %d, want %d", table.NumberOfGuests, tt.guests)
			}
		})
	}
}

func TestChangeEmptyWhileStoreLocked(t *testing.T) {
	env := newTestEnvWithStore(t, sqlite.Options{BusyTimeout: 50 * time.Millisecond})
	ctx := context.Background()
	table := env.createTable(t, 0, true)

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- env.store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	_, err := env.kitchen.Tables.ChangeEmpty(ctx, table.ID, false)
	close(release)
	if holdErr := <-done; holdErr != nil {
		t.Fatalf("Holding transaction failed: %v", holdErr)
	}

	assertErr(t, err, apperr.ErrConcurrentModification)
	if !env.reload(t, table.ID).Empty {
		t.Error("Table changed although the transaction never started")
	}
}
