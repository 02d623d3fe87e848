package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return newTestStoreWithOptions(t, Options{})
}

func newTestStoreWithOptions(t *testing.T, opts Options) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "kitchenpos-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	store, err := Open(filepath.Join(tempDir, "test.db"), opts)
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Failed to create store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		os.RemoveAll(tempDir)
	})
	return store
}

func TestSQLiteStore_Catalog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateProduct generates ID and keeps exact price", func(t *testing.T) {
		product := &models.Product{Name: "Fried Chicken", Price: decimal.RequireFromString("16000.50")}
		if err := store.CreateProduct(ctx, product); err != nil {
			t.Fatalf("CreateProduct failed: %v", err)
		}
		if product.ID == "" {
			t.Fatal("Expected product ID to be generated")
		}

		got, err := store.GetProduct(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if got == nil {
			t.Fatal("Expected product, got nil")
		}
		if !got.Price.Equal(product.Price) {
			t.Errorf("Price mismatch: got %s, want %s", got.Price, product.Price)
		}
		if got.Name != "Fried Chicken" {
			t.Errorf("Name mismatch: got %s", got.Name)
		}
	})

	t.Run("GetProduct returns nil for nonexistent product", func(t *testing.T) {
		got, err := store.GetProduct(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if got != nil {
			t.Errorf("Expected nil, got %+v", got)
		}
	})

	t.Run("CreateMenu stores product lines", func(t *testing.T) {
		group := &models.MenuGroup{Name: "Two-piece sets"}
		if err := store.CreateMenuGroup(ctx, group); err != nil {
			t.Fatalf("CreateMenuGroup failed: %v", err)
		}
		exists, err := store.MenuGroupExists(ctx, group.ID)
		if err != nil || !exists {
			t.Fatalf("MenuGroupExists = %v, %v; want true", exists, err)
		}

		fried := &models.Product{Name: "Fried", Price: decimal.RequireFromString("16000")}
		seasoned := &models.Product{Name: "Seasoned", Price: decimal.RequireFromString("17000")}
		for _, p := range []*models.Product{fried, seasoned} {
			if err := store.CreateProduct(ctx, p); err != nil {
				t.Fatalf("CreateProduct failed: %v", err)
			}
		}

		menu := &models.Menu{
			Name:        "Half and half",
			Price:       decimal.RequireFromString("32000"),
			MenuGroupID: group.ID,
			Products: []models.MenuProduct{
				{ProductID: fried.ID, Quantity: 1},
				{ProductID: seasoned.ID, Quantity: 1},
			},
		}
		if err := store.CreateMenu(ctx, menu); err != nil {
			t.Fatalf("CreateMenu failed: %v", err)
		}
		if menu.ID == "" || menu.CreatedAt == 0 {
			t.Error("Expected menu ID and CreatedAt to be set")
		}

		menus, err := store.ListMenus(ctx)
		if err != nil {
			t.Fatalf("ListMenus failed: %v", err)
		}
		if len(menus) != 1 {
			t.Fatalf("Expected 1 menu, got %d", len(menus))
		}
		if len(menus[0].Products) != 2 {
			t.Errorf("Expected 2 menu products, got %d", len(menus[0].Products))
		}
		if !menus[0].Price.Equal(menu.Price) {
			t.Errorf("Price mismatch: got %s, want %s", menus[0].Price, menu.Price)
		}
	})

	t.Run("MenuGroupExists is false for unknown group", func(t *testing.T) {
		exists, err := store.MenuGroupExists(ctx, "nonexistent-id")
		if err != nil {
			t.Fatalf("MenuGroupExists failed: %v", err)
		}
		if exists {
			t.Error("Expected false for unknown group")
		}
	})
}

func TestSQLiteStore_OrderTables(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createTable := func(t *testing.T, guests int, empty bool) *models.OrderTable {
		t.Helper()
		table := &models.OrderTable{NumberOfGuests: guests, Empty: empty}
		if err := store.CreateOrderTable(ctx, table); err != nil {
			t.Fatalf("CreateOrderTable failed: %v", err)
		}
		return table
	}

	t.Run("FindOrderTablesByIDs skips missing IDs", func(t *testing.T) {
		t1 := createTable(t, 0, true)
		t2 := createTable(t, 0, true)

		tables, err := store.FindOrderTablesByIDs(ctx, []string{t1.ID, t2.ID, "nonexistent-id"})
		if err != nil {
			t.Fatalf("FindOrderTablesByIDs failed: %v", err)
		}
		if len(tables) != 2 {
			t.Errorf("Expected 2 tables, got %d", len(tables))
		}
	})

	t.Run("UpdateOrderTable bumps version and rejects stale writes", func(t *testing.T) {
		table := createTable(t, 0, true)
		stale := *table

		table.Empty = false
		table.NumberOfGuests = 3
		if err := store.UpdateOrderTable(ctx, table); err != nil {
			t.Fatalf("UpdateOrderTable failed: %v", err)
		}
		if table.Version != 1 {
			t.Errorf("Version = %d, want 1", table.Version)
		}

		stale.Empty = true
		err := store.UpdateOrderTable(ctx, &stale)
		if !errors.Is(err, storage.ErrConflict) {
			t.Fatalf("Expected ErrConflict, got %v", err)
		}

		got, err := store.GetOrderTable(ctx, table.ID)
		if err != nil {
			t.Fatalf("GetOrderTable failed: %v", err)
		}
		if got.Empty || got.NumberOfGuests != 3 {
			t.Errorf("Stale write leaked: %+v", got)
		}
	})

	t.Run("Table group snapshot and membership", func(t *testing.T) {
		t1 := createTable(t, 0, true)
		t2 := createTable(t, 0, true)

		group := &models.TableGroup{OrderTables: []models.OrderTable{*t1, *t2}}
		if err := store.CreateTableGroup(ctx, group); err != nil {
			t.Fatalf("CreateTableGroup failed: %v", err)
		}
		if group.ID == "" || group.CreatedAt == 0 {
			t.Error("Expected group ID and CreatedAt to be set")
		}

		for _, table := range []*models.OrderTable{t1, t2} {
			table.TableGroupID = group.ID
			if err := store.UpdateOrderTable(ctx, table); err != nil {
				t.Fatalf("UpdateOrderTable failed: %v", err)
			}
		}

		members, err := store.FindOrderTablesByGroupID(ctx, group.ID)
		if err != nil {
			t.Fatalf("FindOrderTablesByGroupID failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(members))
		}

		got, err := store.GetTableGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetTableGroup failed: %v", err)
		}
		if len(got.OrderTables) != 2 {
			t.Errorf("Expected 2 snapshot tables, got %d", len(got.OrderTables))
		}

		missing, err := store.GetTableGroup(ctx, "nonexistent-id")
		if err != nil || missing != nil {
			t.Errorf("GetTableGroup(nonexistent) = %v, %v; want nil, nil", missing, err)
		}
	})

	t.Run("ExistsActiveOrderForTables filters by status", func(t *testing.T) {
		busy := createTable(t, 2, false)
		done := createTable(t, 2, false)

		orders := []*models.Order{
			{OrderTableID: busy.ID, Status: models.OrderStatusMeal},
			{OrderTableID: done.ID, Status: models.OrderStatusCompletion},
		}
		for _, o := range orders {
			if err := store.CreateOrder(ctx, o); err != nil {
				t.Fatalf("CreateOrder failed: %v", err)
			}
		}

		active := models.ActiveOrderStatuses()
		tests := []struct {
			ids  []string
			want bool
		}{
			{[]string{busy.ID}, true},
			{[]string{done.ID}, false},
			{[]string{busy.ID, done.ID}, true},
			{[]string{}, false},
		}
		for _, tt := range tests {
			got, err := store.ExistsActiveOrderForTables(ctx, tt.ids, active)
			if err != nil {
				t.Fatalf("ExistsActiveOrderForTables failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExistsActiveOrderForTables(%v) = %v, want %v", tt.ids, got, tt.want)
			}
		}

		got, err := store.ExistsActiveOrderForTable(ctx, done.ID, active)
		if err != nil || got {
			t.Errorf("ExistsActiveOrderForTable(completed) = %v, %v; want false", got, err)
		}
	})
}

func TestSQLiteStore_Transact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	table := &models.OrderTable{Empty: true}
	if err := store.CreateOrderTable(ctx, table); err != nil {
		t.Fatalf("CreateOrderTable failed: %v", err)
	}

	t.Run("error rolls back every write", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
			locked, err := repo.GetOrderTable(ctx, table.ID)
			if err != nil {
				return err
			}
			locked.Empty = false
			locked.NumberOfGuests = 4
			if err := repo.UpdateOrderTable(ctx, locked); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom, got %v", err)
		}

		got, err := store.GetOrderTable(ctx, table.ID)
		if err != nil {
			t.Fatalf("GetOrderTable failed: %v", err)
		}
		if !got.Empty || got.NumberOfGuests != 0 || got.Version != 0 {
			t.Errorf("Expected untouched table, got %+v", got)
		}
	})

	t.Run("success commits", func(t *testing.T) {
		err := store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
			locked, err := repo.GetOrderTable(ctx, table.ID)
			if err != nil {
				return err
			}
			locked.Empty = false
			return repo.UpdateOrderTable(ctx, locked)
		})
		if err != nil {
			t.Fatalf("Transact failed: %v", err)
		}

		got, _ := store.GetOrderTable(ctx, table.ID)
		if got.Empty {
			t.Error("Expected committed change")
		}
	})
}

func TestSQLiteStore_LockTimeoutConflicts(t *testing.T) {
	store := newTestStoreWithOptions(t, Options{BusyTimeout: 50 * time.Millisecond})
	ctx := context.Background()

	held := make(chan struct{})
	release := make(chan struct{})
	holderErr := make(chan error, 1)
	go func() {
		holderErr <- store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	err := store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
		return nil
	})
	if !errors.Is(err, storage.ErrConflict) {
		t.Errorf("Transact while locked: expected ErrConflict, got %v", err)
	}

	menu := &models.Menu{Name: "Set", Price: decimal.Zero, MenuGroupID: "g"}
	if err := store.CreateMenu(ctx, menu); !errors.Is(err, storage.ErrConflict) {
		t.Errorf("CreateMenu while locked: expected ErrConflict, got %v", err)
	}

	close(release)
	if err := <-holderErr; err != nil {
		t.Fatalf("Holding transaction failed: %v", err)
	}

	if err := store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
		return nil
	}); err != nil {
		t.Errorf("Transact after release failed: %v", err)
	}
}

func TestTranslate(t *testing.T) {
	plain := errors.New("boom")
	if got := translate(plain); got != plain {
		t.Errorf("translate changed a non-SQLite error: %v", got)
	}
}

func TestSQLiteStore_Users(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("host@kitchenpos.test", "Host", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "host@kitchenpos.test")
	if err != nil || byEmail == nil {
		t.Fatalf("GetUserByEmail = %v, %v", byEmail, err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("ID mismatch: got %s, want %s", byEmail.ID, user.ID)
	}

	missing, err := store.GetUserByID(ctx, "nonexistent-id")
	if err != nil || missing != nil {
		t.Errorf("GetUserByID(nonexistent) = %v, %v; want nil, nil", missing, err)
	}

	if err := store.CreateUser(ctx, models.NewUser("host@kitchenpos.test", "Dup", "hash")); err == nil {
		t.Error("Expected duplicate email to fail")
	}
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
