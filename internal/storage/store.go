// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/yeongunheo/kitchenpos/internal/models"
)

// ErrConflict is returned when an update loses a race with a concurrent
// transaction: an optimistic version check failed, or the database aborted
// the transaction with a serialization or deadlock error.
var ErrConflict = errors.New("concurrent modification")

// Repository defines the read and write operations available to the core.
// The same operations are offered by the Store directly (each call in its own
// implicit transaction) and inside Store.Transact.
//
// Get* methods return nil and no error when the row does not exist.
type Repository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)

	CreateMenuGroup(ctx context.Context, group *models.MenuGroup) error
	MenuGroupExists(ctx context.Context, menuGroupID string) (bool, error)
	ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error)

	// CreateMenu persists the menu together with its product lines.
	CreateMenu(ctx context.Context, menu *models.Menu) error
	ListMenus(ctx context.Context) ([]*models.Menu, error)

	CreateOrderTable(ctx context.Context, table *models.OrderTable) error
	// GetOrderTable locks the row for the rest of the transaction when
	// called inside Transact.
	GetOrderTable(ctx context.Context, tableID string) (*models.OrderTable, error)
	// FindOrderTablesByIDs returns the tables that exist among ids; it may
	// return fewer than requested. Rows are locked inside Transact.
	FindOrderTablesByIDs(ctx context.Context, ids []string) ([]*models.OrderTable, error)
	// FindOrderTablesByGroupID returns the tables currently in the group.
	// Rows are locked inside Transact.
	FindOrderTablesByGroupID(ctx context.Context, tableGroupID string) ([]*models.OrderTable, error)
	ListOrderTables(ctx context.Context) ([]*models.OrderTable, error)
	// UpdateOrderTable writes the mutable fields of table if its Version still
	// matches the stored one, then increments table.Version. It returns
	// ErrConflict when the version no longer matches.
	UpdateOrderTable(ctx context.Context, table *models.OrderTable) error

	// CreateTableGroup persists the group record and its formation snapshot.
	// It does not touch the member tables.
	CreateTableGroup(ctx context.Context, group *models.TableGroup) error
	GetTableGroup(ctx context.Context, tableGroupID string) (*models.TableGroup, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	ExistsActiveOrderForTables(ctx context.Context, tableIDs []string, statuses []models.OrderStatus) (bool, error)
	ExistsActiveOrderForTable(ctx context.Context, tableID string, statuses []models.OrderStatus) (bool, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Store is a Repository that can also run a unit of work.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the core.
type Store interface {
	Repository

	// Transact runs fn inside a single transaction. If fn returns an error the
	// transaction is rolled back and the error is returned unchanged;
	// otherwise it is committed.
	Transact(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error

	// Close releases any resources held by the store.
	Close() error
}
