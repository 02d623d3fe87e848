// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// querier is the subset of *sql.DB and *sql.Tx the repository needs.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// repo implements storage.Repository on top of either the database handle or
// an open transaction.
type repo struct {
	q querier
}

// SQLiteStore implements storage.Store using SQLite.
//
// Every transaction is opened with BEGIN IMMEDIATE, so a transaction holds the
// database write lock from its first statement. Check-then-mutate sequences
// run inside Transact are therefore serialized against each other.
type SQLiteStore struct {
	*repo
	db *sql.DB
}

// Options tune the connection.
type Options struct {
	// BusyTimeout is how long a transaction waits for the write lock before
	// failing with storage.ErrConflict. Zero means five seconds.
	BusyTimeout time.Duration
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	return Open(dbPath, Options{})
}

// Open is New with explicit options.
func Open(dbPath string, opts Options) (*SQLiteStore, error) {
	busyTimeout := opts.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = 5 * time.Second
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas are applied to every pooled connection, not just the first one.
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_txlock=immediate",
		dbPath, busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{repo: &repo{q: db}, db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Transact runs fn inside a single immediate transaction.
func (s *SQLiteStore) Transact(ctx context.Context, fn func(ctx context.Context, r storage.Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translate(err))
	}
	defer tx.Rollback()

	if err := fn(ctx, &repo{q: tx}); err != nil {
		return translate(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translate(err))
	}
	return nil
}

// atomically runs fn in a transaction unless the repo already is one.
func (r *repo) atomically(ctx context.Context, fn func(q querier) error) error {
	db, ok := r.q.(*sql.DB)
	if !ok {
		return fn(r.q)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translate(err))
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return translate(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translate(err))
	}
	return nil
}

// translate maps lock contention that outlasted the busy timeout to
// storage.ErrConflict.
func translate(err error) error {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%w: %s", storage.ErrConflict, sqliteErr.Error())
		}
	}
	return err
}

// CreateProduct persists a new product.
func (r *repo) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	_, err := r.q.ExecContext(ctx,
		"INSERT INTO products (id, name, price) VALUES (?, ?, ?)",
		product.ID, product.Name, product.Price.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// GetProduct retrieves a product by ID.
func (r *repo) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	product := &models.Product{}
	err := r.q.QueryRowContext(ctx,
		"SELECT id, name, price FROM products WHERE id = ?",
		productID,
	).Scan(&product.ID, &product.Name, &product.Price)
	if err == sql.ErrNoRows {
		return nil, nil // Product not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts retrieves all products ordered by name.
func (r *repo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT id, name, price FROM products ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// CreateMenuGroup persists a new menu group.
func (r *repo) CreateMenuGroup(ctx context.Context, group *models.MenuGroup) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}

	_, err := r.q.ExecContext(ctx,
		"INSERT INTO menu_groups (id, name) VALUES (?, ?)",
		group.ID, group.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert menu group: %w", err)
	}
	return nil
}

// MenuGroupExists reports whether a menu group with the given ID exists.
func (r *repo) MenuGroupExists(ctx context.Context, menuGroupID string) (bool, error) {
	var exists int
	err := r.q.QueryRowContext(ctx, "SELECT 1 FROM menu_groups WHERE id = ?", menuGroupID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check menu group existence: %w", err)
	}
	return true, nil
}

// ListMenuGroups retrieves all menu groups ordered by name.
func (r *repo) ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error) {
	rows, err := r.q.QueryContext(ctx, "SELECT id, name FROM menu_groups ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list menu groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.MenuGroup
	for rows.Next() {
		group := &models.MenuGroup{}
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, fmt.Errorf("failed to scan menu group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu groups: %w", err)
	}
	return groups, nil
}

// CreateMenu persists a new menu and its product lines.
func (r *repo) CreateMenu(ctx context.Context, menu *models.Menu) error {
	if menu.ID == "" {
		menu.ID = uuid.New().String()
	}
	if menu.CreatedAt == 0 {
		menu.CreatedAt = time.Now().Unix()
	}

	return r.atomically(ctx, func(q querier) error {
		_, err := q.ExecContext(ctx,
			"INSERT INTO menus (id, name, price, menu_group_id, created_at) VALUES (?, ?, ?, ?, ?)",
			menu.ID, menu.Name, menu.Price.String(), menu.MenuGroupID, menu.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert menu: %w", err)
		}

		for _, line := range menu.Products {
			_, err = q.ExecContext(ctx,
				"INSERT INTO menu_products (menu_id, product_id, quantity) VALUES (?, ?, ?)",
				menu.ID, line.ProductID, line.Quantity,
			)
			if err != nil {
				return fmt.Errorf("failed to insert menu product: %w", err)
			}
		}
		return nil
	})
}

// ListMenus retrieves all menus with their product lines.
func (r *repo) ListMenus(ctx context.Context) ([]*models.Menu, error) {
	rows, err := r.q.QueryContext(ctx,
		"SELECT id, name, price, menu_group_id, created_at FROM menus ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []*models.Menu
	byID := make(map[string]*models.Menu)
	for rows.Next() {
		menu := &models.Menu{}
		if err := rows.Scan(&menu.ID, &menu.Name, &menu.Price, &menu.MenuGroupID, &menu.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, menu)
		byID[menu.ID] = menu
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menus: %w", err)
	}
	rows.Close()

	lineRows, err := r.q.QueryContext(ctx,
		"SELECT menu_id, product_id, quantity FROM menu_products ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu products: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var menuID string
		var line models.MenuProduct
		if err := lineRows.Scan(&menuID, &line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan menu product: %w", err)
		}
		if menu, ok := byID[menuID]; ok {
			menu.Products = append(menu.Products, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu products: %w", err)
	}

	return menus, nil
}

// placeholders returns "?, ?, ..." with n placeholders.
// Used for building IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// stringArgs converts ids to []any for query arguments.
func stringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
