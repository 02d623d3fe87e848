package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yeongunheo/kitchenpos/internal/models"
)

// Prices cross the wire as text so NUMERIC values keep every digit.

func scanPrice(text string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse price %q: %w", text, err)
	}
	return price, nil
}

// CreateProduct persists a new product.
func (r *repo) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}

	_, err := r.q.Exec(ctx,
		"INSERT INTO products (id, name, price) VALUES ($1, $2, $3::numeric)",
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
	var price string
	err := r.q.QueryRow(ctx,
		"SELECT id, name, price::text FROM products WHERE id = $1",
		productID,
	).Scan(&product.ID, &product.Name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil // Product not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product.Price, err = scanPrice(price); err != nil {
		return nil, err
	}
	return product, nil
}

// ListProducts retrieves all products ordered by name.
func (r *repo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.q.Query(ctx, "SELECT id, name, price::text FROM products ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		var price string
		if err := rows.Scan(&product.ID, &product.Name, &price); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if product.Price, err = scanPrice(price); err != nil {
			return nil, err
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

	_, err := r.q.Exec(ctx, "INSERT INTO menu_groups (id, name) VALUES ($1, $2)", group.ID, group.Name)
	if err != nil {
		return fmt.Errorf("failed to insert menu group: %w", err)
	}
	return nil
}

// MenuGroupExists reports whether a menu group with the given ID exists.
func (r *repo) MenuGroupExists(ctx context.Context, menuGroupID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM menu_groups WHERE id = $1)",
		menuGroupID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check menu group existence: %w", err)
	}
	return exists, nil
}

// ListMenuGroups retrieves all menu groups ordered by name.
func (r *repo) ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error) {
	rows, err := r.q.Query(ctx, "SELECT id, name FROM menu_groups ORDER BY name, id")
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

	return r.atomically(ctx, func(q pgx.Tx) error {
		_, err := q.Exec(ctx,
			"INSERT INTO menus (id, name, price, menu_group_id, created_at) VALUES ($1, $2, $3::numeric, $4, $5)",
			menu.ID, menu.Name, menu.Price.String(), menu.MenuGroupID, menu.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert menu: %w", err)
		}

		for _, line := range menu.Products {
			_, err = q.Exec(ctx,
				"INSERT INTO menu_products (menu_id, product_id, quantity) VALUES ($1, $2, $3)",
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
	rows, err := r.q.Query(ctx,
		"SELECT id, name, price::text, menu_group_id, created_at FROM menus ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	var menus []*models.Menu
	byID := make(map[string]*models.Menu)
	for rows.Next() {
		menu := &models.Menu{}
		var price string
		if err := rows.Scan(&menu.ID, &menu.Name, &price, &menu.MenuGroupID, &menu.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		if menu.Price, err = scanPrice(price); err != nil {
			rows.Close()
			return nil, err
		}
		menus = append(menus, menu)
		byID[menu.ID] = menu
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menus: %w", err)
	}

	lineRows, err := r.q.Query(ctx, "SELECT menu_id, product_id, quantity FROM menu_products ORDER BY seq")
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
