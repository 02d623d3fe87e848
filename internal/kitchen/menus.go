package kitchen

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/calculator"
	"github.com/yeongunheo/kitchenpos/internal/events"
	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

// MenuGroups creates and lists menu groups.
type MenuGroups struct {
	store storage.Store
	opts  Options
}

// NewMenuGroups creates a MenuGroups backed by store.
func NewMenuGroups(store storage.Store, opts Options) *MenuGroups {
	return &MenuGroups{store: store, opts: opts.withDefaults()}
}

// CreateMenuGroup adds a menu group.
func (g *MenuGroups) CreateMenuGroup(ctx context.Context, name string) (*models.MenuGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalidName
	}

	group := &models.MenuGroup{Name: name}
	if err := g.store.CreateMenuGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create menu group: %w", err)
	}

	g.opts.Logger.Info("Menu group created", "menu_group_id", group.ID)
	return group, nil
}

// ListMenuGroups returns every menu group.
func (g *MenuGroups) ListMenuGroups(ctx context.Context) ([]*models.MenuGroup, error) {
	groups, err := g.store.ListMenuGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu groups: %w", err)
	}
	return groups, nil
}

// Menus creates and lists menus.
type Menus struct {
	store storage.Store
	opts  Options
}

// NewMenus creates a Menus backed by store.
func NewMenus(store storage.Store, opts Options) *Menus {
	return &Menus{store: store, opts: opts.withDefaults()}
}

// CreateMenuParams describes a menu to create.
type CreateMenuParams struct {
	Name        string
	Price       decimal.Decimal
	MenuGroupID string
	Products    []models.MenuProduct
}

// CreateMenu validates and persists a menu. Checks run in this order, the
// first failure wins: name present, price not negative and in whole cents,
// menu group exists, at least one line, quantities not negative, price at most
// the sum of the lines' current product prices. The menu and its lines are written in the same transaction
// as the checks.
func (m *Menus) CreateMenu(ctx context.Context, params CreateMenuParams) (*models.Menu, error) {
	menu := &models.Menu{
		Name:        strings.TrimSpace(params.Name),
		Price:       params.Price,
		MenuGroupID: params.MenuGroupID,
		Products:    params.Products,
	}

	err := m.store.Transact(ctx, func(ctx context.Context, repo storage.Repository) error {
		if menu.Name == "" {
			return apperr.ErrInvalidName
		}
		if err := checkPrice(menu.Price); err != nil {
			return err
		}

		exists, err := repo.MenuGroupExists(ctx, menu.MenuGroupID)
		if err != nil {
			return fmt.Errorf("failed to check menu group: %w", err)
		}
		if !exists {
			return apperr.ErrMenuGroupNotFound.WithDetail("menu group %s", menu.MenuGroupID)
		}

		if len(menu.Products) == 0 {
			return apperr.ErrMenuHasNoProducts
		}
		for _, line := range menu.Products {
			if line.Quantity < 0 {
				return apperr.ErrInvalidQuantity.WithDetail("product %s quantity %d", line.ProductID, line.Quantity)
			}
		}

		if err := calculator.ValidateMenuPrice(ctx, menu.Price, menu.Products, repo); err != nil {
			return err
		}

		if err := repo.CreateMenu(ctx, menu); err != nil {
			return fmt.Errorf("failed to create menu: %w", err)
		}
		return nil
	})
	if err != nil {
		logRejection(m.opts.Logger, "Menu rejected", err, "menu_group_id", params.MenuGroupID)
		return nil, err
	}

	m.opts.Logger.Info("Menu created",
		"menu_id", menu.ID,
		"price", menu.Price.String(),
		"lines", len(menu.Products),
	)
	publish(ctx, m.opts, events.MenuCreated(menu))
	return menu, nil
}

// ListMenus returns every menu with its lines.
func (m *Menus) ListMenus(ctx context.Context) ([]*models.Menu, error) {
	menus, err := m.store.ListMenus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	return menus, nil
}
