package models

import "github.com/shopspring/decimal"

// MenuGroup is a category that menus belong to (e.g., "Two-piece sets").
type MenuGroup struct {
	ID   string
	Name string
}

// Menu is a named bundle of products sold for a single price.
//
// The price is checked against the products' prices only when the menu is
// created. Later product price changes do not invalidate existing menus.
type Menu struct {
	// ID is the unique identifier for the menu (UUID format).
	ID string

	// Name is the display name of the menu.
	Name string

	// Price is the declared selling price of the whole menu.
	Price decimal.Decimal

	// MenuGroupID references the MenuGroup this menu is filed under.
	MenuGroupID string

	// Products are the lines making up the menu. Order is not meaningful.
	Products []MenuProduct

	// CreatedAt is the Unix timestamp when the menu was created.
	CreatedAt int64
}

// MenuProduct is one line of a menu: a product and how many of it.
type MenuProduct struct {
	ProductID string
	Quantity  int64
}
