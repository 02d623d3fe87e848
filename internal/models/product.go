package models

import "github.com/shopspring/decimal"

// Product is a priced item that menus are composed of.
type Product struct {
	// ID is the unique identifier for the product (UUID format).
	ID string

	// Name is the display name of the product (e.g., "Fried Chicken").
	Name string

	// Price is the current unit price. Never negative.
	Price decimal.Decimal
}
