// Package models defines the core domain models for kitchenpos.
//
// # Catalog
//
//   - Product: a priced, named item
//   - MenuGroup: a category that menus are filed under
//   - Menu: a priced bundle of products (MenuProduct lines)
//
// # Floor
//
//   - OrderTable: one physical table, its guest count and emptiness
//   - TableGroup: the record of several tables being joined for one party
//   - Order: the minimal view of an order needed to tell whether a table is busy
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed with ID strings. An
// OrderTable points at its TableGroup through TableGroupID; a TableGroup never
// holds live references back to its tables.
// 2. **Exact money**: prices are decimal.Decimal, never float64.
// 3. **Membership lives on the table**: the TableGroupID on OrderTable is the only
// source of truth for who is grouped with whom.
package models
