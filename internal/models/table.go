package models

// OrderTable is a physical table on the restaurant floor.
type OrderTable struct {
	// ID is the unique identifier for the table (UUID format).
	ID string

	// TableGroupID is the group the table currently belongs to.
	// Empty when the table is not grouped.
	TableGroupID string

	// NumberOfGuests is the number of guests seated. Never negative.
	NumberOfGuests int

	// Empty reports whether the table is unoccupied.
	Empty bool

	// Version is bumped by the store on every update and is used to detect
	// concurrent modification.
	Version int64
}

// IsGrouped reports whether the table currently belongs to a table group.
func (t *OrderTable) IsGrouped() bool {
	return t.TableGroupID != ""
}

// TableGroup records several order tables being joined for one party.
//
// It is a point-in-time record: OrderTables is the snapshot taken when the
// group was formed. Current membership is derived from OrderTable.TableGroupID.
type TableGroup struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// CreatedAt is the Unix timestamp when the group was formed.
	CreatedAt int64

	// OrderTables are the member tables as they were when the group was formed.
	OrderTables []OrderTable
}

// OrderTableIDs returns the IDs of the tables in the group snapshot.
func (g *TableGroup) OrderTableIDs() []string {
	ids := make([]string, len(g.OrderTables))
	for i := range g.OrderTables {
		ids[i] = g.OrderTables[i].ID
	}
	return ids
}
