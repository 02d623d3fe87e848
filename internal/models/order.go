package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusCooking    OrderStatus = "COOKING"
	OrderStatusMeal       OrderStatus = "MEAL"
	OrderStatusCompletion OrderStatus = "COMPLETION"
)

// ActiveOrderStatuses are the statuses of orders still in progress.
// A table with such an order cannot be ungrouped or have its emptiness changed.
func ActiveOrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusCooking, OrderStatusMeal}
}

// Order is the part of an order that the floor rules care about: which table
// it was placed at and where it is in its lifecycle.
type Order struct {
	ID           string
	OrderTableID string
	Status       OrderStatus

	// OrderedAt is the Unix timestamp when the order was placed.
	OrderedAt int64
}
