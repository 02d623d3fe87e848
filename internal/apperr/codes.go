package apperr

var (
	ErrProductNotFound    = New(NotFound, "product_not_found", "product does not exist")
	ErrMenuGroupNotFound  = New(NotFound, "menu_group_not_found", "menu group does not exist")
	ErrOrderTableNotFound = New(NotFound, "order_table_not_found", "order table does not exist")
	ErrTableGroupNotFound = New(NotFound, "table_group_not_found", "table group does not exist")

	ErrInvalidName         = New(ValidationFailed, "invalid_name", "name is required")
	ErrInvalidPrice        = New(ValidationFailed, "invalid_price", "price must be zero or positive")
	ErrInvalidQuantity     = New(ValidationFailed, "invalid_quantity", "quantity must be zero or positive")
	ErrMenuHasNoProducts   = New(ValidationFailed, "menu_has_no_products", "menu must contain at least one product")
	ErrMenuPriceExceedsSum = New(ValidationFailed, "menu_price_exceeds_sum", "menu price exceeds the sum of its product prices")
	ErrInvalidGuestCount   = New(ValidationFailed, "invalid_guest_count", "number of guests must be zero or positive")
	ErrTableIsEmpty        = New(ValidationFailed, "table_is_empty", "guests cannot be seated at an empty table")

	ErrTooFewTables     = New(PreconditionFailed, "too_few_tables", "a table group needs at least two tables")
	ErrDuplicateTables  = New(PreconditionFailed, "duplicate_tables", "a table may appear only once in a table group")
	ErrTableNotEligible = New(PreconditionFailed, "table_not_eligible_for_grouping", "table must be empty and ungrouped to be grouped")

	ErrActiveOrdersBlockUngroup     = New(ConflictBlocked, "active_orders_block_ungroup", "tables with cooking or eating orders cannot be ungrouped")
	ErrActiveOrdersBlockEmptyChange = New(ConflictBlocked, "active_orders_block_empty_change", "a table with a cooking or eating order cannot change emptiness")

	ErrConcurrentModification = New(ConcurrencyConflict, "concurrent_modification", "order tables were modified concurrently, retry the operation")
)
