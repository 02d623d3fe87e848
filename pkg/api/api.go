// Package api defines the messages of the kitchenpos RPC surface.
//
// Messages are plain structs sent as JSON over the Connect protocol. Prices
// are decimal strings ("13.00") so no precision is lost in transit.
package api

const (
	ProductServiceName    = "kitchenpos.v1.ProductService"
	MenuServiceName       = "kitchenpos.v1.MenuService"
	TableServiceName      = "kitchenpos.v1.TableService"
	TableGroupServiceName = "kitchenpos.v1.TableGroupService"
	AuthServiceName       = "kitchenpos.v1.AuthService"
)

// Fully-qualified procedure names, used as HTTP paths.
const (
	ProductServiceCreateProductProcedure = "/" + ProductServiceName + "/CreateProduct"
	ProductServiceListProductsProcedure  = "/" + ProductServiceName + "/ListProducts"

	MenuServiceCreateMenuGroupProcedure = "/" + MenuServiceName + "/CreateMenuGroup"
	MenuServiceListMenuGroupsProcedure  = "/" + MenuServiceName + "/ListMenuGroups"
	MenuServiceCreateMenuProcedure      = "/" + MenuServiceName + "/CreateMenu"
	MenuServiceListMenusProcedure       = "/" + MenuServiceName + "/ListMenus"

	TableServiceCreateOrderTableProcedure     = "/" + TableServiceName + "/CreateOrderTable"
	TableServiceGetOrderTableProcedure        = "/" + TableServiceName + "/GetOrderTable"
	TableServiceListOrderTablesProcedure      = "/" + TableServiceName + "/ListOrderTables"
	TableServiceChangeEmptyProcedure          = "/" + TableServiceName + "/ChangeEmpty"
	TableServiceChangeNumberOfGuestsProcedure = "/" + TableServiceName + "/ChangeNumberOfGuests"

	TableGroupServiceCreateTableGroupProcedure = "/" + TableGroupServiceName + "/CreateTableGroup"
	TableGroupServiceGetTableGroupProcedure    = "/" + TableGroupServiceName + "/GetTableGroup"
	TableGroupServiceUngroupProcedure          = "/" + TableGroupServiceName + "/Ungroup"

	AuthServiceRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure    = "/" + AuthServiceName + "/Login"
)

// ErrorCodeHeader carries the stable failure code on error responses.
const ErrorCodeHeader = "Kitchenpos-Error-Code"

type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type CreateProductRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type CreateProductResponse struct {
	Product *Product `json:"product"`
}

type ListProductsRequest struct{}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
}

type MenuGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateMenuGroupRequest struct {
	Name string `json:"name"`
}

type CreateMenuGroupResponse struct {
	MenuGroup *MenuGroup `json:"menu_group"`
}

type ListMenuGroupsRequest struct{}

type ListMenuGroupsResponse struct {
	MenuGroups []*MenuGroup `json:"menu_groups"`
}

type MenuProduct struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type Menu struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Price        string         `json:"price"`
	MenuGroupID  string         `json:"menu_group_id"`
	MenuProducts []*MenuProduct `json:"menu_products"`
	CreatedAt    int64          `json:"created_at"`
}

type CreateMenuRequest struct {
	Name         string         `json:"name"`
	Price        string         `json:"price"`
	MenuGroupID  string         `json:"menu_group_id"`
	MenuProducts []*MenuProduct `json:"menu_products"`
}

type CreateMenuResponse struct {
	Menu *Menu `json:"menu"`
}

type ListMenusRequest struct{}

type ListMenusResponse struct {
	Menus []*Menu `json:"menus"`
}

type OrderTable struct {
	ID             string `json:"id"`
	TableGroupID   string `json:"table_group_id,omitempty"`
	NumberOfGuests int    `json:"number_of_guests"`
	Empty          bool   `json:"empty"`
}

type CreateOrderTableRequest struct {
	NumberOfGuests int  `json:"number_of_guests"`
	Empty          bool `json:"empty"`
}

type CreateOrderTableResponse struct {
	OrderTable *OrderTable `json:"order_table"`
}

type GetOrderTableRequest struct {
	OrderTableID string `json:"order_table_id"`
}

type GetOrderTableResponse struct {
	OrderTable *OrderTable `json:"order_table"`
}

type ListOrderTablesRequest struct{}

type ListOrderTablesResponse struct {
	OrderTables []*OrderTable `json:"order_tables"`
}

type ChangeEmptyRequest struct {
	OrderTableID string `json:"order_table_id"`
	Empty        bool   `json:"empty"`
}

type ChangeEmptyResponse struct {
	OrderTable *OrderTable `json:"order_table"`
}

type ChangeNumberOfGuestsRequest struct {
	OrderTableID   string `json:"order_table_id"`
	NumberOfGuests int    `json:"number_of_guests"`
}

type ChangeNumberOfGuestsResponse struct {
	OrderTable *OrderTable `json:"order_table"`
}

// TableGroup is a grouping record. OrderTables is the snapshot taken when
// the group was formed; CurrentOrderTables lists the tables still in it.
type TableGroup struct {
	ID                 string        `json:"id"`
	CreatedAt          int64         `json:"created_at"`
	OrderTables        []*OrderTable `json:"order_tables"`
	CurrentOrderTables []*OrderTable `json:"current_order_tables"`
}

type CreateTableGroupRequest struct {
	OrderTableIDs []string `json:"order_table_ids"`
}

type CreateTableGroupResponse struct {
	TableGroup *TableGroup `json:"table_group"`
}

type GetTableGroupRequest struct {
	TableGroupID string `json:"table_group_id"`
}

type GetTableGroupResponse struct {
	TableGroup *TableGroup `json:"table_group"`
}

type UngroupRequest struct {
	TableGroupID string `json:"table_group_id"`
}

type UngroupResponse struct{}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
