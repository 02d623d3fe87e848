package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/pkg/api"
)

// ProductServiceHandler is implemented by the server side of ProductService.
type ProductServiceHandler interface {
	CreateProduct(context.Context, *connect.Request[api.CreateProductRequest]) (*connect.Response[api.CreateProductResponse], error)
	ListProducts(context.Context, *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error)
}

// NewProductServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewProductServiceHandler(svc ProductServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		api.ProductServiceCreateProductProcedure: connect.NewUnaryHandler(api.ProductServiceCreateProductProcedure, svc.CreateProduct, opts...),
		api.ProductServiceListProductsProcedure:  connect.NewUnaryHandler(api.ProductServiceListProductsProcedure, svc.ListProducts, opts...),
	}
	return "/" + api.ProductServiceName + "/", route(handlers)
}

// ProductServiceClient is a client for ProductService.
type ProductServiceClient interface {
	CreateProduct(context.Context, *connect.Request[api.CreateProductRequest]) (*connect.Response[api.CreateProductResponse], error)
	ListProducts(context.Context, *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error)
}

// NewProductServiceClient constructs a client for ProductService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewProductServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ProductServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &productServiceClient{
		createProduct: connect.NewClient[api.CreateProductRequest, api.CreateProductResponse](httpClient, baseURL+api.ProductServiceCreateProductProcedure, opts...),
		listProducts:  connect.NewClient[api.ListProductsRequest, api.ListProductsResponse](httpClient, baseURL+api.ProductServiceListProductsProcedure, opts...),
	}
}

type productServiceClient struct {
	createProduct *connect.Client[api.CreateProductRequest, api.CreateProductResponse]
	listProducts  *connect.Client[api.ListProductsRequest, api.ListProductsResponse]
}

func (c *productServiceClient) CreateProduct(ctx context.Context, req *connect.Request[api.CreateProductRequest]) (*connect.Response[api.CreateProductResponse], error) {
	return c.createProduct.CallUnary(ctx, req)
}

func (c *productServiceClient) ListProducts(ctx context.Context, req *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error) {
	return c.listProducts.CallUnary(ctx, req)
}

// MenuServiceHandler is implemented by the server side of MenuService.
type MenuServiceHandler interface {
	CreateMenuGroup(context.Context, *connect.Request[api.CreateMenuGroupRequest]) (*connect.Response[api.CreateMenuGroupResponse], error)
	ListMenuGroups(context.Context, *connect.Request[api.ListMenuGroupsRequest]) (*connect.Response[api.ListMenuGroupsResponse], error)
	CreateMenu(context.Context, *connect.Request[api.CreateMenuRequest]) (*connect.Response[api.CreateMenuResponse], error)
	ListMenus(context.Context, *connect.Request[api.ListMenusRequest]) (*connect.Response[api.ListMenusResponse], error)
}

// NewMenuServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewMenuServiceHandler(svc MenuServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		api.MenuServiceCreateMenuGroupProcedure: connect.NewUnaryHandler(api.MenuServiceCreateMenuGroupProcedure, svc.CreateMenuGroup, opts...),
		api.MenuServiceListMenuGroupsProcedure:  connect.NewUnaryHandler(api.MenuServiceListMenuGroupsProcedure, svc.ListMenuGroups, opts...),
		api.MenuServiceCreateMenuProcedure:      connect.NewUnaryHandler(api.MenuServiceCreateMenuProcedure, svc.CreateMenu, opts...),
		api.MenuServiceListMenusProcedure:       connect.NewUnaryHandler(api.MenuServiceListMenusProcedure, svc.ListMenus, opts...),
	}
	return "/" + api.MenuServiceName + "/", route(handlers)
}

// MenuServiceClient is a client for MenuService.
type MenuServiceClient interface {
	CreateMenuGroup(context.Context, *connect.Request[api.CreateMenuGroupRequest]) (*connect.Response[api.CreateMenuGroupResponse], error)
	ListMenuGroups(context.Context, *connect.Request[api.ListMenuGroupsRequest]) (*connect.Response[api.ListMenuGroupsResponse], error)
	CreateMenu(context.Context, *connect.Request[api.CreateMenuRequest]) (*connect.Response[api.CreateMenuResponse], error)
	ListMenus(context.Context, *connect.Request[api.ListMenusRequest]) (*connect.Response[api.ListMenusResponse], error)
}

// NewMenuServiceClient constructs a client for MenuService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewMenuServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) MenuServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &menuServiceClient{
		createMenuGroup: connect.NewClient[api.CreateMenuGroupRequest, api.CreateMenuGroupResponse](httpClient, baseURL+api.MenuServiceCreateMenuGroupProcedure, opts...),
		listMenuGroups:  connect.NewClient[api.ListMenuGroupsRequest, api.ListMenuGroupsResponse](httpClient, baseURL+api.MenuServiceListMenuGroupsProcedure, opts...),
		createMenu:      connect.NewClient[api.CreateMenuRequest, api.CreateMenuResponse](httpClient, baseURL+api.MenuServiceCreateMenuProcedure, opts...),
		listMenus:       connect.NewClient[api.ListMenusRequest, api.ListMenusResponse](httpClient, baseURL+api.MenuServiceListMenusProcedure, opts...),
	}
}

type menuServiceClient struct {
	createMenuGroup *connect.Client[api.CreateMenuGroupRequest, api.CreateMenuGroupResponse]
	listMenuGroups  *connect.Client[api.ListMenuGroupsRequest, api.ListMenuGroupsResponse]
	createMenu      *connect.Client[api.CreateMenuRequest, api.CreateMenuResponse]
	listMenus       *connect.Client[api.ListMenusRequest, api.ListMenusResponse]
}

func (c *menuServiceClient) CreateMenuGroup(ctx context.Context, req *connect.Request[api.CreateMenuGroupRequest]) (*connect.Response[api.CreateMenuGroupResponse], error) {
	return c.createMenuGroup.CallUnary(ctx, req)
}

func (c *menuServiceClient) ListMenuGroups(ctx context.Context, req *connect.Request[api.ListMenuGroupsRequest]) (*connect.Response[api.ListMenuGroupsResponse], error) {
	return c.listMenuGroups.CallUnary(ctx, req)
}

func (c *menuServiceClient) CreateMenu(ctx context.Context, req *connect.Request[api.CreateMenuRequest]) (*connect.Response[api.CreateMenuResponse], error) {
	return c.createMenu.CallUnary(ctx, req)
}

func (c *menuServiceClient) ListMenus(ctx context.Context, req *connect.Request[api.ListMenusRequest]) (*connect.Response[api.ListMenusResponse], error) {
	return c.listMenus.CallUnary(ctx, req)
}

// TableServiceHandler is implemented by the server side of TableService.
type TableServiceHandler interface {
	CreateOrderTable(context.Context, *connect.Request[api.CreateOrderTableRequest]) (*connect.Response[api.CreateOrderTableResponse], error)
	GetOrderTable(context.Context, *connect.Request[api.GetOrderTableRequest]) (*connect.Response[api.GetOrderTableResponse], error)
	ListOrderTables(context.Context, *connect.Request[api.ListOrderTablesRequest]) (*connect.Response[api.ListOrderTablesResponse], error)
	ChangeEmpty(context.Context, *connect.Request[api.ChangeEmptyRequest]) (*connect.Response[api.ChangeEmptyResponse], error)
	ChangeNumberOfGuests(context.Context, *connect.Request[api.ChangeNumberOfGuestsRequest]) (*connect.Response[api.ChangeNumberOfGuestsResponse], error)
}

// NewTableServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTableServiceHandler(svc TableServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		api.TableServiceCreateOrderTableProcedure:     connect.NewUnaryHandler(api.TableServiceCreateOrderTableProcedure, svc.CreateOrderTable, opts...),
		api.TableServiceGetOrderTableProcedure:        connect.NewUnaryHandler(api.TableServiceGetOrderTableProcedure, svc.GetOrderTable, opts...),
		api.TableServiceListOrderTablesProcedure:      connect.NewUnaryHandler(api.TableServiceListOrderTablesProcedure, svc.ListOrderTables, opts...),
		api.TableServiceChangeEmptyProcedure:          connect.NewUnaryHandler(api.TableServiceChangeEmptyProcedure, svc.ChangeEmpty, opts...),
		api.TableServiceChangeNumberOfGuestsProcedure: connect.NewUnaryHandler(api.TableServiceChangeNumberOfGuestsProcedure, svc.ChangeNumberOfGuests, opts...),
	}
	return "/" + api.TableServiceName + "/", route(handlers)
}

// TableServiceClient is a client for TableService.
type TableServiceClient interface {
	CreateOrderTable(context.Context, *connect.Request[api.CreateOrderTableRequest]) (*connect.Response[api.CreateOrderTableResponse], error)
	GetOrderTable(context.Context, *connect.Request[api.GetOrderTableRequest]) (*connect.Response[api.GetOrderTableResponse], error)
	ListOrderTables(context.Context, *connect.Request[api.ListOrderTablesRequest]) (*connect.Response[api.ListOrderTablesResponse], error)
	ChangeEmpty(context.Context, *connect.Request[api.ChangeEmptyRequest]) (*connect.Response[api.ChangeEmptyResponse], error)
	ChangeNumberOfGuests(context.Context, *connect.Request[api.ChangeNumberOfGuestsRequest]) (*connect.Response[api.ChangeNumberOfGuestsResponse], error)
}

// NewTableServiceClient constructs a client for TableService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewTableServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TableServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &tableServiceClient{
		createOrderTable:     connect.NewClient[api.CreateOrderTableRequest, api.CreateOrderTableResponse](httpClient, baseURL+api.TableServiceCreateOrderTableProcedure, opts...),
		getOrderTable:        connect.NewClient[api.GetOrderTableRequest, api.GetOrderTableResponse](httpClient, baseURL+api.TableServiceGetOrderTableProcedure, opts...),
		listOrderTables:      connect.NewClient[api.ListOrderTablesRequest, api.ListOrderTablesResponse](httpClient, baseURL+api.TableServiceListOrderTablesProcedure, opts...),
		changeEmpty:          connect.NewClient[api.ChangeEmptyRequest, api.ChangeEmptyResponse](httpClient, baseURL+api.TableServiceChangeEmptyProcedure, opts...),
		changeNumberOfGuests: connect.NewClient[api.ChangeNumberOfGuestsRequest, api.ChangeNumberOfGuestsResponse](httpClient, baseURL+api.TableServiceChangeNumberOfGuestsProcedure, opts...),
	}
}

type tableServiceClient struct {
	createOrderTable     *connect.Client[api.CreateOrderTableRequest, api.CreateOrderTableResponse]
	getOrderTable        *connect.Client[api.GetOrderTableRequest, api.GetOrderTableResponse]
	listOrderTables      *connect.Client[api.ListOrderTablesRequest, api.ListOrderTablesResponse]
	changeEmpty          *connect.Client[api.ChangeEmptyRequest, api.ChangeEmptyResponse]
	changeNumberOfGuests *connect.Client[api.ChangeNumberOfGuestsRequest, api.ChangeNumberOfGuestsResponse]
}

func (c *tableServiceClient) CreateOrderTable(ctx context.Context, req *connect.Request[api.CreateOrderTableRequest]) (*connect.Response[api.CreateOrderTableResponse], error) {
	return c.createOrderTable.CallUnary(ctx, req)
}

func (c *tableServiceClient) GetOrderTable(ctx context.Context, req *connect.Request[api.GetOrderTableRequest]) (*connect.Response[api.GetOrderTableResponse], error) {
	return c.getOrderTable.CallUnary(ctx, req)
}

func (c *tableServiceClient) ListOrderTables(ctx context.Context, req *connect.Request[api.ListOrderTablesRequest]) (*connect.Response[api.ListOrderTablesResponse], error) {
	return c.listOrderTables.CallUnary(ctx, req)
}

func (c *tableServiceClient) ChangeEmpty(ctx context.Context, req *connect.Request[api.ChangeEmptyRequest]) (*connect.Response[api.ChangeEmptyResponse], error) {
	return c.changeEmpty.CallUnary(ctx, req)
}

func (c *tableServiceClient) ChangeNumberOfGuests(ctx context.Context, req *connect.Request[api.ChangeNumberOfGuestsRequest]) (*connect.Response[api.ChangeNumberOfGuestsResponse], error) {
	return c.changeNumberOfGuests.CallUnary(ctx, req)
}

// TableGroupServiceHandler is implemented by the server side of TableGroupService.
type TableGroupServiceHandler interface {
	CreateTableGroup(context.Context, *connect.Request[api.CreateTableGroupRequest]) (*connect.Response[api.CreateTableGroupResponse], error)
	GetTableGroup(context.Context, *connect.Request[api.GetTableGroupRequest]) (*connect.Response[api.GetTableGroupResponse], error)
	Ungroup(context.Context, *connect.Request[api.UngroupRequest]) (*connect.Response[api.UngroupResponse], error)
}

// NewTableGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewTableGroupServiceHandler(svc TableGroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		api.TableGroupServiceCreateTableGroupProcedure: connect.NewUnaryHandler(api.TableGroupServiceCreateTableGroupProcedure, svc.CreateTableGroup, opts...),
		api.TableGroupServiceGetTableGroupProcedure:    connect.NewUnaryHandler(api.TableGroupServiceGetTableGroupProcedure, svc.GetTableGroup, opts...),
		api.TableGroupServiceUngroupProcedure:          connect.NewUnaryHandler(api.TableGroupServiceUngroupProcedure, svc.Ungroup, opts...),
	}
	return "/" + api.TableGroupServiceName + "/", route(handlers)
}

// TableGroupServiceClient is a client for TableGroupService.
type TableGroupServiceClient interface {
	CreateTableGroup(context.Context, *connect.Request[api.CreateTableGroupRequest]) (*connect.Response[api.CreateTableGroupResponse], error)
	GetTableGroup(context.Context, *connect.Request[api.GetTableGroupRequest]) (*connect.Response[api.GetTableGroupResponse], error)
	Ungroup(context.Context, *connect.Request[api.UngroupRequest]) (*connect.Response[api.UngroupResponse], error)
}

// NewTableGroupServiceClient constructs a client for TableGroupService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewTableGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TableGroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &tableGroupServiceClient{
		createTableGroup: connect.NewClient[api.CreateTableGroupRequest, api.CreateTableGroupResponse](httpClient, baseURL+api.TableGroupServiceCreateTableGroupProcedure, opts...),
		getTableGroup:    connect.NewClient[api.GetTableGroupRequest, api.GetTableGroupResponse](httpClient, baseURL+api.TableGroupServiceGetTableGroupProcedure, opts...),
		ungroup:          connect.NewClient[api.UngroupRequest, api.UngroupResponse](httpClient, baseURL+api.TableGroupServiceUngroupProcedure, opts...),
	}
}

type tableGroupServiceClient struct {
	createTableGroup *connect.Client[api.CreateTableGroupRequest, api.CreateTableGroupResponse]
	getTableGroup    *connect.Client[api.GetTableGroupRequest, api.GetTableGroupResponse]
	ungroup          *connect.Client[api.UngroupRequest, api.UngroupResponse]
}

func (c *tableGroupServiceClient) CreateTableGroup(ctx context.Context, req *connect.Request[api.CreateTableGroupRequest]) (*connect.Response[api.CreateTableGroupResponse], error) {
	return c.createTableGroup.CallUnary(ctx, req)
}

func (c *tableGroupServiceClient) GetTableGroup(ctx context.Context, req *connect.Request[api.GetTableGroupRequest]) (*connect.Response[api.GetTableGroupResponse], error) {
	return c.getTableGroup.CallUnary(ctx, req)
}

func (c *tableGroupServiceClient) Ungroup(ctx context.Context, req *connect.Request[api.UngroupRequest]) (*connect.Response[api.UngroupResponse], error) {
	return c.ungroup.CallUnary(ctx, req)
}

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		api.AuthServiceRegisterProcedure: connect.NewUnaryHandler(api.AuthServiceRegisterProcedure, svc.Register, opts...),
		api.AuthServiceLoginProcedure:    connect.NewUnaryHandler(api.AuthServiceLoginProcedure, svc.Login, opts...),
	}
	return "/" + api.AuthServiceName + "/", route(handlers)
}

// AuthServiceClient is a client for AuthService.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewAuthServiceClient constructs a client for AuthService. baseURL is the server
// root, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &authServiceClient{
		register: connect.NewClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL+api.AuthServiceRegisterProcedure, opts...),
		login:    connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+api.AuthServiceLoginProcedure, opts...),
	}
}

type authServiceClient struct {
	register *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login    *connect.Client[api.LoginRequest, api.LoginResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
