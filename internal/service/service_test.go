package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/internal/auth"
	"github.com/yeongunheo/kitchenpos/internal/kitchen"
	"github.com/yeongunheo/kitchenpos/internal/metrics"
	"github.com/yeongunheo/kitchenpos/internal/middleware"
	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage/sqlite"
	"github.com/yeongunheo/kitchenpos/pkg/api"
	"github.com/yeongunheo/kitchenpos/pkg/api/apiconnect"
)

type testClients struct {
	store      *sqlite.SQLiteStore
	auth       apiconnect.AuthServiceClient
	products   apiconnect.ProductServiceClient
	menus      apiconnect.MenuServiceClient
	tables     apiconnect.TableServiceClient
	tableGroup apiconnect.TableGroupServiceClient
	baseURL    string
}

// bearer attaches a token to every outgoing request.
func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

// setupTestServer starts every service behind the production interceptor
// chain and returns clients authenticated as a freshly registered user.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "kitchenpos-service-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	k := kitchen.New(store, kitchen.Options{})
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	m := metrics.New()

	public := connect.WithInterceptors(middleware.MetricsInterceptor(m), middleware.LoggingInterceptor(nil))
	protected := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(nil),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, nil), public))
	mux.Handle(apiconnect.NewProductServiceHandler(NewProductService(k.Products), protected))
	mux.Handle(apiconnect.NewMenuServiceHandler(NewMenuService(k.MenuGroups, k.Menus), protected))
	mux.Handle(apiconnect.NewTableServiceHandler(NewTableService(k.Tables), protected))
	mux.Handle(apiconnect.NewTableGroupServiceHandler(NewTableGroupService(k.TableGroups), protected))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	authClient := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)
	resp, err := authClient.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       "host@example.com",
		DisplayName: "Host",
		Password:    "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	withToken := connect.WithInterceptors(bearer(resp.Msg.Token))
	return &testClients{
		store:      store,
		auth:       authClient,
		products:   apiconnect.NewProductServiceClient(http.DefaultClient, server.URL, withToken),
		menus:      apiconnect.NewMenuServiceClient(http.DefaultClient, server.URL, withToken),
		tables:     apiconnect.NewTableServiceClient(http.DefaultClient, server.URL, withToken),
		tableGroup: apiconnect.NewTableGroupServiceClient(http.DefaultClient, server.URL, withToken),
		baseURL:    server.URL,
	}
}

// assertRPCError checks the Connect status and the stable error code header.
func assertRPCError(t *testing.T, err error, wantCode connect.Code, wantErrorCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %v error, got nil", wantCode)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("Expected connect error, got %T: %v", err, err)
	}
	if connectErr.Code() != wantCode {
		t.Errorf("Code = %v, want %v (%v)", connectErr.Code(), wantCode, err)
	}
	if got := connectErr.Meta().Get(api.ErrorCodeHeader); got != wantErrorCode {
		t.Errorf("%s = %q, want %q", api.ErrorCodeHeader, got, wantErrorCode)
	}
}

func TestAuthRequired(t *testing.T) {
	c := setupTestServer(t)

	anonymous := apiconnect.NewTableServiceClient(http.DefaultClient, c.baseURL)
	_, err := anonymous.ListOrderTables(context.Background(), connect.NewRequest(&api.ListOrderTablesRequest{}))
	if connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("Expected Unauthenticated, got %v", err)
	}
}

func TestAuthService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	t.Run("login", func(t *testing.T) {
		resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "host@example.com", Password: "correct-horse"}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Msg.Token == "" || resp.Msg.User.Email != "host@example.com" {
			t.Errorf("Unexpected login response: %+v", resp.Msg)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "host@example.com", Password: "wrong-horse"}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("Expected Unauthenticated, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "host@example.com", DisplayName: "Again", Password: "correct-horse",
		}))
		if connect.CodeOf(err) != connect.CodeAlreadyExists {
			t.Errorf("Expected AlreadyExists, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "new@example.com", DisplayName: "New", Password: "short",
		}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("Expected InvalidArgument, got %v", err)
		}
	})
}

func TestMenuService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	createProduct := func(name, price string) string {
		t.Helper()
		resp, err := c.products.CreateProduct(ctx, connect.NewRequest(&api.CreateProductRequest{Name: name, Price: price}))
		if err != nil {
			t.Fatalf("CreateProduct failed: %v", err)
		}
		return resp.Msg.Product.ID
	}
	a := createProduct("A", "5.00")
	b := createProduct("B", "3")

	_, err := c.products.CreateProduct(ctx, connect.NewRequest(&api.CreateProductRequest{Name: "C", Price: "five"}))
	assertRPCError(t, err, connect.CodeInvalidArgument, "invalid_price")

	_, err = c.products.CreateProduct(ctx, connect.NewRequest(&api.CreateProductRequest{Name: "C", Price: "0.005"}))
	assertRPCError(t, err, connect.CodeInvalidArgument, "invalid_price")

	groupResp, err := c.menus.CreateMenuGroup(ctx, connect.NewRequest(&api.CreateMenuGroupRequest{Name: "Sets"}))
	if err != nil {
		t.Fatalf("CreateMenuGroup failed: %v", err)
	}
	groupID := groupResp.Msg.MenuGroup.ID

	lines := []*api.MenuProduct{{ProductID: a, Quantity: 2}, {ProductID: b, Quantity: 1}}

	resp, err := c.menus.CreateMenu(ctx, connect.NewRequest(&api.CreateMenuRequest{
		Name: "Combo", Price: "13.00", MenuGroupID: groupID, MenuProducts: lines,
	}))
	if err != nil {
		t.Fatalf("CreateMenu at the sum failed: %v", err)
	}
	if resp.Msg.Menu.Price != "13.00" || len(resp.Msg.Menu.MenuProducts) != 2 {
		t.Errorf("Unexpected menu: %+v", resp.Msg.Menu)
	}

	_, err = c.menus.CreateMenu(ctx, connect.NewRequest(&api.CreateMenuRequest{
		Name: "Combo", Price: "13.01", MenuGroupID: groupID, MenuProducts: lines,
	}))
	assertRPCError(t, err, connect.CodeInvalidArgument, "menu_price_exceeds_sum")

	_, err = c.menus.CreateMenu(ctx, connect.NewRequest(&api.CreateMenuRequest{
		Name: "Combo", Price: "1.00", MenuGroupID: "missing", MenuProducts: lines,
	}))
	assertRPCError(t, err, connect.CodeNotFound, "menu_group_not_found")

	_, err = c.menus.CreateMenu(ctx, connect.NewRequest(&api.CreateMenuRequest{
		Name: "Single", Price: "5.00", MenuGroupID: groupID,
		MenuProducts: []*api.MenuProduct{{ProductID: a, Quantity: 1}, nil},
	}))
	assertRPCError(t, err, connect.CodeInvalidArgument, "invalid_quantity")

	list, err := c.menus.ListMenus(ctx, connect.NewRequest(&api.ListMenusRequest{}))
	if err != nil {
		t.Fatalf("ListMenus failed: %v", err)
	}
	if len(list.Msg.Menus) != 1 {
		t.Errorf("Expected 1 menu, got %d", len(list.Msg.Menus))
	}

	products, err := c.products.ListProducts(ctx, connect.NewRequest(&api.ListProductsRequest{}))
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(products.Msg.Products) != 2 || products.Msg.Products[1].Price != "3.00" {
		t.Errorf("Unexpected products: %+v", products.Msg.Products)
	}
}

func TestTableGroupService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	createTable := func(guests int, empty bool) string {
		t.Helper()
		resp, err := c.tables.CreateOrderTable(ctx, connect.NewRequest(&api.CreateOrderTableRequest{NumberOfGuests: guests, Empty: empty}))
		if err != nil {
			t.Fatalf("CreateOrderTable failed: %v", err)
		}
		return resp.Msg.OrderTable.ID
	}
	t1 := createTable(0, true)
	t2 := createTable(0, true)

	_, err := c.tableGroup.CreateTableGroup(ctx, connect.NewRequest(&api.CreateTableGroupRequest{OrderTableIDs: []string{t1}}))
	assertRPCError(t, err, connect.CodeFailedPrecondition, "too_few_tables")

	resp, err := c.tableGroup.CreateTableGroup(ctx, connect.NewRequest(&api.CreateTableGroupRequest{OrderTableIDs: []string{t1, t2}}))
	if err != nil {
		t.Fatalf("CreateTableGroup failed: %v", err)
	}
	group := resp.Msg.TableGroup
	if len(group.OrderTables) != 2 || len(group.CurrentOrderTables) != 2 {
		t.Fatalf("Unexpected group: %+v", group)
	}
	for _, table := range group.CurrentOrderTables {
		if table.TableGroupID != group.ID {
			t.Errorf("Table %s group = %q, want %q", table.ID, table.TableGroupID, group.ID)
		}
	}

	_, err = c.tableGroup.CreateTableGroup(ctx, connect.NewRequest(&api.CreateTableGroupRequest{OrderTableIDs: []string{t1, createTable(0, true)}}))
	assertRPCError(t, err, connect.CodeFailedPrecondition, "table_not_eligible_for_grouping")

	if err := c.store.CreateOrder(ctx, &models.Order{OrderTableID: t1, Status: models.OrderStatusCooking}); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	_, err = c.tableGroup.Ungroup(ctx, connect.NewRequest(&api.UngroupRequest{TableGroupID: group.ID}))
	assertRPCError(t, err, connect.CodeFailedPrecondition, "active_orders_block_ungroup")

	_, err = c.tables.ChangeEmpty(ctx, connect.NewRequest(&api.ChangeEmptyRequest{OrderTableID: t1, Empty: true}))
	assertRPCError(t, err, connect.CodeFailedPrecondition, "active_orders_block_empty_change")

	if _, err := c.tableGroup.Ungroup(ctx, connect.NewRequest(&api.UngroupRequest{TableGroupID: "unknown"})); err != nil {
		t.Errorf("Ungroup of unknown group should succeed: %v", err)
	}

	_, err = c.tableGroup.GetTableGroup(ctx, connect.NewRequest(&api.GetTableGroupRequest{TableGroupID: "unknown"}))
	assertRPCError(t, err, connect.CodeNotFound, "table_group_not_found")
}

func TestTableService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	created, err := c.tables.CreateOrderTable(ctx, connect.NewRequest(&api.CreateOrderTableRequest{NumberOfGuests: 0, Empty: true}))
	if err != nil {
		t.Fatalf("CreateOrderTable failed: %v", err)
	}
	id := created.Msg.OrderTable.ID

	_, err = c.tables.ChangeNumberOfGuests(ctx, connect.NewRequest(&api.ChangeNumberOfGuestsRequest{OrderTableID: id, NumberOfGuests: 3}))
	assertRPCError(t, err, connect.CodeInvalidArgument, "table_is_empty")

	if _, err := c.tables.ChangeEmpty(ctx, connect.NewRequest(&api.ChangeEmptyRequest{OrderTableID: id, Empty: false})); err != nil {
		t.Fatalf("ChangeEmpty failed: %v", err)
	}

	resp, err := c.tables.ChangeNumberOfGuests(ctx, connect.NewRequest(&api.ChangeNumberOfGuestsRequest{OrderTableID: id, NumberOfGuests: 3}))
	if err != nil {
		t.Fatalf("ChangeNumberOfGuests failed: %v", err)
	}
	if resp.Msg.OrderTable.NumberOfGuests != 3 || resp.Msg.OrderTable.Empty {
		t.Errorf("Unexpected table: %+v", resp.Msg.OrderTable)
	}

	_, err = c.tables.ChangeNumberOfGuests(ctx, connect.NewRequest(&api.ChangeNumberOfGuestsRequest{OrderTableID: id, NumberOfGuests: -1}))
	assertRPCError(t, err, connect.CodeInvalidArgument, "invalid_guest_count")

	_, err = c.tables.GetOrderTable(ctx, connect.NewRequest(&api.GetOrderTableRequest{OrderTableID: "missing"}))
	assertRPCError(t, err, connect.CodeNotFound, "order_table_not_found")

	list, err := c.tables.ListOrderTables(ctx, connect.NewRequest(&api.ListOrderTablesRequest{}))
	if err != nil {
		t.Fatalf("ListOrderTables failed: %v", err)
	}
	if len(list.Msg.OrderTables) != 1 {
		t.Errorf("Expected 1 table, got %d", len(list.Msg.OrderTables))
	}
}
