package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/internal/kitchen"
	"github.com/yeongunheo/kitchenpos/pkg/api"
	"github.com/yeongunheo/kitchenpos/pkg/api/apiconnect"
)

var _ apiconnect.TableServiceHandler = (*TableService)(nil)

// TableService implements the Connect TableService.
type TableService struct {
	tables *kitchen.Tables
}

// NewTableService creates a TableService.
func NewTableService(tables *kitchen.Tables) *TableService {
	return &TableService{tables: tables}
}

// CreateOrderTable adds a table to the floor.
func (s *TableService) CreateOrderTable(ctx context.Context, req *connect.Request[api.CreateOrderTableRequest]) (*connect.Response[api.CreateOrderTableResponse], error) {
	slog.Info("CreateOrderTable request received", "guests", req.Msg.NumberOfGuests, "empty", req.Msg.Empty)

	table, err := s.tables.CreateOrderTable(ctx, req.Msg.NumberOfGuests, req.Msg.Empty)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.CreateOrderTableResponse{OrderTable: toAPIOrderTable(table)}), nil
}

// GetOrderTable returns one table.
func (s *TableService) GetOrderTable(ctx context.Context, req *connect.Request[api.GetOrderTableRequest]) (*connect.Response[api.GetOrderTableResponse], error) {
	table, err := s.tables.GetOrderTable(ctx, req.Msg.OrderTableID)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetOrderTableResponse{OrderTable: toAPIOrderTable(table)}), nil
}

// ListOrderTables returns every table.
func (s *TableService) ListOrderTables(ctx context.Context, req *connect.Request[api.ListOrderTablesRequest]) (*connect.Response[api.ListOrderTablesResponse], error) {
	tables, err := s.tables.ListOrderTables(ctx)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.ListOrderTablesResponse{OrderTables: toAPIOrderTables(tables)}), nil
}

// ChangeEmpty marks a table empty or occupied.
func (s *TableService) ChangeEmpty(ctx context.Context, req *connect.Request[api.ChangeEmptyRequest]) (*connect.Response[api.ChangeEmptyResponse], error) {
	slog.Info("ChangeEmpty request received", "order_table_id", req.Msg.OrderTableID, "empty", req.Msg.Empty)

	table, err := s.tables.ChangeEmpty(ctx, req.Msg.OrderTableID, req.Msg.Empty)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.ChangeEmptyResponse{OrderTable: toAPIOrderTable(table)}), nil
}

// ChangeNumberOfGuests updates the guest count of an occupied table.
func (s *TableService) ChangeNumberOfGuests(ctx context.Context, req *connect.Request[api.ChangeNumberOfGuestsRequest]) (*connect.Response[api.ChangeNumberOfGuestsResponse], error) {
	slog.Info("ChangeNumberOfGuests request received",
		"order_table_id", req.Msg.OrderTableID,
		"guests", req.Msg.NumberOfGuests,
	)

	table, err := s.tables.ChangeNumberOfGuests(ctx, req.Msg.OrderTableID, req.Msg.NumberOfGuests)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.ChangeNumberOfGuestsResponse{OrderTable: toAPIOrderTable(table)}), nil
}
