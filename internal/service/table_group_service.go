package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/internal/kitchen"
	"github.com/yeongunheo/kitchenpos/pkg/api"
	"github.com/yeongunheo/kitchenpos/pkg/api/apiconnect"
)

var _ apiconnect.TableGroupServiceHandler = (*TableGroupService)(nil)

// TableGroupService implements the Connect TableGroupService.
type TableGroupService struct {
	groups *kitchen.TableGroups
}

// NewTableGroupService creates a TableGroupService.
func NewTableGroupService(groups *kitchen.TableGroups) *TableGroupService {
	return &TableGroupService{groups: groups}
}

// CreateTableGroup joins tables into a group.
func (s *TableGroupService) CreateTableGroup(ctx context.Context, req *connect.Request[api.CreateTableGroupRequest]) (*connect.Response[api.CreateTableGroupResponse], error) {
	slog.Info("CreateTableGroup request received", "tables", len(req.Msg.OrderTableIDs))

	group, err := s.groups.Group(ctx, req.Msg.OrderTableIDs)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	// Re-read so the response shows current membership next to the snapshot.
	record, members, err := s.groups.GetTableGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	return connect.NewResponse(&api.CreateTableGroupResponse{TableGroup: toAPITableGroup(record, members)}), nil
}

// GetTableGroup returns a grouping record and its current members.
func (s *TableGroupService) GetTableGroup(ctx context.Context, req *connect.Request[api.GetTableGroupRequest]) (*connect.Response[api.GetTableGroupResponse], error) {
	group, members, err := s.groups.GetTableGroup(ctx, req.Msg.TableGroupID)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetTableGroupResponse{TableGroup: toAPITableGroup(group, members)}), nil
}

// Ungroup releases every table in a group.
func (s *TableGroupService) Ungroup(ctx context.Context, req *connect.Request[api.UngroupRequest]) (*connect.Response[api.UngroupResponse], error) {
	slog.Info("Ungroup request received", "table_group_id", req.Msg.TableGroupID)

	if err := s.groups.Ungroup(ctx, req.Msg.TableGroupID); err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.UngroupResponse{}), nil
}
