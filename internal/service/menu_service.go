package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/internal/kitchen"
	"github.com/yeongunheo/kitchenpos/pkg/api"
	"github.com/yeongunheo/kitchenpos/pkg/api/apiconnect"
)

var _ apiconnect.MenuServiceHandler = (*MenuService)(nil)

// MenuService implements the Connect MenuService.
type MenuService struct {
	groups *kitchen.MenuGroups
	menus  *kitchen.Menus
}

// NewMenuService creates a MenuService.
func NewMenuService(groups *kitchen.MenuGroups, menus *kitchen.Menus) *MenuService {
	return &MenuService{groups: groups, menus: menus}
}

// CreateMenuGroup adds a menu group.
func (s *MenuService) CreateMenuGroup(ctx context.Context, req *connect.Request[api.CreateMenuGroupRequest]) (*connect.Response[api.CreateMenuGroupResponse], error) {
	slog.Info("CreateMenuGroup request received", "name", req.Msg.Name)

	group, err := s.groups.CreateMenuGroup(ctx, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.CreateMenuGroupResponse{MenuGroup: toAPIMenuGroup(group)}), nil
}

// ListMenuGroups returns every menu group.
func (s *MenuService) ListMenuGroups(ctx context.Context, req *connect.Request[api.ListMenuGroupsRequest]) (*connect.Response[api.ListMenuGroupsResponse], error) {
	groups, err := s.groups.ListMenuGroups(ctx)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	out := make([]*api.MenuGroup, len(groups))
	for i, g := range groups {
		out[i] = toAPIMenuGroup(g)
	}
	return connect.NewResponse(&api.ListMenuGroupsResponse{MenuGroups: out}), nil
}

// CreateMenu validates and stores a menu.
func (s *MenuService) CreateMenu(ctx context.Context, req *connect.Request[api.CreateMenuRequest]) (*connect.Response[api.CreateMenuResponse], error) {
	slog.Info("CreateMenu request received",
		"name", req.Msg.Name,
		"price", req.Msg.Price,
		"menu_group_id", req.Msg.MenuGroupID,
		"lines", len(req.Msg.MenuProducts),
	)

	price, err := parsePrice(req.Msg.Price)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}
	lines, err := toModelMenuProducts(req.Msg.MenuProducts)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	menu, err := s.menus.CreateMenu(ctx, kitchen.CreateMenuParams{
		Name:        req.Msg.Name,
		Price:       price,
		MenuGroupID: req.Msg.MenuGroupID,
		Products:    lines,
	})
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	return connect.NewResponse(&api.CreateMenuResponse{Menu: toAPIMenu(menu)}), nil
}

// ListMenus returns every menu.
func (s *MenuService) ListMenus(ctx context.Context, req *connect.Request[api.ListMenusRequest]) (*connect.Response[api.ListMenusResponse], error) {
	menus, err := s.menus.ListMenus(ctx)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	out := make([]*api.Menu, len(menus))
	for i, m := range menus {
		out[i] = toAPIMenu(m)
	}

	slog.Info("ListMenus successful", "count", len(out))
	return connect.NewResponse(&api.ListMenusResponse{Menus: out}), nil
}
