package service

import (
	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/pkg/api"
)

// Price strings always carry two decimal places.
const priceScale = 2

func toAPIProduct(p *models.Product) *api.Product {
	return &api.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price.StringFixed(priceScale),
	}
}

func toAPIMenuGroup(g *models.MenuGroup) *api.MenuGroup {
	return &api.MenuGroup{ID: g.ID, Name: g.Name}
}

func toAPIMenu(m *models.Menu) *api.Menu {
	lines := make([]*api.MenuProduct, len(m.Products))
	for i, line := range m.Products {
		lines[i] = &api.MenuProduct{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	return &api.Menu{
		ID:           m.ID,
		Name:         m.Name,
		Price:        m.Price.StringFixed(priceScale),
		MenuGroupID:  m.MenuGroupID,
		MenuProducts: lines,
		CreatedAt:    m.CreatedAt,
	}
}

// toModelMenuProducts rejects null entries instead of dropping them.
func toModelMenuProducts(lines []*api.MenuProduct) ([]models.MenuProduct, error) {
	out := make([]models.MenuProduct, len(lines))
	for i, line := range lines {
		if line == nil {
			return nil, apperr.ErrInvalidQuantity.WithDetail("menu product %d is null", i)
		}
		out[i] = models.MenuProduct{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	return out, nil
}

func toAPIOrderTable(t *models.OrderTable) *api.OrderTable {
	return &api.OrderTable{
		ID:             t.ID,
		TableGroupID:   t.TableGroupID,
		NumberOfGuests: t.NumberOfGuests,
		Empty:          t.Empty,
	}
}

func toAPIOrderTables(tables []*models.OrderTable) []*api.OrderTable {
	out := make([]*api.OrderTable, len(tables))
	for i, t := range tables {
		out[i] = toAPIOrderTable(t)
	}
	return out
}

func toAPITableGroup(g *models.TableGroup, current []*models.OrderTable) *api.TableGroup {
	snapshot := make([]*api.OrderTable, len(g.OrderTables))
	for i := range g.OrderTables {
		snapshot[i] = toAPIOrderTable(&g.OrderTables[i])
	}
	return &api.TableGroup{
		ID:                 g.ID,
		CreatedAt:          g.CreatedAt,
		OrderTables:        snapshot,
		CurrentOrderTables: toAPIOrderTables(current),
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
