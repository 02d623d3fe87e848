package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/yeongunheo/kitchenpos/internal/kitchen"
	"github.com/yeongunheo/kitchenpos/pkg/api"
	"github.com/yeongunheo/kitchenpos/pkg/api/apiconnect"
)

var _ apiconnect.ProductServiceHandler = (*ProductService)(nil)

// ProductService implements the Connect ProductService.
type ProductService struct {
	catalog *kitchen.ProductCatalog
}

// NewProductService creates a ProductService over the given catalog.
func NewProductService(catalog *kitchen.ProductCatalog) *ProductService {
	return &ProductService{catalog: catalog}
}

// CreateProduct adds a product to the catalog.
func (s *ProductService) CreateProduct(ctx context.Context, req *connect.Request[api.CreateProductRequest]) (*connect.Response[api.CreateProductResponse], error) {
	slog.Info("CreateProduct request received", "name", req.Msg.Name, "price", req.Msg.Price)

	price, err := parsePrice(req.Msg.Price)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	product, err := s.catalog.CreateProduct(ctx, req.Msg.Name, price)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	return connect.NewResponse(&api.CreateProductResponse{Product: toAPIProduct(product)}), nil
}

// ListProducts returns the whole catalog.
func (s *ProductService) ListProducts(ctx context.Context, req *connect.Request[api.ListProductsRequest]) (*connect.Response[api.ListProductsResponse], error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, toConnectError(req.Spec().Procedure, err)
	}

	out := make([]*api.Product, len(products))
	for i, p := range products {
		out[i] = toAPIProduct(p)
	}

	slog.Info("ListProducts successful", "count", len(out))
	return connect.NewResponse(&api.ListProductsResponse{Products: out}), nil
}
