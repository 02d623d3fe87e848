package kitchen

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/models"
	"github.com/yeongunheo/kitchenpos/internal/storage"
)

// priceScale is the number of decimal places a price may carry.
const priceScale = 2

// checkPrice rejects negative prices and prices finer than a cent.
func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return apperr.ErrInvalidPrice.WithDetail("price %s", price)
	}
	if !price.Equal(price.Truncate(priceScale)) {
		return apperr.ErrInvalidPrice.WithDetail("price %s has more than %d decimal places", price, priceScale)
	}
	return nil
}

// ProductCatalog creates and lists products.
type ProductCatalog struct {
	store storage.Store
	opts  Options
}

// NewProductCatalog creates a ProductCatalog backed by store.
func NewProductCatalog(store storage.Store, opts Options) *ProductCatalog {
	return &ProductCatalog{store: store, opts: opts.withDefaults()}
}

// CreateProduct adds a product with a non-empty name and a non-negative price
// of at most two decimal places.
func (c *ProductCatalog) CreateProduct(ctx context.Context, name string, price decimal.Decimal) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.ErrInvalidName
	}
	if err := checkPrice(price); err != nil {
		return nil, err
	}

	product := &models.Product{Name: name, Price: price}
	if err := c.store.CreateProduct(ctx, product); err != nil {
		c.opts.Logger.Error("Failed to create product", "name", name, "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	c.opts.Logger.Info("Product created", "product_id", product.ID, "price", product.Price.String())
	return product, nil
}

// ListProducts returns every product.
func (c *ProductCatalog) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := c.store.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
