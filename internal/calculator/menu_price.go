// Package calculator computes and checks menu prices.
package calculator

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yeongunheo/kitchenpos/internal/apperr"
	"github.com/yeongunheo/kitchenpos/internal/models"
)

// ProductLookup resolves a product by ID.
// It returns nil and no error when the product does not exist.
type ProductLookup interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// SumProductPrices returns Σ quantity × unit price over lines, using the
// products' current prices. It fails with apperr.ErrProductNotFound on the
// first unknown product. An empty line list sums to zero.
func SumProductPrices(ctx context.Context, lines []models.MenuProduct, lookup ProductLookup) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, line := range lines {
		product, err := lookup.GetProduct(ctx, line.ProductID)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to look up product %s: %w", line.ProductID, err)
		}
		if product == nil {
			return decimal.Zero, apperr.ErrProductNotFound.WithDetail("product %s", line.ProductID)
		}
		sum = sum.Add(product.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return sum, nil
}

// ValidateMenuPrice checks that price does not exceed the sum of the lines'
// product prices. A price equal to the sum is valid.
//
// It does not reject an empty line list on its own; with no lines the sum is
// zero, so only a zero price passes.
func ValidateMenuPrice(ctx context.Context, price decimal.Decimal, lines []models.MenuProduct, lookup ProductLookup) error {
	sum, err := SumProductPrices(ctx, lines, lookup)
	if err != nil {
		return err
	}
	if price.GreaterThan(sum) {
		return apperr.ErrMenuPriceExceedsSum.WithDetail("price %s, sum %s", price, sum)
	}
	return nil
}
