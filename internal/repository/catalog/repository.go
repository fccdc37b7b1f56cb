package catalog

import (
	"context"

	"stylehub/internal/domain"
)

// Repository loads the read-only catalog at startup. UpsertProduct exists
// for the seed and importer commands, the api process never writes.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	UpsertProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
}
