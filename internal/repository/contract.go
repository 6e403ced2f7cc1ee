package repository

import (
	"context"

	"github.com/tilemart/catalog-gateway/internal/domain"
	"github.com/tilemart/catalog-gateway/internal/dto"
)

type ProductRepository interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchProductByID(ctx context.Context, id int64) (domain.Product, error)
	FetchProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	AddProduct(ctx context.Context, req dto.ProductRequest) (int64, error)
	UpdateProduct(ctx context.Context, id int64, req dto.ProductRequest) error
	DeleteProduct(ctx context.Context, id int64) error
}

type VariantRepository interface {
	FetchVariantsByProduct(ctx context.Context, productID int64) ([]domain.Variant, error)
	FetchVariantByID(ctx context.Context, id int64) (domain.Variant, error)
	AddVariant(ctx context.Context, req dto.VariantRequest) (int64, error)
	UpdateVariant(ctx context.Context, id int64, req dto.VariantRequest) error
	DeleteVariant(ctx context.Context, id int64) error
}
