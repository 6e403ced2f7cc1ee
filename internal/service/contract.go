package service

import (
	"context"

	"github.com/tilemart/catalog-gateway/internal/dto"
)

type CatalogService interface {
	GetProducts(ctx context.Context, category string) ([]dto.ProductResponse, error)
	GetProductWithVariants(ctx context.Context, productID int64) (dto.ProductDetailResponse, error)
	GetCatalogVariants(ctx context.Context, sizeFacet string) (dto.CatalogVariantsResponse, error)
	GetVariant(ctx context.Context, variantID int64) (dto.VariantResponse, error)

	AdminLogin(password string) (dto.AdminLoginResponse, error)
	GetManageProducts(ctx context.Context) (dto.ManageProductsResponse, error)
	AddProduct(ctx context.Context, req dto.ProductRequest) (dto.ManageProductsResponse, error)
	UpdateProduct(ctx context.Context, id int64, req dto.ProductRequest) (dto.ManageProductsResponse, error)
	DeleteProduct(ctx context.Context, id int64) (dto.ManageProductsResponse, error)
	GetManageVariants(ctx context.Context) (dto.ManageVariantsResponse, error)
	AddVariant(ctx context.Context, req dto.VariantRequest) (dto.ManageVariantsResponse, error)
	UpdateVariant(ctx context.Context, id int64, req dto.VariantRequest) (dto.ManageVariantsResponse, error)
	DeleteVariant(ctx context.Context, id int64) (dto.ManageVariantsResponse, error)

	ReportBackendHealth()
}
