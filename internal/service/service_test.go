package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilemart/catalog-gateway/config"
	"github.com/tilemart/catalog-gateway/internal/domain"
	"github.com/tilemart/catalog-gateway/internal/dto"
	"github.com/tilemart/catalog-gateway/pkg/errs"
	"github.com/tilemart/catalog-gateway/pkg/imageurl"
)

type fakeProductRepo struct {
	products   []domain.Product
	fetchErr   error
	addCalls   int
	lastAdded  dto.ProductRequest
	deleteErr  error
	nextID     int64
	deletedIDs []int64
}

func (f *fakeProductRepo) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.products, nil
}

func (f *fakeProductRepo) FetchProductByID(ctx context.Context, id int64) (domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, errs.ErrNotFound
}

func (f *fakeProductRepo) FetchProductsByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	matched := make([]domain.Product, 0)
	for _, p := range f.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakeProductRepo) AddProduct(ctx context.Context, req dto.ProductRequest) (int64, error) {
	f.addCalls++
	f.lastAdded = req
	f.nextID++
	f.products = append(f.products, domain.Product{
		ID:       f.nextID,
		Name:     req.Name,
		Brand:    req.Brand,
		Series:   req.Series,
		Code:     req.Code,
		Category: req.Category,
	})
	return f.nextID, nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, id int64, req dto.ProductRequest) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products[i].Name = req.Name
			f.products[i].Brand = req.Brand
			return nil
		}
	}
	return errs.ErrNotFound
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	remaining := make([]domain.Product, 0)
	for _, p := range f.products {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	f.products = remaining
	return nil
}

type fakeVariantRepo struct {
	variants   map[int64][]domain.Variant
	failFor    map[int64]error
	addCalls   int
	fetchByID  map[int64]domain.Variant
	deletedIDs []int64
}

func (f *fakeVariantRepo) FetchVariantsByProduct(ctx context.Context, productID int64) ([]domain.Variant, error) {
	if err, ok := f.failFor[productID]; ok {
		return nil, err
	}
	return f.variants[productID], nil
}

func (f *fakeVariantRepo) FetchVariantByID(ctx context.Context, id int64) (domain.Variant, error) {
	v, ok := f.fetchByID[id]
	if !ok {
		return domain.Variant{}, errs.ErrNotFound
	}
	return v, nil
}

func (f *fakeVariantRepo) AddVariant(ctx context.Context, req dto.VariantRequest) (int64, error) {
	f.addCalls++
	return 100, nil
}

func (f *fakeVariantRepo) UpdateVariant(ctx context.Context, id int64, req dto.VariantRequest) error {
	return nil
}

func (f *fakeVariantRepo) DeleteVariant(ctx context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	for productID, variants := range f.variants {
		remaining := make([]domain.Variant, 0)
		for _, v := range variants {
			if v.ID != id {
				remaining = append(remaining, v)
			}
		}
		f.variants[productID] = remaining
	}
	return nil
}

func newTestService(productRepo *fakeProductRepo, variantRepo *fakeVariantRepo) CatalogService {
	conf := &config.Config{
		AdminPassword: "letmein",
		JWTSecret:     "test-secret",
	}
	resolver := imageurl.CreateResolver("http://localhost:5000/api")
	return CreateCatalogService(productRepo, variantRepo, resolver, conf, nil)
}

func TestGetProductWithVariants(t *testing.T) {
	image := "/uploads/marble-a.jpg"
	productRepo := &fakeProductRepo{
		products: []domain.Product{
			{ID: 1, Name: "Marble A", Brand: "Acme", Category: "tiles", Image: &image},
		},
	}
	variantRepo := &fakeVariantRepo{
		variants: map[int64][]domain.Variant{
			1: {
				{ID: 10, ProductID: 1, Size: "30x60", Stock: 5},
				{ID: 11, ProductID: 1, Size: "60x60", Stock: 0},
			},
		},
	}
	svc := newTestService(productRepo, variantRepo)

	detail, err := svc.GetProductWithVariants(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Marble A", detail.Product.Name)
	assert.Equal(t, "http://localhost:5000/uploads/marble-a.jpg", detail.Product.ImageURL)
	assert.Equal(t, []string{"all", "30x60", "60x60"}, detail.Facets)
	require.Len(t, detail.Variants, 2)
	assert.True(t, detail.Variants[0].InStock)
	assert.False(t, detail.Variants[1].InStock)
	assert.Equal(t, "Marble A (Acme)", detail.Variants[0].ProductLabel)
}

func TestGetProductWithVariantsNotFound(t *testing.T) {
	svc := newTestService(&fakeProductRepo{}, &fakeVariantRepo{})

	_, err := svc.GetProductWithVariants(context.Background(), 42)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetProductWithVariantsEmptyVariantsIsValid(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{{ID: 7, Name: "Trowel", Brand: "Grip", Category: "tools"}},
	}
	svc := newTestService(productRepo, &fakeVariantRepo{})

	detail, err := svc.GetProductWithVariants(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, detail.Variants)
	assert.Equal(t, []string{"all"}, detail.Facets)
}

func TestGetCatalogVariantsMergesInProductOrder(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{
			{ID: 1, Name: "Marble A", Brand: "Acme"},
			{ID: 2, Name: "Granite B", Brand: "Umbra"},
			{ID: 3, Name: "Slate C", Brand: "Acme"},
		},
	}
	variantRepo := &fakeVariantRepo{
		variants: map[int64][]domain.Variant{
			1: {{ID: 10, ProductID: 1, Size: "30x60"}},
			2: {{ID: 20, ProductID: 2, Size: "60x60"}, {ID: 21, ProductID: 2, Size: "30x60"}},
			3: {{ID: 30, ProductID: 3, Size: "10x20"}},
		},
	}
	svc := newTestService(productRepo, variantRepo)

	responsePayload, err := svc.GetCatalogVariants(context.Background(), "")
	require.NoError(t, err)

	ids := make([]int64, 0)
	for _, r := range responsePayload.Records {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{10, 20, 21, 30}, ids)
	assert.Equal(t, []string{"all", "30x60", "60x60", "10x20"}, responsePayload.Facets)
}

func TestGetCatalogVariantsSkipsFailedProducts(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{
			{ID: 1, Name: "Marble A", Brand: "Acme"},
			{ID: 2, Name: "Granite B", Brand: "Umbra"},
		},
	}
	variantRepo := &fakeVariantRepo{
		variants: map[int64][]domain.Variant{
			1: {{ID: 10, ProductID: 1, Size: "30x60"}},
		},
		failFor: map[int64]error{2: errs.ErrUpstreamUnreachable},
	}
	svc := newTestService(productRepo, variantRepo)

	responsePayload, err := svc.GetCatalogVariants(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, responsePayload.Records, 1)
	assert.Equal(t, int64(10), responsePayload.Records[0].ID)
}

func TestGetCatalogVariantsFacetFilter(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{{ID: 1, Name: "Marble A", Brand: "Acme", Category: "tiles"}},
	}
	variantRepo := &fakeVariantRepo{
		variants: map[int64][]domain.Variant{
			1: {
				{ID: 10, ProductID: 1, Size: "30x60", Stock: 5},
				{ID: 11, ProductID: 1, Size: "60x60", Stock: 0},
			},
		},
	}
	svc := newTestService(productRepo, variantRepo)

	responsePayload, err := svc.GetCatalogVariants(context.Background(), "60x60")
	require.NoError(t, err)
	require.Len(t, responsePayload.Records, 1)
	assert.Equal(t, int64(11), responsePayload.Records[0].ID)
	assert.False(t, responsePayload.Records[0].InStock)
	// Facets are derived from the full set, not the filtered one.
	assert.Equal(t, []string{"all", "30x60", "60x60"}, responsePayload.Facets)
}

func TestGetCatalogVariantsFailsWhenProductListFails(t *testing.T) {
	productRepo := &fakeProductRepo{fetchErr: errs.ErrUpstreamUnreachable}
	svc := newTestService(productRepo, &fakeVariantRepo{})

	_, err := svc.GetCatalogVariants(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrUpstreamUnreachable)
}

func TestDeleteVariantRefetches(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{{ID: 1, Name: "Marble A", Brand: "Acme", Category: "tiles"}},
	}
	variantRepo := &fakeVariantRepo{
		variants: map[int64][]domain.Variant{
			1: {
				{ID: 10, ProductID: 1, Size: "30x60", Stock: 5},
				{ID: 11, ProductID: 1, Size: "60x60", Stock: 0},
			},
		},
	}
	svc := newTestService(productRepo, variantRepo)

	responsePayload, err := svc.DeleteVariant(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, variantRepo.deletedIDs)
	require.Len(t, responsePayload.Records, 1)
	assert.Equal(t, int64(10), responsePayload.Records[0].ID)

	refreshed, err := svc.GetCatalogVariants(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "30x60"}, refreshed.Facets)
}

func TestAddProductValidationBlocksUpstreamCall(t *testing.T) {
	productRepo := &fakeProductRepo{}
	svc := newTestService(productRepo, &fakeVariantRepo{})

	_, err := svc.AddProduct(context.Background(), dto.ProductRequest{
		Name:     "   ",
		Brand:    "Acme",
		Series:   "Classic",
		Code:     "MA-01",
		Category: "tiles",
	})

	var fieldErrs errs.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "name")
	assert.Zero(t, productRepo.addCalls)
}

func TestAddProductRefetchesList(t *testing.T) {
	productRepo := &fakeProductRepo{}
	svc := newTestService(productRepo, &fakeVariantRepo{})

	responsePayload, err := svc.AddProduct(context.Background(), dto.ProductRequest{
		Name:     "Marble A",
		Brand:    "Acme",
		Series:   "Classic",
		Code:     "MA-01",
		Category: "tiles",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, productRepo.addCalls)
	require.Len(t, responsePayload.Records, 1)
	assert.Equal(t, "Marble A", responsePayload.Records[0].Name)
}

func TestAddVariantValidation(t *testing.T) {
	variantRepo := &fakeVariantRepo{}
	svc := newTestService(&fakeProductRepo{}, variantRepo)

	_, err := svc.AddVariant(context.Background(), dto.VariantRequest{
		ProductID: "abc",
		Series:    "Classic",
		Code:      "MA-01",
		Size:      "30x60",
		PcsPerCtn: "-1",
		M2PerCtn:  "1.44",
		KgPerCtn:  "not-a-number",
		Stock:     "5",
		TileType:  "grippy",
	})

	var fieldErrs errs.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Contains(t, fieldErrs, "product_id")
	assert.Contains(t, fieldErrs, "pcs_per_ctn")
	assert.Contains(t, fieldErrs, "kg_per_ctn")
	assert.Contains(t, fieldErrs, "tile_type")
	assert.NotContains(t, fieldErrs, "m2_per_ctn")
	assert.Zero(t, variantRepo.addCalls)
}

func TestDeleteProductFailureKeepsList(t *testing.T) {
	productRepo := &fakeProductRepo{
		products:  []domain.Product{{ID: 1, Name: "Marble A", Brand: "Acme", Category: "tiles"}},
		deleteErr: errs.ErrUpstreamRejected,
	}
	svc := newTestService(productRepo, &fakeVariantRepo{})

	_, err := svc.DeleteProduct(context.Background(), 1)
	assert.ErrorIs(t, err, errs.ErrUpstreamRejected)
	assert.Len(t, productRepo.products, 1)
}

func TestGetVariantResolvesProductLabel(t *testing.T) {
	productRepo := &fakeProductRepo{
		products: []domain.Product{{ID: 1, Name: "Marble A", Brand: "Acme"}},
	}
	variantRepo := &fakeVariantRepo{
		fetchByID: map[int64]domain.Variant{
			10: {ID: 10, ProductID: 1, Size: "30x60", Stock: 3},
			11: {ID: 11, ProductID: 99, Size: "60x60"},
		},
	}
	svc := newTestService(productRepo, variantRepo)

	record, err := svc.GetVariant(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "Marble A (Acme)", record.ProductLabel)

	// The owning product was deleted after the variant was fetched.
	orphan, err := svc.GetVariant(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, UnknownProductLabel, orphan.ProductLabel)
}

func TestAdminLogin(t *testing.T) {
	svc := newTestService(&fakeProductRepo{}, &fakeVariantRepo{})

	responsePayload, err := svc.AdminLogin("letmein")
	require.NoError(t, err)
	assert.NotEmpty(t, responsePayload.Token)

	_, err = svc.AdminLogin("wrong")
	assert.ErrorIs(t, err, errs.ErrWrongPassword)

	_, err = svc.AdminLogin("")
	assert.ErrorIs(t, err, errs.ErrWrongPassword)
}
