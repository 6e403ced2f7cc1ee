package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/tilemart/catalog-gateway/config"
	"github.com/tilemart/catalog-gateway/internal/domain"
	"github.com/tilemart/catalog-gateway/internal/dto"
	"github.com/tilemart/catalog-gateway/internal/repository"
	"github.com/tilemart/catalog-gateway/pkg/errs"
	"github.com/tilemart/catalog-gateway/pkg/imageurl"
	"github.com/tilemart/catalog-gateway/pkg/utils"
)

// variantFetchLimit bounds the per-product variant fan-out.
const variantFetchLimit = 4

type CatalogServiceImpl struct {
	productRepo   repository.ProductRepository
	variantRepo   repository.VariantRepository
	resolver      imageurl.Resolver
	config        *config.Config
	kafkaProducer *kafka.Conn
}

func CreateCatalogService(productRepo repository.ProductRepository, variantRepo repository.VariantRepository, resolver imageurl.Resolver, config *config.Config, kafkaProducer *kafka.Conn) CatalogService {
	return &CatalogServiceImpl{
		productRepo:   productRepo,
		variantRepo:   variantRepo,
		resolver:      resolver,
		config:        config,
		kafkaProducer: kafkaProducer,
	}
}

func (s *CatalogServiceImpl) GetProducts(ctx context.Context, category string) ([]dto.ProductResponse, error) {
	var products []domain.Product
	var err error
	if category == "" {
		products, err = s.productRepo.FetchProducts(ctx)
	} else {
		products, err = s.productRepo.FetchProductsByCategory(ctx, category)
	}
	if err != nil {
		return nil, err
	}

	records := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		records = append(records, s.toProductResponse(p))
	}
	return records, nil
}

func (s *CatalogServiceImpl) GetProductWithVariants(ctx context.Context, productID int64) (detail dto.ProductDetailResponse, err error) {
	product, err := s.productRepo.FetchProductByID(ctx, productID)
	if err != nil {
		return
	}

	// An empty variant list is a valid result: the product may legitimately
	// have no variants yet.
	variants, err := s.variantRepo.FetchVariantsByProduct(ctx, productID)
	if err != nil {
		return
	}

	detail.Product = s.toProductResponse(product)
	detail.Variants = s.toVariantResponses(variants, []domain.Product{product})
	detail.Facets = DeriveSizeFacets(variants)
	return
}

func (s *CatalogServiceImpl) GetCatalogVariants(ctx context.Context, sizeFacet string) (responsePayload dto.CatalogVariantsResponse, err error) {
	products, err := s.productRepo.FetchProducts(ctx)
	if err != nil {
		return
	}

	variants := s.collectVariants(ctx, products)
	if sizeFacet == "" {
		sizeFacet = FacetAll
	}

	responsePayload.Facets = DeriveSizeFacets(variants)
	responsePayload.Records = s.toVariantResponses(FilterBySize(variants, sizeFacet), products)
	return
}

func (s *CatalogServiceImpl) GetVariant(ctx context.Context, variantID int64) (dto.VariantResponse, error) {
	variant, err := s.variantRepo.FetchVariantByID(ctx, variantID)
	if err != nil {
		return dto.VariantResponse{}, err
	}

	label := UnknownProductLabel
	if product, err := s.productRepo.FetchProductByID(ctx, variant.ProductID); err == nil {
		label = fmt.Sprintf("%s (%s)", product.Name, product.Brand)
	}

	resp := s.toVariantResponse(variant)
	resp.ProductLabel = label
	return resp, nil
}

// collectVariants fans the per-product variant fetches out with bounded
// concurrency. Results are slotted by product index so the concatenation
// order never depends on completion order. A failed fetch for one product is
// logged and skipped, it does not abort the overall load.
func (s *CatalogServiceImpl) collectVariants(ctx context.Context, products []domain.Product) []domain.Variant {
	slots := make([][]domain.Variant, len(products))

	g := errgroup.Group{}
	g.SetLimit(variantFetchLimit)
	for i, product := range products {
		g.Go(func() error {
			variants, err := s.variantRepo.FetchVariantsByProduct(ctx, product.ID)
			if err != nil {
				log.Warn().Err(err).Int64("product_id", product.ID).Str("component", "collectVariants").Msg("skipping product variants")
				return nil
			}
			slots[i] = variants
			return nil
		})
	}
	g.Wait()

	merged := make([]domain.Variant, 0)
	for _, slot := range slots {
		merged = append(merged, slot...)
	}
	return merged
}

func (s *CatalogServiceImpl) AdminLogin(password string) (dto.AdminLoginResponse, error) {
	if s.config.AdminPassword == "" || subtle.ConstantTimeCompare([]byte(password), []byte(s.config.AdminPassword)) != 1 {
		return dto.AdminLoginResponse{}, errs.ErrWrongPassword
	}

	token, err := utils.CreateAdminToken(s.config.JWTSecret)
	if err != nil {
		return dto.AdminLoginResponse{}, fmt.Errorf("error creating admin token: %v", err)
	}
	return dto.AdminLoginResponse{Token: token}, nil
}

func (s *CatalogServiceImpl) GetManageProducts(ctx context.Context) (responsePayload dto.ManageProductsResponse, err error) {
	records, err := s.GetProducts(ctx, "")
	if err != nil {
		return
	}
	responsePayload.Records = records
	return
}

func (s *CatalogServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest) (dto.ManageProductsResponse, error) {
	if fieldErrs := validateProductRequest(req); fieldErrs != nil {
		return dto.ManageProductsResponse{}, fieldErrs
	}

	id, err := s.productRepo.AddProduct(ctx, req)
	if err != nil {
		return dto.ManageProductsResponse{}, err
	}

	s.publishMutation("product", "create", id)
	return s.GetManageProducts(ctx)
}

func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, id int64, req dto.ProductRequest) (dto.ManageProductsResponse, error) {
	if fieldErrs := validateProductRequest(req); fieldErrs != nil {
		return dto.ManageProductsResponse{}, fieldErrs
	}

	if err := s.productRepo.UpdateProduct(ctx, id, req); err != nil {
		return dto.ManageProductsResponse{}, err
	}

	s.publishMutation("product", "update", id)
	return s.GetManageProducts(ctx)
}

func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, id int64) (dto.ManageProductsResponse, error) {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return dto.ManageProductsResponse{}, err
	}

	s.publishMutation("product", "delete", id)
	return s.GetManageProducts(ctx)
}

func (s *CatalogServiceImpl) GetManageVariants(ctx context.Context) (responsePayload dto.ManageVariantsResponse, err error) {
	products, err := s.productRepo.FetchProducts(ctx)
	if err != nil {
		return
	}

	variants := s.collectVariants(ctx, products)
	responsePayload.Records = s.toVariantResponses(variants, products)
	return
}

func (s *CatalogServiceImpl) AddVariant(ctx context.Context, req dto.VariantRequest) (dto.ManageVariantsResponse, error) {
	if fieldErrs := validateVariantRequest(req); fieldErrs != nil {
		return dto.ManageVariantsResponse{}, fieldErrs
	}

	id, err := s.variantRepo.AddVariant(ctx, req)
	if err != nil {
		return dto.ManageVariantsResponse{}, err
	}

	s.publishMutation("variant", "create", id)
	return s.GetManageVariants(ctx)
}

func (s *CatalogServiceImpl) UpdateVariant(ctx context.Context, id int64, req dto.VariantRequest) (dto.ManageVariantsResponse, error) {
	if fieldErrs := validateVariantRequest(req); fieldErrs != nil {
		return dto.ManageVariantsResponse{}, fieldErrs
	}

	if err := s.variantRepo.UpdateVariant(ctx, id, req); err != nil {
		return dto.ManageVariantsResponse{}, err
	}

	s.publishMutation("variant", "update", id)
	return s.GetManageVariants(ctx)
}

func (s *CatalogServiceImpl) DeleteVariant(ctx context.Context, id int64) (dto.ManageVariantsResponse, error) {
	if err := s.variantRepo.DeleteVariant(ctx, id); err != nil {
		return dto.ManageVariantsResponse{}, err
	}

	s.publishMutation("variant", "delete", id)
	return s.GetManageVariants(ctx)
}

// ReportBackendHealth probes the catalog backend and logs its availability.
// Scheduled periodically from the app.
func (s *CatalogServiceImpl) ReportBackendHealth() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	products, err := s.productRepo.FetchProducts(ctx)
	if err != nil {
		log.Warn().Err(err).Str("component", "ReportBackendHealth").Msg("catalog backend unavailable")
		return
	}
	log.Info().Int("products", len(products)).Msg("catalog backend healthy")
}

// publishMutation emits a best-effort audit event after a successful admin
// mutation. Auditing is disabled when no broker is configured.
func (s *CatalogServiceImpl) publishMutation(entity string, action string, id int64) {
	if s.kafkaProducer == nil {
		return
	}

	kafkaMsg := dto.KafkaMessage{
		EventType: "catalog_mutated",
		Data: dto.CatalogMutation{
			Entity: entity,
			Action: action,
			ID:     id,
		},
	}

	jsonMsg, err := json.Marshal(kafkaMsg)
	if err != nil {
		log.Error().Err(err).Str("component", "publishMutation").Msg("")
		return
	}

	if _, err := s.kafkaProducer.WriteMessages(kafka.Message{Value: jsonMsg}); err != nil {
		log.Error().Err(err).Str("component", "publishMutation").Msg("")
	}
}

func (s *CatalogServiceImpl) toProductResponse(p domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Series:      p.Series,
		Code:        p.Code,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    s.resolver.ResolvePtr(p.Image),
	}
}

func (s *CatalogServiceImpl) toVariantResponse(v domain.Variant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Series:    v.Series,
		Code:      v.Code,
		Size:      v.Size,
		PcsPerCtn: v.PcsPerCtn,
		M2PerCtn:  v.M2PerCtn,
		KgPerCtn:  v.KgPerCtn,
		Stock:     v.Stock,
		InStock:   v.InStock(),
		TileType:  v.TileType,
		ImageURL:  s.resolver.ResolvePtr(v.Image),
	}
}

func (s *CatalogServiceImpl) toVariantResponses(variants []domain.Variant, products []domain.Product) []dto.VariantResponse {
	records := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		record := s.toVariantResponse(v)
		record.ProductLabel = ProductLabel(products, v.ProductID)
		records = append(records, record)
	}
	return records
}
