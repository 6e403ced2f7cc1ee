package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"github.com/tilemart/catalog-gateway/internal/domain"
	"github.com/tilemart/catalog-gateway/internal/dto"
	"github.com/tilemart/catalog-gateway/pkg/errs"
	"github.com/tilemart/catalog-gateway/pkg/httpclient"
)

// envelope is the wrapper every catalog backend response uses. It is decoded
// exactly once here; callers receive plain values and errors and never
// re-check success downstream.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type createdRecord struct {
	ID int64 `json:"id"`
}

type CatalogAPIRepository struct {
	client  *httpclient.Client
	breaker *gobreaker.CircuitBreaker[httpclient.Response]
	baseURL string
}

func CreateCatalogAPIRepository(client *httpclient.Client, breaker *gobreaker.CircuitBreaker[httpclient.Response], baseURL string) *CatalogAPIRepository {
	return &CatalogAPIRepository{
		client:  client,
		breaker: breaker,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (r *CatalogAPIRepository) FetchProducts(ctx context.Context) (products []domain.Product, err error) {
	resp, err := r.execute(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/products", r.baseURL),
		Method: http.MethodGet,
	})
	if err != nil {
		return
	}

	err = decodeEnvelope(resp, &products)
	return
}

func (r *CatalogAPIRepository) FetchProductByID(ctx context.Context, id int64) (product domain.Product, err error) {
	resp, err := r.execute(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/products/%d", r.baseURL, id),
		Method: http.MethodGet,
	})
	if err != nil {
		return
	}

	err = decodeEnvelope(resp, &product)
	return
}

func (r *CatalogAPIRepository) FetchProductsByCategory(ctx context.Context, category string) (products []domain.Product, err error) {
	resp, err := r.execute(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/products/category/%s", r.baseURL, category),
		Method: http.MethodGet,
	})
	if err != nil {
		return
	}

	err = decodeEnvelope(resp, &products)
	return
}

func (r *CatalogAPIRepository) AddProduct(ctx context.Context, req dto.ProductRequest) (int64, error) {
	resp, err := r.executeMultipart(ctx, http.MethodPost, fmt.Sprintf("%s/products", r.baseURL), productFields(req), imageAttachment(req.Image, "mainImage"))
	if err != nil {
		return 0, err
	}

	var created createdRecord
	if err := decodeEnvelope(resp, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (r *CatalogAPIRepository) UpdateProduct(ctx context.Context, id int64, req dto.ProductRequest) error {
	resp, err := r.executeMultipart(ctx, http.MethodPut, fmt.Sprintf("%s/products/%d", r.baseURL, id), productFields(req), imageAttachment(req.Image, "mainImage"))
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, nil)
}

func (r *CatalogAPIRepository) DeleteProduct(ctx context.Context, id int64) error {
	resp, err := r.execute(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/products/%d", r.baseURL, id),
		Method: http.MethodDelete,
	})
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, nil)
}

func (r *CatalogAPIRepository) FetchVariantsByProduct(ctx context.Context, productID int64) (variants []domain.Variant, err error) {
	resp, err := r.execute(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/variants/product/%d", r.baseURL, productID),
		Method: http.MethodGet,
	})
	if err != nil {
		return
	}

	err = decodeEnvelope(resp, &variants)
	return
}

func (r *CatalogAPIRepository) FetchVariantByID(ctx context.Context, id int64) (variant domain.Variant, err error) {
	resp, err := r.execute(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/variants/%d", r.baseURL, id),
		Method: http.MethodGet,
	})
	if err != nil {
		return
	}

	err = decodeEnvelope(resp, &variant)
	return
}

func (r *CatalogAPIRepository) AddVariant(ctx context.Context, req dto.VariantRequest) (int64, error) {
	resp, err := r.executeMultipart(ctx, http.MethodPost, fmt.Sprintf("%s/variants", r.baseURL), variantFields(req), imageAttachment(req.Image, "image"))
	if err != nil {
		return 0, err
	}

	var created createdRecord
	if err := decodeEnvelope(resp, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}

func (r *CatalogAPIRepository) UpdateVariant(ctx context.Context, id int64, req dto.VariantRequest) error {
	resp, err := r.executeMultipart(ctx, http.MethodPut, fmt.Sprintf("%s/variants/%d", r.baseURL, id), variantFields(req), imageAttachment(req.Image, "image"))
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, nil)
}

func (r *CatalogAPIRepository) DeleteVariant(ctx context.Context, id int64) error {
	resp, err := r.execute(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/variants/%d", r.baseURL, id),
		Method: http.MethodDelete,
	})
	if err != nil {
		return err
	}

	return decodeEnvelope(resp, nil)
}

func (r *CatalogAPIRepository) execute(ctx context.Context, req httpclient.HttpRequest) (httpclient.Response, error) {
	resp, err := r.breaker.Execute(func() (httpclient.Response, error) {
		return r.client.SendRequest(ctx, req)
	})
	if err != nil {
		return httpclient.Response{}, transportError(req.Method, req.URL, err)
	}
	return resp, nil
}

func (r *CatalogAPIRepository) executeMultipart(ctx context.Context, method string, url string, fields map[string]string, file *httpclient.FileAttachment) (httpclient.Response, error) {
	resp, err := r.breaker.Execute(func() (httpclient.Response, error) {
		return r.client.SendMultipartRequest(ctx, method, url, fields, file)
	})
	if err != nil {
		return httpclient.Response{}, transportError(method, url, err)
	}
	return resp, nil
}

func transportError(method string, url string, err error) error {
	log.Error().Err(err).Str("method", method).Str("url", url).Msg("catalog backend request failed")
	if errors.Is(err, httpclient.ErrTimeout) {
		return fmt.Errorf("%w: %s %s", errs.ErrUpstreamTimeout, method, url)
	}
	return fmt.Errorf("%w: %v", errs.ErrUpstreamUnreachable, err)
}

// decodeEnvelope unwraps a catalog backend response. A nil out skips data
// decoding for operations whose payload the gateway discards.
func decodeEnvelope(resp httpclient.Response, out interface{}) error {
	if resp.StatusCode == http.StatusNotFound {
		return errs.ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstreamProtocol, err)
	}

	if !env.Success {
		message := env.Message
		if message == "" {
			message = env.Error
		}
		if message == "" {
			return errs.ErrUpstreamRejected
		}
		return fmt.Errorf("%w: %s", errs.ErrUpstreamRejected, message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrUpstreamProtocol, err)
		}
	}

	return nil
}

func productFields(req dto.ProductRequest) map[string]string {
	return map[string]string{
		"name":        req.Name,
		"brand":       req.Brand,
		"series":      req.Series,
		"code":        req.Code,
		"description": req.Description,
		"category":    req.Category,
	}
}

func variantFields(req dto.VariantRequest) map[string]string {
	tileType := req.TileType
	if tileType == "" {
		tileType = domain.TileTypeNonSlide
	}
	return map[string]string{
		"product_id":  req.ProductID,
		"series":      req.Series,
		"code":        req.Code,
		"size":        req.Size,
		"pcs_per_ctn": req.PcsPerCtn,
		"m2_per_ctn":  req.M2PerCtn,
		"kg_per_ctn":  req.KgPerCtn,
		"stock":       req.Stock,
		"tile_type":   tileType,
	}
}

func imageAttachment(image *dto.ImageAttachment, fieldName string) *httpclient.FileAttachment {
	if image == nil {
		return nil
	}
	return &httpclient.FileAttachment{
		FieldName: fieldName,
		Filename:  image.Filename,
		Content:   image.Content,
	}
}
