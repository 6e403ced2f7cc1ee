package controller

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/tilemart/catalog-gateway/internal/dto"
	"github.com/tilemart/catalog-gateway/internal/service"
	"github.com/tilemart/catalog-gateway/pkg/errs"
	"github.com/tilemart/catalog-gateway/pkg/response"
)

type Controller struct {
	service service.CatalogService
}

func CreateCatalogController(g *echo.Group, service service.CatalogService, isAdmin echo.MiddlewareFunc) {
	c := Controller{
		service: service,
	}

	g.GET("/catalog/products", c.GetProducts)
	g.GET("/catalog/products/:id", c.GetProductDetail)
	g.GET("/catalog/variants", c.GetCatalogVariants)
	g.GET("/catalog/variants/:id", c.GetVariantDetail)

	g.POST("/admin/login", c.AdminLogin)
	g.GET("/admin/products", c.GetManageProducts, isAdmin)
	g.POST("/admin/products", c.AddProduct, isAdmin)
	g.PUT("/admin/products/:id", c.UpdateProduct, isAdmin)
	g.DELETE("/admin/products/:id", c.DeleteProduct, isAdmin)
	g.GET("/admin/variants", c.GetManageVariants, isAdmin)
	g.POST("/admin/variants", c.AddVariant, isAdmin)
	g.PUT("/admin/variants/:id", c.UpdateVariant, isAdmin)
	g.DELETE("/admin/variants/:id", c.DeleteVariant, isAdmin)
}

func (c *Controller) GetProducts(e echo.Context) error {
	records, err := c.service.GetProducts(e.Request().Context(), e.QueryParam("category"))
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products", records)
}

func (c *Controller) GetProductDetail(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	detail, err := c.service.GetProductWithVariants(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved product", detail)
}

func (c *Controller) GetCatalogVariants(e echo.Context) error {
	responsePayload, err := c.service.GetCatalogVariants(e.Request().Context(), e.QueryParam("size"))
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved variants", responsePayload)
}

func (c *Controller) GetVariantDetail(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	record, err := c.service.GetVariant(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved variant", record)
}

func (c *Controller) AdminLogin(e echo.Context) error {
	payload := dto.AdminLoginRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Error().Err(err).Str("component", "AdminLogin").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient)
	}

	responsePayload, err := c.service.AdminLogin(payload.Password)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "login successful", responsePayload)
}

func (c *Controller) GetManageProducts(e echo.Context) error {
	responsePayload, err := c.service.GetManageProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved products", responsePayload)
}

func (c *Controller) AddProduct(e echo.Context) error {
	payload, err := bindProductRequest(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	responsePayload, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "product created", responsePayload)
}

func (c *Controller) UpdateProduct(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	payload, err := bindProductRequest(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	responsePayload, err := c.service.UpdateProduct(e.Request().Context(), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "product updated", responsePayload)
}

func (c *Controller) DeleteProduct(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	if !deletionConfirmed(e) {
		return response.WriteErrorResponse(e, errs.ErrConfirmationNeeded)
	}

	responsePayload, err := c.service.DeleteProduct(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "product deleted", responsePayload)
}

func (c *Controller) GetManageVariants(e echo.Context) error {
	responsePayload, err := c.service.GetManageVariants(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "successfully retrieved variants", responsePayload)
}

func (c *Controller) AddVariant(e echo.Context) error {
	payload, err := bindVariantRequest(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	responsePayload, err := c.service.AddVariant(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "variant created", responsePayload)
}

func (c *Controller) UpdateVariant(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	payload, err := bindVariantRequest(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	responsePayload, err := c.service.UpdateVariant(e.Request().Context(), id, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "variant updated", responsePayload)
}

func (c *Controller) DeleteVariant(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	if !deletionConfirmed(e) {
		return response.WriteErrorResponse(e, errs.ErrConfirmationNeeded)
	}

	responsePayload, err := c.service.DeleteVariant(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err)
	}

	return response.WriteSuccessResponse(e, "variant deleted", responsePayload)
}

func parseID(e echo.Context) (int64, error) {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.ErrClient
	}
	return id, nil
}

// deletionConfirmed is the gateway analogue of the admin UI confirm dialog:
// destructive calls are rejected unless the caller explicitly confirms.
func deletionConfirmed(e echo.Context) bool {
	return e.QueryParam("confirm") == "true"
}

func bindProductRequest(e echo.Context) (dto.ProductRequest, error) {
	image, err := readAttachment(e, "mainImage")
	if err != nil {
		return dto.ProductRequest{}, err
	}

	return dto.ProductRequest{
		Name:        e.FormValue("name"),
		Brand:       e.FormValue("brand"),
		Series:      e.FormValue("series"),
		Code:        e.FormValue("code"),
		Description: e.FormValue("description"),
		Category:    e.FormValue("category"),
		Image:       image,
	}, nil
}

func bindVariantRequest(e echo.Context) (dto.VariantRequest, error) {
	image, err := readAttachment(e, "image")
	if err != nil {
		return dto.VariantRequest{}, err
	}

	return dto.VariantRequest{
		ProductID: e.FormValue("product_id"),
		Series:    e.FormValue("series"),
		Code:      e.FormValue("code"),
		Size:      e.FormValue("size"),
		PcsPerCtn: e.FormValue("pcs_per_ctn"),
		M2PerCtn:  e.FormValue("m2_per_ctn"),
		KgPerCtn:  e.FormValue("kg_per_ctn"),
		Stock:     e.FormValue("stock"),
		TileType:  e.FormValue("tile_type"),
		Image:     image,
	}, nil
}

func readAttachment(e echo.Context, fieldName string) (*dto.ImageAttachment, error) {
	fileHeader, err := e.FormFile(fieldName)
	if err != nil {
		// Absent file is fine, the attachment is optional.
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("component", "readAttachment").Msg("")
		return nil, errs.ErrClient
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("component", "readAttachment").Msg("")
		return nil, errs.ErrClient
	}

	return &dto.ImageAttachment{
		Filename: fileHeader.Filename,
		Content:  content,
	}, nil
}
