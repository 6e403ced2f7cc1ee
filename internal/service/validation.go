package service

import (
	"strconv"
	"strings"

	"github.com/tilemart/catalog-gateway/internal/domain"
	"github.com/tilemart/catalog-gateway/internal/dto"
	"github.com/tilemart/catalog-gateway/pkg/errs"
)

// Validation runs before any upstream call; a non-empty map blocks the
// request entirely.

func validateProductRequest(req dto.ProductRequest) errs.FieldErrors {
	fieldErrs := errs.FieldErrors{}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrs["name"] = "Product name is required"
	}
	if strings.TrimSpace(req.Brand) == "" {
		fieldErrs["brand"] = "Brand is required"
	}
	if strings.TrimSpace(req.Series) == "" {
		fieldErrs["series"] = "Series is required"
	}
	if strings.TrimSpace(req.Code) == "" {
		fieldErrs["code"] = "Product code is required"
	}
	if strings.TrimSpace(req.Category) == "" {
		fieldErrs["category"] = "Category is required"
	} else if !domain.IsValidCategory(req.Category) {
		fieldErrs["category"] = "Unknown category"
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

func validateVariantRequest(req dto.VariantRequest) errs.FieldErrors {
	fieldErrs := errs.FieldErrors{}
	if strings.TrimSpace(req.ProductID) == "" {
		fieldErrs["product_id"] = "Product is required"
	} else if _, err := strconv.ParseInt(req.ProductID, 10, 64); err != nil {
		fieldErrs["product_id"] = "Product reference must be a valid id"
	}
	if strings.TrimSpace(req.Series) == "" {
		fieldErrs["series"] = "Series is required"
	}
	if strings.TrimSpace(req.Code) == "" {
		fieldErrs["code"] = "Product code is required"
	}
	if strings.TrimSpace(req.Size) == "" {
		fieldErrs["size"] = "Size is required"
	}
	if !isNonNegativeInt(req.PcsPerCtn) {
		fieldErrs["pcs_per_ctn"] = "Valid Pcs/Ctn is required"
	}
	if !isNonNegativeFloat(req.M2PerCtn) {
		fieldErrs["m2_per_ctn"] = "Valid m2/Ctn is required"
	}
	if !isNonNegativeFloat(req.KgPerCtn) {
		fieldErrs["kg_per_ctn"] = "Valid kg/Ctn is required"
	}
	if !isNonNegativeInt(req.Stock) {
		fieldErrs["stock"] = "Valid stock quantity is required"
	}
	if req.TileType != "" && !domain.IsValidTileType(req.TileType) {
		fieldErrs["tile_type"] = "Tile type must be slide or non-slide"
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

func isNonNegativeInt(value string) bool {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	return err == nil && n >= 0
}

func isNonNegativeFloat(value string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	return err == nil && f >= 0
}
