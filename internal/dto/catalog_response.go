package dto

type ProductResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Series      string `json:"series"`
	Code        string `json:"code"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type VariantResponse struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product_id"`
	ProductLabel string  `json:"product_label"`
	Series       string  `json:"series"`
	Code         string  `json:"code"`
	Size         string  `json:"size"`
	PcsPerCtn    int64   `json:"pcs_per_ctn"`
	M2PerCtn     float64 `json:"m2_per_ctn"`
	KgPerCtn     float64 `json:"kg_per_ctn"`
	Stock        int64   `json:"stock"`
	InStock      bool    `json:"in_stock"`
	TileType     string  `json:"tile_type"`
	ImageURL     string  `json:"image_url"`
}

// ProductDetailResponse is the product page payload: one product, its variants
// and the size facets derived from them.
type ProductDetailResponse struct {
	Product  ProductResponse   `json:"product"`
	Variants []VariantResponse `json:"variants"`
	Facets   []string          `json:"facets"`
}

// CatalogVariantsResponse is the "all variants" browsing payload.
type CatalogVariantsResponse struct {
	Records []VariantResponse `json:"records"`
	Facets  []string          `json:"facets"`
}

type ManageProductsResponse struct {
	Records []ProductResponse `json:"records"`
}

type ManageVariantsResponse struct {
	Records []VariantResponse `json:"records"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

// CatalogMutation is the audit payload published after a successful admin
// mutation.
type CatalogMutation struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
}
