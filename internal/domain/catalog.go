package domain

const (
	TileTypeSlide    = "slide"
	TileTypeNonSlide = "non-slide"
)

// Categories is the closed set of product categories accepted by the catalog
// backend.
var Categories = []string{"tiles", "tools", "accessories", "materials", "other"}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

func IsValidTileType(tileType string) bool {
	return tileType == TileTypeSlide || tileType == TileTypeNonSlide
}

type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Series      string    `json:"series"`
	Code        string    `json:"code"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       *string   `json:"image"`
	Variants    []Variant `json:"variants,omitempty"`
}

type Variant struct {
	ID        int64   `json:"id"`
	ProductID int64   `json:"productId"`
	Series    string  `json:"series"`
	Code      string  `json:"code"`
	Size      string  `json:"size"`
	PcsPerCtn int64   `json:"pcsPerCtn"`
	M2PerCtn  float64 `json:"m2PerCtn"`
	KgPerCtn  float64 `json:"kgPerCtn"`
	Stock     int64   `json:"stock"`
	TileType  string  `json:"tileType"`
	Image     *string `json:"image"`
}

func (v Variant) InStock() bool {
	return v.Stock > 0
}
