package dto

// ImageAttachment carries an optional uploaded image that is forwarded to the
// catalog backend as the single binary part of a multipart request.
type ImageAttachment struct {
	Filename string
	Content  []byte
}

// ProductRequest mirrors the multipart fields the catalog backend expects for
// product create/update.
type ProductRequest struct {
	Name        string
	Brand       string
	Series      string
	Code        string
	Description string
	Category    string
	Image       *ImageAttachment
}

// VariantRequest carries variant form fields. Numeric fields stay strings on
// this boundary: the backend parses them server-side, the gateway only
// validates that they parse and are non-negative.
type VariantRequest struct {
	ProductID string
	Series    string
	Code      string
	Size      string
	PcsPerCtn string
	M2PerCtn  string
	KgPerCtn  string
	Stock     string
	TileType  string
	Image     *ImageAttachment
}

type AdminLoginRequest struct {
	Password string `json:"password"`
}
