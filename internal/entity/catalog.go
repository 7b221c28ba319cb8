package entity

// CatalogEntry is one known product in the reference catalog.
// MaxQuantity of nil means the product has no anomaly ceiling.
type CatalogEntry struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	MaxQuantity *int   `json:"max_quantity,omitempty"`
}
