package entity

// LineItem is one item row recovered from a document body.
// Optional fields are pointers; nil means the extractor found nothing,
// never an empty-string placeholder.
type LineItem struct {
	SKU       *string  `json:"sku"`
	Name      *string  `json:"name"`
	Quantity  *int     `json:"quantity"`
	Price     *float64 `json:"price"`
	LineIndex int      `json:"line_index"`
}

// Extraction is the typed record produced from raw document text.
// DocumentDate is normalized to YYYY-MM-DD when present.
type Extraction struct {
	DocumentDate *string    `json:"document_date"`
	DocumentID   *string    `json:"document_id"`
	Supplier     *string    `json:"supplier"`
	Items        []LineItem `json:"items"`
	RawText      string     `json:"raw_text"`
}
