package normalizer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/turboshop/parts_api/internal/models"
)

// AutoPartsPlus serves a flat snake_case schema, but field naming is
// inconsistent between payloads (title vs name, unit_price vs unitPrice), so
// most fields resolve through fallback chains.
type AutoPartsPlus struct{}

type autoPartsItem struct {
	SKU          string    `json:"sku"`
	Title        string    `json:"title"`
	Name         string    `json:"name"`
	Desc         string    `json:"desc"`
	Description  string    `json:"description"`
	UnitPrice    flexFloat `json:"unit_price"`
	UnitPriceAlt flexFloat `json:"unitPrice"`
	Price        flexFloat `json:"price"`
	QtyAvailable flexInt   `json:"qty_available"`
	Stock        flexInt   `json:"stock"`
	BrandName    string    `json:"brand_name"`
	Brand        string    `json:"brand"`
	CategoryName string    `json:"category_name"`
	Category     string    `json:"category"`
	ImgURLs      []string  `json:"img_urls"`
	FitsVehicles []string  `json:"fits_vehicles"`
}

type autoPartsCatalog struct {
	Parts []json.RawMessage `json:"parts"`
}

type autoPartsLookup struct {
	Part  json.RawMessage   `json:"part"`
	Parts []json.RawMessage `json:"parts"`
}

func (AutoPartsPlus) Provider() string { return models.ProviderAutoPartsPlus }

func (AutoPartsPlus) CatalogItems(data json.RawMessage) []json.RawMessage {
	var env autoPartsCatalog
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	return env.Parts
}

// LookupItem accepts either the single-item {"part": {...}} shape or the list
// shape {"parts": [...]}, taking the first element of the latter.
func (AutoPartsPlus) LookupItem(data json.RawMessage) (json.RawMessage, bool) {
	var env autoPartsLookup
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if len(env.Part) > 0 && !bytes.Equal(env.Part, []byte("null")) {
		return env.Part, true
	}
	if len(env.Parts) > 0 {
		return env.Parts[0], true
	}
	return nil, false
}

func (a AutoPartsPlus) Normalize(item json.RawMessage) *models.CanonicalProduct {
	var raw autoPartsItem
	if err := json.Unmarshal(item, &raw); err != nil {
		return nil
	}
	if raw.SKU == "" {
		return nil
	}

	var imageURL string
	if len(raw.ImgURLs) > 0 {
		imageURL = raw.ImgURLs[0]
	}

	// The fitment string looks like "Lexus ES350 2000-2006": the model is the
	// second token, the year is the first 4-digit run.
	var model, year string
	if len(raw.FitsVehicles) > 0 {
		tokens := strings.Fields(raw.FitsVehicles[0])
		if len(tokens) > 1 {
			model = tokens[1]
		}
		year = extractYear(raw.FitsVehicles[0])
	}

	stock := int(raw.QtyAvailable)
	if stock == 0 {
		stock = int(raw.Stock)
	}

	return &models.CanonicalProduct{
		SKU:          raw.SKU,
		Name:         firstNonEmpty(raw.Title, raw.Name),
		Description:  firstNonEmpty(raw.Desc, raw.Description),
		Price:        firstNonZero(float64(raw.UnitPrice), float64(raw.UnitPriceAlt), float64(raw.Price)),
		Stock:        stock,
		Provider:     a.Provider(),
		Brand:        firstNonEmpty(raw.BrandName, raw.Brand),
		Model:        model,
		Year:         year,
		Category:     firstNonEmpty(raw.CategoryName, raw.Category),
		ImageURL:     validImageURL(imageURL, raw.SKU),
		Availability: raw.QtyAvailable > 0,
	}
}
