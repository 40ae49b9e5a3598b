package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/turboshop/parts_api/internal/models"
)

// GlobalParts serves an enterprise-style schema: every response is wrapped in
// a ResponseEnvelope/Body structure and every scalar lives behind two or three
// levels of Info objects.
type GlobalParts struct{}

type globalPartsItem struct {
	ItemHeader struct {
		ExternalReferences struct {
			SKU struct {
				Value string `json:"Value"`
			} `json:"SKU"`
		} `json:"ExternalReferences"`
	} `json:"ItemHeader"`
	ProductDetails struct {
		NameInfo struct {
			DisplayName string `json:"DisplayName"`
			ShortName   string `json:"ShortName"`
		} `json:"NameInfo"`
		Description struct {
			FullText string `json:"FullText"`
		} `json:"Description"`
		BrandInfo struct {
			BrandName string `json:"BrandName"`
		} `json:"BrandInfo"`
		CategoryInfo struct {
			PrimaryCategory struct {
				Name string `json:"Name"`
			} `json:"PrimaryCategory"`
		} `json:"CategoryInfo"`
	} `json:"ProductDetails"`
	PricingInfo struct {
		ListPrice struct {
			Amount flexFloat `json:"Amount"`
		} `json:"ListPrice"`
	} `json:"PricingInfo"`
	AvailabilityInfo struct {
		QuantityInfo struct {
			AvailableQuantity flexInt `json:"AvailableQuantity"`
		} `json:"QuantityInfo"`
	} `json:"AvailabilityInfo"`
	VehicleCompatibility struct {
		CompatibleVehicles []struct {
			Model struct {
				Name string `json:"Name"`
			} `json:"Model"`
			YearRange *struct {
				StartYear int `json:"StartYear"`
				EndYear   int `json:"EndYear"`
			} `json:"YearRange"`
		} `json:"CompatibleVehicles"`
	} `json:"VehicleCompatibility"`
	MediaAssets struct {
		Images []struct {
			ImageURL string `json:"ImageUrl"`
		} `json:"Images"`
	} `json:"MediaAssets"`
}

type globalPartsCatalog struct {
	ResponseEnvelope struct {
		Body struct {
			CatalogListing struct {
				Items []json.RawMessage `json:"Items"`
			} `json:"CatalogListing"`
		} `json:"Body"`
	} `json:"ResponseEnvelope"`
}

type globalPartsLookup struct {
	ResponseEnvelope struct {
		Body struct {
			Item  json.RawMessage   `json:"Item"`
			Items []json.RawMessage `json:"Items"`
		} `json:"Body"`
	} `json:"ResponseEnvelope"`
}

func (GlobalParts) Provider() string { return models.ProviderGlobalParts }

func (GlobalParts) CatalogItems(data json.RawMessage) []json.RawMessage {
	var env globalPartsCatalog
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	return env.ResponseEnvelope.Body.CatalogListing.Items
}

func (GlobalParts) LookupItem(data json.RawMessage) (json.RawMessage, bool) {
	var env globalPartsLookup
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	body := env.ResponseEnvelope.Body
	if len(body.Item) > 0 && !bytes.Equal(body.Item, []byte("null")) {
		return body.Item, true
	}
	if len(body.Items) > 0 {
		return body.Items[0], true
	}
	return nil, false
}

func (g GlobalParts) Normalize(item json.RawMessage) *models.CanonicalProduct {
	var raw globalPartsItem
	if err := json.Unmarshal(item, &raw); err != nil {
		return nil
	}
	sku := raw.ItemHeader.ExternalReferences.SKU.Value
	if sku == "" {
		return nil
	}

	// Structured year range: a single year when start equals end, otherwise
	// "start-end".
	var model, year string
	if vehicles := raw.VehicleCompatibility.CompatibleVehicles; len(vehicles) > 0 {
		vehicle := vehicles[0]
		model = vehicle.Model.Name
		if vehicle.YearRange != nil {
			if vehicle.YearRange.StartYear == vehicle.YearRange.EndYear {
				year = fmt.Sprintf("%d", vehicle.YearRange.StartYear)
			} else {
				year = fmt.Sprintf("%d-%d", vehicle.YearRange.StartYear, vehicle.YearRange.EndYear)
			}
		}
	}

	var imageURL string
	if len(raw.MediaAssets.Images) > 0 {
		imageURL = raw.MediaAssets.Images[0].ImageURL
	}

	stock := int(raw.AvailabilityInfo.QuantityInfo.AvailableQuantity)

	return &models.CanonicalProduct{
		SKU:          sku,
		Name:         firstNonEmpty(raw.ProductDetails.NameInfo.DisplayName, raw.ProductDetails.NameInfo.ShortName),
		Description:  raw.ProductDetails.Description.FullText,
		Price:        float64(raw.PricingInfo.ListPrice.Amount),
		Stock:        stock,
		Provider:     g.Provider(),
		Brand:        raw.ProductDetails.BrandInfo.BrandName,
		Model:        model,
		Year:         year,
		Category:     raw.ProductDetails.CategoryInfo.PrimaryCategory.Name,
		ImageURL:     validImageURL(imageURL, sku),
		Availability: stock > 0,
	}
}
