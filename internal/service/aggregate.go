package service

import (
	"strings"

	"github.com/turboshop/parts_api/internal/models"
)

// NormalizedCatalog carries one provider's normalized contribution to a
// catalog request.
type NormalizedCatalog struct {
	Provider string
	Success  bool
	Products []models.CanonicalProduct
}

// MergeBySKU combines per-provider canonical products into one entry per SKU.
// Catalogs are walked in registry order and items in list order: the provider
// that first contributes a SKU seeds the descriptive fields, later providers
// only append offers and widen the price/stock aggregates. Output preserves
// insertion order.
func MergeBySKU(catalogs []NormalizedCatalog) []models.MergedProduct {
	index := make(map[string]int)
	merged := make([]models.MergedProduct, 0)

	for _, catalog := range catalogs {
		if !catalog.Success {
			continue
		}
		for _, p := range catalog.Products {
			if p.SKU == "" {
				continue
			}
			offer := models.Offer{
				Provider:     p.Provider,
				Price:        p.Price,
				Stock:        p.Stock,
				Availability: p.Availability,
			}
			if i, ok := index[p.SKU]; ok {
				m := &merged[i]
				m.Offers = append(m.Offers, offer)
				if p.Price < m.MinPrice {
					m.MinPrice = p.Price
				}
				if p.Price > m.MaxPrice {
					m.MaxPrice = p.Price
				}
				m.TotalStock += p.Stock
				continue
			}
			index[p.SKU] = len(merged)
			merged = append(merged, models.MergedProduct{
				SKU:         p.SKU,
				Name:        p.Name,
				Description: p.Description,
				Brand:       p.Brand,
				Model:       p.Model,
				Year:        p.Year,
				Category:    p.Category,
				ImageURL:    p.ImageURL,
				MinPrice:    p.Price,
				MaxPrice:    p.Price,
				TotalStock:  p.Stock,
				Offers:      []models.Offer{offer},
			})
		}
	}

	return merged
}

// FilterProducts applies the filter criteria conjunctively. Search matches
// case-insensitively against name, description, SKU, and brand; brand and
// model are case-insensitive substring matches; year is an exact string match,
// so a stored range like "2000-2006" never matches year=2005.
func FilterProducts(products []models.MergedProduct, filters models.Filters) []models.MergedProduct {
	filtered := products

	if filters.Search != "" {
		q := strings.ToLower(filters.Search)
		filtered = keep(filtered, func(p models.MergedProduct) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) ||
				strings.Contains(strings.ToLower(p.SKU), q) ||
				strings.Contains(strings.ToLower(p.Brand), q)
		})
	}

	if filters.Brand != "" {
		q := strings.ToLower(filters.Brand)
		filtered = keep(filtered, func(p models.MergedProduct) bool {
			return strings.Contains(strings.ToLower(p.Brand), q)
		})
	}

	if filters.Model != "" {
		q := strings.ToLower(filters.Model)
		filtered = keep(filtered, func(p models.MergedProduct) bool {
			return strings.Contains(strings.ToLower(p.Model), q)
		})
	}

	if filters.Year != "" {
		filtered = keep(filtered, func(p models.MergedProduct) bool {
			return p.Year != "" && p.Year == filters.Year
		})
	}

	return filtered
}

func keep(products []models.MergedProduct, pred func(models.MergedProduct) bool) []models.MergedProduct {
	out := make([]models.MergedProduct, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// PaginateProducts slices one 1-indexed page out of the filtered product list.
// Out-of-range pages yield an empty slice, not an error.
func PaginateProducts(products []models.MergedProduct, page, limit int) ([]models.MergedProduct, models.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := len(products)
	start := (page - 1) * limit
	end := page * limit

	items := []models.MergedProduct{}
	if start < total {
		if end > total {
			end = total
		}
		items = products[start:end]
	}

	return items, models.Pagination{
		CurrentPage:  page,
		ItemsPerPage: limit,
		TotalItems:   total,
		TotalPages:   (total + limit - 1) / limit,
		HasNextPage:  page*limit < total,
		HasPrevPage:  page > 1,
	}
}
