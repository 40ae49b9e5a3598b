package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/turboshop/parts_api/internal/models"
	"github.com/turboshop/parts_api/internal/utils"
	"github.com/turboshop/parts_api/pkg/partsapi"
)

// upstreamCatalogLimit is the page size requested from every provider when
// listing. The full snapshot is fetched and merged locally; pagination happens
// on the merged result, not upstream.
const upstreamCatalogLimit = 1000

// CatalogService aggregates the unified parts catalog across all configured
// upstream providers. Nothing is cached between requests: every call
// re-fetches and re-merges from the live providers.
type CatalogService struct {
	client           *partsapi.Client
	registry         *Registry
	aggregateTimeout time.Duration
}

// NewCatalogService constructs a CatalogService. aggregateTimeout bounds one
// whole catalog or detail request; providers still pending at the deadline
// resolve as failed.
func NewCatalogService(client *partsapi.Client, registry *Registry, aggregateTimeout time.Duration) *CatalogService {
	return &CatalogService{
		client:           client,
		registry:         registry,
		aggregateTimeout: aggregateTimeout,
	}
}

// CatalogResult is the full catalog query response.
type CatalogResult struct {
	Products   []models.MergedProduct
	Pagination models.Pagination
	Providers  []models.ProviderStatus
}

// GetCatalog fans out to every configured provider, normalizes and merges the
// responses, then filters and paginates the merged snapshot. Individual
// provider failures degrade coverage and are reported in the per-provider
// diagnostics; they never fail the request.
func (s *CatalogService) GetCatalog(ctx context.Context, page, limit int, filters models.Filters) (*CatalogResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.aggregateTimeout)
	defer cancel()

	start := time.Now()
	results := s.fanOut(ctx, func(ctx context.Context, entry ProviderEntry) partsapi.Result {
		return s.client.FetchCatalog(ctx, entry.Provider, 1, upstreamCatalogLimit)
	})

	entries := s.registry.Entries()
	catalogs := make([]NormalizedCatalog, len(results))
	for i, res := range results {
		catalog, err := s.normalizeCatalog(entries[i], res)
		if err != nil {
			return nil, err
		}
		catalogs[i] = catalog
	}

	merged := MergeBySKU(catalogs)
	filtered := FilterProducts(merged, filters)
	items, pagination := PaginateProducts(filtered, page, limit)

	statuses := make([]models.ProviderStatus, len(catalogs))
	succeeded := 0
	for i, catalog := range catalogs {
		statuses[i] = models.ProviderStatus{
			Name:          catalog.Provider,
			Success:       catalog.Success,
			ProductsCount: len(catalog.Products),
		}
		if catalog.Success {
			succeeded++
		}
	}

	log.Info().
		Int("providers_succeeded", succeeded).
		Int("providers_total", len(catalogs)).
		Int("merged", len(merged)).
		Int("filtered", len(filtered)).
		Dur("duration", time.Since(start)).
		Msg("catalog aggregated")

	return &CatalogResult{Products: items, Pagination: pagination, Providers: statuses}, nil
}

// GetProductDetail fans out the lookup operation for one SKU and reduces the
// contributing providers to a merged detail with a per-offer breakdown.
// Descriptive fields take the first non-empty value in registry order. Returns
// ErrProductNotFound when no provider contributed a record.
func (s *CatalogService) GetProductDetail(ctx context.Context, sku string) (*models.ProductDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.aggregateTimeout)
	defer cancel()

	results := s.fanOut(ctx, func(ctx context.Context, entry ProviderEntry) partsapi.Result {
		return s.client.LookupSKU(ctx, entry.Provider, sku)
	})

	entries := s.registry.Entries()
	detail := &models.ProductDetail{SKU: sku}
	offers := make([]models.DetailOffer, 0, len(entries))

	for i, res := range results {
		if !res.Success || len(res.Data) == 0 {
			continue
		}
		adapter := entries[i].Adapter
		if adapter == nil {
			// Unrecognized providers contribute nothing rather than guessing
			// a schema.
			continue
		}
		item, ok := adapter.LookupItem(res.Data)
		if !ok {
			continue
		}
		p := adapter.Normalize(item)
		if p == nil {
			continue
		}

		fillIfEmpty(&detail.Name, p.Name)
		fillIfEmpty(&detail.Description, p.Description)
		fillIfEmpty(&detail.Brand, p.Brand)
		fillIfEmpty(&detail.Model, p.Model)
		fillIfEmpty(&detail.Year, p.Year)
		fillIfEmpty(&detail.Category, p.Category)
		fillIfEmpty(&detail.ImageURL, p.ImageURL)

		offers = append(offers, models.DetailOffer{
			Name:         p.Provider,
			Provider:     p.Provider,
			Price:        p.Price,
			Stock:        p.Stock,
			Availability: p.Availability,
			Available:    p.Availability,
		})
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: %s", utils.ErrProductNotFound, sku)
	}

	// The price range considers positive prices only; an offer without a
	// usable price never drives the range.
	var minPrice, maxPrice float64
	totalStock := 0
	for _, o := range offers {
		totalStock += o.Stock
		if o.Price <= 0 {
			continue
		}
		if minPrice == 0 || o.Price < minPrice {
			minPrice = o.Price
		}
		if o.Price > maxPrice {
			maxPrice = o.Price
		}
	}
	for i := range offers {
		offers[i].BestPrice = offers[i].Price == minPrice
	}

	detail.Providers = offers
	detail.Offers = offers
	detail.MinPrice = minPrice
	detail.MaxPrice = maxPrice
	detail.TotalStock = totalStock
	detail.AvailableProviders = len(offers)
	return detail, nil
}

// fanOut runs op for every registry entry concurrently. Results land in a
// slice indexed by registry position, so callers observe providers in registry
// order no matter when each response arrives. A provider's retry backoff only
// delays its own slot.
func (s *CatalogService) fanOut(ctx context.Context, op func(context.Context, ProviderEntry) partsapi.Result) []partsapi.Result {
	entries := s.registry.Entries()
	results := make([]partsapi.Result, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry ProviderEntry) {
			defer wg.Done()
			results[i] = op(ctx, entry)
		}(i, entry)
	}
	wg.Wait()

	return results
}

// normalizeCatalog maps one provider result into canonical products. A failed
// fetch yields an unsuccessful catalog with no products. A registry entry
// without an adapter is a registry/normalizer mismatch and fails the whole
// request: that is a configuration bug, not a runtime data condition.
func (s *CatalogService) normalizeCatalog(entry ProviderEntry, res partsapi.Result) (NormalizedCatalog, error) {
	catalog := NormalizedCatalog{Provider: entry.Name}
	if !res.Success || len(res.Data) == 0 {
		return catalog, nil
	}
	if entry.Adapter == nil {
		return catalog, fmt.Errorf("%w: %s", utils.ErrUnknownProvider, entry.Name)
	}

	catalog.Success = true
	for _, item := range entry.Adapter.CatalogItems(res.Data) {
		if p := entry.Adapter.Normalize(item); p != nil {
			catalog.Products = append(catalog.Products, *p)
		}
	}
	return catalog, nil
}

func fillIfEmpty(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}
