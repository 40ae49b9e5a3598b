package service

import (
	"github.com/turboshop/parts_api/internal/models"
	"github.com/turboshop/parts_api/internal/normalizer"
	"github.com/turboshop/parts_api/pkg/partsapi"
)

// ProviderEntry pairs one upstream provider's endpoint description with the
// adapter that understands its payloads.
type ProviderEntry struct {
	partsapi.Provider
	Adapter normalizer.Adapter
}

// Registry is the immutable, ordered provider table. It is constructed once at
// startup and passed into the catalog service; merge results iterate providers
// in registry order, which keeps descriptive-field tie-breaks deterministic
// even though fetches run concurrently.
type Registry struct {
	entries []ProviderEntry
}

// NewRegistry builds a Registry from the given entries, preserving order.
func NewRegistry(entries ...ProviderEntry) *Registry {
	return &Registry{entries: entries}
}

// DefaultRegistry returns the three known upstream suppliers. Each provider
// names its paging and identifier query parameters differently.
func DefaultRegistry() *Registry {
	return NewRegistry(
		ProviderEntry{
			Provider: partsapi.Provider{
				Name:        models.ProviderAutoPartsPlus,
				CatalogPath: "/api/autopartsplus/catalog",
				LookupPath:  "/api/autopartsplus/parts",
				PageParam:   "page",
				LimitParam:  "limit",
				IDParam:     "sku",
			},
			Adapter: normalizer.AutoPartsPlus{},
		},
		ProviderEntry{
			Provider: partsapi.Provider{
				Name:        models.ProviderRepuestosMax,
				CatalogPath: "/api/repuestosmax/catalogo",
				LookupPath:  "/api/repuestosmax/productos",
				PageParam:   "pagina",
				LimitParam:  "limite",
				IDParam:     "codigo",
			},
			Adapter: normalizer.RepuestosMax{},
		},
		ProviderEntry{
			Provider: partsapi.Provider{
				Name:        models.ProviderGlobalParts,
				CatalogPath: "/api/globalparts/inventory/catalog",
				LookupPath:  "/api/globalparts/inventory/search",
				PageParam:   "page",
				LimitParam:  "itemsPerPage",
				IDParam:     "partNumber",
			},
			Adapter: normalizer.GlobalParts{},
		},
	)
}

// Entries returns the providers in registry order.
func (r *Registry) Entries() []ProviderEntry {
	return r.entries
}

// Len returns the number of configured providers.
func (r *Registry) Len() int {
	return len(r.entries)
}
