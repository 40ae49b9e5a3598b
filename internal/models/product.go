package models

// CanonicalProduct is the unified field set produced after normalizing one
// provider's raw item. SKU is the cross-provider join key; an item that cannot
// yield a SKU is dropped before it ever reaches this type.
type CanonicalProduct struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Provider     string  `json:"provider"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         string  `json:"year"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"imageUrl"`
	Availability bool    `json:"availability"`
}

// Offer is one provider's price/stock/availability for a SKU inside a merged
// catalog entry.
type Offer struct {
	Provider     string  `json:"provider"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Availability bool    `json:"availability"`
}

// MergedProduct combines canonical products sharing a SKU across providers
// into one catalog entry. Descriptive fields come from the first provider (in
// registry order) that contributed the SKU; MinPrice/MaxPrice bracket every
// offer's price and TotalStock sums the offer stocks.
type MergedProduct struct {
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Year        string  `json:"year"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	TotalStock  int     `json:"totalStock"`
	Offers      []Offer `json:"offers"`
}

// DetailOffer is an offer as rendered in the single-SKU detail view. Name and
// Available duplicate Provider and Availability for presentation clients.
type DetailOffer struct {
	Name         string  `json:"name"`
	Provider     string  `json:"provider"`
	Price        float64 `json:"price"`
	Stock        int     `json:"stock"`
	Availability bool    `json:"availability"`
	Available    bool    `json:"available"`
	BestPrice    bool    `json:"bestPrice"`
}

// ProductDetail is the merged multi-offer view of a single SKU. Providers and
// Offers carry the same slice under both keys for presentation clients.
type ProductDetail struct {
	SKU                string        `json:"sku"`
	Name               string        `json:"name"`
	Description        string        `json:"description"`
	Brand              string        `json:"brand"`
	Model              string        `json:"model"`
	Year               string        `json:"year"`
	Category           string        `json:"category"`
	ImageURL           string        `json:"imageUrl"`
	Providers          []DetailOffer `json:"providers"`
	Offers             []DetailOffer `json:"offers"`
	MinPrice           float64       `json:"minPrice"`
	MaxPrice           float64       `json:"maxPrice"`
	TotalStock         int           `json:"totalStock"`
	AvailableProviders int           `json:"availableProviders"`
}

// Filters holds the optional catalog filter criteria. All set criteria are
// combined with AND; Year matches by exact string equality, never by range
// containment.
type Filters struct {
	Search string
	Brand  string
	Model  string
	Year   string
}

// Pagination describes one page of a filtered catalog.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	ItemsPerPage int  `json:"itemsPerPage"`
	TotalItems   int  `json:"totalItems"`
	TotalPages   int  `json:"totalPages"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}
