package models

// Canonical display names of the upstream suppliers. These values appear in
// API responses and must stay stable for clients.
const (
	ProviderAutoPartsPlus = "AutoPartsPlus"
	ProviderRepuestosMax  = "RepuestosMax"
	ProviderGlobalParts   = "GlobalParts"
)

// ProviderStatus reports one provider's outcome for a catalog aggregation:
// whether its fetch succeeded and how many normalized products it contributed.
type ProviderStatus struct {
	Name          string `json:"name"`
	Success       bool   `json:"success"`
	ProductsCount int    `json:"productsCount"`
}
