package partsapi

import "encoding/json"

// Provider describes one upstream supplier's endpoints and the query parameter
// names it expects. Every supplier names its paging and identifier parameters
// differently, so the names travel with the provider rather than being
// hardcoded in the client.
type Provider struct {
	Name        string
	CatalogPath string
	LookupPath  string
	PageParam   string
	LimitParam  string
	IDParam     string
}

// Result is the outcome of one provider operation. The client always produces
// a Result, success or failure; callers never branch on a returned error.
type Result struct {
	Provider string          `json:"provider"`
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Err      string          `json:"error,omitempty"`
	Attempts int             `json:"attempts"`
}
