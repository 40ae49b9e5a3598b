package normalizer

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/turboshop/parts_api/internal/models"
)

// Adapter maps one provider's raw payloads into canonical products. Each known
// provider implements its own variant; adding a provider means adding an
// adapter and a registry row, nothing else changes.
type Adapter interface {
	// Provider returns the provider name this adapter handles.
	Provider() string

	// CatalogItems extracts the raw item list from the provider's catalog
	// envelope. Each provider wraps its listing differently (flat array field,
	// nested object, or a full request/response envelope).
	CatalogItems(data json.RawMessage) []json.RawMessage

	// LookupItem extracts the single raw item from the provider's
	// lookup-by-identifier response, reporting false when the payload holds
	// no item.
	LookupItem(data json.RawMessage) (json.RawMessage, bool)

	// Normalize maps one raw item to a canonical product. A nil return means
	// the item cannot yield a usable SKU and is dropped, not an error.
	Normalize(item json.RawMessage) *models.CanonicalProduct
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// extractYear pulls the first 4-digit year token out of a free-text vehicle
// fitment string such as "Lexus ES350 2000-2006".
func extractYear(vehicle string) string {
	return yearPattern.FindString(vehicle)
}

// validImageURL rewrites empty or sample-domain image links to a generated
// placeholder parameterized by SKU, so broken upstream URLs never reach the
// client unmodified.
func validImageURL(imageURL, sku string) string {
	if imageURL == "" || strings.Contains(imageURL, "example.com") {
		label := sku
		if label == "" {
			label = "Product"
		}
		return "https://placehold.co/400x400/e2e8f0/1e293b?text=" + url.QueryEscape(label)
	}
	return imageURL
}

// firstNonEmpty returns the first non-empty string, or "".
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstNonZero returns the first non-zero value, or 0.
func firstNonZero(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// flexFloat decodes a price field that may arrive as a number or a numeric
// string depending on the provider. Absent, null, or unparseable values decode
// to zero instead of failing the whole item.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

// flexInt decodes a stock-like field with the same leniency as flexFloat,
// truncating fractional values and clamping negatives to zero.
type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		*i = 0
		return nil
	}
	*i = flexInt(v)
	return nil
}
