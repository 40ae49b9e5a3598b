package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turboshop/parts_api/internal/models"
)

const repuestosFixture = `{
	"identificacion": {"sku": "BRK-001"},
	"informacionBasica": {
		"nombre": "Pastillas de freno",
		"descripcion": "Juego delantero",
		"marca": {"nombre": "Brembo"},
		"categoria": {"nombre": "Frenos"}
	},
	"precio": {"valor": 80},
	"inventario": {"cantidad": 3, "estado": "disponible"},
	"compatibilidad": {"vehiculos": [{"modelo": "ES350", "anios": {"desde": 2000, "hasta": 2006}}]},
	"multimedia": {"imagenes": [{"url": "https://cdn.repuestosmax.test/brk.jpg"}]}
}`

func TestRepuestosMaxNormalize(t *testing.T) {
	p := RepuestosMax{}.Normalize(json.RawMessage(repuestosFixture))
	require.NotNil(t, p)
	assert.Equal(t, "BRK-001", p.SKU)
	assert.Equal(t, "Pastillas de freno", p.Name)
	assert.Equal(t, "Juego delantero", p.Description)
	assert.Equal(t, 80.0, p.Price)
	assert.Equal(t, 3, p.Stock)
	assert.Equal(t, models.ProviderRepuestosMax, p.Provider)
	assert.Equal(t, "Brembo", p.Brand)
	assert.Equal(t, "ES350", p.Model)
	assert.Equal(t, "2000-2006", p.Year)
	assert.Equal(t, "Frenos", p.Category)
	assert.True(t, p.Availability)
}

func TestRepuestosMaxAvailabilityFromStatus(t *testing.T) {
	// Stock on hand does not matter; only the explicit status does.
	item := json.RawMessage(`{
		"identificacion": {"sku": "X-1"},
		"inventario": {"cantidad": 10, "estado": "agotado"}
	}`)
	p := RepuestosMax{}.Normalize(item)
	require.NotNil(t, p)
	assert.False(t, p.Availability)
	assert.Equal(t, 10, p.Stock)
}

func TestRepuestosMaxMissingVehicleData(t *testing.T) {
	item := json.RawMessage(`{
		"identificacion": {"sku": "X-2"},
		"compatibilidad": {"vehiculos": [{"modelo": "Corolla"}]}
	}`)
	p := RepuestosMax{}.Normalize(item)
	require.NotNil(t, p)
	assert.Equal(t, "Corolla", p.Model)
	assert.Empty(t, p.Year)
}

func TestRepuestosMaxMissingSKUDropped(t *testing.T) {
	assert.Nil(t, RepuestosMax{}.Normalize(json.RawMessage(`{"informacionBasica":{"nombre":"Algo"}}`)))
}

func TestRepuestosMaxCatalogItems(t *testing.T) {
	data := json.RawMessage(`{"productos":[` + repuestosFixture + `]}`)
	items := RepuestosMax{}.CatalogItems(data)
	require.Len(t, items, 1)

	p := RepuestosMax{}.Normalize(items[0])
	require.NotNil(t, p)
	assert.Equal(t, "BRK-001", p.SKU)
}

func TestRepuestosMaxLookupItem(t *testing.T) {
	item, ok := RepuestosMax{}.LookupItem(json.RawMessage(`{"producto":` + repuestosFixture + `}`))
	require.True(t, ok)
	assert.NotNil(t, RepuestosMax{}.Normalize(item))

	item, ok = RepuestosMax{}.LookupItem(json.RawMessage(`{"productos":[` + repuestosFixture + `]}`))
	require.True(t, ok)
	assert.NotNil(t, RepuestosMax{}.Normalize(item))

	_, ok = RepuestosMax{}.LookupItem(json.RawMessage(`{}`))
	assert.False(t, ok)
}
