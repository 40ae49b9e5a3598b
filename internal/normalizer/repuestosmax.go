package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/turboshop/parts_api/internal/models"
)

// RepuestosMax serves a deeply nested Spanish-language schema. Availability is
// an explicit inventory status rather than a stock count.
type RepuestosMax struct{}

type repuestosItem struct {
	Identificacion struct {
		SKU string `json:"sku"`
	} `json:"identificacion"`
	InformacionBasica struct {
		Nombre      string `json:"nombre"`
		Descripcion string `json:"descripcion"`
		Marca       struct {
			Nombre string `json:"nombre"`
		} `json:"marca"`
		Categoria struct {
			Nombre string `json:"nombre"`
		} `json:"categoria"`
	} `json:"informacionBasica"`
	Precio struct {
		Valor flexFloat `json:"valor"`
	} `json:"precio"`
	Inventario struct {
		Cantidad flexInt `json:"cantidad"`
		Estado   string  `json:"estado"`
	} `json:"inventario"`
	Compatibilidad struct {
		Vehiculos []struct {
			Modelo string `json:"modelo"`
			Anios  *struct {
				Desde flexInt `json:"desde"`
				Hasta flexInt `json:"hasta"`
			} `json:"anios"`
		} `json:"vehiculos"`
	} `json:"compatibilidad"`
	Multimedia struct {
		Imagenes []struct {
			URL string `json:"url"`
		} `json:"imagenes"`
	} `json:"multimedia"`
}

type repuestosCatalog struct {
	Productos []json.RawMessage `json:"productos"`
}

type repuestosLookup struct {
	Producto  json.RawMessage   `json:"producto"`
	Productos []json.RawMessage `json:"productos"`
}

func (RepuestosMax) Provider() string { return models.ProviderRepuestosMax }

func (RepuestosMax) CatalogItems(data json.RawMessage) []json.RawMessage {
	var env repuestosCatalog
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	return env.Productos
}

func (RepuestosMax) LookupItem(data json.RawMessage) (json.RawMessage, bool) {
	var env repuestosLookup
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, false
	}
	if len(env.Producto) > 0 && !bytes.Equal(env.Producto, []byte("null")) {
		return env.Producto, true
	}
	if len(env.Productos) > 0 {
		return env.Productos[0], true
	}
	return nil, false
}

func (r RepuestosMax) Normalize(item json.RawMessage) *models.CanonicalProduct {
	var raw repuestosItem
	if err := json.Unmarshal(item, &raw); err != nil {
		return nil
	}
	sku := raw.Identificacion.SKU
	if sku == "" {
		return nil
	}

	// Vehicle info comes from the first compatible vehicle; the year range is
	// rendered as "desde-hasta" whenever structured range data is present.
	var model, year string
	if len(raw.Compatibilidad.Vehiculos) > 0 {
		vehiculo := raw.Compatibilidad.Vehiculos[0]
		model = vehiculo.Modelo
		if vehiculo.Anios != nil {
			year = fmt.Sprintf("%d-%d", int(vehiculo.Anios.Desde), int(vehiculo.Anios.Hasta))
		}
	}

	var imageURL string
	if len(raw.Multimedia.Imagenes) > 0 {
		imageURL = raw.Multimedia.Imagenes[0].URL
	}

	return &models.CanonicalProduct{
		SKU:          sku,
		Name:         raw.InformacionBasica.Nombre,
		Description:  raw.InformacionBasica.Descripcion,
		Price:        float64(raw.Precio.Valor),
		Stock:        int(raw.Inventario.Cantidad),
		Provider:     r.Provider(),
		Brand:        raw.InformacionBasica.Marca.Nombre,
		Model:        model,
		Year:         year,
		Category:     raw.InformacionBasica.Categoria.Nombre,
		ImageURL:     validImageURL(imageURL, sku),
		Availability: raw.Inventario.Estado == "disponible",
	}
}
