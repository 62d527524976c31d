package models

import (
	"encoding/json"
	"testing"
)

func TestNameFieldShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare string", `"Venta"`, "Venta"},
		{"object nombre", `{"id": 3, "nombre": "Alquiler"}`, "Alquiler"},
		{"object name", `{"name": "Casa"}`, "Casa"},
		{"null", `null`, ""},
		{"number", `5`, "5"},
		{"object without name", `{"id": 1}`, ""},
		{"array", `["x"]`, ""},
		{"boolean", `true`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n NameField
			if err := n.UnmarshalJSON([]byte(tc.raw)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n.String() != tc.want {
				t.Errorf("got %q, want %q", n, tc.want)
			}
		})
	}
}

func TestListingDecodesHeterogeneousRecord(t *testing.T) {
	payload := `{
		"id": 12,
		"nombre": "Casa en el lago",
		"precio": {"monto": "185000", "moneda": {"nombre": "Dólares"}},
		"operacion": {"nombre": "Venta"},
		"tipo": "Casa",
		"habitaciones": "3",
		"banos": 2,
		"superficie": "140.5",
		"imagen": {"url": "/uploads/casa.jpg"},
		"galeria": {"url": "/uploads/solo.jpg"},
		"destacado": true,
		"servicios": {"id": 4, "agua": true, "gas": false, "nota": "x"},
		"Youtube_video": "<iframe src=\"https://www.youtube.com/embed/abc\"></iframe>"
	}`

	var l Listing
	if err := json.Unmarshal([]byte(payload), &l); err != nil {
		t.Fatalf("Failed to unmarshal Listing: %v", err)
	}

	if !l.Precio.Amount.Valid || l.Precio.Amount.Decimal.String() != "185000" {
		t.Errorf("Expected price 185000, got %+v", l.Precio.Amount)
	}
	if l.CurrencyName() != "Dólares" {
		t.Errorf("Expected nested currency name, got %q", l.CurrencyName())
	}
	if l.Operacion != "Venta" {
		t.Errorf("Expected operation 'Venta', got %q", l.Operacion)
	}
	if l.Bedrooms() != 3 {
		t.Errorf("Expected 3 bedrooms, got %d", l.Bedrooms())
	}
	if !l.Superficie.Valid || l.Superficie.Value != 140.5 {
		t.Errorf("Expected area 140.5, got %+v", l.Superficie)
	}
	if len(l.Galeria) != 1 || l.Galeria[0].URL != "/uploads/solo.jpg" {
		t.Errorf("Expected single-object gallery to decode as one image, got %+v", l.Galeria)
	}
	if len(l.Servicios) != 2 || !l.Servicios["agua"] || l.Servicios["gas"] {
		t.Errorf("Unexpected services cluster: %+v", l.Servicios)
	}
	if l.YoutubeVideo == "" {
		t.Errorf("Expected capitalised Youtube_video key to decode")
	}
}

func TestListingNullPrice(t *testing.T) {
	var l Listing
	if err := json.Unmarshal([]byte(`{"id": 1, "precio": null, "moneda": "USD"}`), &l); err != nil {
		t.Fatalf("Failed to unmarshal Listing: %v", err)
	}
	if l.Precio.Amount.Valid {
		t.Errorf("Expected null price to stay invalid")
	}
	if l.CurrencyName() != "USD" {
		t.Errorf("Expected currency fallback to moneda, got %q", l.CurrencyName())
	}
}

func TestDevelopmentSections(t *testing.T) {
	payload := `{
		"nombre": "Torre Norte",
		"slug": "torre-norte",
		"secciones": [
			{"__component": "emprendimientos.descripcion-general", "contenido": "Vista al lago"},
			{"__component": "emprendimientos.precio-financiamiento", "texto": "Anticipo y 36 cuotas"},
			{"__component": "infraestructura.amenities", "id": 9, "pileta": true, "sum": false},
			{"__component": "otro.desconocido", "foo": "bar"}
		]
	}`

	var d Development
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		t.Fatalf("Failed to unmarshal Development: %v", err)
	}

	if got := d.DescriptionText(); got != "Vista al lago" {
		t.Errorf("DescriptionText() = %q", got)
	}
	if got := d.PriceText(); got != "Anticipo y 36 cuotas" {
		t.Errorf("PriceText() = %q", got)
	}
	amenities := d.AmenitySet()
	if len(amenities) != 2 || !amenities["pileta"] {
		t.Errorf("Unexpected amenities: %+v", amenities)
	}
	if len(d.Secciones) != 4 || d.Secciones[3].Kind != "otro.desconocido" {
		t.Errorf("Expected unknown section kinds to be kept, got %+v", d.Secciones)
	}
}

func TestDevelopmentDefaults(t *testing.T) {
	var d Development
	if got := d.DescriptionText(); got != "Descripción no disponible" {
		t.Errorf("DescriptionText() = %q", got)
	}
	if got := d.PriceText(); got != "Consultar precio" {
		t.Errorf("PriceText() = %q", got)
	}
}
