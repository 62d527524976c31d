package gateway

import (
	"encoding/json"
	"testing"

	"github.com/paladino/propiedades-web/internal/gallery"
	"github.com/paladino/propiedades-web/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeListing(t *testing.T, payload string) models.Listing {
	t.Helper()
	var l models.Listing
	require.NoError(t, json.Unmarshal([]byte(payload), &l))
	return l
}

func TestListingCardFromFallback(t *testing.T) {
	g := New(Options{BaseURL: testOrigin})
	card := g.ListingCard(FallbackListings()[0])

	assert.Equal(t, "hermoso-departamento-palermo", card.Slug)
	assert.Equal(t, "US$ 150.000", card.Precio)
	assert.Equal(t, "USD", card.Moneda)
	assert.Equal(t, "Departamento", card.Tipo)
	assert.Equal(t, 2, card.Dormitorios)
	assert.Equal(t, "https://picsum.photos/400/300?random=1", card.Imagen)
	assert.Equal(t, "Palermo, Av. Santa Fe 1234", card.Ubicacion)
}

func TestListingDetail(t *testing.T) {
	l := decodeListing(t, `{
		"id": 12,
		"nombre": "Casa en el lago",
		"slug": "casa-lago",
		"descripcion": "Linda casa\ncon vista<script>x()</script>",
		"precio": {"monto": "85000000", "moneda": {"nombre": "Pesos"}},
		"mostrar_precio": true,
		"operacion": {"nombre": "Venta"},
		"tipo_inmueble": {"nombre": "Casa"},
		"catalogo_de_zona": {"nombre": "Costa Azul"},
		"dormitorios": "3",
		"imagen": {"url": "/uploads/frente.jpg"},
		"galeria": [{"url": "/uploads/frente.jpg"}, {"url": "https://cdn.example.com/patio.jpg"}],
		"ubicacion_avanzada": {"localidad": "Villa Carlos Paz", "direccion": "Los Álamos 12", "latitud": "-31.42", "longitud": -64.49},
		"servicios": {"id": 4, "agua_corriente": true, "gas_natural": false, "cloacas": true},
		"seguridad": {"alarma": false},
		"Youtube_video": "<iframe src=\"https://www.youtube.com/embed/v1?rel=1\"></iframe>"
	}`)

	g := New(Options{BaseURL: testOrigin})
	d := g.ListingDetail(l)

	assert.Equal(t, "$ 85.000.000", d.Precio)
	assert.Equal(t, "ARS", d.Moneda)
	assert.Equal(t, "Casa", d.Tipo)
	assert.Equal(t, 3, d.Dormitorios)
	assert.Equal(t, "Villa Carlos Paz, Los Álamos 12, Costa Azul", d.Ubicacion)
	assert.Equal(t, testOrigin+"/uploads/frente.jpg", d.Imagen)
	assert.Contains(t, d.DescripcionHTML, "Linda casa<br>con vista")
	assert.NotContains(t, d.DescripcionHTML, "script")

	require.Len(t, d.Caracteristicas, 1)
	assert.Equal(t, FeatureGroup{Titulo: "Servicios", Items: []string{"Agua Corriente", "Cloacas"}}, d.Caracteristicas[0])

	assert.Equal(t, []string{testOrigin + "/uploads/frente.jpg", "https://cdn.example.com/patio.jpg"}, d.Galeria.Images)
	assert.True(t, d.Galeria.HasVideo)
	assert.Equal(t, gallery.TabPhotos, d.Galeria.Tab)
	assert.Equal(t, "https://www.youtube.com/embed/v1?rel=0", d.Video)

	require.NotNil(t, d.Latitud)
	assert.InDelta(t, -31.42, *d.Latitud, 1e-9)
	assert.Contains(t, d.MensajeContacto, "Quiero más información del inmueble: casa-lago")
	assert.Contains(t, d.MensajeContacto, "- Operación: Venta")
}

func TestListingCardHiddenPriceAndDefaults(t *testing.T) {
	l := decodeListing(t, `{"id": 1, "slug": "x", "precio": 1000, "mostrar_precio": false}`)
	card := New(Options{BaseURL: testOrigin}).ListingCard(l)

	assert.Equal(t, PriceOnRequest, card.Precio)
	assert.Equal(t, Unspecified, card.Tipo)
	assert.Equal(t, DefaultLocation, card.Ubicacion)
	assert.Equal(t, DefaultPlaceholderImage, card.Imagen)
	assert.Equal(t, 0, card.Dormitorios)
}

func TestContactMessageDefaults(t *testing.T) {
	msg := ContactMessage(models.Listing{Slug: "lote-7"})

	assert.Contains(t, msg, "- Tipo: Propiedad")
	assert.Contains(t, msg, "- Precio: Consultar precio")
	assert.Contains(t, msg, "- Ubicación: Villa Carlos Paz")
	assert.Contains(t, msg, "- Descripción: Sin descripción disponible")
}

func TestDevelopmentDetail(t *testing.T) {
	var d models.Development
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 3,
		"nombre": "Torre Norte",
		"slug": "torre-norte",
		"estado": "en construcción",
		"cover": {"url": "/uploads/torre.jpg"},
		"ubicacion_avanzada": {"direccion": "Av. Libertad 100", "localidad": "Villa Carlos Paz"},
		"secciones": [
			{"__component": "emprendimientos.precio-financiamiento", "texto": "Anticipo y 36 cuotas"},
			{"__component": "infraestructura.amenities", "id": 9, "pileta": true, "sum": false, "bicicletero": true}
		]
	}`), &d))

	detail := New(Options{BaseURL: testOrigin}).DevelopmentDetail(d)

	assert.Equal(t, "Av. Libertad 100, Villa Carlos Paz", detail.Ubicacion)
	assert.Equal(t, testOrigin+"/uploads/torre.jpg", detail.Imagen)
	assert.Equal(t, "Anticipo y 36 cuotas", detail.Precio)
	assert.Equal(t, "Descripción no disponible", detail.DescripcionHTML)
	assert.Equal(t, []Amenity{
		{Clave: "bicicletero", Etiqueta: "Bicicletero", Disponible: true},
		{Clave: "pileta", Etiqueta: "Pileta", Disponible: true},
		{Clave: "sum", Etiqueta: "SUM", Disponible: false},
	}, detail.Amenities)
	assert.False(t, detail.Galeria.HasVideo)
}

func TestProjectAndNewsViews(t *testing.T) {
	g := New(Options{BaseURL: testOrigin})

	p := g.ProjectDetail(models.CompletedProject{
		Slug:          "casa-lago",
		Nombre:        "Casa Lago",
		ImagenPortada: models.ImageRef{URL: "/uploads/lago.jpg"},
		Galeria:       models.ImageList{{URL: "/uploads/lago.jpg"}, {URL: "/uploads/living.jpg"}},
	})
	assert.Equal(t, DefaultLocation, p.Ubicacion)
	assert.Equal(t, Unspecified, p.TipoObra)
	assert.Len(t, p.Galeria.Images, 2)

	n := g.NewsDetail(models.NewsItem{
		Slug:        "apertura",
		CreatedAt:   "2024-03-01T10:00:00Z",
		Descripcion: "<p>Abrimos una <b>nueva</b> oficina</p>",
		Contenido:   "<p>Hola</p>",
	})
	assert.Equal(t, "2024-03-01T10:00:00Z", n.Fecha)
	assert.Equal(t, "Abrimos una nueva oficina", n.Descripcion)
	assert.Equal(t, DefaultPlaceholderImage, n.Imagen)
	assert.Equal(t, "<p>Hola</p>", n.ContenidoHTML)
	assert.Equal(t, DefaultPlaceholderImage, n.Galeria.Current)
}

func TestSiteDisplay(t *testing.T) {
	g := New(Options{BaseURL: testOrigin})

	fallback := g.SiteDisplay(nil)
	assert.True(t, fallback.Fallback)
	assert.Equal(t, DefaultAddress, fallback.Direccion)
	assert.Equal(t, DefaultSiteEmail, fallback.Email)
	assert.Equal(t, DefaultLogo, fallback.Logo)
	assert.NotNil(t, fallback.Contactos)

	cfg := &models.SiteConfiguration{
		Ubicacion: &models.Location{Direccion: "San Martín 540", Localidad: "Villa Carlos Paz", Piso: "2"},
		Contactos: []models.Contact{{Telefono: "+54 3541 000000", Whatsapp: "5493541000000"}},
		Copy:      "© Paladino",
		Logos:     models.Logos{Logo2: models.ImageList{{URL: "/uploads/logo.png"}}},
	}
	d := g.SiteDisplay(cfg)
	assert.False(t, d.Fallback)
	assert.Equal(t, "San Martín 540, Villa Carlos Paz, 2", d.Direccion)
	assert.Equal(t, "+54 3541 000000", d.Telefono)
	assert.Equal(t, DefaultSiteEmail, d.Email)
	assert.Equal(t, "5493541000000", d.Whatsapp)
	assert.Equal(t, "© Paladino", d.Copy)
	assert.Equal(t, testOrigin+"/uploads/logo.png", d.Logo)
}
