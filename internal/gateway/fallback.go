package gateway

import (
	"strconv"
	"time"

	"github.com/paladino/propiedades-web/internal/models"
	"github.com/shopspring/decimal"
)

type sampleListing struct {
	id          int
	name        string
	description string
	price       int64
	kind        string
	status      string
	zone        string
	bedrooms    int
	bathrooms   int
	area        float64
	featured    bool
	slug        string
	address     string
	floor       string
	orientation string
	condition   string
}

var sampleListings = []sampleListing{
	{1, "Hermoso departamento en Palermo", "Departamento de 2 dormitorios en excelente ubicación", 150000,
		"Departamento", "Usado", "Palermo", 2, 1, 65, true,
		"hermoso-departamento-palermo", "Av. Santa Fe 1234", "5", "Norte", "Excelente"},
	{2, "Casa moderna en Recoleta", "Casa de 3 dormitorios con jardín", 350000,
		"Casa", "Nuevo", "Recoleta", 3, 2, 120, true,
		"casa-moderna-recoleta", "Av. Alvear 567", "", "Norte", "Nuevo"},
	{3, "PH en Belgrano", "PH de 1 dormitorio ideal para inversión", 95000,
		"PH", "Usado", "Belgrano", 1, 1, 45, false,
		"ph-belgrano", "Av. Cabildo 890", "2", "Este", "Bueno"},
	{4, "Departamento de lujo en Puerto Madero", "Departamento premium con vista al río", 500000,
		"Departamento", "Nuevo", "Puerto Madero", 4, 3, 180, true,
		"departamento-lujo-puerto-madero", "Av. Alicia Moreau de Justo 123", "15", "Norte", "Nuevo"},
	{5, "Casa quinta en San Isidro", "Hermosa casa quinta con amplio terreno", 750000,
		"Casa Quinta", "Usado", "San Isidro", 5, 4, 300, true,
		"casa-quinta-san-isidro", "Av. del Libertador 456", "", "Norte", "Excelente"},
	{6, "Monoambiente en Villa Crespo", "Monoambiente moderno y funcional", 65000,
		"Monoambiente", "Nuevo", "Villa Crespo", 0, 1, 35, false,
		"monoambiente-villa-crespo", "Av. Corrientes 789", "3", "Oeste", "Nuevo"},
}

// FallbackListings returns the fixed listing set served when the content API
// cannot be reached. Each call builds a fresh copy.
func FallbackListings() []models.Listing {
	now := time.Now().UTC().Format(time.RFC3339)
	show := true

	out := make([]models.Listing, 0, len(sampleListings))
	for _, s := range sampleListings {
		image := models.ImageRef{URL: "https://picsum.photos/400/300?random=" + strconv.Itoa(s.id)}
		out = append(out, models.Listing{
			ID:             s.id,
			Nombre:         s.name,
			Descripcion:    models.RichText(s.description),
			Precio:         models.Price{Amount: decimal.NewNullDecimal(decimal.NewFromInt(s.price))},
			Moneda:         "USD",
			MonedaRef:      "USD",
			MostrarPrecio:  &show,
			Operacion:      "Venta",
			Tipo:           models.NameField(s.kind),
			Estado:         models.NameField(s.status),
			Zona:           models.NameField(s.zone),
			CatalogoDeZona: models.NameField(s.zone),
			Habitaciones:   models.FlexInt{Value: s.bedrooms, Valid: true},
			Banos:          models.FlexInt{Value: s.bathrooms, Valid: true},
			Superficie:     models.FlexFloat{Value: s.area, Valid: true},
			Imagen:         image,
			Imagenes:       models.ImageList{image},
			Destacado:      s.featured,
			Slug:           s.slug,
			Direccion:      s.address,
			Localidad:      s.zone,
			Piso:           models.NameField(s.floor),
			Orientacion:    s.orientation,
			EstadoGeneral:  s.condition,
			TipoDeAmbiente: s.kind,
			CreatedAt:      now,
			UpdatedAt:      now,
			PublishedAt:    now,
		})
	}
	return out
}

var zoneCatalog = []struct{ name, description string }{
	{"Palermo", "Zona exclusiva de Buenos Aires"},
	{"Recoleta", "Barrio histórico y elegante"},
	{"Belgrano", "Zona residencial y comercial"},
	{"Villa Crespo", "Barrio en crecimiento"},
	{"Caballito", "Zona céntrica y accesible"},
}

var statusCatalog = []struct{ name, description string }{
	{"Nuevo", "Propiedades nuevas"},
	{"Usado", "Propiedades usadas"},
	{"En construcción", "Propiedades en construcción"},
}

// Zones returns the static zone directory. The content API has no zone
// endpoint.
func Zones() []models.Zone {
	now := time.Now().UTC().Format(time.RFC3339)
	out := make([]models.Zone, 0, len(zoneCatalog))
	for i, z := range zoneCatalog {
		out = append(out, models.Zone{ID: i + 1, Nombre: z.name, Descripcion: z.description, CreatedAt: now, UpdatedAt: now})
	}
	return out
}

// Statuses returns the static listing status catalog.
func Statuses() []models.Status {
	now := time.Now().UTC().Format(time.RFC3339)
	out := make([]models.Status, 0, len(statusCatalog))
	for i, s := range statusCatalog {
		out = append(out, models.Status{ID: i + 1, Nombre: s.name, Descripcion: s.description, CreatedAt: now, UpdatedAt: now})
	}
	return out
}
