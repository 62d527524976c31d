package gateway

import (
	"fmt"
	"strings"

	"github.com/paladino/propiedades-web/internal/gallery"
	"github.com/paladino/propiedades-web/internal/models"
	"github.com/paladino/propiedades-web/internal/utils"
)

const (
	DefaultLocation   = "Villa Carlos Paz"
	DefaultSiteEmail  = "info@paladinopropiedades.com.ar"
	DefaultSitePhone  = "+54 11 1234-5678"
	DefaultAddress    = "San Martín 540, Villa Carlos Paz, Córdoba"
	DefaultCopy       = "© 2024 Paladino Propiedades. Todos los derechos reservados."
	DefaultLogo       = "https://via.placeholder.com/200x80/1e40af/ffffff?text=PALADINO"
	noDescription     = "Sin descripción disponible"
	defaultObjectType = "Propiedad"
	excerptLength     = 160
)

// ListingCard is the summary shown in grids and featured sections.
type ListingCard struct {
	ID          int     `json:"id"`
	Slug        string  `json:"slug"`
	Nombre      string  `json:"nombre"`
	Tipo        string  `json:"tipo"`
	Operacion   string  `json:"operacion"`
	Estado      string  `json:"estado"`
	Zona        string  `json:"zona"`
	Precio      string  `json:"precio"`
	Moneda      string  `json:"moneda"`
	Dormitorios int     `json:"dormitorios"`
	Banos       int     `json:"banos"`
	Superficie  float64 `json:"superficie,omitempty"`
	Imagen      string  `json:"imagen"`
	Destacado   bool    `json:"destacado"`
	Ubicacion   string  `json:"ubicacion"`
}

// FeatureGroup is one labelled cluster of enabled features.
type FeatureGroup struct {
	Titulo string   `json:"titulo"`
	Items  []string `json:"items"`
}

type ListingDetail struct {
	ListingCard
	DescripcionHTML string         `json:"descripcion_html"`
	Piso            string         `json:"piso,omitempty"`
	Orientacion     string         `json:"orientacion,omitempty"`
	EstadoGeneral   string         `json:"estado_general,omitempty"`
	Caracteristicas []FeatureGroup `json:"caracteristicas"`
	Galeria         gallery.State  `json:"galeria"`
	Video           string         `json:"video,omitempty"`
	MensajeContacto string         `json:"mensaje_contacto"`
	Latitud         *float64       `json:"latitud,omitempty"`
	Longitud        *float64       `json:"longitud,omitempty"`
}

// Amenity is one development amenity, shown ticked or crossed.
type Amenity struct {
	Clave      string `json:"clave"`
	Etiqueta   string `json:"etiqueta"`
	Disponible bool   `json:"disponible"`
}

type DevelopmentCard struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	Nombre    string `json:"nombre"`
	Estado    string `json:"estado"`
	Resumen   string `json:"resumen,omitempty"`
	Imagen    string `json:"imagen"`
	Ubicacion string `json:"ubicacion"`
}

type DevelopmentDetail struct {
	DevelopmentCard
	DescripcionHTML string        `json:"descripcion_html"`
	Precio          string        `json:"precio"`
	Amenities       []Amenity     `json:"amenities"`
	Galeria         gallery.State `json:"galeria"`
	Video           string        `json:"video,omitempty"`
	Latitud         *float64      `json:"latitud,omitempty"`
	Longitud        *float64      `json:"longitud,omitempty"`
}

type ProjectCard struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion"`
	Anio      int    `json:"anio,omitempty"`
	TipoObra  string `json:"tipo_obra"`
	Imagen    string `json:"imagen"`
}

type ProjectDetail struct {
	ProjectCard
	DescripcionHTML string        `json:"descripcion_html"`
	Constructora    string        `json:"constructora,omitempty"`
	Arquitecto      string        `json:"arquitecto,omitempty"`
	Galeria         gallery.State `json:"galeria"`
}

type NewsCard struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Titulo      string `json:"titulo"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion"`
	Imagen      string `json:"imagen"`
	Destacado   bool   `json:"destacado"`
}

type NewsDetail struct {
	NewsCard
	ContenidoHTML string        `json:"contenido_html"`
	Galeria       gallery.State `json:"galeria"`
}

// SiteDisplay carries header/footer texts with fallbacks already applied.
type SiteDisplay struct {
	Direccion   string           `json:"direccion"`
	Email       string           `json:"email"`
	Telefono    string           `json:"telefono"`
	Whatsapp    string           `json:"whatsapp,omitempty"`
	Instagram   string           `json:"instagram,omitempty"`
	TextoFooter string           `json:"texto_footer"`
	Copy        string           `json:"copy"`
	Logo        string           `json:"logo"`
	Contactos   []models.Contact `json:"contactos"`
	Fallback    bool             `json:"fallback"`
}

var amenityLabels = map[string]string{
	"pileta":                         "Pileta",
	"parrilla":                       "Parrilla",
	"solarium":                       "Solarium",
	"gimnasio":                       "Gimnasio",
	"laundry":                        "Laundry",
	"sum":                            "SUM",
	"terraza":                        "Terraza",
	"balcon":                         "Balcón",
	"seguridad":                      "Seguridad 24hs",
	"ascensor":                       "Ascensor",
	"expensas_incluidas":             "Expensas incluidas",
	"vista_montanas":                 "Vistas a las montañas",
	"vista_ciudad":                   "Vista a la ciudad",
	"vista_panoramica":               "Vista panorámica",
	"luz_natural":                    "Luz natural",
	"ventanas_doble_acristalamiento": "Ventanas de doble acristalamiento",
	"sistema_domotica":               "Sistema de domótica",
	"se_aceptan_mascotas":            "Se aceptan mascotas",
	"lavadero":                       "Lavadero",
	"exterior":                       "Exterior",
	"cocina_equipada":                "Cocina equipada",
	"chimenea":                       "Chimenea",
	"cerca_transporte_publico":       "Cerca del transporte público",
	"cerca_colegios":                 "Cerca de los colegios internacionales",
	"calefaccion":                    "Calefacción",
	"aparcamiento":                   "Aparcamiento",
	"garaje":                         "Garaje",
	"trastero":                       "Trastero",
}

func (g *Gateway) image(ref models.ImageRef) string {
	return ResolveImageURL(g.opts.BaseURL, g.opts.PlaceholderImage, ref.URL)
}

func (g *Gateway) images(refs ...models.ImageList) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range refs {
		for _, ref := range list {
			if ref.IsZero() {
				continue
			}
			u := g.image(ref)
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}
	}
	return out
}

func (g *Gateway) viewer(images []string, embed string) (*gallery.Viewer, string) {
	video, _ := ExtractYouTubeEmbedURL(embed)
	return gallery.New(images, video, g.opts.PlaceholderImage), video
}

// ListingLocation joins the known location parts of a listing.
func ListingLocation(l models.Listing) string {
	var parts []string
	if loc := l.UbicacionAvanzada; loc != nil {
		if loc.Localidad != "" {
			parts = append(parts, loc.Localidad)
		}
		if loc.Direccion != "" {
			parts = append(parts, loc.Direccion)
		}
	}
	if zone := l.ZoneName(); zone != "" {
		parts = append(parts, zone)
	}
	if l.Direccion != "" {
		parts = append(parts, l.Direccion)
	}
	if len(parts) == 0 {
		return DefaultLocation
	}
	return strings.Join(parts, ", ")
}

func (g *Gateway) ListingCard(l models.Listing) ListingCard {
	primary := l.Imagen
	if primary.IsZero() {
		for _, list := range []models.ImageList{l.Imagenes, l.Galeria} {
			if len(list) > 0 {
				primary = list[0]
				break
			}
		}
	}

	return ListingCard{
		ID:          l.ID,
		Slug:        l.Slug,
		Nombre:      l.Nombre,
		Tipo:        nameOr(models.NameField(l.TypeLabel()), Unspecified),
		Operacion:   nameOr(l.Operacion, Unspecified),
		Estado:      nameOr(l.Estado, Unspecified),
		Zona:        nameOr(models.NameField(l.ZoneName()), Unspecified),
		Precio:      FormatPrice(l.Precio.Amount, l.CurrencyName(), l.PriceVisible()),
		Moneda:      ResolveCurrencyCode(l.CurrencyName()),
		Dormitorios: l.Bedrooms(),
		Banos:       l.Banos.Or(0),
		Superficie:  l.Superficie.Value,
		Imagen:      g.image(primary),
		Destacado:   l.Destacado,
		Ubicacion:   ListingLocation(l),
	}
}

func (g *Gateway) ListingCards(items []models.Listing) []ListingCard {
	out := make([]ListingCard, 0, len(items))
	for _, l := range items {
		out = append(out, g.ListingCard(l))
	}
	return out
}

func (g *Gateway) ListingDetail(l models.Listing) ListingDetail {
	card := g.ListingCard(l)
	images := g.images(models.ImageList{l.Imagen}, l.Imagenes, l.Galeria)
	viewer, video := g.viewer(images, l.YoutubeVideo)

	d := ListingDetail{
		ListingCard:     card,
		DescripcionHTML: SanitizeDescription(l.Descripcion.String()),
		Piso:            l.Piso.String(),
		Orientacion:     l.Orientacion,
		EstadoGeneral:   l.EstadoGeneral,
		Caracteristicas: listingFeatures(l),
		Galeria:         viewer.State(),
		Video:           video,
		MensajeContacto: ContactMessage(l),
	}
	if loc := l.UbicacionAvanzada; loc != nil {
		if loc.Piso != "" && d.Piso == "" {
			d.Piso = loc.Piso.String()
		}
		d.Latitud, d.Longitud = coordinates(loc)
	}
	return d
}

func listingFeatures(l models.Listing) []FeatureGroup {
	groups := []struct {
		title string
		set   models.FeatureSet
	}{
		{"Servicios", l.Servicios},
		{"Amenities", l.Amenities},
		{"Comodidades internas", l.ComodidadesInternas},
		{"Seguridad", l.Seguridad},
	}

	out := make([]FeatureGroup, 0, len(groups))
	for _, grp := range groups {
		var items []string
		for _, key := range grp.set.Keys() {
			if grp.set[key] {
				items = append(items, FeatureLabel(key))
			}
		}
		if len(items) > 0 {
			out = append(out, FeatureGroup{Titulo: grp.title, Items: items})
		}
	}
	return out
}

func coordinates(loc *models.Location) (*float64, *float64) {
	if !loc.Latitud.Valid || !loc.Longitud.Valid {
		return nil, nil
	}
	lat, lng := loc.Latitud.Value, loc.Longitud.Value
	return &lat, &lng
}

// ContactMessage is the pre-filled inquiry text for a listing.
func ContactMessage(l models.Listing) string {
	kind := l.TypeLabel()
	if kind == "" {
		kind = defaultObjectType
	}
	description := strings.TrimSpace(l.Descripcion.String())
	if description == "" {
		description = noDescription
	}

	return fmt.Sprintf(`Hola,

Quiero más información del inmueble: %s

- Tipo: %s
- Operación: %s
- Precio: %s
- Ubicación: %s
- Descripción: %s

Por favor, contactarme para coordinar una visita o brindarme más detalles.

Gracias.`,
		l.Slug,
		kind,
		nameOr(l.Operacion, Unspecified),
		FormatPrice(l.Precio.Amount, l.CurrencyName(), true),
		ListingLocation(l),
		description,
	)
}

func developmentLocation(d models.Development) string {
	loc := d.UbicacionAvanzada
	if loc == nil {
		return DefaultLocation
	}
	var parts []string
	for _, p := range []string{loc.Direccion, loc.Localidad, loc.Piso.String()} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return DefaultLocation
	}
	return strings.Join(parts, ", ")
}

func (g *Gateway) DevelopmentCard(d models.Development) DevelopmentCard {
	cover := d.Cover
	if cover.IsZero() && len(d.Galeria) > 0 {
		cover = d.Galeria[0]
	}
	return DevelopmentCard{
		ID:        d.ID,
		Slug:      d.Slug,
		Nombre:    d.Nombre,
		Estado:    nameOr(d.Estado, Unspecified),
		Resumen:   utils.Excerpt(d.Resumen.String(), excerptLength),
		Imagen:    g.image(cover),
		Ubicacion: developmentLocation(d),
	}
}

func (g *Gateway) DevelopmentCards(items []models.Development) []DevelopmentCard {
	out := make([]DevelopmentCard, 0, len(items))
	for _, d := range items {
		out = append(out, g.DevelopmentCard(d))
	}
	return out
}

func (g *Gateway) DevelopmentDetail(d models.Development) DevelopmentDetail {
	images := g.images(models.ImageList{d.Cover}, d.Galeria)
	viewer, video := g.viewer(images, d.YoutubeVideo)

	detail := DevelopmentDetail{
		DevelopmentCard: g.DevelopmentCard(d),
		DescripcionHTML: SanitizeDescription(d.DescriptionText()),
		Precio:          d.PriceText(),
		Amenities:       DevelopmentAmenities(d.AmenitySet()),
		Galeria:         viewer.State(),
		Video:           video,
	}
	if d.UbicacionAvanzada != nil {
		detail.Latitud, detail.Longitud = coordinates(d.UbicacionAvanzada)
	}
	return detail
}

// DevelopmentAmenities labels every amenity flag, available or not.
func DevelopmentAmenities(set models.FeatureSet) []Amenity {
	out := make([]Amenity, 0, len(set))
	for _, key := range set.Keys() {
		label, ok := amenityLabels[key]
		if !ok {
			label = FeatureLabel(key)
		}
		out = append(out, Amenity{Clave: key, Etiqueta: label, Disponible: set[key]})
	}
	return out
}

func (g *Gateway) ProjectCard(p models.CompletedProject) ProjectCard {
	cover := p.ImagenPortada
	if cover.IsZero() && len(p.Galeria) > 0 {
		cover = p.Galeria[0]
	}
	location := p.Ubicacion
	if location == "" {
		location = DefaultLocation
	}
	return ProjectCard{
		ID:        p.ID,
		Slug:      p.Slug,
		Nombre:    p.Nombre,
		Ubicacion: location,
		Anio:      p.Anio.Or(0),
		TipoObra:  nameOr(p.TipoObra, Unspecified),
		Imagen:    g.image(cover),
	}
}

func (g *Gateway) ProjectCards(items []models.CompletedProject) []ProjectCard {
	out := make([]ProjectCard, 0, len(items))
	for _, p := range items {
		out = append(out, g.ProjectCard(p))
	}
	return out
}

func (g *Gateway) ProjectDetail(p models.CompletedProject) ProjectDetail {
	images := g.images(models.ImageList{p.ImagenPortada}, p.Galeria)
	viewer, _ := g.viewer(images, "")
	return ProjectDetail{
		ProjectCard:     g.ProjectCard(p),
		DescripcionHTML: SanitizeDescription(p.Descripcion.String()),
		Constructora:    p.Constructora,
		Arquitecto:      p.Arquitecto,
		Galeria:         viewer.State(),
	}
}

func (g *Gateway) NewsCard(n models.NewsItem) NewsCard {
	date := n.FechaPublicacion
	if date == "" {
		date = n.CreatedAt
	}
	return NewsCard{
		ID:          n.ID,
		Slug:        n.Slug,
		Titulo:      n.Titulo,
		Fecha:       date,
		Descripcion: utils.Excerpt(n.Descripcion.String(), excerptLength),
		Imagen:      g.image(n.ImagenDestacada),
		Destacado:   n.Destacado,
	}
}

func (g *Gateway) NewsCards(items []models.NewsItem) []NewsCard {
	out := make([]NewsCard, 0, len(items))
	for _, n := range items {
		out = append(out, g.NewsCard(n))
	}
	return out
}

func (g *Gateway) NewsDetail(n models.NewsItem) NewsDetail {
	viewer, _ := g.viewer(g.images(n.Galeria), "")
	return NewsDetail{
		NewsCard:      g.NewsCard(n),
		ContenidoHTML: SanitizeDescription(n.Contenido.String()),
		Galeria:       viewer.State(),
	}
}

// SiteDisplay applies the hard-coded fallbacks to a possibly nil
// configuration.
func (g *Gateway) SiteDisplay(cfg *models.SiteConfiguration) SiteDisplay {
	d := SiteDisplay{
		Direccion: DefaultAddress,
		Email:     DefaultSiteEmail,
		Telefono:  DefaultSitePhone,
		Copy:      DefaultCopy,
		Logo:      DefaultLogo,
		Contactos: []models.Contact{},
		Fallback:  cfg == nil,
	}
	if cfg == nil {
		return d
	}

	if loc := cfg.Ubicacion; loc != nil && loc.Direccion != "" {
		parts := []string{loc.Direccion}
		for _, p := range []string{loc.Localidad, loc.Piso.String()} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		d.Direccion = strings.Join(parts, ", ")
	}
	if cfg.EmailDeContacto != "" {
		d.Email = cfg.EmailDeContacto
	}
	if len(cfg.Contactos) > 0 {
		d.Contactos = cfg.Contactos
		first := cfg.Contactos[0]
		if first.Telefono != "" {
			d.Telefono = first.Telefono
		}
		if d.Email == DefaultSiteEmail && first.Email != "" {
			d.Email = first.Email
		}
		d.Whatsapp = first.Whatsapp
		d.Instagram = first.Instagram
	}
	d.TextoFooter = cfg.TextoFooter
	if cfg.Copy != "" {
		d.Copy = cfg.Copy
	}
	for _, list := range []models.ImageList{cfg.Logos.Logo2, cfg.Logos.Logo1} {
		if len(list) > 0 {
			d.Logo = ResolveImageURL(g.opts.BaseURL, DefaultLogo, list[0].URL)
			break
		}
	}
	return d
}
