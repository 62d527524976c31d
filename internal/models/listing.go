package models

// Listing represents a property ("inmueble") as served by the content API.
type Listing struct {
	ID                  int        `json:"id"`
	Nombre              string     `json:"nombre"`
	Descripcion         RichText   `json:"descripcion"`
	Precio              Price      `json:"precio"`
	Moneda              NameField  `json:"moneda"`
	MonedaRef           NameField  `json:"moneda_ref"`
	MostrarPrecio       *bool      `json:"mostrar_precio"`
	Operacion           NameField  `json:"operacion"`
	Tipo                NameField  `json:"tipo"`
	TipoInmueble        NameField  `json:"tipo_inmueble"`
	Estado              NameField  `json:"estado"`
	Zona                NameField  `json:"zona"`
	CatalogoDeZona      NameField  `json:"catalogo_de_zona"`
	Habitaciones        FlexInt    `json:"habitaciones"`
	Dormitorios         FlexInt    `json:"dormitorios"`
	Banos               FlexInt    `json:"banos"`
	Ambientes           FlexInt    `json:"ambientes"`
	Superficie          FlexFloat  `json:"superficie"`
	Imagen              ImageRef   `json:"imagen"`
	Imagenes            ImageList  `json:"imagenes"`
	Galeria             ImageList  `json:"galeria"`
	Destacado           bool       `json:"destacado"`
	Slug                string     `json:"slug"`
	Direccion           string     `json:"direccion"`
	Localidad           string     `json:"localidad"`
	Piso                NameField  `json:"piso"`
	Orientacion         string     `json:"orientacion"`
	EstadoGeneral       string     `json:"estado_general"`
	TipoDeAmbiente      string     `json:"tipo_de_ambiente"`
	UbicacionAvanzada   *Location  `json:"ubicacion_avanzada"`
	Servicios           FeatureSet `json:"servicios"`
	Amenities           FeatureSet `json:"amenities"`
	ComodidadesInternas FeatureSet `json:"comodidades_internas"`
	Seguridad           FeatureSet `json:"seguridad"`
	YoutubeVideo        string     `json:"youtube_video"`
	CreatedAt           string     `json:"created_at"`
	UpdatedAt           string     `json:"updated_at"`
	PublishedAt         string     `json:"published_at"`
}

// TypeLabel returns the property type, whichever field carried it.
func (l Listing) TypeLabel() string {
	if l.Tipo != "" {
		return l.Tipo.String()
	}
	return l.TipoInmueble.String()
}

// ZoneName returns the zone, preferring the plain field over the catalog
// relation.
func (l Listing) ZoneName() string {
	if l.Zona != "" {
		return l.Zona.String()
	}
	return l.CatalogoDeZona.String()
}

// CurrencyName returns the raw currency label as sent upstream.
func (l Listing) CurrencyName() string {
	switch {
	case l.Precio.Currency != "":
		return l.Precio.Currency.String()
	case l.Moneda != "":
		return l.Moneda.String()
	default:
		return l.MonedaRef.String()
	}
}

// Bedrooms returns the bedroom count; absent counts read as zero.
func (l Listing) Bedrooms() int {
	if l.Dormitorios.Valid {
		return l.Dormitorios.Value
	}
	return l.Habitaciones.Or(0)
}

// PriceVisible reports whether the owner allows the price to be shown.
func (l Listing) PriceVisible() bool {
	return l.MostrarPrecio == nil || *l.MostrarPrecio
}

// Featured wraps a featured listing with its display position.
type Featured struct {
	ID        int     `json:"id"`
	Inmueble  Listing `json:"inmueble"`
	Orden     int     `json:"orden"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// Location is the "advanced location" block shared by listings,
// developments and the site configuration.
type Location struct {
	Direccion string    `json:"direccion"`
	Localidad string    `json:"localidad"`
	Piso      NameField `json:"piso"`
	Latitud   FlexFloat `json:"latitud"`
	Longitud  FlexFloat `json:"longitud"`
}
