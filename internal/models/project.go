package models

// CompletedProject is a finished construction work ("obra") shown as a
// portfolio item.
type CompletedProject struct {
	ID             int       `json:"id"`
	Nombre         string    `json:"nombre"`
	Slug           string    `json:"slug"`
	Descripcion    RichText  `json:"descripcion"`
	SeoDescripcion string    `json:"seo_descripcion"`
	Ubicacion      string    `json:"ubicacion"`
	Anio           FlexInt   `json:"anio"`
	TipoObra       NameField `json:"tipo_obra"`
	Constructora   string    `json:"constructora"`
	Arquitecto     string    `json:"arquitecto"`
	ImagenPortada  ImageRef  `json:"imagen_portada"`
	Galeria        ImageList `json:"galeria"`
	CreatedAt      string    `json:"created_at"`
	UpdatedAt      string    `json:"updated_at"`
}
