package models

// NewsItem represents a published news entry ("novedad").
type NewsItem struct {
	ID               int       `json:"id"`
	Titulo           string    `json:"titulo"`
	Slug             string    `json:"slug"`
	FechaPublicacion string    `json:"fecha_publicacion"`
	Descripcion      RichText  `json:"descripcion"`
	Contenido        RichText  `json:"contenido"`
	ImagenDestacada  ImageRef  `json:"imagen_destacada"`
	Galeria          ImageList `json:"galeria"`
	Destacado        bool      `json:"destacado"`
	CreatedAt        string    `json:"created_at"`
	UpdatedAt        string    `json:"updated_at"`
}
