package models

import (
	"encoding/json"
)

// Section kinds as tagged by the content API's dynamic zone.
const (
	SectionGeneralDescription = "emprendimientos.descripcion-general"
	SectionPriceFinancing     = "emprendimientos.precio-financiamiento"
	SectionAmenities          = "infraestructura.amenities"
)

// Development is a multi-unit project ("emprendimiento").
type Development struct {
	ID                int       `json:"id"`
	Nombre            string    `json:"nombre"`
	Slug              string    `json:"slug"`
	Estado            NameField `json:"estado"`
	Resumen           RichText  `json:"resumen"`
	UbicacionAvanzada *Location `json:"ubicacion_avanzada"`
	Cover             ImageRef  `json:"cover"`
	Galeria           ImageList `json:"galeria"`
	Secciones         []Section `json:"secciones"`
	YoutubeVideo      string    `json:"youtube_video"`
	CreatedAt         string    `json:"created_at"`
	UpdatedAt         string    `json:"updated_at"`
}

// Section is one entry of a development's heterogeneous section list. Only
// the fields belonging to Kind are populated.
type Section struct {
	Kind      string     `json:"__component"`
	Contenido RichText   `json:"contenido,omitempty"`
	Texto     string     `json:"texto,omitempty"`
	Amenities FeatureSet `json:"amenities,omitempty"`
}

func (s *Section) UnmarshalJSON(b []byte) error {
	*s = Section{}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil
	}
	if raw, ok := obj["__component"]; ok {
		_ = json.Unmarshal(raw, &s.Kind)
	}

	switch s.Kind {
	case SectionGeneralDescription:
		if raw, ok := obj["contenido"]; ok {
			_ = json.Unmarshal(raw, &s.Contenido)
		}
	case SectionPriceFinancing:
		if raw, ok := obj["texto"]; ok {
			_ = json.Unmarshal(raw, &s.Texto)
		}
	case SectionAmenities:
		_ = s.Amenities.UnmarshalJSON(b)
	}
	return nil
}

// Section returns the first section of the given kind.
func (d Development) Section(kind string) (Section, bool) {
	for _, sec := range d.Secciones {
		if sec.Kind == kind {
			return sec, true
		}
	}
	return Section{}, false
}

// DescriptionText returns the general description, or a fixed default.
func (d Development) DescriptionText() string {
	if sec, ok := d.Section(SectionGeneralDescription); ok && sec.Contenido != "" {
		return sec.Contenido.String()
	}
	return "Descripción no disponible"
}

// PriceText returns the price/financing text, or a fixed default.
func (d Development) PriceText() string {
	if sec, ok := d.Section(SectionPriceFinancing); ok && sec.Texto != "" {
		return sec.Texto
	}
	return "Consultar precio"
}

// AmenitySet returns the amenities section's flags, if any.
func (d Development) AmenitySet() FeatureSet {
	if sec, ok := d.Section(SectionAmenities); ok {
		return sec.Amenities
	}
	return nil
}
