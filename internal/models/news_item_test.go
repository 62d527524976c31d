package models

import (
	"encoding/json"
	"testing"
)

func TestNewsItemImageField(t *testing.T) {
	// Featured image arrives as an upload object, gallery mixes shapes
	payload := `{
		"id": 7,
		"titulo": "Nuevo lanzamiento",
		"slug": "nuevo-lanzamiento",
		"fecha_publicacion": "2024-05-02",
		"descripcion": "Resumen",
		"contenido": "<p>Cuerpo</p>",
		"imagen_destacada": {"url": "/uploads/lanzamiento.jpg", "alternativeText": "Fachada"},
		"galeria": ["/uploads/a.jpg", {"url": "https://cdn.example.com/b.jpg"}, null]
	}`

	var item NewsItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("Failed to unmarshal NewsItem: %v", err)
	}

	if item.ImagenDestacada.URL != "/uploads/lanzamiento.jpg" {
		t.Errorf("Expected featured image url '/uploads/lanzamiento.jpg', got %q", item.ImagenDestacada.URL)
	}
	if item.ImagenDestacada.AlternativeText != "Fachada" {
		t.Errorf("Expected alternative text 'Fachada', got %q", item.ImagenDestacada.AlternativeText)
	}
	if len(item.Galeria) != 2 {
		t.Fatalf("Expected 2 gallery images, got %d", len(item.Galeria))
	}
	if item.Galeria[1].URL != "https://cdn.example.com/b.jpg" {
		t.Errorf("Expected second gallery url to be absolute, got %q", item.Galeria[1].URL)
	}
}

func TestNewsItemMissingImage(t *testing.T) {
	var item NewsItem
	if err := json.Unmarshal([]byte(`{"titulo": "Sin imagen", "imagen_destacada": null}`), &item); err != nil {
		t.Fatalf("Failed to unmarshal NewsItem: %v", err)
	}
	if !item.ImagenDestacada.IsZero() {
		t.Errorf("Expected empty image reference, got %+v", item.ImagenDestacada)
	}
}

func TestNewsItemBlockContent(t *testing.T) {
	payload := `{
		"titulo": "Bloques",
		"contenido": [
			{"type": "paragraph", "children": [{"type": "text", "text": "Primera "}, {"type": "text", "text": "línea"}]},
			{"type": "paragraph", "children": [{"type": "text", "text": ""}]},
			{"type": "paragraph", "children": [{"type": "text", "text": "Segunda"}]}
		]
	}`

	var item NewsItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatalf("Failed to unmarshal NewsItem: %v", err)
	}

	want := "<p>Primera línea</p><p>Segunda</p>"
	if item.Contenido.String() != want {
		t.Errorf("Expected content %q, got %q", want, item.Contenido)
	}
}
