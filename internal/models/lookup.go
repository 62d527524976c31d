package models

// Lookup is a simple id/name catalog entry.
type Lookup struct {
	ID          int    `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Zone is a neighbourhood in the zone directory.
type Zone = Lookup

// Status is a property condition (new, used, under construction).
type Status = Lookup
