package contact

import "strings"

// Captcha is the optional arithmetic challenge shown next to the form.
type Captcha struct {
	Num1   int `json:"num1"`
	Num2   int `json:"num2"`
	Answer int `json:"answer"`
}

// Solved reports whether the answer matches the sum.
func (c Captcha) Solved() bool {
	return c.Num1+c.Num2 == c.Answer
}

// Request is the contact form payload.
type Request struct {
	Nombre   string   `json:"nombre" form:"nombre" validate:"required,max=200"`
	Email    string   `json:"email" form:"email" validate:"required,email,max=254"`
	Telefono string   `json:"telefono" form:"telefono" validate:"omitempty,max=50"`
	Mensaje  string   `json:"mensaje" form:"mensaje" validate:"required,max=5000"`
	Tipo     string   `json:"tipo" form:"tipo" validate:"omitempty,max=50"`
	Captcha  *Captcha `json:"captcha,omitempty" form:"-"`
}

// Normalize trims surrounding whitespace so blank fields fail "required".
func (r *Request) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Email = strings.TrimSpace(r.Email)
	r.Telefono = strings.TrimSpace(r.Telefono)
	r.Mensaje = strings.TrimSpace(r.Mensaje)
	r.Tipo = strings.TrimSpace(r.Tipo)
}

var tipoLabels = map[string]string{
	"consulta": "Consulta general",
	"venta":    "Venta de propiedad",
	"alquiler": "Alquiler de propiedad",
	"tasacion": "Tasación",
	"otro":     "Otro",
}

// TipoLabel maps an inquiry type to its display label. Unknown values pass
// through unchanged.
func TipoLabel(tipo string) string {
	if label, ok := tipoLabels[tipo]; ok {
		return label
	}
	return tipo
}
