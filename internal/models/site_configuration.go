package models

// SiteConfiguration is the singleton record driving header, footer and
// contact displays.
type SiteConfiguration struct {
	Contactos          []Contact `json:"contactos"`
	Ubicacion          *Location `json:"ubicacion"`
	TextoFooter        string    `json:"texto_footer"`
	Copy               string    `json:"copy"`
	EmailDeContacto    string    `json:"email_de_contacto"`
	TextoDeContactoWeb string    `json:"texto_de_contacto_web"`
	MapsHTML           string    `json:"maps_html"`
	Logos              Logos     `json:"Logos"`
}

// Contact is one entry of the configured contact list.
type Contact struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Whatsapp  string `json:"whatsapp"`
	Instagram string `json:"instagram"`
}

// Logos holds the uploaded logo variants.
type Logos struct {
	Logo1 ImageList `json:"Logo_1"`
	Logo2 ImageList `json:"Logo_2"`
}
