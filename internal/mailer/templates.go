package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

// InquiryEmail is the data rendered into a contact notification.
type InquiryEmail struct {
	Nombre    string
	Email     string
	Telefono  string
	TipoLabel string
	Mensaje   string
	LogoURL   string
}

const inquiryHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="text-align: center; margin-bottom: 30px; padding: 20px 0; background-color: #f8fafc; border-radius: 8px;">
    <img src="{{.LogoURL}}" alt="Paladino Propiedades" style="max-width: 200px; height: auto;">
    <h2 style="color: #1e40af; margin: 15px 0 0 0; font-size: 24px;">Nueva consulta desde la web</h2>
  </div>

  <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #374151; margin-top: 0;">Información del contacto:</h3>
    <p><strong>Nombre:</strong> {{.Nombre}}</p>
    <p><strong>Email:</strong> {{.Email}}</p>
    {{if .Telefono}}<p><strong>Teléfono:</strong> {{.Telefono}}</p>{{end}}
    <p><strong>Tipo de consulta:</strong> {{.TipoLabel}}</p>
  </div>

  <div style="background-color: #ffffff; padding: 20px; border: 1px solid #e5e7eb; border-radius: 8px;">
    <h3 style="color: #374151; margin-top: 0;">Mensaje:</h3>
    <p style="line-height: 1.6;">{{range $i, $line := lines .Mensaje}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
  </div>

  <div style="margin-top: 20px; padding: 15px; background-color: #f0f9ff; border-left: 4px solid #0ea5e9; border-radius: 4px;">
    <p style="margin: 0; color: #0c4a6e; font-size: 14px;">
      <strong>Nota:</strong> Este mensaje fue enviado desde el formulario de contacto de la web de Paladino Propiedades.
      Puedes responder directamente a este email para contactar al cliente.
    </p>
  </div>

  <div style="text-align: center; margin-top: 30px; padding: 20px 0; border-top: 1px solid #e5e7eb;">
    <img src="{{.LogoURL}}" alt="Paladino Propiedades" style="max-width: 150px; height: auto; margin-bottom: 10px;">
    <p style="color: #6b7280; font-size: 12px; margin: 0;">Paladino Propiedades - Tu socio de confianza en el mercado inmobiliario</p>
  </div>
</div>`

const inquiryText = `Nueva consulta desde la web

Información del contacto:
- Nombre: {{.Nombre}}
- Email: {{.Email}}
{{- if .Telefono}}
- Teléfono: {{.Telefono}}
{{- end}}
- Tipo de consulta: {{.TipoLabel}}

Mensaje:
{{.Mensaje}}

---
Este mensaje fue enviado desde el formulario de contacto de la web de Paladino Propiedades.
`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("inquiry.html").
			Funcs(htmltemplate.FuncMap{"lines": splitLines}).
			Parse(inquiryHTML))
	textTmpl = texttemplate.Must(texttemplate.New("inquiry.txt").Parse(inquiryText))

	minifier = newMinifier()
)

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	return m
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

// RenderInquiry produces the minified HTML body and the plain-text body.
func RenderInquiry(data InquiryEmail) (string, string, error) {
	var hb bytes.Buffer
	if err := htmlTmpl.Execute(&hb, data); err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}

	htmlBody, err := minifier.String("text/html", hb.String())
	if err != nil {
		return "", "", fmt.Errorf("failed to minify html body: %w", err)
	}

	var tb bytes.Buffer
	if err := textTmpl.Execute(&tb, data); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}

	return htmlBody, tb.String(), nil
}
