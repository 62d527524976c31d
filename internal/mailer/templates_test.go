package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInquiry(t *testing.T) {
	data := InquiryEmail{
		Nombre:    "Juan Pérez",
		Email:     "juan@example.com",
		Telefono:  "3541 555555",
		TipoLabel: "Venta de propiedad",
		Mensaje:   "Línea 1\nLínea 2",
		LogoURL:   "https://cdn.example.com/logo.png",
	}

	htmlBody, textBody, err := RenderInquiry(data)
	require.NoError(t, err)

	assert.Contains(t, htmlBody, "Nueva consulta desde la web")
	assert.Contains(t, htmlBody, "Juan Pérez")
	assert.Contains(t, htmlBody, "https://cdn.example.com/logo.png")
	assert.Contains(t, htmlBody, "Teléfono:")
	assert.Contains(t, htmlBody, "Línea 1<br>Línea 2")
	assert.Contains(t, htmlBody, "Tu socio de confianza en el mercado inmobiliario")

	assert.Contains(t, textBody, "- Nombre: Juan Pérez\n- Email: juan@example.com\n- Teléfono: 3541 555555\n- Tipo de consulta: Venta de propiedad")
	assert.Contains(t, textBody, "Mensaje:\nLínea 1\nLínea 2")
}

func TestRenderInquiryWithoutPhone(t *testing.T) {
	htmlBody, textBody, err := RenderInquiry(InquiryEmail{
		Nombre:    "Ana",
		Email:     "ana@example.com",
		TipoLabel: "Consulta general",
		Mensaje:   "Hola",
	})
	require.NoError(t, err)

	assert.NotContains(t, htmlBody, "Teléfono")
	assert.NotContains(t, textBody, "Teléfono")
	assert.Contains(t, textBody, "- Email: ana@example.com\n- Tipo de consulta: Consulta general")
}

func TestRenderInquiryEscapesMarkup(t *testing.T) {
	htmlBody, _, err := RenderInquiry(InquiryEmail{
		Nombre:    "<b>x</b>",
		Email:     "x@example.com",
		TipoLabel: "Otro",
		Mensaje:   "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.NotContains(t, htmlBody, "<script>")
	assert.NotContains(t, htmlBody, "<b>x</b>")
}
