package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testForm struct {
	Nombre string `json:"nombre" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Nota   string `json:"nota" validate:"omitempty,max=5"`
}

func (f *testForm) Normalize() {
	f.Nombre = strings.TrimSpace(f.Nombre)
}

type testQuery struct {
	Dormitorios int `query:"dormitorios" validate:"gte=0"`
}

func newTestApp() *fiber.App {
	v := NewValidator()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/form", ValidateRequest[testForm](v), func(c *fiber.Ctx) error {
		form, ok := Validated[testForm](c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"nombre": form.Nombre})
	})
	app.Get("/query", ValidateQueryParams[testQuery](v), func(c *fiber.Ctx) error {
		q, _ := QueryParams[testQuery](c)
		return c.JSON(fiber.Map{"dormitorios": q.Dormitorios})
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestValidateRequest(t *testing.T) {
	app := newTestApp()

	code, body := postJSON(t, app, `{"nombre":"  Ana ","email":"ana@example.com"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ana", body["nombre"])

	code, body = postJSON(t, app, `{"nombre":"   ","email":"ana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, MsgMissingFields, body["error"])
	assert.Equal(t, map[string]interface{}{"nombre": "required"}, body["fields"])

	code, body = postJSON(t, app, `{"nombre":"Ana","email":"no-es-un-email"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, MsgInvalidEmail, body["error"])

	code, body = postJSON(t, app, `{"nombre":"Ana","email":"bad","nota":"demasiado"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, MsgInvalidEmail, body["error"])

	code, body = postJSON(t, app, `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, MsgMissingFields, body["error"])

	code, body = postJSON(t, app, `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, MsgInvalidBody, body["error"])
}

func TestValidateQueryParams(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/query?dormitorios=2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/query?dormitorios=-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/query?dormitorios=muchos", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "I'm a teapot", body["error"])
}
