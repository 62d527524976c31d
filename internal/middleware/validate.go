package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/paladino/propiedades-web/internal/logger"
)

const (
	validatedKey   = "validated"
	queryParamsKey = "queryParams"
)

// Messages shown to form users.
const (
	MsgMissingFields = "Faltan campos requeridos"
	MsgInvalidEmail  = "Formato de email inválido"
	MsgInvalidBody   = "Cuerpo de la solicitud inválido"
	MsgInvalidQuery  = "Parámetros de consulta inválidos"
)

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their json name.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return &Validator{validate: v}
}

// Validate validates the struct s
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// Message turns a validation error into a single human-readable reason.
// Missing fields are reported before malformed ones.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return MsgInvalidBody
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return MsgMissingFields
		}
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "email":
		return MsgInvalidEmail
	case "max":
		return fmt.Sprintf("El campo %s es demasiado largo", fe.Field())
	default:
		return fmt.Sprintf("El campo %s es inválido", fe.Field())
	}
}

// FieldErrors maps each failed field to the tag it failed.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return fields
}

type normalizer interface {
	Normalize()
}

// ValidateRequest parses the body into a fresh T per request, validates it
// and stores it for Validated. Failures answer 400 with the reason.
func ValidateRequest[T any](v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := new(T)
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": MsgInvalidBody,
			})
		}
		if n, ok := any(req).(normalizer); ok {
			n.Normalize()
		}

		if err := v.Validate(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  Message(err),
				"fields": FieldErrors(err),
			})
		}

		c.Locals(validatedKey, req)
		return c.Next()
	}
}

// ValidateQueryParams is ValidateRequest for the query string.
func ValidateQueryParams[T any](v *Validator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := new(T)
		if err := c.QueryParser(q); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": MsgInvalidQuery,
			})
		}

		if err := v.Validate(q); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  MsgInvalidQuery,
				"fields": FieldErrors(err),
			})
		}

		c.Locals(queryParamsKey, q)
		return c.Next()
	}
}

// Validated returns the body stored by ValidateRequest.
func Validated[T any](c *fiber.Ctx) (*T, bool) {
	v, ok := c.Locals(validatedKey).(*T)
	return v, ok
}

// QueryParams returns the query stored by ValidateQueryParams.
func QueryParams[T any](c *fiber.Ctx) (*T, bool) {
	v, ok := c.Locals(queryParamsKey).(*T)
	return v, ok
}

// ErrorHandler is a middleware that handles errors in a consistent way
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	logger.WithContext(c.UserContext()).Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
