package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pharmabill/internal/application/dto"
)

// validate instancia compartida; validator.Validate cachea la estructura de cada tipo.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre JSON (o query) del campo.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	return v
}

// bindBody parsea y valida el cuerpo JSON. Si falla, ya escribió la respuesta 400
// y devuelve ok=false junto con el error de escritura (nil normalmente).
func bindBody(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return validateStruct(c, out)
}

// bindQuery parsea y valida los parámetros de la query.
func bindQuery(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.QueryParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	return validateStruct(c, out)
}

func validateStruct(c *fiber.Ctx, out interface{}) (bool, error) {
	err := validate.Struct(out)
	if err == nil {
		return true, nil
	}
	resp := dto.ErrorResponse{Code: "VALIDATION", Message: "la petición no superó la validación"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			resp.Details = append(resp.Details, dto.FieldError{Field: e.Field(), Message: validationMessage(e)})
		}
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(resp)
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "campo obligatorio"
	case "max":
		if e.Kind() == reflect.String {
			return "máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	case "min":
		return "debe ser como mínimo " + e.Param()
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "datetime":
		return "fecha con formato " + e.Param()
	default:
		return "valor inválido"
	}
}
