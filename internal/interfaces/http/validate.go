package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
)

// validate instancia única: validator cachea la metadata de cada struct.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Nombres de campo tal como llegan en el JSON (quantity, allocations[0].staff_id...).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON parsea el cuerpo y aplica las reglas `validate`. Si falla, ya escribió la respuesta 400
// y devuelve ok=false.
func bindJSON(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, invalidBody(c)
	}
	if err := validate.Struct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: validationDetails(err),
		})
	}
	return true, nil
}

// validationDetails convierte validator.ValidationErrors en errores por campo.
func validationDetails(err error) []dto.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.FieldError{{Code: dto.CodeInvalidInput, Message: err.Error()}}
	}
	out := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		// Quita el nombre del struct raíz: "EntryRequest.allocations[0].staff_id" → "allocations[0].staff_id".
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		code := dto.CodeInvalidInput
		if fe.Tag() == "required" {
			code = dto.CodeMissingSelection
		}
		out = append(out, dto.FieldError{Field: field, Code: code, Message: fe.Tag()})
	}
	return out
}
