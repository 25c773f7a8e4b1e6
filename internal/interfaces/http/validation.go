package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Usar el nombre JSON del campo en los mensajes
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct aplica los tags validate del DTO. Devuelve nil si es válido o el error
// VALIDATION con el primer campo que falla.
func validateStruct(in any) *dto.ErrorResponse {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: verrs[0].Field() + ": " + validationMessage(verrs[0])}
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "email inválido"
	case "min":
		if e.Kind() == reflect.String {
			return "debe tener al menos " + e.Param() + " caracteres"
		}
		return "debe ser al menos " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "debe tener como máximo " + e.Param() + " caracteres"
		}
		return "debe ser como máximo " + e.Param()
	case "oneof":
		return "debe ser uno de: " + e.Param()
	case "datetime":
		return "formato de fecha esperado " + e.Param()
	default:
		return "valor inválido"
	}
}
