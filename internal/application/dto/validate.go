package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/seva-empresas/seva-admin/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	// decimal.Decimal se valida como número (min, gt, required).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate aplica las etiquetas validate de in. Devuelve un *domain.ValidationError con el
// primer campo inválido.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &domain.ValidationError{Field: fe.Field(), Detail: message(fe)}
	}
	return err
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Correo electrónico inválido"
	case "min":
		if fe.Kind() == reflect.String {
			return "Debe tener al menos " + fe.Param() + " caracteres"
		}
		return "Debe ser mayor o igual a " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "Debe tener como máximo " + fe.Param() + " caracteres"
		}
		return "Debe ser menor o igual a " + fe.Param()
	case "len":
		return "Debe tener exactamente " + fe.Param() + " caracteres"
	case "numeric":
		return "Solo se admiten dígitos"
	case "gt":
		return "Debe ser mayor a " + fe.Param()
	case "gtfield":
		return "Debe ser posterior a " + fe.Param()
	case "eqfield":
		return "No coincide con " + fe.Param()
	case "oneof":
		return "Valor no permitido (opciones: " + fe.Param() + ")"
	case "url":
		return "URL inválida"
	default:
		return "Valor inválido"
	}
}
