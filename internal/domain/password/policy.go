// Package password aplica la política de contraseñas del registro antes de cualquier llamada de red.
package password

import (
	"strings"
	"unicode"

	"github.com/seva-empresas/seva-admin/internal/domain"
)

// MinLength longitud mínima aceptada.
const MinLength = 8

// SpecialChars caracteres especiales admitidos por el backend.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

// Validate devuelve un *domain.ValidationError sobre el campo "password" con la
// primera regla incumplida, o nil si la contraseña cumple todas.
func Validate(pw string) error {
	if len([]rune(pw)) < MinLength {
		return fieldError("La contraseña debe tener al menos 8 caracteres")
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(SpecialChars, r):
			special = true
		}
	}
	switch {
	case !upper:
		return fieldError("La contraseña debe contener al menos una letra mayúscula")
	case !lower:
		return fieldError("La contraseña debe contener al menos una letra minúscula")
	case !digit:
		return fieldError("La contraseña debe contener al menos un número")
	case !special:
		return fieldError("La contraseña debe contener al menos un carácter especial (" + SpecialChars + ")")
	}
	return nil
}

func fieldError(detail string) error {
	return &domain.ValidationError{Field: "password", Detail: detail}
}
