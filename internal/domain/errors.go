package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotAuthenticated = errors.New("no hay una sesión activa")
	ErrSessionExpired   = errors.New("la sesión expiró, inicia sesión nuevamente")
	ErrTimeout          = errors.New("la operación excedió el tiempo de espera")
	ErrNotClient        = errors.New("solo un cliente puede solicitar ser proveedor")
	ErrForbidden        = errors.New("acceso denegado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrAccountInactive  = errors.New("tu cuenta está inactiva, contacta al administrador")
	ErrSuperseded       = errors.New("la operación fue reemplazada por otra más reciente")
)

// APIError es la única taxonomía de errores del cliente REST: un mensaje para mostrar
// y el código HTTP. StatusCode 0 indica un fallo de red (sin respuesta del backend).
type APIError struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code,omitempty"`
	cause      error
}

// NewAPIError construye un error normalizado del backend.
func NewAPIError(status int, detail string) *APIError {
	return &APIError{Detail: detail, StatusCode: status}
}

// NewNetworkError envuelve un fallo de transporte en la forma uniforme.
func NewNetworkError(cause error) *APIError {
	return &APIError{Detail: fmt.Sprintf("error de red: %v", cause), cause: cause}
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return e.Detail
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Detail, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.cause }

// IsUnauthorized indica un 401 explícito del backend.
func (e *APIError) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// IsNetwork indica que no hubo respuesta HTTP.
func (e *APIError) IsNetwork() bool { return e.StatusCode == 0 }

// ValidationError error de validación del lado cliente, previo a cualquier llamada de red.
type ValidationError struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// AsAPIError extrae un *APIError de la cadena de errores.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized indica si err contiene un 401 del backend.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsUnauthorized()
}

// IsTransient agrupa timeouts y fallos de red: errores que no invalidan la sesión.
func IsTransient(err error) bool {
	if errors.Is(err, ErrTimeout) {
		return true
	}
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsNetwork()
}

// DetailOf devuelve el texto a mostrar al usuario para cualquier error.
func DetailOf(err error) string {
	if err == nil {
		return ""
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Detail
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Detail
	}
	return err.Error()
}
