package dto

// ErrorResponse cuerpo de error HTTP: el mismo sobre {detail} que usa el backend.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// MessageResponse confirmación simple.
type MessageResponse struct {
	Message string `json:"message"`
}
