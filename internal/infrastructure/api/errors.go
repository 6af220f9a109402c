package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/seva-empresas/seva-admin/internal/domain"
)

// errorEnvelope cuerpo de error del backend. detail puede ser un string o la lista
// de errores de validación [{"loc": [...], "msg": "..."}].
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

// normalizeError sintetiza el error uniforme a partir de un estado no 2xx.
// status es la línea de estado de net/http ("404 Not Found").
func normalizeError(code int, status string, body []byte) *domain.APIError {
	if detail := extractDetail(body); detail != "" {
		return domain.NewAPIError(code, detail)
	}
	text := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return domain.NewAPIError(code, fmt.Sprintf("Error %d: %s", code, text))
}

func extractDetail(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil || len(env.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(env.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []validationItem
	if err := json.Unmarshal(env.Detail, &items); err == nil {
		for _, it := range items {
			if it.Msg != "" {
				return it.Msg
			}
		}
		return ""
	}
	var one validationItem
	if err := json.Unmarshal(env.Detail, &one); err == nil {
		return one.Msg
	}
	return ""
}
