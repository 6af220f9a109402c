package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Claves bajo las que algunos endpoints envuelven sus listados.
var listEnvelopeKeys = []string{"items", "data", "results", "solicitudes"}

// decodeList acepta tanto un arreglo JSON como un objeto que lo envuelve.
func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []T{}, nil
	}
	if body[0] == '[' {
		var out []T
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	for _, k := range listEnvelopeKeys {
		raw, ok := env[k]
		if !ok {
			continue
		}
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("la respuesta no contiene un listado")
}
