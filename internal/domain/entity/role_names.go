package entity

import (
	"encoding/json"
	"fmt"
)

// RoleNames colección de roles tal como la devuelve el backend. Acepta tanto
// ["admin", "cliente"] como [{"nombre": "admin"}, {"name": "cliente"}].
type RoleNames []string

func (r *RoleNames) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("roles: se esperaba un arreglo: %w", err)
	}
	names := make(RoleNames, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			names = append(names, s)
			continue
		}
		var obj struct {
			Nombre string `json:"nombre"`
			Name   string `json:"name"`
			Role   string `json:"role"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("roles: elemento no reconocido %s", string(item))
		}
		switch {
		case obj.Nombre != "":
			names = append(names, obj.Nombre)
		case obj.Name != "":
			names = append(names, obj.Name)
		case obj.Role != "":
			names = append(names, obj.Role)
		}
	}
	*r = names
	return nil
}
