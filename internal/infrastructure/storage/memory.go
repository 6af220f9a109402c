// Package storage implementa repository.ClientStorage en memoria y en un archivo local.
package storage

import (
	"context"
	"sync"

	"github.com/seva-empresas/seva-admin/internal/domain/repository"
)

var _ repository.ClientStorage = (*Memory)(nil)

// Memory almacenamiento volátil; se pierde al cerrar el proceso.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory crea un almacenamiento vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
