// Package memory implementa los puertos de almacenamiento en memoria (desarrollo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

var _ repository.RecordStore = (*RecordStore)(nil)

// RecordStore slot clave/valor en memoria del proceso.
type RecordStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewRecordStore construye un almacenamiento vacío.
func NewRecordStore() *RecordStore {
	return &RecordStore{data: make(map[string][]byte)}
}

// Get devuelve una copia del valor o nil si no existe.
func (s *RecordStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Put reemplaza el valor de la clave.
func (s *RecordStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete elimina la clave; no falla si no existe.
func (s *RecordStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
