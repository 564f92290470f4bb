// Package memory implementa repositorios en memoria del proceso (desarrollo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/consola-hardware/internal/domain/repository"
)

// SeenRepository conjunto de ids vistos por usuario, protegido por mutex.
// Se pierde al reiniciar el proceso.
type SeenRepository struct {
	mu   sync.RWMutex
	seen map[string]map[string]struct{}
}

var _ repository.SeenRepository = (*SeenRepository)(nil)

// NewSeenRepository crea el repositorio vacío.
func NewSeenRepository() *SeenRepository {
	return &SeenRepository{seen: make(map[string]map[string]struct{})}
}

func (r *SeenRepository) Unseen(_ context.Context, userID string, ids []string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.seen[userID]
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *SeenRepository) MarkSeen(_ context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.seen[userID]
	if !ok {
		set = make(map[string]struct{}, len(ids))
		r.seen[userID] = set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return nil
}

func (r *SeenRepository) Reset(_ context.Context, userID string) error {
	r.mu.Lock()
	delete(r.seen, userID)
	r.mu.Unlock()
	return nil
}
