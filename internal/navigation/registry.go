package navigation

import (
	"sync"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
)

// Registry hands out one Engine per session token. Engines built over a
// stale catalog snapshot are replaced on access, since their views would
// reference cuts that no longer exist.
//
// Only the map is locked; each Engine stays single-threaded because a
// browser session issues its navigation requests sequentially.
type Registry struct {
	mu      sync.Mutex
	engines map[string]*Engine
}

func NewRegistry() *Registry {
	return &Registry{engines: make(map[string]*Engine)}
}

// Obtener returns the session's engine, creating or rebuilding it as needed.
func (r *Registry) Obtener(token string, idx *catalog.Index) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[token]; ok && e.Indice() == idx {
		return e
	}
	e := NewEngine(idx)
	r.engines[token] = e
	return e
}

// Olvidar drops a session's engine (logout, session expiry).
func (r *Registry) Olvidar(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.engines, token)
}
