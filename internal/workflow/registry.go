package workflow

import (
	"sync"

	"github.com/infogpstech/GPSpedia2.0/internal/repository"
)

// Registry keeps one in-flight form per session token. A finished flow is
// replaced by a fresh one on next access, so a technician can register
// several cuts in a row.
type Registry struct {
	mu     sync.Mutex
	flujos map[string]*Flujo
}

func NewRegistry() *Registry {
	return &Registry{flujos: make(map[string]*Flujo)}
}

// Obtener returns the session's flow, starting a new one when none exists or
// the previous one finished.
func (r *Registry) Obtener(token string, matcher Matcher, escritura repository.EscrituraRepository, colaborador string) *Flujo {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.flujos[token]; ok && f.Estado() != EstadoFinalizado {
		return f
	}
	f := NewFlujo(matcher, escritura, colaborador)
	r.flujos[token] = f
	return f
}

// Reiniciar abandons the session's current form.
func (r *Registry) Reiniciar(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flujos, token)
}
