package catalog

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/infogpstech/GPSpedia2.0/internal/model"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"

	"github.com/rs/zerolog/log"
)

// Loader owns the current Index and rebuilds it from fresh fetches. Rebuilds
// are total: there is no incremental patching, the new Index replaces the old
// one behind an RWMutex so readers never see a half-built snapshot.
//
// Concurrent reloads follow last-requested-wins: each Load call takes a
// generation number up front and only the result of the highest requested
// generation is installed. An older fetch that completes after a newer one
// was requested is discarded, so out-of-order completion cannot roll the
// catalog back.
type Loader struct {
	repo    repository.CatalogoRepository
	snap    repository.SnapshotRepository // optional
	ventana int

	mu            sync.RWMutex
	idx           *Index
	lastRequested uint64
}

func NewLoader(repo repository.CatalogoRepository, snap repository.SnapshotRepository, ventanaRecientes int) *Loader {
	return &Loader{repo: repo, snap: snap, ventana: ventanaRecientes}
}

// Current returns the installed Index; ok is false before the first
// successful load.
func (l *Loader) Current() (*Index, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.idx, l.idx != nil
}

// Load fetches the catalog, builds a fresh Index and installs it unless a
// newer load was requested meanwhile. It returns the Index it built even when
// a newer request superseded the install.
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	l.mu.Lock()
	l.lastRequested++
	gen := l.lastRequested
	l.mu.Unlock()

	cat, err := l.repo.FetchCatalog(ctx)
	if err != nil {
		return l.recuperarSnapshot(ctx, gen, err)
	}

	l.persistirSnapshot(ctx, cat)

	idx := New(cat, l.ventana)
	l.instalar(gen, idx)
	return idx, nil
}

// instalar swaps the index in if no newer load has been requested.
func (l *Loader) instalar(gen uint64, idx *Index) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.lastRequested {
		log.Debug().Uint64("gen", gen).Uint64("last", l.lastRequested).
			Msg("resultado de carga obsoleto descartado")
		return
	}
	l.idx = idx
}

// recuperarSnapshot serves the last persisted catalog when the remote store
// is unreachable and nothing is loaded yet. The fetch error is still
// returned when no snapshot can stand in.
func (l *Loader) recuperarSnapshot(ctx context.Context, gen uint64, fetchErr error) (*Index, error) {
	if _, ok := l.Current(); ok || l.snap == nil {
		return nil, fetchErr
	}

	payload, fetchedAt, err := l.snap.Ultimo(ctx)
	if err != nil || payload == nil {
		return nil, fetchErr
	}
	var cat model.Catalogo
	if err := json.Unmarshal(payload, &cat); err != nil {
		return nil, fetchErr
	}

	log.Warn().Time("snapshot", fetchedAt).Err(fetchErr).
		Msg("servicio de catálogo inaccesible, sirviendo snapshot local")
	idx := New(&cat, l.ventana)
	l.instalar(gen, idx)
	return idx, nil
}

func (l *Loader) persistirSnapshot(ctx context.Context, cat *model.Catalogo) {
	if l.snap == nil {
		return
	}
	payload, err := json.Marshal(cat)
	if err != nil {
		return
	}
	if err := l.snap.Guardar(ctx, payload); err != nil {
		log.Warn().Err(err).Msg("no se pudo persistir el snapshot del catálogo")
	}
}
