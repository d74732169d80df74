package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubCatalogoRepo struct {
	fetch func(ctx context.Context) (*model.Catalogo, error)
}

func (s *stubCatalogoRepo) FetchCatalog(ctx context.Context) (*model.Catalogo, error) {
	return s.fetch(ctx)
}

func (s *stubCatalogoRepo) FetchDesplegables(context.Context) (map[string][]string, error) {
	return nil, nil
}

type stubSnapshotRepo struct {
	payload []byte
	saved   [][]byte
}

func (s *stubSnapshotRepo) Guardar(_ context.Context, payload []byte) error {
	s.saved = append(s.saved, payload)
	return nil
}

func (s *stubSnapshotRepo) Ultimo(context.Context) ([]byte, time.Time, error) {
	return s.payload, time.Now(), nil
}

func catalogoConMarca(marca string) *model.Catalogo {
	return &model.Catalogo{
		Cortes: []model.Corte{
			{ID: 1, Categoria: "Autos", Marca: marca, Modelo: "X", AnoDesde: 2020},
		},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLoaderInstalaElResultado(t *testing.T) {
	repo := &stubCatalogoRepo{fetch: func(context.Context) (*model.Catalogo, error) {
		return catalogoConMarca("Toyota"), nil
	}}
	loader := NewLoader(repo, nil, 0)

	_, ok := loader.Current()
	assert.False(t, ok, "no debe haber índice antes de la primera carga")

	idx, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, idx.Todos(), 1)

	actual, ok := loader.Current()
	require.True(t, ok)
	assert.Same(t, idx, actual)
}

func TestLoaderUltimaSolicitudGana(t *testing.T) {
	entrada := make(chan struct{})
	salida := make(chan struct{})
	primera := true

	repo := &stubCatalogoRepo{fetch: func(context.Context) (*model.Catalogo, error) {
		if primera {
			primera = false
			close(entrada)
			<-salida
			return catalogoConMarca("Vieja"), nil
		}
		return catalogoConMarca("Nueva"), nil
	}}
	loader := NewLoader(repo, nil, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = loader.Load(context.Background())
	}()

	// Wait until the first fetch is in flight, then request a newer load.
	<-entrada
	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	// The stale fetch completes afterwards and must be discarded.
	close(salida)
	<-done

	idx, ok := loader.Current()
	require.True(t, ok)
	require.Len(t, idx.Todos(), 1)
	assert.Equal(t, "Nueva", idx.Todos()[0].Marca)
}

func TestLoaderSirveSnapshotEnArranqueFrio(t *testing.T) {
	payload, err := json.Marshal(catalogoConMarca("Desde Snapshot"))
	require.NoError(t, err)

	repo := &stubCatalogoRepo{fetch: func(context.Context) (*model.Catalogo, error) {
		return nil, apierror.Fetch("servicio caído", errors.New("timeout"))
	}}
	snap := &stubSnapshotRepo{payload: payload}
	loader := NewLoader(repo, snap, 0)

	idx, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, idx.Todos(), 1)
	assert.Equal(t, "Desde Snapshot", idx.Todos()[0].Marca)
}

func TestLoaderSinSnapshotPropagaElError(t *testing.T) {
	fetchErr := apierror.Fetch("servicio caído", nil)
	repo := &stubCatalogoRepo{fetch: func(context.Context) (*model.Catalogo, error) {
		return nil, fetchErr
	}}
	loader := NewLoader(repo, &stubSnapshotRepo{}, 0)

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, apierror.KindFetch, apierror.KindOf(err))

	_, ok := loader.Current()
	assert.False(t, ok)
}

func TestLoaderPersisteSnapshotTrasCargaExitosa(t *testing.T) {
	repo := &stubCatalogoRepo{fetch: func(context.Context) (*model.Catalogo, error) {
		return catalogoConMarca("Toyota"), nil
	}}
	snap := &stubSnapshotRepo{}
	loader := NewLoader(repo, snap, 0)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.saved, 1)

	var guardado model.Catalogo
	require.NoError(t, json.Unmarshal(snap.saved[0], &guardado))
	assert.Equal(t, "Toyota", guardado.Cortes[0].Marca)
}

// rpcEnLatas replays one canned getCatalogData body through the real
// repository, so the load → index → search path runs end to end.
type rpcEnLatas string

func (r rpcEnLatas) Call(_ context.Context, action string, _, out any) error {
	if action != "getCatalogData" {
		return apierror.Fetch("acción inesperada: "+action, nil)
	}
	return json.Unmarshal([]byte(r), out)
}

func TestCargaIndexadoYBusquedaDeIdaYVuelta(t *testing.T) {
	body := rpcEnLatas(`{
		"status": "success",
		"data": {
			"cortes": [
				{"id": 1, "categoria": "Autos", "marca": "Toyota", "modelo": "Corolla", "anoGeneracion": "2018-2022", "tipoEncendido": "Llave", "tipoCorte": "Bomba"}
			],
			"logos": []
		}
	}`)
	loader := NewLoader(repository.NewCatalogoRepository(body), nil, 0)

	idx, err := loader.Load(context.Background())
	require.NoError(t, err)

	// A cut fetched and indexed must be findable by its exact model string.
	hits := idx.Buscar("Corolla")
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].ID)
}

func TestLoaderConIndiceCargadoNoUsaSnapshot(t *testing.T) {
	falla := false
	repo := &stubCatalogoRepo{fetch: func(context.Context) (*model.Catalogo, error) {
		if falla {
			return nil, apierror.Fetch("servicio caído", nil)
		}
		return catalogoConMarca("Toyota"), nil
	}}
	snap := &stubSnapshotRepo{}
	loader := NewLoader(repo, snap, 0)

	_, err := loader.Load(context.Background())
	require.NoError(t, err)

	// A refresh failure keeps serving the already-installed index.
	falla = true
	_, err = loader.Load(context.Background())
	require.Error(t, err)

	idx, ok := loader.Current()
	require.True(t, ok)
	assert.Equal(t, "Toyota", idx.Todos()[0].Marca)
}
