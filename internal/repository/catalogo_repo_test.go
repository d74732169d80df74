package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Caller stub ───────────────────────────────────────────────────────────────

// stubCaller replays canned JSON bodies per action, recording every call.
type stubCaller struct {
	respuestas map[string]string
	llamadas   []string
	payloads   map[string]any
}

func newStubCaller() *stubCaller {
	return &stubCaller{respuestas: make(map[string]string), payloads: make(map[string]any)}
}

func (s *stubCaller) Call(_ context.Context, action string, payload, out any) error {
	s.llamadas = append(s.llamadas, action)
	s.payloads[action] = payload
	body, ok := s.respuestas[action]
	if !ok {
		return apierror.Fetch("acción sin respuesta preparada: "+action, nil)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

// ── FetchCatalog ──────────────────────────────────────────────────────────────

func TestFetchCatalogNormalizaFilas(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["getCatalogData"] = `{
		"status": "success",
		"data": {
			"cortes": [
				{"id": 1, "categoria": "Autos", "marca": " Toyota ", "modelo": "Corolla", "anoGeneracion": "2018-2022", "tipoEncendido": "Llave", "tipoCorte": "Bomba", "timestamp": "2025-03-01T10:00:00Z"},
				{"id": 2, "categoria": "Autos", "marca": "Chevrolet", "modelo": "Onix", "anoGeneracion": "2020", "tipoEncendido": "Botón", "tipoCorte": "Bomba"},
				{"id": 3, "categoria": "", "marca": "SinCategoria", "modelo": "X", "anoGeneracion": "2020"},
				{"id": 4, "categoria": "Autos", "marca": "MalAno", "modelo": "Y", "anoGeneracion": "hace poco"}
			],
			"logos": [
				{"marca": "Toyota", "imagen": "toyota.png"},
				{"marca": "  ", "imagen": "huerfano.png"}
			],
			"sortedCategories": ["Autos", "Motos"]
		}
	}`

	repo := NewCatalogoRepository(rpc)
	cat, err := repo.FetchCatalog(context.Background())
	require.NoError(t, err)

	// Incomplete rows (3 and 4) are dropped, the rest normalized.
	require.Len(t, cat.Cortes, 2)
	assert.Equal(t, "Toyota", cat.Cortes[0].Marca)
	assert.Equal(t, 2018, cat.Cortes[0].AnoDesde)
	require.NotNil(t, cat.Cortes[0].AnoHasta)
	assert.Equal(t, 2022, *cat.Cortes[0].AnoHasta)
	assert.Equal(t, 2025, cat.Cortes[0].Timestamp.Year())

	assert.Equal(t, 2020, cat.Cortes[1].AnoDesde)
	assert.Nil(t, cat.Cortes[1].AnoHasta)

	// Logos without a brand are skipped.
	require.Len(t, cat.Logos, 1)
	assert.Equal(t, "Toyota", cat.Logos[0].Marca)

	assert.Equal(t, []string{"Autos", "Motos"}, cat.CategoriasOrdenadas)
}

func TestFetchCatalogPropagaErrorDeTransporte(t *testing.T) {
	repo := NewCatalogoRepository(newStubCaller())

	_, err := repo.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.Equal(t, apierror.KindFetch, apierror.KindOf(err))
}

// ── ParseRangoAnos ────────────────────────────────────────────────────────────

func TestParseRangoAnos(t *testing.T) {
	desde, hasta, ok := ParseRangoAnos("2018-2022")
	require.True(t, ok)
	assert.Equal(t, 2018, desde)
	require.NotNil(t, hasta)
	assert.Equal(t, 2022, *hasta)

	desde, hasta, ok = ParseRangoAnos(" 2020 ")
	require.True(t, ok)
	assert.Equal(t, 2020, desde)
	assert.Nil(t, hasta)

	for _, celda := range []string{"", "abc", "2022-2018", "2020-"} {
		_, _, ok = ParseRangoAnos(celda)
		assert.False(t, ok, "celda %q no debe parsear", celda)
	}
}

// ── Escritura ─────────────────────────────────────────────────────────────────

func TestAddOrUpdateCutDevuelveVehicleID(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["addOrUpdateCut"] = `{"status": "success", "vehicleId": "veh-42"}`

	repo := NewEscrituraRepository(rpc)
	vehicleID, err := repo.AddOrUpdateCut(context.Background(), AltaCorte{
		Categoria:         "Autos",
		TipoCorte:         "Bomba",
		ClaveIdempotencia: "clave-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "veh-42", vehicleID)

	alta, ok := rpc.payloads["addOrUpdateCut"].(AltaCorte)
	require.True(t, ok)
	assert.Equal(t, "clave-1", alta.ClaveIdempotencia)
}
