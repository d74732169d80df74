package catalog

import (
	"testing"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anoPtr(v int) *int { return &v }

func catalogoDePrueba() *model.Catalogo {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &model.Catalogo{
		Cortes: []model.Corte{
			{ID: 1, Categoria: "Autos", Marca: "Toyota", Modelo: "Corolla", AnoDesde: 2018, AnoHasta: anoPtr(2022), TipoEncendido: "Llave", TipoCorte: "Bomba", Timestamp: base},
			{ID: 2, Categoria: "Autos", Marca: "Toyota", Modelo: "Corolla", AnoDesde: 2014, AnoHasta: anoPtr(2017), TipoEncendido: "Llave", TipoCorte: "Ignición", Timestamp: base.Add(time.Hour)},
			{ID: 3, Categoria: "Autos", Marca: "Chevrolet", Modelo: "Onix", AnoDesde: 2020, TipoEncendido: "Botón", TipoCorte: "Bomba", Versiones: "LT, Premier", Timestamp: base.Add(2 * time.Hour)},
			{ID: 4, Categoria: "Motos", Marca: "Honda", Modelo: "CB190", AnoDesde: 2019, TipoEncendido: "Llave", TipoCorte: "CDI", Timestamp: base.Add(3 * time.Hour)},
			{ID: 5, Categoria: "Camiones", Marca: "Volvo", Modelo: "FH", AnoDesde: 2015, AnoHasta: anoPtr(2020), TipoEncendido: "Llave", TipoCorte: "Bomba", Timestamp: base.Add(4 * time.Hour)},
		},
		Logos: []model.Logo{
			{Marca: "Toyota", Imagen: "https://cdn.example.com/toyota.png"},
			{Marca: "honda", Imagen: "https://cdn.example.com/honda.png"},
		},
	}
}

// ── Hierarchy ─────────────────────────────────────────────────────────────────

func TestIndexContieneTodosLosCortesUnaVez(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)

	vistos := make(map[int]int)
	for _, cat := range idx.Categorias() {
		for _, marca := range idx.Marcas(cat.Nombre) {
			for _, modelo := range idx.Modelos(cat.Nombre, marca) {
				for _, corte := range idx.Cortes(cat.Nombre, marca, modelo) {
					vistos[corte.ID]++
				}
			}
		}
	}

	assert.Len(t, vistos, 5)
	for id, veces := range vistos {
		assert.Equal(t, 1, veces, "corte %d aparece más de una vez", id)
	}
}

func TestIndexCortesOrdenadosPorAno(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)

	cortes := idx.Cortes("Autos", "Toyota", "Corolla")
	require.Len(t, cortes, 2)
	assert.Equal(t, 2014, cortes[0].AnoDesde)
	assert.Equal(t, 2018, cortes[1].AnoDesde)
}

func TestIndexCategoriasAlfabeticasSinHint(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)

	var nombres []string
	for _, c := range idx.Categorias() {
		nombres = append(nombres, c.Nombre)
	}
	assert.Equal(t, []string{"Autos", "Camiones", "Motos"}, nombres)
}

func TestIndexHintDeCategoriasPrimero(t *testing.T) {
	cat := catalogoDePrueba()
	// Hinted categories lead, unknown hints are skipped, the rest stay
	// alphabetical.
	cat.CategoriasOrdenadas = []string{"Motos", "Barcos", "Autos"}
	idx := New(cat, 0)

	var nombres []string
	for _, c := range idx.Categorias() {
		nombres = append(nombres, c.Nombre)
	}
	assert.Equal(t, []string{"Motos", "Autos", "Camiones"}, nombres)
}

func TestIndexCortePorID(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)

	corte, ok := idx.CortePorID(3)
	require.True(t, ok)
	assert.Equal(t, "Onix", corte.Modelo)

	_, ok = idx.CortePorID(99)
	assert.False(t, ok)
}

// ── Logos ─────────────────────────────────────────────────────────────────────

func TestLogosCaseInsensitive(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)

	logo, ok := idx.LogoDe("TOYOTA")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/toyota.png", logo.Imagen)

	logo, ok = idx.LogoDe("Honda")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/honda.png", logo.Imagen)

	_, ok = idx.LogoDe("Chevrolet")
	assert.False(t, ok)
}

func TestLogosDuplicadosUltimoGana(t *testing.T) {
	cat := catalogoDePrueba()
	cat.Logos = append(cat.Logos, model.Logo{Marca: " Toyota ", Imagen: "https://cdn.example.com/toyota-v2.png"})
	idx := New(cat, 0)

	logo, ok := idx.LogoDe("toyota")
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/toyota-v2.png", logo.Imagen)
}

// ── Búsqueda ──────────────────────────────────────────────────────────────────

func TestBuscarSubcadenaCaseInsensitive(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)

	hits := idx.Buscar("coro")
	require.Len(t, hits, 2)

	hits = idx.Buscar("COROLLA")
	assert.Len(t, hits, 2)

	// Substring match over versions as well
	hits = idx.Buscar("premier")
	require.Len(t, hits, 1)
	assert.Equal(t, "Onix", hits[0].Modelo)

	assert.Empty(t, idx.Buscar("inexistente"))
	assert.Empty(t, idx.Buscar("   "))
}

func TestBuscarPorMarcaDevuelveTodosSusCortes(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)

	hits := idx.Buscar("toyota")
	assert.Len(t, hits, 2)
	for _, c := range hits {
		assert.Equal(t, "Toyota", c.Marca)
	}
}

// ── Recientes ─────────────────────────────────────────────────────────────────

func TestRecientesOrdenYVentana(t *testing.T) {
	idx := New(catalogoDePrueba(), 3)

	recientes := idx.Recientes()
	require.Len(t, recientes, 3)
	assert.Equal(t, 5, recientes[0].ID)
	assert.Equal(t, 4, recientes[1].ID)
	assert.Equal(t, 3, recientes[2].ID)
}

func TestRecientesEmpateDeTimestampDesempataPorID(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cat := &model.Catalogo{
		Cortes: []model.Corte{
			{ID: 10, Categoria: "Autos", Marca: "A", Modelo: "X", AnoDesde: 2020, Timestamp: ts},
			{ID: 30, Categoria: "Autos", Marca: "A", Modelo: "Y", AnoDesde: 2020, Timestamp: ts},
			{ID: 20, Categoria: "Autos", Marca: "A", Modelo: "Z", AnoDesde: 2020, Timestamp: ts},
		},
	}
	idx := New(cat, 0)

	recientes := idx.Recientes()
	require.Len(t, recientes, 3)
	assert.Equal(t, 30, recientes[0].ID)
	assert.Equal(t, 20, recientes[1].ID)
	assert.Equal(t, 10, recientes[2].ID)
}

func TestRecientesVentanaPorDefecto(t *testing.T) {
	idx := New(catalogoDePrueba(), 0)
	assert.Len(t, idx.Recientes(), DefaultRecientesVentana)
}
