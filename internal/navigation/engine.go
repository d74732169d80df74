// Package navigation drives the browsing cursor over the catalog hierarchy.
// One Engine exists per browser session; it is single-threaded by design and
// every transition is a total function of (current view, stack, event) — no
// partially updated view is ever observable.
package navigation

import (
	"sort"
	"strings"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
)

// Nivel enumerates the view levels of the hierarchy plus the search branch.
type Nivel string

const (
	NivelRaiz      Nivel = "categorias"
	NivelCategoria Nivel = "marcas"
	NivelMarca     Nivel = "modelos"
	NivelModelo    Nivel = "cortes"
	NivelDetalle   Nivel = "detalle"
	NivelBusqueda  Nivel = "busqueda"
)

// MarcaResumen is one brand node, decorated with its logo when one matches.
type MarcaResumen struct {
	Nombre string `json:"nombre"`
	Logo   string `json:"logo,omitempty"`
}

// Vista is the single current view the presentation layer renders. Only the
// fields relevant to its Nivel are populated.
type Vista struct {
	Nivel     Nivel  `json:"nivel"`
	Categoria string `json:"categoria,omitempty"`
	Marca     string `json:"marca,omitempty"`
	Modelo    string `json:"modelo,omitempty"`
	// Busqueda carries the active query so the UI can label the view
	// "resultados para: X" instead of a normal brand listing.
	Busqueda   string                     `json:"busqueda,omitempty"`
	Categorias []catalog.CategoriaResumen `json:"categorias,omitempty"`
	Marcas     []MarcaResumen             `json:"marcas,omitempty"`
	Modelos    []string                   `json:"modelos,omitempty"`
	Cortes     []model.Corte              `json:"cortes,omitempty"`
	Corte      *model.Corte               `json:"corte,omitempty"`
}

// Engine is the per-session cursor. The back stack holds previously shown
// views; Atras pops one, and popping past the root is a no-op.
type Engine struct {
	idx    *catalog.Index
	actual Vista
	pila   []Vista
	// filtrados holds the active search hits; selections made inside a
	// search-derived view narrow this set instead of the full index.
	filtrados []model.Corte
}

func NewEngine(idx *catalog.Index) *Engine {
	e := &Engine{idx: idx}
	e.actual = e.vistaRaiz()
	return e
}

// Indice reports which catalog snapshot this engine was built over, so the
// registry can discard engines after a reload.
func (e *Engine) Indice() *catalog.Index { return e.idx }

// Vista returns the current view.
func (e *Engine) Vista() Vista { return e.actual }

func (e *Engine) vistaRaiz() Vista {
	return Vista{Nivel: NivelRaiz, Categorias: e.idx.Categorias()}
}

// empujar installs a new view, pushing the previous one onto the back stack.
func (e *Engine) empujar(v Vista) Vista {
	e.pila = append(e.pila, e.actual)
	e.actual = v
	return v
}

// Atras pops one level; at the root it stays put.
func (e *Engine) Atras() Vista {
	if len(e.pila) == 0 {
		return e.actual
	}
	e.actual = e.pila[len(e.pila)-1]
	e.pila = e.pila[:len(e.pila)-1]
	if e.actual.Nivel != NivelBusqueda && !e.enRamaBusqueda() {
		e.filtrados = nil
	}
	return e.actual
}

// SeleccionarCategoria moves Root → Category.
func (e *Engine) SeleccionarCategoria(categoria string) (Vista, error) {
	marcas := e.idx.Marcas(categoria)
	if len(marcas) == 0 {
		return e.actual, apierror.Validation("Categoría desconocida: " + categoria)
	}
	return e.empujar(Vista{
		Nivel:     NivelCategoria,
		Categoria: categoria,
		Marcas:    e.decorarMarcas(marcas),
	}), nil
}

// SeleccionarMarca moves Category → Brand. Inside a search branch the model
// list is narrowed to the matching cuts.
func (e *Engine) SeleccionarMarca(marca string) (Vista, error) {
	if e.enRamaBusqueda() {
		modelos := modelosDe(e.filtrados, marca)
		if len(modelos) == 0 {
			return e.actual, apierror.Validation("Marca sin resultados: " + marca)
		}
		return e.empujar(Vista{
			Nivel:    NivelMarca,
			Marca:    marca,
			Busqueda: e.busquedaActiva(),
			Modelos:  modelos,
		}), nil
	}

	modelos := e.idx.Modelos(e.actual.Categoria, marca)
	if len(modelos) == 0 {
		return e.actual, apierror.Validation("Marca desconocida: " + marca)
	}
	return e.empujar(Vista{
		Nivel:     NivelMarca,
		Categoria: e.actual.Categoria,
		Marca:     marca,
		Modelos:   modelos,
	}), nil
}

// SeleccionarModelo moves Brand → Model (the cut list leaf).
func (e *Engine) SeleccionarModelo(modelo string) (Vista, error) {
	var cortes []model.Corte
	if e.enRamaBusqueda() {
		for _, c := range e.filtrados {
			if c.Marca == e.actual.Marca && c.Modelo == modelo {
				cortes = append(cortes, c)
			}
		}
	} else {
		cortes = e.idx.Cortes(e.actual.Categoria, e.actual.Marca, modelo)
	}
	if len(cortes) == 0 {
		return e.actual, apierror.Validation("Modelo desconocido: " + modelo)
	}
	return e.empujar(Vista{
		Nivel:     NivelModelo,
		Categoria: e.actual.Categoria,
		Marca:     e.actual.Marca,
		Modelo:    modelo,
		Busqueda:  e.busquedaActiva(),
		Cortes:    cortes,
	}), nil
}

// SeleccionarCorte moves Model → CutDetail.
func (e *Engine) SeleccionarCorte(id int) (Vista, error) {
	corte, ok := e.idx.CortePorID(id)
	if !ok {
		return e.actual, apierror.Validation("Corte desconocido")
	}
	return e.empujar(Vista{
		Nivel:     NivelDetalle,
		Categoria: corte.Categoria,
		Marca:     corte.Marca,
		Modelo:    corte.Modelo,
		Corte:     corte,
	}), nil
}

// Buscar computes the search hits and re-enters the hierarchy at the brand
// level, populated only with matching brands. Clearing the query returns the
// cursor to the root and resets the back stack — search is an excursion, not
// a branch of the normal path.
func (e *Engine) Buscar(consulta string) Vista {
	if strings.TrimSpace(consulta) == "" {
		e.filtrados = nil
		e.pila = nil
		e.actual = e.vistaRaiz()
		return e.actual
	}

	e.filtrados = e.idx.Buscar(consulta)
	marcas := make(map[string]bool)
	for _, c := range e.filtrados {
		marcas[c.Marca] = true
	}
	nombres := make([]string, 0, len(marcas))
	for m := range marcas {
		nombres = append(nombres, m)
	}
	sort.Strings(nombres)

	return e.empujar(Vista{
		Nivel:    NivelBusqueda,
		Busqueda: consulta,
		Marcas:   e.decorarMarcas(nombres),
	})
}

func (e *Engine) decorarMarcas(nombres []string) []MarcaResumen {
	out := make([]MarcaResumen, 0, len(nombres))
	for _, nombre := range nombres {
		resumen := MarcaResumen{Nombre: nombre}
		if logo, ok := e.idx.LogoDe(nombre); ok {
			resumen.Logo = logo.Imagen
		}
		out = append(out, resumen)
	}
	return out
}

// enRamaBusqueda reports whether the current view descends from a search.
func (e *Engine) enRamaBusqueda() bool {
	return e.actual.Nivel == NivelBusqueda || (e.actual.Busqueda != "" && e.filtrados != nil)
}

func (e *Engine) busquedaActiva() string {
	if e.actual.Nivel == NivelBusqueda || e.actual.Busqueda != "" {
		return e.actual.Busqueda
	}
	return ""
}

func modelosDe(cortes []model.Corte, marca string) []string {
	vistos := make(map[string]bool)
	var out []string
	for _, c := range cortes {
		if c.Marca == marca && !vistos[c.Modelo] {
			vistos[c.Modelo] = true
			out = append(out, c.Modelo)
		}
	}
	sort.Strings(out)
	return out
}
