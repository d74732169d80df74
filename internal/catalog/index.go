// Package catalog builds and owns the in-memory indices over the cut records:
// the category → brand → model hierarchy, the brand logo directory, the
// free-text search view and the "últimos agregados" window. An Index is an
// immutable snapshot of one fetch; a fresh fetch produces a fresh Index.
package catalog

import (
	"sort"
	"strings"

	"github.com/infogpstech/GPSpedia2.0/internal/model"
)

// DefaultRecientesVentana caps the "últimos agregados" view.
const DefaultRecientesVentana = 4

// CategoriaResumen is one top-level navigation node.
type CategoriaResumen struct {
	Nombre string `json:"nombre"`
	Total  int    `json:"total"`
}

// Index holds every structure in final form; it is never mutated after New.
type Index struct {
	cortes     []model.Corte
	jerarquia  map[string]map[string]map[string][]model.Corte
	categorias []string
	logos      map[string]model.Logo
	recientes  []model.Corte
	porID      map[int]int // corte ID → position in cortes
}

// New builds all indices in one pass over the flat cut list.
func New(cat *model.Catalogo, ventanaRecientes int) *Index {
	if ventanaRecientes <= 0 {
		ventanaRecientes = DefaultRecientesVentana
	}

	idx := &Index{
		cortes:    cat.Cortes,
		jerarquia: make(map[string]map[string]map[string][]model.Corte),
		logos:     make(map[string]model.Logo, len(cat.Logos)),
		porID:     make(map[int]int, len(cat.Cortes)),
	}

	for i, c := range cat.Cortes {
		marcas, ok := idx.jerarquia[c.Categoria]
		if !ok {
			marcas = make(map[string]map[string][]model.Corte)
			idx.jerarquia[c.Categoria] = marcas
		}
		modelos, ok := marcas[c.Marca]
		if !ok {
			modelos = make(map[string][]model.Corte)
			marcas[c.Marca] = modelos
		}
		modelos[c.Modelo] = append(modelos[c.Modelo], c)
		idx.porID[c.ID] = i
	}

	// Leaves ordered by starting year, ties keep insertion order.
	for _, marcas := range idx.jerarquia {
		for _, modelos := range marcas {
			for modelo := range modelos {
				leaf := modelos[modelo]
				sort.SliceStable(leaf, func(a, b int) bool {
					return leaf[a].AnoDesde < leaf[b].AnoDesde
				})
			}
		}
	}

	idx.categorias = ordenCategorias(idx.jerarquia, cat.CategoriasOrdenadas)

	// Brand directory: case-insensitive key, last write wins on duplicates.
	for _, l := range cat.Logos {
		idx.logos[strings.ToLower(strings.TrimSpace(l.Marca))] = l
	}

	idx.recientes = ultimosAgregados(cat.Cortes, ventanaRecientes)
	return idx
}

// ordenCategorias applies the backend hint when present: hinted categories
// first (skipping ones absent from the data), remaining ones alphabetically.
// Without a hint the order is purely alphabetical.
func ordenCategorias(jerarquia map[string]map[string]map[string][]model.Corte, hint []string) []string {
	restantes := make(map[string]bool, len(jerarquia))
	for cat := range jerarquia {
		restantes[cat] = true
	}

	out := make([]string, 0, len(jerarquia))
	for _, cat := range hint {
		if restantes[cat] {
			out = append(out, cat)
			delete(restantes, cat)
		}
	}

	resto := make([]string, 0, len(restantes))
	for cat := range restantes {
		resto = append(resto, cat)
	}
	sort.Strings(resto)
	return append(out, resto...)
}

// ultimosAgregados sorts by timestamp descending then id descending; the
// stable sort preserves original order for fully tied rows.
func ultimosAgregados(cortes []model.Corte, ventana int) []model.Corte {
	recientes := make([]model.Corte, len(cortes))
	copy(recientes, cortes)
	sort.SliceStable(recientes, func(a, b int) bool {
		if !recientes[a].Timestamp.Equal(recientes[b].Timestamp) {
			return recientes[a].Timestamp.After(recientes[b].Timestamp)
		}
		return recientes[a].ID > recientes[b].ID
	})
	if len(recientes) > ventana {
		recientes = recientes[:ventana]
	}
	return recientes
}

// Todos returns the flat cut list in fetch order.
func (idx *Index) Todos() []model.Corte { return idx.cortes }

// Categorias returns the ordered top-level nodes with record counts.
func (idx *Index) Categorias() []CategoriaResumen {
	out := make([]CategoriaResumen, 0, len(idx.categorias))
	for _, cat := range idx.categorias {
		total := 0
		for _, modelos := range idx.jerarquia[cat] {
			for _, leaf := range modelos {
				total += len(leaf)
			}
		}
		out = append(out, CategoriaResumen{Nombre: cat, Total: total})
	}
	return out
}

// Marcas returns the brands of a category, alphabetically.
func (idx *Index) Marcas(categoria string) []string {
	marcas := idx.jerarquia[categoria]
	out := make([]string, 0, len(marcas))
	for m := range marcas {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Modelos returns the models of a brand within a category, alphabetically.
func (idx *Index) Modelos(categoria, marca string) []string {
	modelos := idx.jerarquia[categoria][marca]
	out := make([]string, 0, len(modelos))
	for m := range modelos {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Cortes returns the leaf cut list for a model (year-ascending).
func (idx *Index) Cortes(categoria, marca, modelo string) []model.Corte {
	return idx.jerarquia[categoria][marca][modelo]
}

// CortePorID looks a cut up by its row id.
func (idx *Index) CortePorID(id int) (*model.Corte, bool) {
	pos, ok := idx.porID[id]
	if !ok {
		return nil, false
	}
	return &idx.cortes[pos], true
}

// LogoDe returns the logo registered for a brand, case-insensitively.
func (idx *Index) LogoDe(marca string) (model.Logo, bool) {
	l, ok := idx.logos[strings.ToLower(strings.TrimSpace(marca))]
	return l, ok
}

// Buscar returns every cut whose lowercased "marca modelo versiones"
// concatenation contains the lowercased query as a substring. Grouping the
// hits back into brand-level views is the navigation engine's job.
func (idx *Index) Buscar(consulta string) []model.Corte {
	consulta = strings.ToLower(strings.TrimSpace(consulta))
	if consulta == "" {
		return nil
	}
	var out []model.Corte
	for _, c := range idx.cortes {
		objetivo := c.Marca + " " + c.Modelo
		if c.Versiones != "" {
			objetivo += " " + c.Versiones
		}
		if strings.Contains(strings.ToLower(objetivo), consulta) {
			out = append(out, c)
		}
	}
	return out
}

// Recientes returns the capped newest-first window.
func (idx *Index) Recientes() []model.Corte { return idx.recientes }
