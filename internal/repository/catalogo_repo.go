package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/model"

	"github.com/rs/zerolog/log"
)

// CatalogoRepository is the catalog store adapter: it fetches the raw sheet
// rows and normalizes them into typed records. No business logic — caching
// and indexing belong to the catalog package.
type CatalogoRepository interface {
	FetchCatalog(ctx context.Context) (*model.Catalogo, error)
	FetchDesplegables(ctx context.Context) (map[string][]string, error)
}

type catalogoRepo struct {
	rpc Caller
}

func NewCatalogoRepository(rpc Caller) CatalogoRepository {
	return &catalogoRepo{rpc: rpc}
}

// rawCorte mirrors one row of the Cortes sheet as the catalog service emits
// it. Years arrive as the raw "anoGeneracion" cell ("2018-2022" or "2020")
// and timestamps as RFC 3339 strings; both are normalized here.
type rawCorte struct {
	ID                 int      `json:"id"`
	Categoria          string   `json:"categoria"`
	Marca              string   `json:"marca"`
	Modelo             string   `json:"modelo"`
	Versiones          string   `json:"versionesAplicables"`
	AnoGeneracion      string   `json:"anoGeneracion"`
	TipoEncendido      string   `json:"tipoEncendido"`
	TipoCorte          string   `json:"tipoCorte"`
	ConfiguracionRelay string   `json:"configuracionRelay"`
	Ubicacion          string   `json:"ubicacion"`
	ColorCable         string   `json:"colorCable"`
	Imagen             string   `json:"imagen"`
	NotasAdicionales   []string `json:"notasAdicionales"`
	Colaborador        string   `json:"colaborador"`
	Timestamp          string   `json:"timestamp"`
}

type rawLogo struct {
	Marca  string `json:"marca"`
	Imagen string `json:"imagen"`
}

type catalogResponse struct {
	Data struct {
		Cortes              []rawCorte `json:"cortes"`
		Tutoriales          []any      `json:"tutoriales"`
		Relay               []any      `json:"relay"`
		Logos               []rawLogo  `json:"logos"`
		CategoriasOrdenadas []string   `json:"sortedCategories"`
	} `json:"data"`
}

func (r *catalogoRepo) FetchCatalog(ctx context.Context) (*model.Catalogo, error) {
	var resp catalogResponse
	if err := r.rpc.Call(ctx, "getCatalogData", nil, &resp); err != nil {
		return nil, err
	}

	cat := &model.Catalogo{
		CategoriasOrdenadas: resp.Data.CategoriasOrdenadas,
	}
	descartados := 0
	for i := range resp.Data.Cortes {
		corte, ok := normalizarCorte(&resp.Data.Cortes[i])
		if !ok {
			descartados++
			continue
		}
		cat.Cortes = append(cat.Cortes, corte)
	}
	if descartados > 0 {
		// Incomplete rows are dropped, never fatal: a partial catalog must
		// still render.
		log.Warn().Int("descartados", descartados).Int("validos", len(cat.Cortes)).
			Msg("filas de cortes incompletas descartadas")
	}

	for _, l := range resp.Data.Logos {
		if strings.TrimSpace(l.Marca) == "" {
			continue
		}
		cat.Logos = append(cat.Logos, model.Logo{Marca: l.Marca, Imagen: l.Imagen})
	}
	return cat, nil
}

func (r *catalogoRepo) FetchDesplegables(ctx context.Context) (map[string][]string, error) {
	var resp struct {
		Dropdowns map[string][]string `json:"dropdowns"`
	}
	if err := r.rpc.Call(ctx, "getDropdownData", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Dropdowns, nil
}

// normalizarCorte maps a raw row into a typed Corte. Rows without the fields
// needed to place them in the hierarchy (categoria, marca, modelo) or with an
// unparseable year cell are rejected.
func normalizarCorte(raw *rawCorte) (model.Corte, bool) {
	if strings.TrimSpace(raw.Categoria) == "" ||
		strings.TrimSpace(raw.Marca) == "" ||
		strings.TrimSpace(raw.Modelo) == "" {
		return model.Corte{}, false
	}
	desde, hasta, ok := ParseRangoAnos(raw.AnoGeneracion)
	if !ok {
		return model.Corte{}, false
	}

	var ts time.Time
	if raw.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, raw.Timestamp); err == nil {
			ts = parsed
		}
	}

	return model.Corte{
		ID:                 raw.ID,
		Categoria:          strings.TrimSpace(raw.Categoria),
		Marca:              strings.TrimSpace(raw.Marca),
		Modelo:             strings.TrimSpace(raw.Modelo),
		Versiones:          strings.TrimSpace(raw.Versiones),
		AnoDesde:           desde,
		AnoHasta:           hasta,
		TipoEncendido:      strings.TrimSpace(raw.TipoEncendido),
		TipoCorte:          strings.TrimSpace(raw.TipoCorte),
		ConfiguracionRelay: strings.TrimSpace(raw.ConfiguracionRelay),
		Ubicacion:          strings.TrimSpace(raw.Ubicacion),
		ColorCable:         strings.TrimSpace(raw.ColorCable),
		Imagen:             strings.TrimSpace(raw.Imagen),
		NotasAdicionales:   raw.NotasAdicionales,
		Colaborador:        strings.TrimSpace(raw.Colaborador),
		Timestamp:          ts,
	}, true
}

// ParseRangoAnos interprets the sheet's year cell: "2018-2022" is a closed
// range, a single "2020" is an open-ended model (no final year yet).
func ParseRangoAnos(celda string) (desde int, hasta *int, ok bool) {
	celda = strings.TrimSpace(celda)
	if celda == "" {
		return 0, nil, false
	}
	if strings.Contains(celda, "-") {
		partes := strings.SplitN(celda, "-", 2)
		d, err1 := strconv.Atoi(strings.TrimSpace(partes[0]))
		h, err2 := strconv.Atoi(strings.TrimSpace(partes[1]))
		if err1 != nil || err2 != nil || h < d {
			return 0, nil, false
		}
		return d, &h, true
	}
	d, err := strconv.Atoi(celda)
	if err != nil {
		return 0, nil, false
	}
	return d, nil, true
}
