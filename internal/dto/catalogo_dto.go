package dto

import (
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/model"
)

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CorteResponse struct {
	ID                 int       `json:"id"`
	Categoria          string    `json:"categoria"`
	Marca              string    `json:"marca"`
	Modelo             string    `json:"modelo"`
	Versiones          string    `json:"versiones,omitempty"`
	AnoDesde           int       `json:"ano_desde"`
	AnoHasta           *int      `json:"ano_hasta,omitempty"`
	TipoEncendido      string    `json:"tipo_encendido"`
	TipoCorte          string    `json:"tipo_corte"`
	ConfiguracionRelay string    `json:"configuracion_relay,omitempty"`
	Ubicacion          string    `json:"ubicacion"`
	ColorCable         string    `json:"color_cable,omitempty"`
	Imagen             string    `json:"imagen,omitempty"`
	NotasAdicionales   []string  `json:"notas_adicionales,omitempty"`
	Colaborador        string    `json:"colaborador,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
}

type RecienteResponse struct {
	CorteResponse
	Logo string `json:"logo,omitempty"`
}

type DesplegablesResponse struct {
	Categorias     []string `json:"categorias"`
	TiposEncendido []string `json:"tipos_encendido"`
	TiposCorte     []string `json:"tipos_corte"`
	Ubicaciones    []string `json:"ubicaciones"`
}

type RefrescarResponse struct {
	Cortes     int `json:"cortes"`
	Categorias int `json:"categorias"`
}

// NewCorteResponse maps a model.Corte to its wire representation.
func NewCorteResponse(c model.Corte) CorteResponse {
	return CorteResponse{
		ID:                 c.ID,
		Categoria:          c.Categoria,
		Marca:              c.Marca,
		Modelo:             c.Modelo,
		Versiones:          c.Versiones,
		AnoDesde:           c.AnoDesde,
		AnoHasta:           c.AnoHasta,
		TipoEncendido:      c.TipoEncendido,
		TipoCorte:          c.TipoCorte,
		ConfiguracionRelay: c.ConfiguracionRelay,
		Ubicacion:          c.Ubicacion,
		ColorCable:         c.ColorCable,
		Imagen:             c.Imagen,
		NotasAdicionales:   c.NotasAdicionales,
		Colaborador:        c.Colaborador,
		Timestamp:          c.Timestamp,
	}
}

func NewCorteResponses(cortes []model.Corte) []CorteResponse {
	out := make([]CorteResponse, 0, len(cortes))
	for _, c := range cortes {
		out = append(out, NewCorteResponse(c))
	}
	return out
}
