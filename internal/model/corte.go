package model

import (
	"fmt"
	"strings"
	"time"
)

// IdentidadVehiculo is the tuple that groups cuts belonging to the same
// physical vehicle configuration. A vehicle is never stored as its own row —
// it exists only as this derived grouping key.
type IdentidadVehiculo struct {
	Marca         string `json:"marca"`
	Modelo        string `json:"modelo"`
	AnoDesde      int    `json:"anoDesde"`
	TipoEncendido string `json:"tipoEncendido"`
}

// Clave returns the case-normalized grouping key for the identity tuple.
func (v IdentidadVehiculo) Clave() string {
	return fmt.Sprintf("%s|%s|%d|%s",
		strings.ToLower(strings.TrimSpace(v.Marca)),
		strings.ToLower(strings.TrimSpace(v.Modelo)),
		v.AnoDesde,
		strings.ToLower(strings.TrimSpace(v.TipoEncendido)))
}

// Corte is one documented wire-cutting / relay point for disabling a
// vehicle's ignition — the catalog's core content unit. Several Cortes may
// share one IdentidadVehiculo (one row per distinct cut point).
type Corte struct {
	ID        int    `json:"id"`
	Categoria string `json:"categoria"`
	Marca     string `json:"marca"`
	Modelo    string `json:"modelo"`
	// Versiones is the optional applicable-trims field ("versionesAplicables"
	// in the sheet); it participates in free-text search.
	Versiones     string `json:"versionesAplicables,omitempty"`
	AnoDesde      int    `json:"anoDesde"`
	AnoHasta      *int   `json:"anoHasta,omitempty"` // nil = open-ended model
	TipoEncendido string `json:"tipoEncendido"`

	TipoCorte          string   `json:"tipoCorte"`
	ConfiguracionRelay string   `json:"configuracionRelay,omitempty"`
	Ubicacion          string   `json:"ubicacion,omitempty"`
	ColorCable         string   `json:"colorCable,omitempty"`
	Imagen             string   `json:"imagen,omitempty"`
	NotasAdicionales   []string `json:"notasAdicionales,omitempty"`
	Colaborador        string   `json:"colaborador,omitempty"`

	// Timestamp orders the "últimos agregados" view (newest first).
	Timestamp time.Time `json:"timestamp"`
}

// Identidad derives the vehicle grouping key for this cut.
func (c *Corte) Identidad() IdentidadVehiculo {
	return IdentidadVehiculo{
		Marca:         c.Marca,
		Modelo:        c.Modelo,
		AnoDesde:      c.AnoDesde,
		TipoEncendido: c.TipoEncendido,
	}
}

// CubreAno reports whether the given year falls inside the cut's year range.
// An open-ended model (AnoHasta nil) only matches its exact starting year.
func (c *Corte) CubreAno(ano int) bool {
	if c.AnoHasta == nil {
		return ano == c.AnoDesde
	}
	return ano >= c.AnoDesde && ano <= *c.AnoHasta
}

// Vehiculo is the derived set of cuts sharing one identity tuple. It is only
// ever produced as a resolver result, never persisted.
type Vehiculo struct {
	Identidad IdentidadVehiculo `json:"identidad"`
	Cortes    []Corte           `json:"cortes"`
}
