// Package resolver implements vehicle identity matching: given partial
// attributes of a vehicle about to be registered, find the existing vehicles
// it plausibly is, so technicians extend an existing entry instead of
// creating a duplicate.
package resolver

import (
	"strings"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
)

// Fuente supplies the flat cut list the resolver scans. *catalog.Index
// satisfies it.
type Fuente interface {
	Todos() []model.Corte
}

// Candidato is the identity a technician typed into the verify form.
type Candidato struct {
	Marca         string
	Modelo        string
	Ano           int
	TipoEncendido string
}

type Resolver struct {
	fuente Fuente
}

func New(fuente Fuente) *Resolver { return &Resolver{fuente: fuente} }

// FindMatches applies a three-stage AND filter, not fuzzy scoring:
//
//  1. brand and model equal, case-insensitively;
//  2. the candidate year inside the cut's [desde, hasta] range, or equal to
//     an open-ended model's starting year;
//  3. ignition type equal, case-insensitively — a hard filter, never a
//     scoring factor.
//
// Matching rows are grouped into distinct vehicles by identity tuple,
// first-seen order. An empty result means the vehicle is safe to create.
// Merging two distinct vehicles costs far more than a technician
// double-checking, so there is deliberately no partial-credit matching.
func (r *Resolver) FindMatches(c Candidato) ([]model.Vehiculo, error) {
	if err := validarCandidato(c); err != nil {
		return nil, err
	}

	var (
		vehiculos []model.Vehiculo
		posicion  = make(map[string]int)
	)
	for _, corte := range r.fuente.Todos() {
		if !igualdadSuave(corte.Marca, c.Marca) || !igualdadSuave(corte.Modelo, c.Modelo) {
			continue
		}
		if !corte.CubreAno(c.Ano) {
			continue
		}
		if !igualdadSuave(corte.TipoEncendido, c.TipoEncendido) {
			continue
		}

		clave := corte.Identidad().Clave()
		if pos, ok := posicion[clave]; ok {
			vehiculos[pos].Cortes = append(vehiculos[pos].Cortes, corte)
			continue
		}
		posicion[clave] = len(vehiculos)
		vehiculos = append(vehiculos, model.Vehiculo{
			Identidad: corte.Identidad(),
			Cortes:    []model.Corte{corte},
		})
	}
	return vehiculos, nil
}

func validarCandidato(c Candidato) error {
	switch {
	case strings.TrimSpace(c.Marca) == "":
		return apierror.Validation("La marca es obligatoria para verificar el vehículo")
	case strings.TrimSpace(c.Modelo) == "":
		return apierror.Validation("El modelo es obligatorio para verificar el vehículo")
	case c.Ano <= 0:
		return apierror.Validation("El año es obligatorio para verificar el vehículo")
	case strings.TrimSpace(c.TipoEncendido) == "":
		return apierror.Validation("El tipo de encendido es obligatorio para verificar el vehículo")
	}
	return nil
}

func igualdadSuave(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
