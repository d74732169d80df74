package model

import "strings"

// Rol is the closed set of privilege levels. Role checks are always set
// membership against an explicit RolSet constant — never string comparison at
// call sites, so a typo cannot silently grant or deny access.
type Rol string

const (
	RolTecnico       Rol = "Tecnico"
	RolSupervisor    Rol = "Supervisor"
	RolGefe          Rol = "Gefe"
	RolDesarrollador Rol = "Desarrollador"
)

// ParseRol normalizes a raw role string from the Users sheet.
// Returns false for anything outside the closed set.
func ParseRol(raw string) (Rol, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tecnico":
		return RolTecnico, true
	case "supervisor":
		return RolSupervisor, true
	case "gefe":
		return RolGefe, true
	case "desarrollador":
		return RolDesarrollador, true
	default:
		return "", false
	}
}

// RolSet is an immutable-by-convention set of allowed roles for one action.
type RolSet map[Rol]struct{}

func NewRolSet(roles ...Rol) RolSet {
	s := make(RolSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	return s
}

func (s RolSet) Contains(r Rol) bool {
	_, ok := s[r]
	return ok
}

// Per-action role sets. Declared here so every gated endpoint references the
// same constant instead of re-listing roles inline.
var (
	// RolesLectura: any authenticated user may browse the catalog.
	RolesLectura = NewRolSet(RolTecnico, RolSupervisor, RolGefe, RolDesarrollador)
	// RolesEscrituraCatalogo: all technician levels may register cuts.
	RolesEscrituraCatalogo = NewRolSet(RolTecnico, RolSupervisor, RolGefe, RolDesarrollador)
	// RolesGestionUsuarios: listing users excludes Tecnico.
	RolesGestionUsuarios = NewRolSet(RolSupervisor, RolGefe, RolDesarrollador)
)
