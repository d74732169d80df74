package model

import "time"

// Usuario is a row from the Users sheet. Passwords never reach this service;
// credential issuance (login) lives in the external auth collaborator.
type Usuario struct {
	ID             string `json:"id"`
	Username       string `json:"nombreUsuario"`
	NombreCompleto string `json:"nombreCompleto"`
	Rol            Rol    `json:"rol"`
}

// Sesion is a row from the ActiveSessions sheet binding a token to a user.
// Sessions are created by the external auth collaborator on login; this
// service only ever looks them up.
type Sesion struct {
	UserID string    `json:"userId"`
	Token  string    `json:"token"`
	Creada time.Time `json:"timestamp"`
}
