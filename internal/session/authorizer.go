// Package session decides, per request, who the caller is and whether their
// role allows the attempted action. The only source of truth for the role is
// the server-side session lookup — an earlier contract where the client
// declared its own role in the payload is superseded, since it allowed
// privilege escalation by a tampered client.
package session

import (
	"context"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
)

// Directory is the read-only view of the ActiveSessions and Users tables.
// repository.SesionRepository is the production implementation.
type Directory interface {
	FindSesion(ctx context.Context, token string) (*model.Sesion, error)
	FindUsuario(ctx context.Context, userID string) (*model.Usuario, error)
}

type Authorizer struct {
	dir Directory
}

func NewAuthorizer(dir Directory) *Authorizer { return &Authorizer{dir: dir} }

// Authorize resolves a session token to its user and checks the role against
// the allowed set. A nil or empty set means any authenticated user passes.
//
// Failures are typed: missing/unknown token and orphaned sessions are
// Unauthenticated, a resolved-but-insufficient role is Forbidden. Transport
// failures during the lookups pass through untouched.
func (a *Authorizer) Authorize(ctx context.Context, token string, permitidos model.RolSet) (*model.Usuario, error) {
	if token == "" {
		return nil, apierror.Unauthenticated("Falta el token de sesión")
	}

	sesion, err := a.dir.FindSesion(ctx, token)
	if err != nil {
		return nil, err
	}
	if sesion == nil {
		return nil, apierror.Unauthenticated("Sesión inválida o expirada")
	}

	usuario, err := a.dir.FindUsuario(ctx, sesion.UserID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, apierror.Unauthenticated("Usuario asociado no encontrado")
	}

	if len(permitidos) > 0 && !permitidos.Contains(usuario.Rol) {
		return nil, apierror.Forbidden("Permisos insuficientes")
	}
	return usuario, nil
}
