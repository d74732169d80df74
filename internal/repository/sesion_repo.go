package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// SesionRepository resolves session tokens and user rows from the remote
// ActiveSessions / Users sheets. Lookups are read-only: sessions are created
// and invalidated by the external auth collaborator.
//
// Every authorized request needs a token lookup, so results are cached in
// Redis under a short TTL — long enough to absorb request bursts, short
// enough that a revoked session dies within a minute.
type SesionRepository interface {
	// FindSesion returns (nil, nil) when no active row carries the token.
	FindSesion(ctx context.Context, token string) (*model.Sesion, error)
	// FindUsuario returns (nil, nil) when the id is unknown.
	FindUsuario(ctx context.Context, userID string) (*model.Usuario, error)
	ListUsuarios(ctx context.Context) ([]model.Usuario, error)
	ValidateSession(ctx context.Context, userID, token string) (bool, error)
}

type sesionRepo struct {
	rpc Caller
	rdb *redis.Client
	ttl time.Duration
}

func NewSesionRepository(rpc Caller, rdb *redis.Client, cacheTTL time.Duration) SesionRepository {
	return &sesionRepo{rpc: rpc, rdb: rdb, ttl: cacheTTL}
}

const (
	sesionCachePrefix  = "sesion:"
	usuarioCachePrefix = "usuario:"
)

type rawUsuario struct {
	ID             string `json:"id"`
	Username       string `json:"nombreUsuario"`
	NombreCompleto string `json:"nombreCompleto"`
	Rol            string `json:"rol"`
}

func (r *sesionRepo) FindSesion(ctx context.Context, token string) (*model.Sesion, error) {
	cacheKey := sesionCachePrefix + token
	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var s model.Sesion
			if json.Unmarshal(cached, &s) == nil {
				return &s, nil
			}
		}
	}

	var resp struct {
		Sessions []model.Sesion `json:"sessions"`
	}
	if err := r.rpc.Call(ctx, "getActiveSessions", nil, &resp); err != nil {
		return nil, err
	}

	// First matching row wins; the auth collaborator enforces token
	// uniqueness at session creation.
	for i := range resp.Sessions {
		if resp.Sessions[i].Token == token {
			r.cachear(ctx, cacheKey, &resp.Sessions[i])
			return &resp.Sessions[i], nil
		}
	}
	return nil, nil
}

func (r *sesionRepo) FindUsuario(ctx context.Context, userID string) (*model.Usuario, error) {
	cacheKey := usuarioCachePrefix + userID
	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var u model.Usuario
			if json.Unmarshal(cached, &u) == nil {
				return &u, nil
			}
		}
	}

	usuarios, err := r.ListUsuarios(ctx)
	if err != nil {
		return nil, err
	}
	for i := range usuarios {
		if usuarios[i].ID == userID {
			r.cachear(ctx, cacheKey, &usuarios[i])
			return &usuarios[i], nil
		}
	}
	return nil, nil
}

func (r *sesionRepo) ListUsuarios(ctx context.Context) ([]model.Usuario, error) {
	var resp struct {
		Users []rawUsuario `json:"users"`
	}
	if err := r.rpc.Call(ctx, "getUsers", nil, &resp); err != nil {
		return nil, err
	}

	usuarios := make([]model.Usuario, 0, len(resp.Users))
	for _, raw := range resp.Users {
		rol, ok := model.ParseRol(raw.Rol)
		if !ok {
			// Unknown role strings must not slip through as implicit grants.
			log.Warn().Str("user_id", raw.ID).Str("rol", raw.Rol).
				Msg("usuario con rol desconocido omitido")
			continue
		}
		usuarios = append(usuarios, model.Usuario{
			ID:             raw.ID,
			Username:       raw.Username,
			NombreCompleto: raw.NombreCompleto,
			Rol:            rol,
		})
	}
	return usuarios, nil
}

func (r *sesionRepo) ValidateSession(ctx context.Context, userID, token string) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	payload := map[string]string{"userId": userID, "sessionToken": token}
	if err := r.rpc.Call(ctx, "validateSession", payload, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// cachear stores a lookup result — best effort, cache failures are invisible
// to callers.
func (r *sesionRepo) cachear(ctx context.Context, key string, v any) {
	if r.rdb == nil {
		return
	}
	if b, err := json.Marshal(v); err == nil {
		_ = r.rdb.Set(ctx, key, b, r.ttl).Err()
	}
}
