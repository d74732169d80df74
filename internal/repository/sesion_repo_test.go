package repository

import (
	"context"
	"testing"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisDePrueba(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func sesionesJSON() string {
	return `{
		"status": "success",
		"sessions": [
			{"userId": "u-1", "token": "tok-activo", "timestamp": "2025-03-01T10:00:00Z"},
			{"userId": "u-2", "token": "tok-otro", "timestamp": "2025-03-01T11:00:00Z"}
		]
	}`
}

func usuariosJSON() string {
	return `{
		"status": "success",
		"users": [
			{"id": "u-1", "nombreUsuario": "maria", "nombreCompleto": "María Pérez", "rol": "Supervisor"},
			{"id": "u-2", "nombreUsuario": "juan", "nombreCompleto": "Juan Gómez", "rol": "Tecnico"},
			{"id": "u-3", "nombreUsuario": "raro", "nombreCompleto": "Rol Raro", "rol": "SuperAdmin"}
		]
	}`
}

func TestFindSesionResuelveYCachea(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["getActiveSessions"] = sesionesJSON()
	repo := NewSesionRepository(rpc, redisDePrueba(t), time.Minute)

	sesion, err := repo.FindSesion(context.Background(), "tok-activo")
	require.NoError(t, err)
	require.NotNil(t, sesion)
	assert.Equal(t, "u-1", sesion.UserID)

	// Second lookup is served from the cache, no extra remote call.
	_, err = repo.FindSesion(context.Background(), "tok-activo")
	require.NoError(t, err)
	assert.Len(t, rpc.llamadas, 1)
}

func TestFindSesionTokenDesconocido(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["getActiveSessions"] = sesionesJSON()
	repo := NewSesionRepository(rpc, redisDePrueba(t), time.Minute)

	sesion, err := repo.FindSesion(context.Background(), "tok-falso")
	require.NoError(t, err)
	assert.Nil(t, sesion)
}

func TestFindSesionSinRedisFunciona(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["getActiveSessions"] = sesionesJSON()
	repo := NewSesionRepository(rpc, nil, time.Minute)

	sesion, err := repo.FindSesion(context.Background(), "tok-otro")
	require.NoError(t, err)
	require.NotNil(t, sesion)
	assert.Equal(t, "u-2", sesion.UserID)
}

func TestListUsuariosOmiteRolesDesconocidos(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["getUsers"] = usuariosJSON()
	repo := NewSesionRepository(rpc, redisDePrueba(t), time.Minute)

	usuarios, err := repo.ListUsuarios(context.Background())
	require.NoError(t, err)
	require.Len(t, usuarios, 2)
	assert.Equal(t, model.RolSupervisor, usuarios[0].Rol)
	assert.Equal(t, model.RolTecnico, usuarios[1].Rol)
}

func TestFindUsuarioResuelveYCachea(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["getUsers"] = usuariosJSON()
	repo := NewSesionRepository(rpc, redisDePrueba(t), time.Minute)

	usuario, err := repo.FindUsuario(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, usuario)
	assert.Equal(t, "maria", usuario.Username)

	_, err = repo.FindUsuario(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Len(t, rpc.llamadas, 1)
}

func TestFindUsuarioDesconocido(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["getUsers"] = usuariosJSON()
	repo := NewSesionRepository(rpc, redisDePrueba(t), time.Minute)

	usuario, err := repo.FindUsuario(context.Background(), "u-99")
	require.NoError(t, err)
	assert.Nil(t, usuario)
}

func TestValidateSessionEnviaElPayload(t *testing.T) {
	rpc := newStubCaller()
	rpc.respuestas["validateSession"] = `{"status": "success", "valid": true}`
	repo := NewSesionRepository(rpc, nil, time.Minute)

	valido, err := repo.ValidateSession(context.Background(), "u-1", "tok-activo")
	require.NoError(t, err)
	assert.True(t, valido)

	payload, ok := rpc.payloads["validateSession"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "u-1", payload["userId"])
	assert.Equal(t, "tok-activo", payload["sessionToken"])
}
