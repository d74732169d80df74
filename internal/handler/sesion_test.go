package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/infogpstech/GPSpedia2.0/internal/dto"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
	"github.com/infogpstech/GPSpedia2.0/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSesionRepo struct {
	sesiones map[string]*model.Sesion
	usuarios map[string]*model.Usuario
	validos  map[string]bool // "userID|token"
}

func (s *stubSesionRepo) FindSesion(_ context.Context, token string) (*model.Sesion, error) {
	return s.sesiones[token], nil
}

func (s *stubSesionRepo) FindUsuario(_ context.Context, userID string) (*model.Usuario, error) {
	return s.usuarios[userID], nil
}

func (s *stubSesionRepo) ListUsuarios(context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range s.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (s *stubSesionRepo) ValidateSession(_ context.Context, userID, token string) (bool, error) {
	return s.validos[userID+"|"+token], nil
}

func routerSesion() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := &stubSesionRepo{
		sesiones: map[string]*model.Sesion{
			"tok-activo-12345": {UserID: "u-1", Token: "tok-activo-12345"},
		},
		usuarios: map[string]*model.Usuario{
			"u-1": {ID: "u-1", Username: "maria", NombreCompleto: "María Pérez", Rol: model.RolSupervisor},
		},
		validos: map[string]bool{"u-1|tok-activo-12345": true},
	}
	h := NewSesionHandler(session.NewAuthorizer(repo), repo)

	r := gin.New()
	r.POST("/v1/sesion/validar", h.Validar)
	return r
}

func TestValidarTokenActivoResuelveUsuario(t *testing.T) {
	w := doJSON(t, routerSesion(), http.MethodPost, "/v1/sesion/validar", `{"token": "tok-activo-12345"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SesionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valida)
	require.NotNil(t, resp.Usuario)
	assert.Equal(t, "maria", resp.Usuario.Username)
	assert.Equal(t, "Supervisor", resp.Usuario.Rol)
}

func TestValidarTokenInvalidoEsRespuestaNegativa(t *testing.T) {
	w := doJSON(t, routerSesion(), http.MethodPost, "/v1/sesion/validar", `{"token": "tok-vencido-999"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SesionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valida)
	assert.Nil(t, resp.Usuario)
}

func TestValidarConUserIDUsaLaAccionRemota(t *testing.T) {
	w := doJSON(t, routerSesion(), http.MethodPost, "/v1/sesion/validar", `{"token": "tok-activo-12345", "user_id": "u-1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SesionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valida)
	// The fast path answers yes/no only, no user payload.
	assert.Nil(t, resp.Usuario)
}

func TestValidarSinToken(t *testing.T) {
	w := doJSON(t, routerSesion(), http.MethodPost, "/v1/sesion/validar", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
