package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/infogpstech/GPSpedia2.0/internal/model"
	"github.com/infogpstech/GPSpedia2.0/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	sesiones map[string]*model.Sesion
	usuarios map[string]*model.Usuario
}

func (s *stubDirectory) FindSesion(_ context.Context, token string) (*model.Sesion, error) {
	return s.sesiones[token], nil
}

func (s *stubDirectory) FindUsuario(_ context.Context, userID string) (*model.Usuario, error) {
	return s.usuarios[userID], nil
}

func routerDePrueba() *gin.Engine {
	gin.SetMode(gin.TestMode)
	authz := session.NewAuthorizer(&stubDirectory{
		sesiones: map[string]*model.Sesion{
			"tok-tech": {UserID: "u-tech", Token: "tok-tech"},
			"tok-sup":  {UserID: "u-sup", Token: "tok-sup"},
		},
		usuarios: map[string]*model.Usuario{
			"u-tech": {ID: "u-tech", Username: "tech", Rol: model.RolTecnico},
			"u-sup":  {ID: "u-sup", Username: "sup", Rol: model.RolSupervisor},
		},
	})

	r := gin.New()
	r.Use(SessionAuth(authz))
	r.GET("/abierto", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"usuario": GetUsuario(c).Username})
	})
	r.GET("/gestion", RequireRol(model.RolesGestionUsuarios), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/token", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": ExtractToken(c)})
	})
	return r
}

func hacerRequest(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionAuthTokenValido(t *testing.T) {
	w := hacerRequest(t, routerDePrueba(), "/abierto", "tok-tech")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tech")
}

func TestSessionAuthSinToken(t *testing.T) {
	w := hacerRequest(t, routerDePrueba(), "/abierto", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token de sesión")
}

func TestSessionAuthTokenInvalido(t *testing.T) {
	w := hacerRequest(t, routerDePrueba(), "/abierto", "tok-falso")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "inválida o expirada")
}

func TestSessionAuthTokenPorHeaderAlterno(t *testing.T) {
	r := routerDePrueba()
	req := httptest.NewRequest(http.MethodGet, "/abierto", nil)
	req.Header.Set("X-Session-Token", "tok-tech")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuthDejaElTokenEnElContexto(t *testing.T) {
	w := hacerRequest(t, routerDePrueba(), "/token", "tok-tech")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tok-tech")
}

func TestExtractTokenPrecedencia(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Bearer gana sobre el header alterno.
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer tok-bearer")
	c.Request.Header.Set("X-Session-Token", "tok-alterno")
	assert.Equal(t, "tok-bearer", ExtractToken(c))

	// El valor dejado en el contexto gana sobre ambos headers.
	c.Set(TokenKey, "tok-contexto")
	assert.Equal(t, "tok-contexto", ExtractToken(c))
}

func TestRequireRolPermitido(t *testing.T) {
	w := hacerRequest(t, routerDePrueba(), "/gestion", "tok-sup")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolInsuficiente(t *testing.T) {
	w := hacerRequest(t, routerDePrueba(), "/gestion", "tok-tech")
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Permisos insuficientes")
}
