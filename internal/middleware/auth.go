package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
	"github.com/infogpstech/GPSpedia2.0/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	UsuarioKey = "usuario"
	TokenKey   = "sesion_token"
)

// SessionAuth resuelve el token Bearer contra el directorio de sesiones y
// deja el usuario autenticado y su token en el contexto de Gin.
func SessionAuth(authz *session.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)

		usuario, err := authz.Authorize(c.Request.Context(), token, nil)
		if err != nil {
			var apiErr *apierror.Error
			if errors.As(err, &apiErr) {
				c.AbortWithStatusJSON(apierror.HTTPStatus(err), apierror.New(apiErr.Message))
				return
			}
			c.AbortWithStatusJSON(apierror.HTTPStatus(err), apierror.New("No se pudo validar la sesión"))
			return
		}

		c.Set(UsuarioKey, usuario)
		c.Set(TokenKey, token)
		c.Next()
	}
}

// RequireRol rechaza la petición si el rol del usuario no pertenece al conjunto.
func RequireRol(permitidos model.RolSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario := GetUsuario(c)
		if usuario == nil || !permitidos.Contains(usuario.Rol) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetUsuario recupera el usuario autenticado dejado por SessionAuth.
func GetUsuario(c *gin.Context) *model.Usuario {
	v, ok := c.Get(UsuarioKey)
	if !ok {
		return nil
	}
	usuario, _ := v.(*model.Usuario)
	return usuario
}

// ExtractToken devuelve el token de sesión del llamador: el valor dejado por
// SessionAuth, o los encabezados crudos cuando el middleware no corrió. El
// Bearer de Authorization tiene precedencia sobre X-Session-Token.
func ExtractToken(c *gin.Context) string {
	if v, ok := c.Get(TokenKey); ok {
		if token, ok := v.(string); ok {
			return token
		}
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.GetHeader("X-Session-Token")
}
