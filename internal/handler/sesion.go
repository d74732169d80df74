package handler

import (
	"net/http"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/dto"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"
	"github.com/infogpstech/GPSpedia2.0/internal/session"

	"github.com/gin-gonic/gin"
)

type SesionHandler struct {
	authz    *session.Authorizer
	sesiones repository.SesionRepository
}

func NewSesionHandler(authz *session.Authorizer, sesiones repository.SesionRepository) *SesionHandler {
	return &SesionHandler{authz: authz, sesiones: sesiones}
}

// Validar POST /v1/sesion/validar — public. Lets a client confirm a stored
// token is still active before rendering the app shell; an invalid token is a
// negative answer, not an error.
//
// With a user_id in the request the cheap remote validateSession action
// answers directly; without one the token is resolved through the session
// directory, which also returns the user.
func (h *SesionHandler) Validar(c *gin.Context) {
	var req dto.ValidarSesionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if req.UserID != "" {
		valida, err := h.sesiones.ValidateSession(c.Request.Context(), req.UserID, req.Token)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SesionResponse{Valida: valida})
		return
	}

	usuario, err := h.authz.Authorize(c.Request.Context(), req.Token, nil)
	if err != nil {
		if apierror.KindOf(err) == apierror.KindUnauthenticated {
			c.JSON(http.StatusOK, dto.SesionResponse{Valida: false})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SesionResponse{
		Valida: true,
		Usuario: &dto.UsuarioResponse{
			ID:             usuario.ID,
			Username:       usuario.Username,
			NombreCompleto: usuario.NombreCompleto,
			Rol:            string(usuario.Rol),
		},
	})
}
