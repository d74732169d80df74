package handler

import (
	"net/http"

	"github.com/infogpstech/GPSpedia2.0/internal/dto"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"

	"github.com/gin-gonic/gin"
)

type UsuariosHandler struct {
	sesiones repository.SesionRepository
}

func NewUsuariosHandler(sesiones repository.SesionRepository) *UsuariosHandler {
	return &UsuariosHandler{sesiones: sesiones}
}

// Listar GET /v1/usuarios — restricted to user-management roles by the router.
func (h *UsuariosHandler) Listar(c *gin.Context) {
	usuarios, err := h.sesiones.ListUsuarios(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, dto.UsuarioResponse{
			ID:             u.ID,
			Username:       u.Username,
			NombreCompleto: u.NombreCompleto,
			Rol:            string(u.Rol),
		})
	}
	c.JSON(http.StatusOK, out)
}
