package handler

import (
	"net/http"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/dto"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"

	"github.com/gin-gonic/gin"
)

type CatalogoHandler struct {
	loader *catalog.Loader
	repo   repository.CatalogoRepository
}

func NewCatalogoHandler(loader *catalog.Loader, repo repository.CatalogoRepository) *CatalogoHandler {
	return &CatalogoHandler{loader: loader, repo: repo}
}

func (h *CatalogoHandler) indice(c *gin.Context) (*catalog.Index, bool) {
	idx, ok := h.loader.Current()
	if !ok {
		var err error
		idx, err = h.loader.Load(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return nil, false
		}
	}
	return idx, true
}

// Recientes GET /v1/catalogo/recientes
func (h *CatalogoHandler) Recientes(c *gin.Context) {
	idx, ok := h.indice(c)
	if !ok {
		return
	}

	recientes := idx.Recientes()
	out := make([]dto.RecienteResponse, 0, len(recientes))
	for _, corte := range recientes {
		r := dto.RecienteResponse{CorteResponse: dto.NewCorteResponse(corte)}
		if logo, ok := idx.LogoDe(corte.Marca); ok {
			r.Logo = logo.Imagen
		}
		out = append(out, r)
	}
	c.JSON(http.StatusOK, out)
}

// Desplegables GET /v1/catalogo/desplegables
func (h *CatalogoHandler) Desplegables(c *gin.Context) {
	dropdowns, err := h.repo.FetchDesplegables(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DesplegablesResponse{
		Categorias:     dropdowns["categorias"],
		TiposEncendido: dropdowns["tiposEncendido"],
		TiposCorte:     dropdowns["tiposCorte"],
		Ubicaciones:    dropdowns["ubicaciones"],
	})
}

// Refrescar POST /v1/catalogo/refrescar
func (h *CatalogoHandler) Refrescar(c *gin.Context) {
	idx, err := h.loader.Load(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RefrescarResponse{
		Cortes:     len(idx.Todos()),
		Categorias: len(idx.Categorias()),
	})
}
