package handler

import (
	"net/http"
	"strconv"

	"github.com/infogpstech/GPSpedia2.0/internal/apierror"
	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/infra"

	"github.com/gin-gonic/gin"
)

type CortesHandler struct {
	loader      *catalog.Loader
	storagePath string
}

func NewCortesHandler(loader *catalog.Loader, storagePath string) *CortesHandler {
	return &CortesHandler{loader: loader, storagePath: storagePath}
}

// Ficha GET /v1/cortes/:id/ficha — printable cut sheet for field technicians.
func (h *CortesHandler) Ficha(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}

	idx, ok := h.loader.Current()
	if !ok {
		idx, err = h.loader.Load(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
	}

	corte, ok := idx.CortePorID(id)
	if !ok {
		c.JSON(http.StatusNotFound, apierror.New("Corte no encontrado"))
		return
	}

	path, err := infra.GenerateFichaPDF(corte, h.storagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, "ficha_"+c.Param("id")+".pdf")
}
