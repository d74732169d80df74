package handler

import (
	"net/http"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/dto"
	"github.com/infogpstech/GPSpedia2.0/internal/middleware"
	"github.com/infogpstech/GPSpedia2.0/internal/navigation"

	"github.com/gin-gonic/gin"
)

type NavegacionHandler struct {
	registro *navigation.Registry
	loader   *catalog.Loader
}

func NewNavegacionHandler(registro *navigation.Registry, loader *catalog.Loader) *NavegacionHandler {
	return &NavegacionHandler{registro: registro, loader: loader}
}

// engine resolves the session's navigation cursor over the loaded catalog,
// loading the catalog first if this is the first request after boot.
func (h *NavegacionHandler) engine(c *gin.Context) (*navigation.Engine, bool) {
	idx, ok := h.loader.Current()
	if !ok {
		var err error
		idx, err = h.loader.Load(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return nil, false
		}
	}
	return h.registro.Obtener(middleware.ExtractToken(c), idx), true
}

// Vista GET /v1/nav/vista
func (h *NavegacionHandler) Vista(c *gin.Context) {
	e, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, e.Vista())
}

// Seleccionar POST /v1/nav/seleccionar
func (h *NavegacionHandler) Seleccionar(c *gin.Context) {
	var req dto.SeleccionarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	e, ok := h.engine(c)
	if !ok {
		return
	}

	var (
		vista navigation.Vista
		err   error
	)
	switch req.Tipo {
	case "categoria":
		vista, err = e.SeleccionarCategoria(req.Valor)
	case "marca":
		vista, err = e.SeleccionarMarca(req.Valor)
	case "modelo":
		vista, err = e.SeleccionarModelo(req.Valor)
	case "corte":
		vista, err = e.SeleccionarCorte(req.CorteID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vista)
}

// Atras POST /v1/nav/atras
func (h *NavegacionHandler) Atras(c *gin.Context) {
	e, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, e.Atras())
}

// Buscar POST /v1/nav/buscar
func (h *NavegacionHandler) Buscar(c *gin.Context) {
	var req dto.BuscarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	e, ok := h.engine(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, e.Buscar(req.Termino))
}
