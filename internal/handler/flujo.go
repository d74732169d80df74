package handler

import (
	"net/http"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/dto"
	"github.com/infogpstech/GPSpedia2.0/internal/middleware"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"
	"github.com/infogpstech/GPSpedia2.0/internal/resolver"
	"github.com/infogpstech/GPSpedia2.0/internal/workflow"

	"github.com/gin-gonic/gin"
)

// FlujoHandler drives the multi-stage add/update form. The form itself lives
// in the workflow package; this layer only binds requests and renders the
// resulting stage.
type FlujoHandler struct {
	registro  *workflow.Registry
	loader    *catalog.Loader
	escritura repository.EscrituraRepository
}

func NewFlujoHandler(registro *workflow.Registry, loader *catalog.Loader, escritura repository.EscrituraRepository) *FlujoHandler {
	return &FlujoHandler{registro: registro, loader: loader, escritura: escritura}
}

func (h *FlujoHandler) flujo(c *gin.Context) (*workflow.Flujo, bool) {
	idx, ok := h.loader.Current()
	if !ok {
		var err error
		idx, err = h.loader.Load(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return nil, false
		}
	}

	usuario := middleware.GetUsuario(c)
	colaborador := ""
	if usuario != nil {
		colaborador = usuario.NombreCompleto
	}
	return h.registro.Obtener(middleware.ExtractToken(c), resolver.New(idx), h.escritura, colaborador), true
}

func estadoResponse(f *workflow.Flujo) dto.FlujoEstadoResponse {
	resp := dto.FlujoEstadoResponse{
		Estado:      string(f.Estado()),
		Advertencia: f.Advertencia(),
		VehicleID:   f.VehicleID(),
	}
	for _, v := range f.Coincidencias() {
		resp.Coincidencias = append(resp.Coincidencias, dto.VehiculoResponse{
			Marca:         v.Identidad.Marca,
			Modelo:        v.Identidad.Modelo,
			AnoDesde:      v.Identidad.AnoDesde,
			TipoEncendido: v.Identidad.TipoEncendido,
			Cortes:        dto.NewCorteResponses(v.Cortes),
		})
	}
	return resp
}

// Estado GET /v1/flujo/estado
func (h *FlujoHandler) Estado(c *gin.Context) {
	f, ok := h.flujo(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, estadoResponse(f))
}

// Verificar POST /v1/flujo/verificar
func (h *FlujoHandler) Verificar(c *gin.Context) {
	var req dto.VerificarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f, ok := h.flujo(c)
	if !ok {
		return
	}

	err := f.Verificar(resolver.Candidato{
		Marca:         req.Marca,
		Modelo:        req.Modelo,
		Ano:           req.Ano,
		TipoEncendido: req.TipoEncendido,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estadoResponse(f))
}

// Decision POST /v1/flujo/decision
func (h *FlujoHandler) Decision(c *gin.Context) {
	var req dto.DecisionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f, ok := h.flujo(c)
	if !ok {
		return
	}

	var err error
	switch req.Accion {
	case "usar_existente":
		err = f.UsarExistente(req.Indice)
	case "agregar_nuevo":
		err = f.AgregarComoNuevo()
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estadoResponse(f))
}

// Corte POST /v1/flujo/corte
func (h *FlujoHandler) Corte(c *gin.Context) {
	var req dto.CorteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f, ok := h.flujo(c)
	if !ok {
		return
	}

	err := f.RegistrarCorte(c.Request.Context(), workflow.DatosCorte{
		Categoria:          req.Categoria,
		TipoCorte:          req.TipoCorte,
		ConfiguracionRelay: req.ConfiguracionRelay,
		Ubicacion:          req.Ubicacion,
		ColorCable:         req.ColorCable,
		Imagen:             req.Imagen,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estadoResponse(f))
}

// Informacion POST /v1/flujo/informacion
func (h *FlujoHandler) Informacion(c *gin.Context) {
	var req dto.InformacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	f, ok := h.flujo(c)
	if !ok {
		return
	}

	if err := f.AgregarInformacion(c.Request.Context(), req.Notas); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estadoResponse(f))
}

// Reiniciar POST /v1/flujo/reiniciar
func (h *FlujoHandler) Reiniciar(c *gin.Context) {
	h.registro.Reiniciar(middleware.ExtractToken(c))
	c.JSON(http.StatusOK, gin.H{"estado": string(workflow.EstadoVerificar)})
}
