package handler

import (
	"fmt"
	"net/http"

	"github.com/infogpstech/GPSpedia2.0/internal/dto"
	"github.com/infogpstech/GPSpedia2.0/internal/middleware"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"
	"github.com/infogpstech/GPSpedia2.0/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type FeedbackHandler struct {
	repo       repository.FeedbackRepository
	dispatcher *worker.Dispatcher
}

func NewFeedbackHandler(repo repository.FeedbackRepository, dispatcher *worker.Dispatcher) *FeedbackHandler {
	return &FeedbackHandler{repo: repo, dispatcher: dispatcher}
}

// Like POST /v1/feedback/like
func (h *FeedbackHandler) Like(c *gin.Context) {
	var req dto.LikeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	usuario := middleware.GetUsuario(c)
	if err := h.repo.RecordLike(c.Request.Context(), req.CorteID, usuario.Username); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reportar POST /v1/feedback/reportar
func (h *FeedbackHandler) Reportar(c *gin.Context) {
	var req dto.ReportarRequest
	if !bindAndValidate(c, &req) {
		return
	}

	usuario := middleware.GetUsuario(c)
	err := h.repo.ReportProblem(c.Request.Context(), repository.Reporte{
		CorteID:     req.CorteID,
		Descripcion: req.Descripcion,
		Usuario:     usuario.Username,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	// The email notification is best effort: the report is already recorded
	// upstream, a full queue must not fail the request.
	job := worker.ReporteJob{
		Asunto: fmt.Sprintf("Reporte de problema: corte #%d", req.CorteID),
		Cuerpo: fmt.Sprintf("Usuario: %s\nCorte: %d\n\n%s", usuario.Username, req.CorteID, req.Descripcion),
	}
	if err := h.dispatcher.EnqueueReporte(c.Request.Context(), job); err != nil {
		log.Warn().Err(err).Int("corte_id", req.CorteID).
			Msg("no se pudo encolar la notificación del reporte")
	}

	c.JSON(http.StatusAccepted, gin.H{"ok": true})
}
