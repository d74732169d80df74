package router

import (
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/config"
	"github.com/infogpstech/GPSpedia2.0/internal/handler"
	"github.com/infogpstech/GPSpedia2.0/internal/infra"
	"github.com/infogpstech/GPSpedia2.0/internal/middleware"
	"github.com/infogpstech/GPSpedia2.0/internal/model"
	"github.com/infogpstech/GPSpedia2.0/internal/navigation"
	"github.com/infogpstech/GPSpedia2.0/internal/repository"
	"github.com/infogpstech/GPSpedia2.0/internal/session"
	"github.com/infogpstech/GPSpedia2.0/internal/worker"
	"github.com/infogpstech/GPSpedia2.0/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Catalog/Navigation/Workflow ← Repository ← SheetsClient/Redis
func New(cfg *config.Config, rdb *redis.Client, sheets *infra.SheetsClient, loader *catalog.Loader) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	catalogoRepo := repository.NewCatalogoRepository(sheets)
	escrituraRepo := repository.NewEscrituraRepository(sheets)
	sesionRepo := repository.NewSesionRepository(sheets, rdb, time.Duration(cfg.SesionCacheTTLSeconds)*time.Second)
	feedbackRepo := repository.NewFeedbackRepository(sheets)

	// ── Core ─────────────────────────────────────────────────────────────────
	authz := session.NewAuthorizer(sesionRepo)
	navRegistry := navigation.NewRegistry()
	flujoRegistry := workflow.NewRegistry()

	// Worker dispatcher — injected into handlers that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	sesionH := handler.NewSesionHandler(authz, sesionRepo)
	catalogoH := handler.NewCatalogoHandler(loader, catalogoRepo)
	navH := handler.NewNavegacionHandler(navRegistry, loader)
	flujoH := handler.NewFlujoHandler(flujoRegistry, loader, escrituraRepo)
	usuariosH := handler.NewUsuariosHandler(sesionRepo)
	feedbackH := handler.NewFeedbackHandler(feedbackRepo, dispatcher)
	cortesH := handler.NewCortesHandler(loader, cfg.PDFStoragePath)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(rdb, sheets, loader))
	r.POST("/v1/sesion/validar", sesionH.Validar)

	// Protected routes
	authMW := middleware.SessionAuth(authz)
	v1 := r.Group("/v1", authMW)
	{
		// Reading the catalog is open to every authenticated role
		cat := v1.Group("/catalogo", middleware.RequireRol(model.RolesLectura))
		{
			cat.GET("/recientes", catalogoH.Recientes)
			cat.GET("/desplegables", catalogoH.Desplegables)
			cat.POST("/refrescar", catalogoH.Refrescar)
		}

		nav := v1.Group("/nav", middleware.RequireRol(model.RolesLectura))
		{
			nav.GET("/vista", navH.Vista)
			nav.POST("/seleccionar", navH.Seleccionar)
			nav.POST("/atras", navH.Atras)
			nav.POST("/buscar", navH.Buscar)
		}

		v1.GET("/cortes/:id/ficha", middleware.RequireRol(model.RolesLectura), cortesH.Ficha)

		// Registering cuts is open to every role; the form enforces its own
		// stage ordering
		flujo := v1.Group("/flujo", middleware.RequireRol(model.RolesEscrituraCatalogo))
		{
			flujo.GET("/estado", flujoH.Estado)
			flujo.POST("/verificar", flujoH.Verificar)
			flujo.POST("/decision", flujoH.Decision)
			flujo.POST("/corte", flujoH.Corte)
			flujo.POST("/informacion", flujoH.Informacion)
			flujo.POST("/reiniciar", flujoH.Reiniciar)
		}

		feedback := v1.Group("/feedback", middleware.RequireRol(model.RolesLectura))
		{
			feedback.POST("/like", feedbackH.Like)
			feedback.POST("/reportar", feedbackH.Reportar)
		}

		// User listing is restricted to management roles
		v1.GET("/usuarios", middleware.RequireRol(model.RolesGestionUsuarios), usuariosH.Listar)
	}

	return r
}
