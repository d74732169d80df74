package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health returns a JSON health check response.
// Checks Redis, the sheet-service circuit breaker and whether a catalog
// snapshot is loaded; never exposes credentials or internals.
func Health(rdb *redis.Client, sheets *infra.SheetsClient, loader *catalog.Loader) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		catalogStatus := "loaded"
		if _, ok := loader.Current(); !ok {
			catalogStatus = "empty"
		}

		status := http.StatusOK
		if redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"redis":    redisStatus,
			"catalogo": catalogStatus,
			"sheets":   sheets.Breaker().State().String(),
		})
	}
}
