package worker

// refresh_cron.go
// Background goroutine that periodically reloads the catalog from the
// remote sheet so long-lived sessions see newly registered cuts without
// an explicit refresh. Skips ticks while the circuit breaker is open.

import (
	"context"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/catalog"
	"github.com/infogpstech/GPSpedia2.0/internal/infra"

	"github.com/rs/zerolog/log"
)

// RefreshCronConfig holds the dependencies for the refresh goroutine.
type RefreshCronConfig struct {
	Loader   *catalog.Loader
	CB       *infra.CircuitBreaker
	Interval time.Duration
}

// StartRefreshCron launches a goroutine that reloads the catalog every
// Interval. An Interval of zero disables the cron. It respects the
// context for graceful shutdown.
func StartRefreshCron(ctx context.Context, cfg RefreshCronConfig) {
	if cfg.Interval <= 0 {
		log.Info().Msg("refresh_cron: deshabilitado")
		return
	}

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("refresh_cron: iniciado")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("refresh_cron: apagando")
				return
			case <-ticker.C:
				processRefresh(ctx, cfg)
			}
		}
	}()
}

func processRefresh(ctx context.Context, cfg RefreshCronConfig) {
	// If CB is open the remote service is already known to be down —
	// don't burn an attempt just to fail.
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("refresh_cron: circuit breaker abierto, tick omitido")
		return
	}

	inicio := time.Now()
	idx, err := cfg.Loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("refresh_cron: recarga de catálogo fallida")
		return
	}

	log.Info().
		Int("cortes", len(idx.Todos())).
		Dur("elapsed", time.Since(inicio)).
		Msg("refresh_cron: catálogo recargado")
}
