package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/infogpstech/GPSpedia2.0/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAttempts = 3

// Pool consumes the notification queue. A failed job is re-enqueued up to
// maxAttempts, then parked in the dead letter queue for manual inspection.
type Pool struct {
	rdb           *redis.Client
	mailer        *infra.Mailer
	destinatarios []string
}

func NewPool(rdb *redis.Client, mailer *infra.Mailer, destinatarios []string) *Pool {
	return &Pool{rdb: rdb, mailer: mailer, destinatarios: destinatarios}
}

// Start launches numWorkers goroutines. Each blocks on BRPOP — zero CPU when
// idle — and exits when ctx is cancelled.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i)
	}
	log.Info().Int("workers", numWorkers).Msg("worker pool iniciado")
}

func (p *Pool) run(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker detenido")
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := p.rdb.BRPop(ctx, 5*time.Second, QueueNotificaciones).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("job indescifrable descartado")
		return
	}

	var err error
	switch job.Type {
	case "reporte":
		err = p.handleReporte(job.Payload)
	default:
		log.Warn().Str("type", job.Type).Msg("tipo de job desconocido")
		return
	}

	if err == nil {
		return
	}

	job.Attempts++
	if job.Attempts >= maxAttempts {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
		return
	}
	log.Warn().Str("type", job.Type).Int("attempts", job.Attempts).Err(err).
		Msg("job fallido, reintentando")
	if encoded, mErr := json.Marshal(job); mErr == nil {
		_ = p.rdb.LPush(ctx, queue, encoded).Err()
	}
}

func (p *Pool) handleReporte(payload json.RawMessage) error {
	var reporte ReporteJob
	if err := json.Unmarshal(payload, &reporte); err != nil {
		return err
	}
	return p.mailer.SendReporte(p.destinatarios, reporte.Asunto, reporte.Cuerpo)
}
