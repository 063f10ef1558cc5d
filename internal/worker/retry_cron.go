package worker

// retry_cron.go
// Background goroutine that periodically re-attempts delivery of emails that
// landed in the dead letter queue. Uses the Circuit Breaker to avoid
// hammering a downed SMTP relay. Entries that exceed the retry cap are moved
// to a parked list for manual inspection.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
	maxDLQAttempts    = 5

	ParkedPrefix = "dlq:parked:"
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	Mailer *infra.Mailer
	CB     *infra.CircuitBreaker
	RDB    *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// re-attempts dead-lettered email deliveries through the circuit breaker.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed relay
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	dlqKey := DLQPrefix + QueueEmail
	for i := 0; i < retryBatchSize; i++ {
		// Check CB state before each delivery — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // queue drained or redis unavailable
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("retry_cron: malformed DLQ entry dropped")
			continue
		}

		var payload EmailJobPayload
		if err := json.Unmarshal(entry.Payload, &payload); err != nil {
			log.Error().Err(err).Msg("retry_cron: malformed email payload dropped")
			continue
		}

		cbErr := cfg.CB.Execute(func() error {
			return cfg.Mailer.Send(payload.ToEmail, payload.Subject, payload.Body)
		})
		if cbErr == nil {
			log.Info().
				Str("to", payload.ToEmail).
				Int("attempts", entry.Attempts).
				Msg("retry_cron: dead-lettered email delivered")
			continue
		}

		entry.Attempts++
		entry.Reason = cbErr.Error()
		entry.FailedAt = time.Now().UTC().Format(time.RFC3339)
		data, err := json.Marshal(entry)
		if err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to re-marshal DLQ entry")
			continue
		}

		if entry.Attempts >= maxDLQAttempts {
			if err := cfg.RDB.LPush(ctx, ParkedPrefix+QueueEmail, data).Err(); err != nil {
				log.Error().Err(err).Msg("retry_cron: failed to park entry")
			}
			log.Error().
				Str("to", payload.ToEmail).
				Int("attempts", entry.Attempts).
				Msg("retry_cron: retry cap reached, entry parked")
			continue
		}

		if err := cfg.RDB.LPush(ctx, dlqKey, data).Err(); err != nil {
			log.Error().Err(err).Msg("retry_cron: failed to requeue entry")
		}
	}
}
