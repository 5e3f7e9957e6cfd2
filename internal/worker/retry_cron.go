package worker

// Background goroutine that re-enqueues failed jobs parked in the retry
// queue once their backoff has elapsed. Skips entire ticks while the circuit
// breaker is open to avoid hammering a downed SMTP server.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	RetryPrefix = "retry:"

	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryEntry parks a failed job together with its earliest next attempt time.
type RetryEntry struct {
	OriginalQueue string    `json:"original_queue"`
	Job           Job       `json:"job"`
	NextAttemptAt time.Time `json:"next_attempt_at"`
}

// ScheduleRetry parks a failed job on the retry queue with exponential
// backoff: 1m after the first failure, 2m after the second.
func ScheduleRetry(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	entry := RetryEntry{
		OriginalQueue: queue,
		Job:           job,
		NextAttemptAt: time.Now().Add(computeRetryBackoff(job.Attempts)),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, RetryPrefix+queue, data).Err()
}

func computeRetryBackoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return time.Duration(1<<uint(attempts-1)) * time.Minute
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	RDB    *redis.Client
	CB     *infra.CircuitBreaker
	Queues []string
}

// StartRetryCron launches a background goroutine that ticks every 30s and
// moves due retry entries back to their original queue. It respects the
// context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	if len(cfg.Queues) == 0 {
		cfg.Queues = []string{QueueEmail}
	}
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
				for _, queue := range cfg.Queues {
					processRetries(ctx, cfg, queue)
				}
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig, queue string) {
	// If CB is open, skip entirely — the sends would fail anyway
	if cfg.CB != nil && cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	retryKey := RetryPrefix + queue
	now := time.Now()
	requeued := 0

	for i := 0; i < retryBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, retryKey).Result()
		if err != nil {
			break // queue drained or redis unavailable
		}

		var entry RetryEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: dropping malformed retry entry")
			continue
		}

		if entry.NextAttemptAt.After(now) {
			// Not due yet — park it again and stop scanning this queue,
			// entries behind it were scheduled even later.
			if err := cfg.RDB.LPush(ctx, retryKey, raw).Err(); err != nil {
				log.Error().Err(err).Str("queue", queue).Msg("retry_cron: failed to re-park entry")
			}
			break
		}

		encoded, err := json.Marshal(entry.Job)
		if err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("retry_cron: dropping unmarshalable job")
			continue
		}
		if err := cfg.RDB.LPush(ctx, entry.OriginalQueue, encoded).Err(); err != nil {
			log.Error().Err(err).Str("queue", entry.OriginalQueue).Msg("retry_cron: failed to requeue job")
			continue
		}
		requeued++
	}

	if requeued > 0 {
		log.Info().Int("count", requeued).Str("queue", queue).Msg("retry_cron: jobs requeued")
	}
}
