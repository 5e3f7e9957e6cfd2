package worker

// Processes email jobs from QueueEmail. SMTP delivery runs behind the circuit
// breaker; a failed job goes to the retry queue and, past the attempt cap, to
// the DLQ for manual inspection.

import (
	"context"
	"encoding/json"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxEmailAttempts is the delivery cap per job before it lands in the DLQ.
const MaxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb}
}

func (w *EmailWorker) Process(ctx context.Context, job Job) {
	var payload EmailJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return
	}

	sendErr := w.cb.Execute(func() error {
		return w.mailer.Send(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
	})
	if sendErr == nil {
		log.Info().Str("to", payload.ToEmail).Msg("email_worker: email sent")
		return
	}

	job.Attempts++
	if job.Attempts >= MaxEmailAttempts {
		log.Error().
			Err(sendErr).
			Str("to", payload.ToEmail).
			Int("attempts", job.Attempts).
			Msg("email_worker: max attempts exceeded, moving to DLQ")
		SendToDLQ(ctx, w.rdb, QueueEmail, job.Type, job.Payload, sendErr.Error(), job.Attempts)
		return
	}

	log.Warn().
		Err(sendErr).
		Str("to", payload.ToEmail).
		Int("attempts", job.Attempts).
		Msg("email_worker: send failed, scheduling retry")
	if err := ScheduleRetry(ctx, w.rdb, QueueEmail, job); err != nil {
		log.Error().Err(err).Msg("email_worker: failed to schedule retry")
	}
}
