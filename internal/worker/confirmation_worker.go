package worker

// Handles order_confirmation jobs from QueueConfirmation: renders the
// confirmation PDF for the order and hands the delivery off to the email
// queue. PDF failures degrade to a plain-text email rather than dropping the
// notification.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/infra"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ConfirmationJobPayload is the job envelope sent to QueueConfirmation.
type ConfirmationJobPayload struct {
	OrderID     string `json:"order_id"`
	ClientEmail string `json:"client_email,omitempty"`
}

type ConfirmationWorker struct {
	orderRepo      repository.OrderRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	companyName    string
}

func NewConfirmationWorker(
	orderRepo repository.OrderRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	companyName string,
) *ConfirmationWorker {
	return &ConfirmationWorker{
		orderRepo:      orderRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		companyName:    companyName,
	}
}

func (w *ConfirmationWorker) Process(ctx context.Context, job Job) {
	var payload ConfirmationJobPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		log.Error().Err(err).Msg("confirmation_worker: invalid payload")
		return
	}
	if payload.ClientEmail == "" {
		log.Debug().Str("order_id", payload.OrderID).Msg("confirmation_worker: client has no email, skipping")
		return
	}

	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("confirmation_worker: invalid order_id")
		return
	}

	order, err := w.orderRepo.FindByIDWithAll(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("confirmation_worker: order not found")
		return
	}

	pdfPath, pdfErr := infra.GenerateOrderPDF(order, w.companyName, w.pdfStoragePath)
	if pdfErr != nil {
		log.Warn().Err(pdfErr).Str("order_id", payload.OrderID).Msg("confirmation_worker: PDF generation failed, sending without attachment")
		pdfPath = ""
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Your order %s has been confirmed.\nTotal: %s\n", order.ID, order.TotalAmount.StringFixed(2))
	if len(order.Installments) > 0 {
		body.WriteString("\nInstallment schedule:\n")
		for i := range order.Installments {
			inst := &order.Installments[i]
			fmt.Fprintf(&body, "  #%d  %s  due %s\n", inst.Number, inst.Amount.StringFixed(2), inst.DueDate.Format("02/01/2006"))
		}
	}

	emailJob := EmailJobPayload{
		ToEmail: payload.ClientEmail,
		Subject: fmt.Sprintf("%s — order %s confirmed", w.companyName, order.ID),
		Body:    body.String(),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("order_id", payload.OrderID).Msg("confirmation_worker: failed to enqueue email")
		return
	}
	log.Info().Str("order_id", payload.OrderID).Str("to", payload.ClientEmail).Msg("confirmation_worker: email job enqueued")
}
