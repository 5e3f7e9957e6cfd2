package service

import (
	"context"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService is the append-only payment ledger. Recording a payment,
// re-deriving the order's paid total, and updating the targeted installment
// are one atomic transaction.
type PaymentService interface {
	Record(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]dto.PaymentResponse, error)
	ListByInstallment(ctx context.Context, installmentID uuid.UUID) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	repo         repository.PaymentRepository
	orderRepo    repository.OrderRepository
	installments InstallmentService
	now          func() time.Time
}

func NewPaymentService(
	repo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	installments InstallmentService,
) PaymentService {
	return &paymentService{repo: repo, orderRepo: orderRepo, installments: installments, now: time.Now}
}

func (s *paymentService) Record(ctx context.Context, req dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, domain.Validation("invalid order_id: %s", req.OrderID)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Validation("payment amount must be greater than 0")
	}
	var installmentID *uuid.UUID
	if req.InstallmentID != nil {
		id, err := uuid.Parse(*req.InstallmentID)
		if err != nil {
			return nil, domain.Validation("invalid installment_id: %s", *req.InstallmentID)
		}
		installmentID = &id
	}

	var (
		payment          model.Payment
		orderState       string
		installmentState *string
	)
	// The order row stays locked for the whole read-recompute-write cycle, so
	// concurrent payments on the same order serialize instead of losing
	// updates.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.orderRepo.FindByIDForUpdateTx(tx, orderID)
		if err != nil {
			return domain.NotFound("order not found with id %s", orderID)
		}

		if installmentID != nil {
			installment, err := s.installments.Get(ctx, *installmentID)
			if err != nil {
				return err
			}
			if installment.OrderID != order.ID {
				return domain.Validation("installment %s does not belong to order %s", installmentID, orderID)
			}
		}

		payment = model.Payment{
			OrderID:       order.ID,
			InstallmentID: installmentID,
			Amount:        req.Amount,
			PaymentType:   req.PaymentType,
			PaidAt:        s.now(),
		}
		if err := s.repo.CreateTx(tx, &payment); err != nil {
			return err
		}

		// Re-derive from the ledger, never increment.
		totalPaid, err := s.repo.SumByOrderTx(tx, order.ID)
		if err != nil {
			return err
		}
		order.AmountPaid = totalPaid
		switch {
		case totalPaid.GreaterThanOrEqual(order.TotalAmount):
			order.PaymentState = model.PaymentStatePaid
		case totalPaid.GreaterThan(decimal.Zero):
			order.PaymentState = model.PaymentStatePartial
		default:
			order.PaymentState = model.PaymentStatePending
		}
		if err := s.orderRepo.SaveTx(tx, order); err != nil {
			return err
		}
		orderState = order.PaymentState

		if installmentID != nil {
			installment, err := s.installments.ApplyPaymentTx(tx, *installmentID, payment.Amount)
			if err != nil {
				return err
			}
			installmentState = &installment.State
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := paymentToResponse(&payment)
	resp.OrderPaymentState = orderState
	resp.InstallmentState = installmentState
	return resp, nil
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("payment not found with id %s", id)
	}
	return paymentToResponse(payment), nil
}

func (s *paymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]dto.PaymentResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, domain.NotFound("order not found with id %s", orderID)
	}
	payments, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return paymentsToResponses(payments), nil
}

func (s *paymentService) ListByInstallment(ctx context.Context, installmentID uuid.UUID) ([]dto.PaymentResponse, error) {
	if _, err := s.installments.Get(ctx, installmentID); err != nil {
		return nil, err
	}
	payments, err := s.repo.FindByInstallment(ctx, installmentID)
	if err != nil {
		return nil, err
	}
	return paymentsToResponses(payments), nil
}

func paymentToResponse(p *model.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:          p.ID.String(),
		OrderID:     p.OrderID.String(),
		Amount:      p.Amount,
		PaymentType: p.PaymentType,
		PaidAt:      p.PaidAt.Format(time.RFC3339),
	}
	if p.InstallmentID != nil {
		id := p.InstallmentID.String()
		resp.InstallmentID = &id
	}
	return resp
}

func paymentsToResponses(payments []model.Payment) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *paymentToResponse(&payments[i]))
	}
	return out
}
