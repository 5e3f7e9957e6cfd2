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

// InstallmentService generates and queries the installment schedule of credit
// orders.
type InstallmentService interface {
	// GenerateForOrderTx splits the order total into n installments and writes
	// them in one batch inside the caller's transaction. The first n−1 get the
	// rounded base amount; the last absorbs the rounding remainder so the set
	// sums to the total exactly.
	GenerateForOrderTx(tx *gorm.DB, order *model.Order, n int) ([]model.Installment, error)

	// ApplyPaymentTx adds amount to the installment's paid total and derives
	// its state. Called by PaymentService inside the payment transaction.
	ApplyPaymentTx(tx *gorm.DB, installmentID uuid.UUID, amount decimal.Decimal) (*model.Installment, error)

	Get(ctx context.Context, id uuid.UUID) (*model.Installment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]dto.InstallmentResponse, error)
	ListByState(ctx context.Context, state string) ([]dto.InstallmentResponse, error)
	ListOverdue(ctx context.Context) ([]dto.InstallmentResponse, error)
}

type installmentService struct {
	repo      repository.InstallmentRepository
	orderRepo repository.OrderRepository
	// now is swappable in tests so due dates are deterministic.
	now func() time.Time
}

func NewInstallmentService(repo repository.InstallmentRepository, orderRepo repository.OrderRepository) InstallmentService {
	return &installmentService{repo: repo, orderRepo: orderRepo, now: time.Now}
}

func (s *installmentService) GenerateForOrderTx(tx *gorm.DB, order *model.Order, n int) ([]model.Installment, error) {
	if order.PaymentCondition != model.PaymentConditionCredit {
		return nil, domain.Validation("installments can only be created for Credit orders")
	}
	if n <= 0 {
		return nil, domain.Validation("number of installments must be greater than 0")
	}
	if order.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Validation("cannot create installments for an order with total 0")
	}

	total := order.TotalAmount
	// HALF_UP division to 2 decimals; the remainder of base×n vs the total is
	// folded into the final installment.
	base := total.DivRound(decimal.NewFromInt(int64(n)), 2)
	remainder := total.Sub(base.Mul(decimal.NewFromInt(int64(n))))

	today := s.now()
	installments := make([]model.Installment, 0, n)
	for i := 1; i <= n; i++ {
		amount := base
		if i == n {
			amount = base.Add(remainder)
		}
		installments = append(installments, model.Installment{
			OrderID:    order.ID,
			Number:     i,
			Amount:     amount,
			DueDate:    today.AddDate(0, i, 0),
			AmountPaid: decimal.Zero,
			State:      model.PaymentStatePending,
		})
	}

	if err := s.repo.CreateBatchTx(tx, installments); err != nil {
		return nil, err
	}
	return installments, nil
}

func (s *installmentService) ApplyPaymentTx(tx *gorm.DB, installmentID uuid.UUID, amount decimal.Decimal) (*model.Installment, error) {
	installment, err := s.repo.FindByIDForUpdateTx(tx, installmentID)
	if err != nil {
		return nil, domain.NotFound("installment not found with id %s", installmentID)
	}

	installment.AmountPaid = installment.AmountPaid.Add(amount)
	// Overpayment still counts as Paid — inherited business rule.
	if installment.AmountPaid.GreaterThanOrEqual(installment.Amount) {
		installment.State = model.PaymentStatePaid
	} else {
		installment.State = model.PaymentStatePartial
	}

	if err := s.repo.SaveTx(tx, installment); err != nil {
		return nil, err
	}
	return installment, nil
}

func (s *installmentService) Get(ctx context.Context, id uuid.UUID) (*model.Installment, error) {
	installment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("installment not found with id %s", id)
	}
	return installment, nil
}

func (s *installmentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]dto.InstallmentResponse, error) {
	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, domain.NotFound("order not found with id %s", orderID)
	}
	installments, err := s.repo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return installmentsToResponses(installments), nil
}

func (s *installmentService) ListByState(ctx context.Context, state string) ([]dto.InstallmentResponse, error) {
	installments, err := s.repo.FindByState(ctx, state)
	if err != nil {
		return nil, err
	}
	return installmentsToResponses(installments), nil
}

func (s *installmentService) ListOverdue(ctx context.Context) ([]dto.InstallmentResponse, error) {
	installments, err := s.repo.FindOverdue(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return installmentsToResponses(installments), nil
}

func installmentToResponse(i *model.Installment) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:         i.ID.String(),
		OrderID:    i.OrderID.String(),
		Number:     i.Number,
		Amount:     i.Amount,
		DueDate:    i.DueDate.Format("2006-01-02"),
		AmountPaid: i.AmountPaid,
		State:      i.State,
	}
}

func installmentsToResponses(installments []model.Installment) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, 0, len(installments))
	for idx := range installments {
		out = append(out, installmentToResponse(&installments[idx]))
	}
	return out
}
