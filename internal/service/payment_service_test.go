package service

import (
	"context"
	"testing"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	svc      PaymentService
	payments *stubPaymentRepo
	orders   *stubOrderRepo
	instRepo *stubInstallmentRepo
	order    *model.Order
}

func newPaymentFixture(t *testing.T, total string) *paymentFixture {
	t.Helper()
	f := &paymentFixture{
		payments: &stubPaymentRepo{},
		orders:   newStubOrderRepo(),
		instRepo: newStubInstallmentRepo(),
	}
	f.order = &model.Order{
		ID:               uuid.New(),
		Status:           model.OrderStatusPending,
		PaymentCondition: model.PaymentConditionCredit,
		TotalAmount:      decimal.RequireFromString(total),
		AmountPaid:       decimal.Zero,
		PaymentState:     model.PaymentStatePending,
	}
	f.orders.orders[f.order.ID] = f.order
	installments := NewInstallmentService(f.instRepo, f.orders)
	f.svc = NewPaymentService(f.payments, f.orders, installments)
	return f
}

func (f *paymentFixture) record(t *testing.T, amount string, installmentID *string) (*dto.PaymentResponse, error) {
	t.Helper()
	return f.svc.Record(context.Background(), dto.RecordPaymentRequest{
		OrderID:       f.order.ID.String(),
		Amount:        decimal.RequireFromString(amount),
		PaymentType:   "cash",
		InstallmentID: installmentID,
	})
}

func TestRecordPayment_DerivesStateFromLedger(t *testing.T) {
	f := newPaymentFixture(t, "300.00")

	resp, err := f.record(t, "100.00", nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatePartial, resp.OrderPaymentState)
	assert.True(t, f.order.AmountPaid.Equal(decimal.RequireFromString("100.00")))

	resp, err = f.record(t, "200.00", nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatePaid, resp.OrderPaymentState)
	// Paid total is the SUM over the ledger, not an increment.
	assert.True(t, f.order.AmountPaid.Equal(decimal.RequireFromString("300.00")))
	assert.Len(t, f.payments.payments, 2)
}

func TestRecordPayment_OverpaymentIsPaid(t *testing.T) {
	f := newPaymentFixture(t, "100.00")

	resp, err := f.record(t, "150.00", nil)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatePaid, resp.OrderPaymentState)
	assert.True(t, f.order.AmountPaid.Equal(decimal.RequireFromString("150.00")))
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	f := newPaymentFixture(t, "100.00")

	for _, amount := range []string{"0", "-10.00"} {
		_, err := f.record(t, amount, nil)
		require.Error(t, err)
		kind, _ := domain.KindOf(err)
		assert.Equal(t, domain.KindValidation, kind)
	}
	assert.Empty(t, f.payments.payments)
}

func TestRecordPayment_UnknownOrderIsNotFound(t *testing.T) {
	f := newPaymentFixture(t, "100.00")

	_, err := f.svc.Record(context.Background(), dto.RecordPaymentRequest{
		OrderID:     uuid.NewString(),
		Amount:      decimal.RequireFromString("10.00"),
		PaymentType: "cash",
	})
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindNotFound, kind)
}

func TestRecordPayment_UpdatesTargetedInstallment(t *testing.T) {
	f := newPaymentFixture(t, "200.00")

	installments := NewInstallmentService(f.instRepo, f.orders)
	set, err := installments.GenerateForOrderTx(nil, f.order, 2)
	require.NoError(t, err)
	id := set[0].ID.String()

	resp, err := f.record(t, "100.00", &id)
	require.NoError(t, err)
	require.NotNil(t, resp.InstallmentState)
	assert.Equal(t, model.PaymentStatePaid, *resp.InstallmentState)
	assert.Equal(t, model.PaymentStatePartial, resp.OrderPaymentState)

	stored := f.instRepo.installments[set[0].ID]
	assert.True(t, stored.AmountPaid.Equal(decimal.RequireFromString("100.00")))
}

func TestRecordPayment_InstallmentOfAnotherOrderRejected(t *testing.T) {
	f := newPaymentFixture(t, "200.00")

	foreign := model.Installment{
		ID: uuid.New(), OrderID: uuid.New(), Number: 1,
		Amount: decimal.RequireFromString("50.00"), AmountPaid: decimal.Zero,
		State: model.PaymentStatePending,
	}
	require.NoError(t, f.instRepo.CreateBatchTx(nil, []model.Installment{foreign}))
	id := foreign.ID.String()

	_, err := f.record(t, "50.00", &id)
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)
	// Rejected payment never reaches the ledger.
	assert.Empty(t, f.payments.payments)
}

func TestListByOrder_ReturnsLedgerEntries(t *testing.T) {
	f := newPaymentFixture(t, "300.00")

	_, err := f.record(t, "100.00", nil)
	require.NoError(t, err)
	_, err = f.record(t, "50.00", nil)
	require.NoError(t, err)

	out, err := f.svc.ListByOrder(context.Background(), f.order.ID)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}
