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

func newProductionFixture(t *testing.T) (ProductionService, *stubProductionRepo, *model.OrderDetail) {
	t.Helper()
	orders := newStubOrderRepo()
	detail := &model.OrderDetail{
		OrderID:   uuid.New(),
		ProductID: uuid.New(),
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("2500.00"),
	}
	require.NoError(t, orders.CreateDetailTx(nil, detail))
	repo := newStubProductionRepo()
	return NewProductionService(repo, orders), repo, detail
}

func productionReq(detailID, start, estimated string) dto.CreateProductionOrderRequest {
	return dto.CreateProductionOrderRequest{
		OrderDetailID: detailID,
		StartDate:     start,
		EstimatedDate: estimated,
	}
}

func TestCreateProductionOrder_StartsPending(t *testing.T) {
	svc, _, detail := newProductionFixture(t)

	resp, err := svc.CreateForDetail(context.Background(),
		productionReq(detail.ID.String(), "2026-09-01", "2026-09-15"))
	require.NoError(t, err)
	assert.Equal(t, model.ProductionStatusPending, resp.Status)
	assert.Equal(t, detail.ID.String(), resp.OrderDetailID)
}

func TestCreateProductionOrder_SecondForSameDetailIsConflict(t *testing.T) {
	svc, _, detail := newProductionFixture(t)
	ctx := context.Background()

	_, err := svc.CreateForDetail(ctx, productionReq(detail.ID.String(), "2026-09-01", "2026-09-15"))
	require.NoError(t, err)

	_, err = svc.CreateForDetail(ctx, productionReq(detail.ID.String(), "2026-09-02", "2026-09-20"))
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindConflict, kind)
}

func TestCreateProductionOrder_DateValidation(t *testing.T) {
	svc, _, detail := newProductionFixture(t)
	ctx := context.Background()

	// estimated before start
	_, err := svc.CreateForDetail(ctx, productionReq(detail.ID.String(), "2026-09-15", "2026-09-01"))
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)

	// malformed date
	_, err = svc.CreateForDetail(ctx, productionReq(detail.ID.String(), "01/09/2026", "2026-09-15"))
	require.Error(t, err)
	kind, _ = domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)
}

func TestCreateProductionOrder_UnknownDetailIsNotFound(t *testing.T) {
	svc, _, _ := newProductionFixture(t)

	_, err := svc.CreateForDetail(context.Background(),
		productionReq(uuid.NewString(), "2026-09-01", "2026-09-15"))
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindNotFound, kind)
}

func TestUpdateProductionStatus_RejectsUnknownStatus(t *testing.T) {
	svc, repo, detail := newProductionFixture(t)
	ctx := context.Background()

	created, err := svc.CreateForDetail(ctx, productionReq(detail.ID.String(), "2026-09-01", "2026-09-15"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	updated, err := svc.UpdateStatus(ctx, id, model.ProductionStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.ProductionStatusInProgress, updated.Status)
	assert.Equal(t, model.ProductionStatusInProgress, repo.byID[id].Status)

	_, err = svc.UpdateStatus(ctx, id, "Shipped")
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)
}
