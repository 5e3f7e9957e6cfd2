package service

import (
	"context"
	"testing"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductFixture(t *testing.T, stock int) (ProductService, *stubProductRepo, *model.Product) {
	t.Helper()
	repo := newStubProductRepo()
	product := repo.add(model.Product{
		SKU: "SILLA-STD", Name: "Silla estandar",
		SalePrice: decimal.RequireFromString("350.00"), Stock: stock,
	})
	// nil redis client: the price cache degrades to plain DB lookups
	return NewProductService(repo, nil, 0), repo, product
}

func TestProductCreate_Validations(t *testing.T) {
	svc, _, _ := newProductFixture(t, 0)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateProductRequest{
		SKU: "X-1", Name: "x", SalePrice: decimal.Zero,
	})
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)

	_, err = svc.Create(ctx, dto.CreateProductRequest{
		SKU: "SILLA-STD", Name: "dup", SalePrice: decimal.RequireFromString("1.00"),
	})
	require.Error(t, err)
	kind, _ = domain.KindOf(err)
	assert.Equal(t, domain.KindConflict, kind)
}

func TestPriceBySKU_WithoutCacheHitsDatabase(t *testing.T) {
	svc, _, _ := newProductFixture(t, 0)

	resp, err := svc.PriceBySKU(context.Background(), "SILLA-STD")
	require.NoError(t, err)
	assert.True(t, resp.SalePrice.Equal(decimal.RequireFromString("350.00")))
	assert.False(t, resp.Cached)

	_, err = svc.PriceBySKU(context.Background(), "NO-SUCH-SKU")
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindNotFound, kind)
}

func TestProductMovement_WholeUnitsOnly(t *testing.T) {
	svc, repo, product := newProductFixture(t, 10)

	_, err := svc.RegisterMovement(context.Background(), product.ID,
		movementReq(model.MovementEntry, "1.5"))
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)
	assert.Empty(t, repo.movements)
}

func TestProductMovement_EntryAndExit(t *testing.T) {
	svc, repo, product := newProductFixture(t, 10)
	ctx := context.Background()

	resp, err := svc.RegisterMovement(ctx, product.ID, movementReq(model.MovementEntry, "5"))
	require.NoError(t, err)
	assert.Equal(t, 15, resp.StockAfter)

	resp, err = svc.RegisterMovement(ctx, product.ID, movementReq(model.MovementExit, "15"))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockAfter)
	assert.Equal(t, 0, repo.products[product.ID].Stock)
}

func TestProductMovement_ExitShortfallWritesNothing(t *testing.T) {
	svc, repo, product := newProductFixture(t, 3)

	_, err := svc.RegisterMovement(context.Background(), product.ID,
		movementReq(model.MovementExit, "4"))
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindInsufficientStock, kind)
	assert.Equal(t, 3, repo.products[product.ID].Stock)
	assert.Empty(t, repo.movements)
}

func TestProductMovement_AdjustmentRecordsDelta(t *testing.T) {
	svc, repo, product := newProductFixture(t, 10)

	resp, err := svc.RegisterMovement(context.Background(), product.ID,
		movementReq(model.MovementAdjustment, "4"))
	require.NoError(t, err)
	assert.Equal(t, 4, resp.StockAfter)
	assert.Equal(t, 6, resp.Quantity)
	assert.Equal(t, 4, repo.products[product.ID].Stock)
}
