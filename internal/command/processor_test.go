package command

import (
	"context"
	"testing"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderSvc records the last call and returns canned responses.
type stubOrderSvc struct {
	service.OrderService

	lastClientCI  string
	lastCondition string
	created       dto.OrderResponse
}

func (s *stubOrderSvc) CreateHeaderByCI(_ context.Context, clientCI, _, paymentCondition string) (*dto.OrderResponse, error) {
	s.lastClientCI = clientCI
	s.lastCondition = paymentCondition
	resp := s.created
	return &resp, nil
}

type stubBomSvc struct {
	service.BomService

	available bool
}

func (s *stubBomSvc) IsAvailable(_ context.Context, _ uuid.UUID, _ int) (bool, error) {
	return s.available, nil
}

type stubSupplySvc struct {
	service.SupplyService

	lastReq dto.RegisterMovementRequest
}

func (s *stubSupplySvc) RegisterMovement(_ context.Context, _ uuid.UUID, req dto.RegisterMovementRequest) (*dto.SupplyMovementResponse, error) {
	s.lastReq = req
	return &dto.SupplyMovementResponse{
		Type:        req.Type,
		Quantity:    req.Quantity,
		StockBefore: decimal.RequireFromString("10.00"),
		StockAfter:  decimal.RequireFromString("15.00"),
	}, nil
}

func TestExecute_MalformedCommand(t *testing.T) {
	p := NewProcessor(nil, nil, nil, nil, nil, nil, nil)

	_, err := p.Execute(context.Background(), "not a command")
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)
}

func TestExecute_UnknownVerbSuggestsHelp(t *testing.T) {
	p := NewProcessor(nil, nil, nil, nil, nil, nil, nil)

	_, err := p.Execute(context.Background(), `NOPE["x"]`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HELP[]")
}

func TestExecute_HelpListsEveryVerb(t *testing.T) {
	p := NewProcessor(nil, nil, nil, nil, nil, nil, nil)

	reply, err := p.Execute(context.Background(), "HELP[]")
	require.NoError(t, err)
	for _, verb := range []string{
		"INSORD", "ADDET", "CONFORD", "BUSORD", "LISORD",
		"INSPAG", "BUSPAG", "LISPAG", "LISCUO", "LISCES", "LISVEN",
		"ADDSUPP", "UPDPSP", "REMSUPP", "CALRSU", "VALSUPP", "CONSUPP",
		"MOVSUP", "MOVPRO", "INSPROD",
	} {
		assert.Contains(t, reply, verb)
	}
}

func TestExecute_InsOrd(t *testing.T) {
	orders := &stubOrderSvc{created: dto.OrderResponse{
		ID:               uuid.NewString(),
		Client:           "Maria Flores",
		PaymentCondition: "Credit",
	}}
	p := NewProcessor(orders, nil, nil, nil, nil, nil, nil)

	reply, err := p.Execute(context.Background(), `INSORD["1234567","9999999","Credit"]`)
	require.NoError(t, err)
	assert.Equal(t, "1234567", orders.lastClientCI)
	assert.Equal(t, "Credit", orders.lastCondition)
	assert.Contains(t, reply, "Maria Flores")
	assert.Contains(t, reply, orders.created.ID)
}

func TestExecute_InsOrd_MissingParams(t *testing.T) {
	p := NewProcessor(&stubOrderSvc{}, nil, nil, nil, nil, nil, nil)

	_, err := p.Execute(context.Background(), `INSORD["1234567"]`)
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)
}

func TestExecute_ValSupp(t *testing.T) {
	bom := &stubBomSvc{available: true}
	p := NewProcessor(nil, nil, nil, bom, nil, nil, nil)
	productID := uuid.NewString()

	reply, err := p.Execute(context.Background(), `VALSUPP["`+productID+`","3"]`)
	require.NoError(t, err)
	assert.Contains(t, reply, "sufficient")
	assert.NotContains(t, reply, "NOT")

	bom.available = false
	reply, err = p.Execute(context.Background(), `VALSUPP["`+productID+`","3"]`)
	require.NoError(t, err)
	assert.Contains(t, reply, "NOT sufficient")
}

func TestExecute_ValSupp_BadQuantity(t *testing.T) {
	p := NewProcessor(nil, nil, nil, &stubBomSvc{}, nil, nil, nil)

	_, err := p.Execute(context.Background(), `VALSUPP["`+uuid.NewString()+`","three"]`)
	require.Error(t, err)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindValidation, kind)
}

func TestExecute_MovSup_UppercasesTypeAndPassesReason(t *testing.T) {
	supplies := &stubSupplySvc{}
	p := NewProcessor(nil, nil, nil, nil, supplies, nil, nil)
	supplyID := uuid.NewString()

	reply, err := p.Execute(context.Background(),
		`MOVSUP["`+supplyID+`","entry","5.00","restock"]`)
	require.NoError(t, err)
	assert.Equal(t, "ENTRY", supplies.lastReq.Type)
	assert.Equal(t, "restock", supplies.lastReq.Reason)
	assert.Contains(t, reply, "10.00 -> 15.00")
}
