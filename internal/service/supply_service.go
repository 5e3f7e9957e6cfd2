package service

import (
	"context"
	"errors"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SupplyService interface {
	Create(ctx context.Context, req dto.CreateSupplyRequest) (*dto.SupplyResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplyResponse, error)
	GetByName(ctx context.Context, name string) (*dto.SupplyResponse, error)
	List(ctx context.Context, filter dto.CatalogFilter) ([]dto.SupplyResponse, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// RegisterMovement applies an ENTRY, EXIT or ADJUSTMENT to the supply's
	// stock and records it in the ledger. ADJUSTMENT sets the balance to the
	// given absolute value; the recorded quantity is the delta's magnitude.
	RegisterMovement(ctx context.Context, supplyID uuid.UUID, req dto.RegisterMovementRequest) (*dto.SupplyMovementResponse, error)
	ListMovements(ctx context.Context, supplyID uuid.UUID) ([]dto.SupplyMovementResponse, error)
	ListMovementsByReference(ctx context.Context, referenceID uuid.UUID) ([]dto.SupplyMovementResponse, error)
}

type supplyService struct {
	repo repository.SupplyRepository
}

func NewSupplyService(repo repository.SupplyRepository) SupplyService {
	return &supplyService{repo: repo}
}

func (s *supplyService) Create(ctx context.Context, req dto.CreateSupplyRequest) (*dto.SupplyResponse, error) {
	if req.Stock.IsNegative() {
		return nil, domain.Validation("initial stock cannot be negative")
	}
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, domain.Conflict("supply already exists with name %s", req.Name)
	}
	supply := &model.Supply{
		Name:        req.Name,
		Description: req.Description,
		UnitMeasure: req.UnitMeasure,
		Stock:       req.Stock,
	}
	if err := s.repo.Create(ctx, supply); err != nil {
		return nil, err
	}
	return supplyToResponse(supply), nil
}

func (s *supplyService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplyResponse, error) {
	supply, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("supply not found with id %s", id)
	}
	return supplyToResponse(supply), nil
}

func (s *supplyService) GetByName(ctx context.Context, name string) (*dto.SupplyResponse, error) {
	supply, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, domain.NotFound("supply not found with name %s", name)
	}
	return supplyToResponse(supply), nil
}

func (s *supplyService) List(ctx context.Context, filter dto.CatalogFilter) ([]dto.SupplyResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	supplies, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.SupplyResponse, 0, len(supplies))
	for i := range supplies {
		out = append(out, *supplyToResponse(&supplies[i]))
	}
	return out, total, nil
}

func (s *supplyService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return domain.NotFound("supply not found with id %s", id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *supplyService) RegisterMovement(ctx context.Context, supplyID uuid.UUID, req dto.RegisterMovementRequest) (*dto.SupplyMovementResponse, error) {
	switch req.Type {
	case model.MovementEntry, model.MovementExit:
		if req.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, domain.Validation("quantity must be greater than 0 for %s", req.Type)
		}
	case model.MovementAdjustment:
		if req.Quantity.IsNegative() {
			return nil, domain.Validation("adjusted balance cannot be negative")
		}
	default:
		return nil, domain.Validation("unknown movement type %q", req.Type)
	}

	var refID *uuid.UUID
	if req.ReferenceID != nil {
		id, err := uuid.Parse(*req.ReferenceID)
		if err != nil {
			return nil, domain.Validation("reference_id is not a valid uuid")
		}
		refID = &id
	}

	var movement *model.SupplyMovement
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		supply, err := s.repo.FindByIDForUpdateTx(tx, supplyID)
		if err != nil {
			return domain.NotFound("supply not found with id %s", supplyID)
		}

		before := supply.Stock
		var recorded decimal.Decimal
		switch req.Type {
		case model.MovementEntry:
			supply.Stock = before.Add(req.Quantity)
			recorded = req.Quantity
		case model.MovementExit:
			if before.LessThan(req.Quantity) {
				return domain.InsufficientStock(
					"supply %s: need %s, have %s", supply.Name, req.Quantity, before)
			}
			supply.Stock = before.Sub(req.Quantity)
			recorded = req.Quantity
		case model.MovementAdjustment:
			supply.Stock = req.Quantity
			recorded = req.Quantity.Sub(before).Abs()
		}

		movement = &model.SupplyMovement{
			SupplyID:    supply.ID,
			Type:        req.Type,
			Quantity:    recorded,
			StockBefore: before,
			StockAfter:  supply.Stock,
			ReferenceID: refID,
			Reason:      req.Reason,
		}
		if err := s.repo.CreateMovementTx(tx, movement); err != nil {
			return err
		}
		return s.repo.SaveTx(tx, supply)
	})
	if err != nil {
		return nil, err
	}
	return supplyMovementToResponse(movement), nil
}

func (s *supplyService) ListMovements(ctx context.Context, supplyID uuid.UUID) ([]dto.SupplyMovementResponse, error) {
	if _, err := s.repo.FindByID(ctx, supplyID); err != nil {
		return nil, domain.NotFound("supply not found with id %s", supplyID)
	}
	movements, err := s.repo.ListMovements(ctx, supplyID)
	if err != nil {
		return nil, err
	}
	return supplyMovementsToResponses(movements), nil
}

func (s *supplyService) ListMovementsByReference(ctx context.Context, referenceID uuid.UUID) ([]dto.SupplyMovementResponse, error) {
	movements, err := s.repo.ListMovementsByReference(ctx, referenceID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return supplyMovementsToResponses(movements), nil
}

func supplyToResponse(s *model.Supply) *dto.SupplyResponse {
	return &dto.SupplyResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		Description: s.Description,
		UnitMeasure: s.UnitMeasure,
		Stock:       s.Stock,
	}
}

func supplyMovementToResponse(m *model.SupplyMovement) *dto.SupplyMovementResponse {
	r := &dto.SupplyMovementResponse{
		ID:          m.ID.String(),
		SupplyID:    m.SupplyID.String(),
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.ReferenceID != nil {
		id := m.ReferenceID.String()
		r.ReferenceID = &id
	}
	return r
}

func supplyMovementsToResponses(movements []model.SupplyMovement) []dto.SupplyMovementResponse {
	out := make([]dto.SupplyMovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, *supplyMovementToResponse(&movements[i]))
	}
	return out
}
