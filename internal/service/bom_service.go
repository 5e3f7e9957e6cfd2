package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BomService manages bill-of-materials edges and consumes supply stock for
// production.
type BomService interface {
	AddEdge(ctx context.Context, productID, supplyID uuid.UUID, requiredAmount decimal.Decimal) (*dto.BomEdgeResponse, error)
	UpdateEdge(ctx context.Context, productID, supplyID uuid.UUID, requiredAmount decimal.Decimal) (*dto.BomEdgeResponse, error)
	RemoveEdge(ctx context.Context, productID, supplyID uuid.UUID) error
	EdgesForProduct(ctx context.Context, productID uuid.UUID) ([]dto.BomEdgeResponse, error)

	// RequiredFor returns, per supply of the product's BOM, the total amount
	// needed to build quantity units.
	RequiredFor(ctx context.Context, productID uuid.UUID, quantity int) ([]dto.RequiredSupplyResponse, error)
	// IsAvailable is a pure read: true iff every required supply has enough
	// stock. The answer can go stale immediately; Consume re-checks under
	// locks.
	IsAvailable(ctx context.Context, productID uuid.UUID, quantity int) (bool, error)
	// Consume writes one EXIT movement per required supply, all-or-nothing.
	// Every supply row is locked before the first check so a concurrent
	// consumption cannot overdraw stock between validation and write.
	Consume(ctx context.Context, productID uuid.UUID, quantity int, productionOrderID uuid.UUID) error
}

type bomService struct {
	repo        repository.ProductSupplyRepository
	productRepo repository.ProductRepository
	supplyRepo  repository.SupplyRepository
}

func NewBomService(
	repo repository.ProductSupplyRepository,
	productRepo repository.ProductRepository,
	supplyRepo repository.SupplyRepository,
) BomService {
	return &bomService{repo: repo, productRepo: productRepo, supplyRepo: supplyRepo}
}

func (s *bomService) AddEdge(ctx context.Context, productID, supplyID uuid.UUID, requiredAmount decimal.Decimal) (*dto.BomEdgeResponse, error) {
	if requiredAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Validation("required amount must be greater than 0")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, domain.NotFound("product not found with id %s", productID)
	}
	supply, err := s.supplyRepo.FindByID(ctx, supplyID)
	if err != nil {
		return nil, domain.NotFound("supply not found with id %s", supplyID)
	}
	if _, err := s.repo.FindByPair(ctx, productID, supplyID); err == nil {
		return nil, domain.Conflict("product %s already requires supply %s", productID, supplyID)
	}

	edge := &model.ProductSupply{
		ProductID:      productID,
		SupplyID:       supplyID,
		RequiredAmount: requiredAmount,
	}
	if err := s.repo.Create(ctx, edge); err != nil {
		return nil, err
	}
	return &dto.BomEdgeResponse{
		ProductID:      productID.String(),
		SupplyID:       supplyID.String(),
		Supply:         supply.Name,
		RequiredAmount: requiredAmount,
	}, nil
}

func (s *bomService) UpdateEdge(ctx context.Context, productID, supplyID uuid.UUID, requiredAmount decimal.Decimal) (*dto.BomEdgeResponse, error) {
	if requiredAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Validation("required amount must be greater than 0")
	}
	edge, err := s.repo.FindByPair(ctx, productID, supplyID)
	if err != nil {
		return nil, domain.NotFound("product-supply relation not found")
	}
	edge.RequiredAmount = requiredAmount
	if err := s.repo.Update(ctx, edge); err != nil {
		return nil, err
	}
	return &dto.BomEdgeResponse{
		ProductID:      productID.String(),
		SupplyID:       supplyID.String(),
		RequiredAmount: requiredAmount,
	}, nil
}

func (s *bomService) RemoveEdge(ctx context.Context, productID, supplyID uuid.UUID) error {
	rows, err := s.repo.DeleteByPair(ctx, productID, supplyID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFound("product-supply relation not found")
	}
	return nil
}

func (s *bomService) EdgesForProduct(ctx context.Context, productID uuid.UUID) ([]dto.BomEdgeResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, domain.NotFound("product not found with id %s", productID)
	}
	edges, err := s.repo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BomEdgeResponse, 0, len(edges))
	for i := range edges {
		r := dto.BomEdgeResponse{
			ProductID:      edges[i].ProductID.String(),
			SupplyID:       edges[i].SupplyID.String(),
			RequiredAmount: edges[i].RequiredAmount,
		}
		if edges[i].Supply != nil {
			r.Supply = edges[i].Supply.Name
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *bomService) RequiredFor(ctx context.Context, productID uuid.UUID, quantity int) ([]dto.RequiredSupplyResponse, error) {
	edges, err := s.requirements(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	qty := decimal.NewFromInt(int64(quantity))
	out := make([]dto.RequiredSupplyResponse, 0, len(edges))
	for i := range edges {
		supply, err := s.supplyRepo.FindByID(ctx, edges[i].SupplyID)
		if err != nil {
			return nil, domain.NotFound("supply not found with id %s", edges[i].SupplyID)
		}
		out = append(out, dto.RequiredSupplyResponse{
			SupplyID: supply.ID.String(),
			Supply:   supply.Name,
			Required: edges[i].RequiredAmount.Mul(qty),
			InStock:  supply.Stock,
		})
	}
	return out, nil
}

func (s *bomService) IsAvailable(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	required, err := s.RequiredFor(ctx, productID, quantity)
	if err != nil {
		return false, err
	}
	for i := range required {
		if required[i].InStock.LessThan(required[i].Required) {
			return false, nil
		}
	}
	return true, nil
}

func (s *bomService) Consume(ctx context.Context, productID uuid.UUID, quantity int, productionOrderID uuid.UUID) error {
	edges, err := s.requirements(ctx, productID, quantity)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return domain.Validation("product %s has no bill of materials", productID)
	}

	// Deterministic lock order across concurrent consumptions.
	sort.Slice(edges, func(i, j int) bool {
		return edges[i].SupplyID.String() < edges[j].SupplyID.String()
	})

	qty := decimal.NewFromInt(int64(quantity))
	reason := fmt.Sprintf("Consumed for production of %d units of product %s", quantity, productID)

	return runTx(ctx, s.supplyRepo.DB(), func(tx *gorm.DB) error {
		// Pass 1: lock every supply and verify availability before any write.
		supplies := make([]*model.Supply, len(edges))
		for i := range edges {
			supply, err := s.supplyRepo.FindByIDForUpdateTx(tx, edges[i].SupplyID)
			if err != nil {
				return domain.NotFound("supply not found with id %s", edges[i].SupplyID)
			}
			required := edges[i].RequiredAmount.Mul(qty)
			if supply.Stock.LessThan(required) {
				return domain.InsufficientStock(
					"supply %s: need %s, have %s", supply.Name, required, supply.Stock)
			}
			supplies[i] = supply
		}

		// Pass 2: write one EXIT movement per supply and decrement balances.
		refID := productionOrderID
		for i := range edges {
			required := edges[i].RequiredAmount.Mul(qty)
			before := supplies[i].Stock
			supplies[i].Stock = before.Sub(required)

			movement := &model.SupplyMovement{
				SupplyID:    supplies[i].ID,
				Type:        model.MovementExit,
				Quantity:    required,
				StockBefore: before,
				StockAfter:  supplies[i].Stock,
				ReferenceID: &refID,
				Reason:      reason,
			}
			if err := s.supplyRepo.CreateMovementTx(tx, movement); err != nil {
				return err
			}
			if err := s.supplyRepo.SaveTx(tx, supplies[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *bomService) requirements(ctx context.Context, productID uuid.UUID, quantity int) ([]model.ProductSupply, error) {
	if quantity <= 0 {
		return nil, domain.Validation("quantity must be greater than 0")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, domain.NotFound("product not found with id %s", productID)
	}
	return s.repo.FindByProduct(ctx, productID)
}
