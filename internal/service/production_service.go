package service

import (
	"context"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ProductionService interface {
	// CreateForDetail creates the single production order an order line can
	// have. A second create for the same detail is a conflict.
	CreateForDetail(ctx context.Context, req dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductionOrderResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.ProductionOrderResponse, error)
	List(ctx context.Context, status string) ([]dto.ProductionOrderResponse, error)
}

type productionService struct {
	repo      repository.ProductionOrderRepository
	orderRepo repository.OrderRepository
}

func NewProductionService(repo repository.ProductionOrderRepository, orderRepo repository.OrderRepository) ProductionService {
	return &productionService{repo: repo, orderRepo: orderRepo}
}

func (s *productionService) CreateForDetail(ctx context.Context, req dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	detailID, err := uuid.Parse(req.OrderDetailID)
	if err != nil {
		return nil, domain.Validation("order_detail_id is not a valid uuid")
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, domain.Validation("start_date must be YYYY-MM-DD")
	}
	estimated, err := time.Parse(dateLayout, req.EstimatedDate)
	if err != nil {
		return nil, domain.Validation("estimated_date must be YYYY-MM-DD")
	}
	if estimated.Before(start) {
		return nil, domain.Validation("estimated_date cannot be before start_date")
	}

	detail, err := s.orderRepo.FindDetailByID(ctx, detailID)
	if err != nil {
		return nil, domain.NotFound("order detail not found with id %s", detailID)
	}
	if _, err := s.repo.FindByDetail(ctx, detailID); err == nil {
		return nil, domain.Conflict("order detail %s already has a production order", detailID)
	}

	po := &model.ProductionOrder{
		OrderDetailID: detail.ID,
		Status:        model.ProductionStatusPending,
		StartDate:     start,
		EstimatedDate: estimated,
	}
	if err := s.repo.Create(ctx, po); err != nil {
		return nil, err
	}
	po.OrderDetail = detail
	return productionToResponse(po), nil
}

func (s *productionService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductionOrderResponse, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("production order not found with id %s", id)
	}
	return productionToResponse(po), nil
}

func (s *productionService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.ProductionOrderResponse, error) {
	switch status {
	case model.ProductionStatusPending, model.ProductionStatusInProgress, model.ProductionStatusCompleted:
	default:
		return nil, domain.Validation("unknown production status %q", status)
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, domain.NotFound("production order not found with id %s", id)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *productionService) List(ctx context.Context, status string) ([]dto.ProductionOrderResponse, error) {
	orders, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionOrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *productionToResponse(&orders[i]))
	}
	return out, nil
}

func productionToResponse(po *model.ProductionOrder) *dto.ProductionOrderResponse {
	r := &dto.ProductionOrderResponse{
		ID:            po.ID.String(),
		OrderDetailID: po.OrderDetailID.String(),
		Status:        po.Status,
		StartDate:     po.StartDate.Format(dateLayout),
		EstimatedDate: po.EstimatedDate.Format(dateLayout),
	}
	if po.OrderDetail != nil {
		r.Quantity = po.OrderDetail.Quantity
		if po.OrderDetail.Product != nil {
			r.Product = po.OrderDetail.Product.Name
		}
	}
	return r
}
