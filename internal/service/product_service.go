package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const priceCachePrefix = "price:"

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.CatalogFilter) ([]dto.ProductResponse, int64, error)

	// PriceBySKU answers price lookups through a redis read-through cache.
	// Stale entries expire by TTL; a redis outage degrades to the database.
	PriceBySKU(ctx context.Context, sku string) (*dto.PriceResponse, error)

	RegisterMovement(ctx context.Context, productID uuid.UUID, req dto.RegisterMovementRequest) (*dto.ProductMovementResponse, error)
	ListMovements(ctx context.Context, productID uuid.UUID) ([]dto.ProductMovementResponse, error)
}

type productService struct {
	repo     repository.ProductRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client, cacheTTL time.Duration) ProductService {
	return &productService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.SalePrice.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Validation("sale price must be greater than 0")
	}
	if req.Stock < 0 {
		return nil, domain.Validation("initial stock cannot be negative")
	}
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, domain.Conflict("product already exists with sku %s", req.SKU)
	}
	product := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return productToResponse(product), nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, domain.NotFound("product not found with id %s", id)
	}
	return productToResponse(product), nil
}

func (s *productService) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, domain.NotFound("product not found with sku %s", sku)
	}
	return productToResponse(product), nil
}

func (s *productService) List(ctx context.Context, filter dto.CatalogFilter) ([]dto.ProductResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *productToResponse(&products[i]))
	}
	return out, total, nil
}

func (s *productService) PriceBySKU(ctx context.Context, sku string) (*dto.PriceResponse, error) {
	key := priceCachePrefix + sku

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached dto.PriceResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				cached.Cached = true
				return &cached, nil
			}
		}
	}

	product, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, domain.NotFound("product not found with sku %s", sku)
	}
	resp := &dto.PriceResponse{
		SKU:       product.SKU,
		Name:      product.Name,
		SalePrice: product.SalePrice,
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("sku", sku).Msg("price cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *productService) RegisterMovement(ctx context.Context, productID uuid.UUID, req dto.RegisterMovementRequest) (*dto.ProductMovementResponse, error) {
	if !req.Quantity.IsInteger() {
		return nil, domain.Validation("product stock moves in whole units")
	}
	qty := int(req.Quantity.IntPart())

	switch req.Type {
	case model.MovementEntry, model.MovementExit:
		if qty <= 0 {
			return nil, domain.Validation("quantity must be greater than 0 for %s", req.Type)
		}
	case model.MovementAdjustment:
		if qty < 0 {
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

	var movement *model.ProductMovement
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		product, err := s.repo.FindByIDForUpdateTx(tx, productID)
		if err != nil {
			return domain.NotFound("product not found with id %s", productID)
		}

		before := product.Stock
		recorded := qty
		switch req.Type {
		case model.MovementEntry:
			product.Stock = before + qty
		case model.MovementExit:
			if before < qty {
				return domain.InsufficientStock(
					"product %s: need %d, have %d", product.Name, qty, before)
			}
			product.Stock = before - qty
		case model.MovementAdjustment:
			product.Stock = qty
			recorded = qty - before
			if recorded < 0 {
				recorded = -recorded
			}
		}

		movement = &model.ProductMovement{
			ProductID:   product.ID,
			Type:        req.Type,
			Quantity:    recorded,
			StockBefore: before,
			StockAfter:  product.Stock,
			ReferenceID: refID,
			Reason:      req.Reason,
		}
		if err := s.repo.CreateMovementTx(tx, movement); err != nil {
			return err
		}
		return s.repo.SaveTx(tx, product)
	})
	if err != nil {
		return nil, err
	}
	return productMovementToResponse(movement), nil
}

func (s *productService) ListMovements(ctx context.Context, productID uuid.UUID) ([]dto.ProductMovementResponse, error) {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return nil, domain.NotFound("product not found with id %s", productID)
	}
	movements, err := s.repo.ListMovements(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductMovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, *productMovementToResponse(&movements[i]))
	}
	return out, nil
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID.String(),
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
	}
}

func productMovementToResponse(m *model.ProductMovement) *dto.ProductMovementResponse {
	r := &dto.ProductMovementResponse{
		ID:          m.ID.String(),
		ProductID:   m.ProductID.String(),
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
