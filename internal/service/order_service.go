package service

import (
	"context"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService owns the order state machine: header creation, detail lines
// while in Draft, and confirmation (which materializes the installment
// schedule for credit orders).
type OrderService interface {
	CreateHeader(ctx context.Context, clientID, userID uuid.UUID, paymentCondition string) (*dto.OrderResponse, error)
	// CreateHeaderByCI resolves client and user by their national id — the
	// addressing used by text commands.
	CreateHeaderByCI(ctx context.Context, clientCI, userCI, paymentCondition string) (*dto.OrderResponse, error)
	AddDetail(ctx context.Context, orderID, productID uuid.UUID, quantity int) (*dto.OrderDetailResponse, error)
	Confirm(ctx context.Context, orderID uuid.UUID, installments int) (*dto.OrderResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error)
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	ListDetails(ctx context.Context, orderID uuid.UUID) ([]dto.OrderDetailResponse, error)
}

type orderService struct {
	repo         repository.OrderRepository
	clientRepo   repository.ClientRepository
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	installments InstallmentService
	dispatcher   *worker.Dispatcher
}

func NewOrderService(
	repo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	installments InstallmentService,
	dispatcher *worker.Dispatcher,
) OrderService {
	return &orderService{
		repo:         repo,
		clientRepo:   clientRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
		installments: installments,
		dispatcher:   dispatcher,
	}
}

func (s *orderService) CreateHeader(ctx context.Context, clientID, userID uuid.UUID, paymentCondition string) (*dto.OrderResponse, error) {
	if paymentCondition != model.PaymentConditionCash && paymentCondition != model.PaymentConditionCredit {
		return nil, domain.Validation("payment condition must be Cash or Credit, got %q", paymentCondition)
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return nil, domain.NotFound("client not found with id %s", clientID)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.NotFound("user not found with id %s", userID)
	}
	return s.createHeader(ctx, client, user, paymentCondition)
}

func (s *orderService) CreateHeaderByCI(ctx context.Context, clientCI, userCI, paymentCondition string) (*dto.OrderResponse, error) {
	if paymentCondition != model.PaymentConditionCash && paymentCondition != model.PaymentConditionCredit {
		return nil, domain.Validation("payment condition must be Cash or Credit, got %q", paymentCondition)
	}
	client, err := s.clientRepo.FindByCI(ctx, clientCI)
	if err != nil {
		return nil, domain.NotFound("client not found with CI %s", clientCI)
	}
	user, err := s.userRepo.FindByCI(ctx, userCI)
	if err != nil {
		return nil, domain.NotFound("user not found with CI %s", userCI)
	}
	return s.createHeader(ctx, client, user, paymentCondition)
}

func (s *orderService) createHeader(ctx context.Context, client *model.Client, user *model.User, paymentCondition string) (*dto.OrderResponse, error) {
	order := &model.Order{
		Status:           model.OrderStatusDraft,
		TotalAmount:      decimal.Zero,
		PaymentCondition: paymentCondition,
		AmountPaid:       decimal.Zero,
		PaymentState:     model.PaymentStatePending,
		ClientID:         client.ID,
		UserID:           user.ID,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	resp := orderToResponse(order)
	resp.Client = client.Name
	return resp, nil
}

// AddDetail appends a product line to a Draft order, snapshotting the current
// sale price, and recomputes the order total as the exact sum over all lines
// (never an incremental add, so concurrent corrections cannot drift it).
func (s *orderService) AddDetail(ctx context.Context, orderID, productID uuid.UUID, quantity int) (*dto.OrderDetailResponse, error) {
	if quantity <= 0 {
		return nil, domain.Validation("quantity must be greater than 0")
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, domain.NotFound("product not found with id %s", productID)
	}

	var detail model.OrderDetail
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdateTx(tx, orderID)
		if err != nil {
			return domain.NotFound("order not found with id %s", orderID)
		}
		if order.Status != model.OrderStatusDraft {
			return domain.InvalidState("cannot add details to a confirmed order")
		}

		detail = model.OrderDetail{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.SalePrice,
		}
		if err := s.repo.CreateDetailTx(tx, &detail); err != nil {
			return err
		}

		// Full recompute from all persisted lines, including the new one.
		details, err := s.repo.FindDetailsByOrderTx(tx, order.ID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for i := range details {
			total = total.Add(details[i].LineTotal())
		}
		order.TotalAmount = total
		return s.repo.SaveTx(tx, order)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := detailToResponse(&detail)
	resp.Product = product.Name
	return &resp, nil
}

// Confirm transitions a Draft order to Pending. For credit orders the
// installment set is generated in the same transaction — either the order is
// confirmed with its full schedule or nothing changes.
func (s *orderService) Confirm(ctx context.Context, orderID uuid.UUID, installments int) (*dto.OrderResponse, error) {
	var (
		confirmed *model.Order
		schedule  []model.Installment
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		order, err := s.repo.FindByIDForUpdateTx(tx, orderID)
		if err != nil {
			return domain.NotFound("order not found with id %s", orderID)
		}
		if order.Status != model.OrderStatusDraft {
			return domain.InvalidState("order has already been confirmed")
		}

		if order.PaymentCondition == model.PaymentConditionCredit {
			if installments <= 0 {
				return domain.Validation("a credit order requires more than 0 installments")
			}
			if order.TotalAmount.LessThanOrEqual(decimal.Zero) {
				return domain.Validation("cannot create installments for an order with total 0")
			}
			if schedule, err = s.installments.GenerateForOrderTx(tx, order, installments); err != nil {
				return err
			}
		}

		order.Status = model.OrderStatusPending
		if err := s.repo.SaveTx(tx, order); err != nil {
			return err
		}
		confirmed = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async confirmation email — best-effort, fire & forget.
	if s.dispatcher != nil {
		payload := map[string]interface{}{"order_id": confirmed.ID.String()}
		if client, err := s.clientRepo.FindByID(ctx, confirmed.ClientID); err == nil && client.Email != "" {
			payload["client_email"] = client.Email
		}
		_ = s.dispatcher.EnqueueOrderConfirmation(ctx, payload)
	}

	resp := orderToResponse(confirmed)
	resp.Installments = installmentsToResponses(schedule)
	return resp, nil
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByIDWithAll(ctx, id)
	if err != nil {
		return nil, domain.NotFound("order not found with id %s", id)
	}
	resp := orderToResponse(order)
	if order.Client != nil {
		resp.Client = order.Client.Name
	}
	for i := range order.Details {
		d := detailToResponse(&order.Details[i])
		if order.Details[i].Product != nil {
			d.Product = order.Details[i].Product.Name
		}
		resp.Details = append(resp.Details, d)
	}
	resp.Installments = installmentsToResponses(order.Installments)
	return resp, nil
}

func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		r := orderToResponse(&orders[i])
		if orders[i].Client != nil {
			r.Client = orders[i].Client.Name
		}
		items = append(items, *r)
	}
	return &dto.OrderListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *orderService) ListDetails(ctx context.Context, orderID uuid.UUID) ([]dto.OrderDetailResponse, error) {
	if _, err := s.repo.FindByID(ctx, orderID); err != nil {
		return nil, domain.NotFound("order not found with id %s", orderID)
	}
	details, err := s.repo.FindDetailsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderDetailResponse, 0, len(details))
	for i := range details {
		d := detailToResponse(&details[i])
		if details[i].Product != nil {
			d.Product = details[i].Product.Name
		}
		out = append(out, d)
	}
	return out, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:               o.ID.String(),
		Status:           o.Status,
		PaymentCondition: o.PaymentCondition,
		TotalAmount:      o.TotalAmount,
		AmountPaid:       o.AmountPaid,
		PaymentState:     o.PaymentState,
		ClientID:         o.ClientID.String(),
		UserID:           o.UserID.String(),
		CreatedAt:        o.CreatedAt.Format(time.RFC3339),
	}
}

func detailToResponse(d *model.OrderDetail) dto.OrderDetailResponse {
	return dto.OrderDetailResponse{
		ID:        d.ID.String(),
		ProductID: d.ProductID.String(),
		Quantity:  d.Quantity,
		UnitPrice: d.UnitPrice,
		LineTotal: d.LineTotal(),
	}
}
