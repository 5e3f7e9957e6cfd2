package service

import (
	"context"
	"errors"
	"time"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var errStubNotFound = errors.New("not found")

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubOrderRepo is an in-memory OrderRepository. DB() returns nil so runTx
// executes the callback without a transaction.
type stubOrderRepo struct {
	orders  map[uuid.UUID]*model.Order
	details map[uuid.UUID]*model.OrderDetail
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		orders:  make(map[uuid.UUID]*model.Order),
		details: make(map[uuid.UUID]*model.OrderDetail),
	}
}

func (r *stubOrderRepo) Create(_ context.Context, o *model.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, errStubNotFound
	}
	return o, nil
}

func (r *stubOrderRepo) FindByIDWithAll(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Details = nil
	for _, d := range r.details {
		if d.OrderID == id {
			o.Details = append(o.Details, *d)
		}
	}
	return o, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Order, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubOrderRepo) SaveTx(_ *gorm.DB, o *model.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) CreateDetailTx(_ *gorm.DB, d *model.OrderDetail) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.details[d.ID] = d
	return nil
}

func (r *stubOrderRepo) FindDetailByID(_ context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	d, ok := r.details[id]
	if !ok {
		return nil, errStubNotFound
	}
	return d, nil
}

func (r *stubOrderRepo) FindDetailsByOrderTx(_ *gorm.DB, orderID uuid.UUID) ([]model.OrderDetail, error) {
	var out []model.OrderDetail
	for _, d := range r.details {
		if d.OrderID == orderID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *stubOrderRepo) FindDetailsByOrder(_ context.Context, orderID uuid.UUID) ([]model.OrderDetail, error) {
	return r.FindDetailsByOrderTx(nil, orderID)
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubInstallmentRepo keeps installments indexed by id.
type stubInstallmentRepo struct {
	installments map[uuid.UUID]*model.Installment
}

func newStubInstallmentRepo() *stubInstallmentRepo {
	return &stubInstallmentRepo{installments: make(map[uuid.UUID]*model.Installment)}
}

func (r *stubInstallmentRepo) CreateBatchTx(_ *gorm.DB, installments []model.Installment) error {
	for i := range installments {
		if installments[i].ID == uuid.Nil {
			installments[i].ID = uuid.New()
		}
		cp := installments[i]
		r.installments[cp.ID] = &cp
	}
	return nil
}

func (r *stubInstallmentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Installment, error) {
	i, ok := r.installments[id]
	if !ok {
		return nil, errStubNotFound
	}
	return i, nil
}

func (r *stubInstallmentRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Installment, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubInstallmentRepo) SaveTx(_ *gorm.DB, i *model.Installment) error {
	r.installments[i.ID] = i
	return nil
}

func (r *stubInstallmentRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]model.Installment, error) {
	var out []model.Installment
	for _, i := range r.installments {
		if i.OrderID == orderID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInstallmentRepo) FindByState(_ context.Context, state string) ([]model.Installment, error) {
	var out []model.Installment
	for _, i := range r.installments {
		if i.State == state {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubInstallmentRepo) FindOverdue(_ context.Context, asOf time.Time) ([]model.Installment, error) {
	var out []model.Installment
	for _, i := range r.installments {
		if i.State != model.PaymentStatePaid && i.DueDate.Before(asOf) {
			out = append(out, *i)
		}
	}
	return out, nil
}

var _ repository.InstallmentRepository = (*stubInstallmentRepo)(nil)

// stubPaymentRepo appends to a slice; SumByOrderTx re-derives like the SQL SUM.
type stubPaymentRepo struct {
	payments []model.Payment
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	for i := range r.payments {
		if r.payments[i].ID == id {
			return &r.payments[i], nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubPaymentRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for i := range r.payments {
		if r.payments[i].OrderID == orderID {
			out = append(out, r.payments[i])
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) FindByInstallment(_ context.Context, installmentID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for i := range r.payments {
		if r.payments[i].InstallmentID != nil && *r.payments[i].InstallmentID == installmentID {
			out = append(out, r.payments[i])
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) SumByOrderTx(_ *gorm.DB, orderID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.payments {
		if r.payments[i].OrderID == orderID {
			sum = sum.Add(r.payments[i].Amount)
		}
	}
	return sum, nil
}

func (r *stubPaymentRepo) DB() *gorm.DB { return nil }

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// stubProductRepo keeps products and their movement ledger in memory.
type stubProductRepo struct {
	products  map[uuid.UUID]*model.Product
	movements []model.ProductMovement
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = &p
	return &p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errStubNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubProductRepo) List(_ context.Context, _ dto.CatalogFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductRepo) SaveTx(_ *gorm.DB, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) CreateMovementTx(_ *gorm.DB, m *model.ProductMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubProductRepo) ListMovements(_ context.Context, productID uuid.UUID) ([]model.ProductMovement, error) {
	var out []model.ProductMovement
	for i := range r.movements {
		if r.movements[i].ProductID == productID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubSupplyRepo keeps supplies and their movement ledger in memory.
type stubSupplyRepo struct {
	supplies  map[uuid.UUID]*model.Supply
	movements []model.SupplyMovement
}

func newStubSupplyRepo() *stubSupplyRepo {
	return &stubSupplyRepo{supplies: make(map[uuid.UUID]*model.Supply)}
}

func (r *stubSupplyRepo) add(s model.Supply) *model.Supply {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.supplies[s.ID] = &s
	return &s
}

func (r *stubSupplyRepo) Create(_ context.Context, s *model.Supply) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.supplies[s.ID] = s
	return nil
}

func (r *stubSupplyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supply, error) {
	s, ok := r.supplies[id]
	if !ok {
		return nil, errStubNotFound
	}
	return s, nil
}

func (r *stubSupplyRepo) FindByName(_ context.Context, name string) (*model.Supply, error) {
	for _, s := range r.supplies {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubSupplyRepo) List(_ context.Context, _ dto.CatalogFilter) ([]model.Supply, int64, error) {
	var out []model.Supply
	for _, s := range r.supplies {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSupplyRepo) Update(_ context.Context, s *model.Supply) error {
	r.supplies[s.ID] = s
	return nil
}

func (r *stubSupplyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.supplies, id)
	return nil
}

func (r *stubSupplyRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Supply, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubSupplyRepo) SaveTx(_ *gorm.DB, s *model.Supply) error {
	r.supplies[s.ID] = s
	return nil
}

func (r *stubSupplyRepo) CreateMovementTx(_ *gorm.DB, m *model.SupplyMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubSupplyRepo) ListMovements(_ context.Context, supplyID uuid.UUID) ([]model.SupplyMovement, error) {
	var out []model.SupplyMovement
	for i := range r.movements {
		if r.movements[i].SupplyID == supplyID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

func (r *stubSupplyRepo) ListMovementsByReference(_ context.Context, referenceID uuid.UUID) ([]model.SupplyMovement, error) {
	var out []model.SupplyMovement
	for i := range r.movements {
		if r.movements[i].ReferenceID != nil && *r.movements[i].ReferenceID == referenceID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}

func (r *stubSupplyRepo) DB() *gorm.DB { return nil }

var _ repository.SupplyRepository = (*stubSupplyRepo)(nil)

// stubBomRepo indexes edges by product+supply pair.
type stubBomRepo struct {
	edges map[[2]uuid.UUID]*model.ProductSupply
}

func newStubBomRepo() *stubBomRepo {
	return &stubBomRepo{edges: make(map[[2]uuid.UUID]*model.ProductSupply)}
}

func (r *stubBomRepo) Create(_ context.Context, ps *model.ProductSupply) error {
	if ps.ID == uuid.Nil {
		ps.ID = uuid.New()
	}
	r.edges[[2]uuid.UUID{ps.ProductID, ps.SupplyID}] = ps
	return nil
}

func (r *stubBomRepo) Update(_ context.Context, ps *model.ProductSupply) error {
	r.edges[[2]uuid.UUID{ps.ProductID, ps.SupplyID}] = ps
	return nil
}

func (r *stubBomRepo) FindByPair(_ context.Context, productID, supplyID uuid.UUID) (*model.ProductSupply, error) {
	e, ok := r.edges[[2]uuid.UUID{productID, supplyID}]
	if !ok {
		return nil, errStubNotFound
	}
	return e, nil
}

func (r *stubBomRepo) FindByProduct(_ context.Context, productID uuid.UUID) ([]model.ProductSupply, error) {
	var out []model.ProductSupply
	for _, e := range r.edges {
		if e.ProductID == productID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubBomRepo) FindBySupply(_ context.Context, supplyID uuid.UUID) ([]model.ProductSupply, error) {
	var out []model.ProductSupply
	for _, e := range r.edges {
		if e.SupplyID == supplyID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubBomRepo) DeleteByPair(_ context.Context, productID, supplyID uuid.UUID) (int64, error) {
	key := [2]uuid.UUID{productID, supplyID}
	if _, ok := r.edges[key]; !ok {
		return 0, nil
	}
	delete(r.edges, key)
	return 1, nil
}

var _ repository.ProductSupplyRepository = (*stubBomRepo)(nil)

// stubProductionRepo indexes production orders by id and by order detail.
type stubProductionRepo struct {
	byID     map[uuid.UUID]*model.ProductionOrder
	byDetail map[uuid.UUID]*model.ProductionOrder
}

func newStubProductionRepo() *stubProductionRepo {
	return &stubProductionRepo{
		byID:     make(map[uuid.UUID]*model.ProductionOrder),
		byDetail: make(map[uuid.UUID]*model.ProductionOrder),
	}
}

func (r *stubProductionRepo) Create(_ context.Context, po *model.ProductionOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	r.byID[po.ID] = po
	r.byDetail[po.OrderDetailID] = po
	return nil
}

func (r *stubProductionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductionOrder, error) {
	po, ok := r.byID[id]
	if !ok {
		return nil, errStubNotFound
	}
	return po, nil
}

func (r *stubProductionRepo) FindByDetail(_ context.Context, orderDetailID uuid.UUID) (*model.ProductionOrder, error) {
	po, ok := r.byDetail[orderDetailID]
	if !ok {
		return nil, errStubNotFound
	}
	return po, nil
}

func (r *stubProductionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	po, ok := r.byID[id]
	if !ok {
		return errStubNotFound
	}
	po.Status = status
	return nil
}

func (r *stubProductionRepo) List(_ context.Context, status string) ([]model.ProductionOrder, error) {
	var out []model.ProductionOrder
	for _, po := range r.byID {
		if status != "" && po.Status != status {
			continue
		}
		out = append(out, *po)
	}
	return out, nil
}

var _ repository.ProductionOrderRepository = (*stubProductionRepo)(nil)

// stubClientRepo / stubUserRepo index by id and CI.
type stubClientRepo struct {
	clients map[uuid.UUID]*model.Client
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[uuid.UUID]*model.Client)}
}

func (r *stubClientRepo) add(c model.Client) *model.Client {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = &c
	return &c
}

func (r *stubClientRepo) Create(_ context.Context, c *model.Client) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = c
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, errStubNotFound
	}
	return c, nil
}

func (r *stubClientRepo) FindByCI(_ context.Context, ci string) (*model.Client, error) {
	for _, c := range r.clients {
		if c.CI == ci {
			return c, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]model.Client, error) {
	var out []model.Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

var _ repository.ClientRepository = (*stubClientRepo)(nil)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) add(u model.User) *model.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = &u
	return &u
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errStubNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByCI(_ context.Context, ci string) (*model.User, error) {
	for _, u := range r.users {
		if u.CI == ci {
			return u, nil
		}
	}
	return nil, errStubNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)
