package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/dto"
	"github.com/MarceloCamachh/tecnoWebEmail/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Processor dispatches parsed commands to the services and formats the reply.
type Processor struct {
	orders       service.OrderService
	payments     service.PaymentService
	installments service.InstallmentService
	bom          service.BomService
	supplies     service.SupplyService
	products     service.ProductService
	production   service.ProductionService
}

func NewProcessor(
	orders service.OrderService,
	payments service.PaymentService,
	installments service.InstallmentService,
	bom service.BomService,
	supplies service.SupplyService,
	products service.ProductService,
	production service.ProductionService,
) *Processor {
	return &Processor{
		orders:       orders,
		payments:     payments,
		installments: installments,
		bom:          bom,
		supplies:     supplies,
		products:     products,
		production:   production,
	}
}

// Execute parses and runs one command, returning the reply text. Errors from
// the services come back as error so the transport can map them; the reply is
// only valid when err is nil.
func (p *Processor) Execute(ctx context.Context, raw string) (string, error) {
	cmd, err := Parse(raw)
	if err != nil {
		return "", err
	}

	switch cmd.Verb {
	case "INSORD":
		return p.insOrd(ctx, cmd)
	case "ADDET":
		return p.addDet(ctx, cmd)
	case "CONFORD":
		return p.confOrd(ctx, cmd)
	case "BUSORD":
		return p.busOrd(ctx, cmd)
	case "LISORD":
		return p.lisOrd(ctx, cmd)
	case "INSPAG":
		return p.insPag(ctx, cmd)
	case "BUSPAG":
		return p.busPag(ctx, cmd)
	case "LISPAG":
		return p.lisPag(ctx, cmd)
	case "LISCUO":
		return p.lisCuo(ctx, cmd)
	case "LISCES":
		return p.lisCes(ctx, cmd)
	case "LISVEN":
		return p.lisVen(ctx)
	case "ADDSUPP":
		return p.bomEdge(ctx, cmd, false)
	case "UPDPSP":
		return p.bomEdge(ctx, cmd, true)
	case "REMSUPP":
		return p.remSupp(ctx, cmd)
	case "CALRSU":
		return p.calRsu(ctx, cmd)
	case "VALSUPP":
		return p.valSupp(ctx, cmd)
	case "CONSUPP":
		return p.conSupp(ctx, cmd)
	case "MOVSUP":
		return p.movSup(ctx, cmd)
	case "MOVPRO":
		return p.movPro(ctx, cmd)
	case "INSPROD":
		return p.insProd(ctx, cmd)
	case "HELP":
		return helpText, nil
	default:
		return "", domain.Validation("unknown command %s, send HELP[] for usage", cmd.Verb)
	}
}

func (p *Processor) insOrd(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	order, err := p.orders.CreateHeaderByCI(ctx, cmd.arg(0), cmd.arg(1), cmd.arg(2))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Order %s created for client %s (%s). Add lines with ADDET.",
		order.ID, order.Client, order.PaymentCondition), nil
}

func (p *Processor) addDet(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	orderID, err := parseUUID(cmd.arg(0), "order id")
	if err != nil {
		return "", err
	}
	productID, err := parseUUID(cmd.arg(1), "product id")
	if err != nil {
		return "", err
	}
	qty, err := parseInt(cmd.arg(2), "quantity")
	if err != nil {
		return "", err
	}
	detail, err := p.orders.AddDetail(ctx, orderID, productID, qty)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %d x %s at %s (line total %s) to order %s.",
		detail.Quantity, detail.Product, detail.UnitPrice, detail.LineTotal, orderID), nil
}

func (p *Processor) confOrd(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(1); err != nil {
		return "", err
	}
	orderID, err := parseUUID(cmd.arg(0), "order id")
	if err != nil {
		return "", err
	}
	installments := 0
	if cmd.arg(1) != "" {
		installments, err = parseInt(cmd.arg(1), "installments")
		if err != nil {
			return "", err
		}
	}
	order, err := p.orders.Confirm(ctx, orderID, installments)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s confirmed. Total %s, condition %s.",
		order.ID, order.TotalAmount, order.PaymentCondition)
	if len(order.Installments) > 0 {
		b.WriteString("\nInstallment schedule:")
		for _, inst := range order.Installments {
			fmt.Fprintf(&b, "\n  #%d  %s  due %s", inst.Number, inst.Amount, inst.DueDate)
		}
	}
	return b.String(), nil
}

func (p *Processor) busOrd(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(1); err != nil {
		return "", err
	}
	orderID, err := parseUUID(cmd.arg(0), "order id")
	if err != nil {
		return "", err
	}
	order, err := p.orders.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s  status=%s  condition=%s  total=%s  paid=%s  payment=%s",
		order.ID, order.Status, order.PaymentCondition,
		order.TotalAmount, order.AmountPaid, order.PaymentState)
	for _, d := range order.Details {
		fmt.Fprintf(&b, "\n  %d x %s @ %s = %s", d.Quantity, d.Product, d.UnitPrice, d.LineTotal)
	}
	return b.String(), nil
}

func (p *Processor) lisOrd(ctx context.Context, cmd *Command) (string, error) {
	filter := dto.OrderFilter{Status: cmd.arg(0)}
	list, err := p.orders.List(ctx, filter)
	if err != nil {
		return "", err
	}
	if len(list.Data) == 0 {
		return "No orders found.", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d orders:", list.Total)
	for _, o := range list.Data {
		fmt.Fprintf(&b, "\n  %s  %s  total=%s  payment=%s", o.ID, o.Status, o.TotalAmount, o.PaymentState)
	}
	return b.String(), nil
}

func (p *Processor) insPag(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	req := dto.RecordPaymentRequest{
		OrderID:     cmd.arg(0),
		PaymentType: cmd.arg(2),
	}
	amount, err := decimal.NewFromString(cmd.arg(1))
	if err != nil {
		return "", domain.Validation("amount %q is not a number", cmd.arg(1))
	}
	req.Amount = amount
	if inst := cmd.arg(3); inst != "" {
		req.InstallmentID = &inst
	}
	payment, err := p.payments.Record(ctx, req)
	if err != nil {
		return "", err
	}
	reply := fmt.Sprintf("Payment %s of %s recorded on order %s. Order payment state: %s.",
		payment.ID, payment.Amount, payment.OrderID, payment.OrderPaymentState)
	if payment.InstallmentState != nil {
		reply += fmt.Sprintf(" Installment state: %s.", *payment.InstallmentState)
	}
	return reply, nil
}

func (p *Processor) busPag(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(1); err != nil {
		return "", err
	}
	id, err := parseUUID(cmd.arg(0), "payment id")
	if err != nil {
		return "", err
	}
	payment, err := p.payments.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Payment %s  order=%s  amount=%s  type=%s  at=%s",
		payment.ID, payment.OrderID, payment.Amount, payment.PaymentType, payment.PaidAt), nil
}

func (p *Processor) lisPag(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(1); err != nil {
		return "", err
	}
	orderID, err := parseUUID(cmd.arg(0), "order id")
	if err != nil {
		return "", err
	}
	payments, err := p.payments.ListByOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if len(payments) == 0 {
		return fmt.Sprintf("No payments on order %s.", orderID), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d payments on order %s:", len(payments), orderID)
	for _, pay := range payments {
		fmt.Fprintf(&b, "\n  %s  %s  %s  %s", pay.ID, pay.Amount, pay.PaymentType, pay.PaidAt)
	}
	return b.String(), nil
}

func (p *Processor) lisCuo(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(1); err != nil {
		return "", err
	}
	orderID, err := parseUUID(cmd.arg(0), "order id")
	if err != nil {
		return "", err
	}
	installments, err := p.installments.ListByOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	return formatInstallments(fmt.Sprintf("Installments of order %s", orderID), installments), nil
}

func (p *Processor) lisCes(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(1); err != nil {
		return "", err
	}
	installments, err := p.installments.ListByState(ctx, cmd.arg(0))
	if err != nil {
		return "", err
	}
	return formatInstallments(fmt.Sprintf("Installments in state %s", cmd.arg(0)), installments), nil
}

func (p *Processor) lisVen(ctx context.Context) (string, error) {
	installments, err := p.installments.ListOverdue(ctx)
	if err != nil {
		return "", err
	}
	return formatInstallments("Overdue installments", installments), nil
}

func (p *Processor) bomEdge(ctx context.Context, cmd *Command, update bool) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	productID, err := parseUUID(cmd.arg(0), "product id")
	if err != nil {
		return "", err
	}
	supplyID, err := parseUUID(cmd.arg(1), "supply id")
	if err != nil {
		return "", err
	}
	amount, err := decimal.NewFromString(cmd.arg(2))
	if err != nil {
		return "", domain.Validation("amount %q is not a number", cmd.arg(2))
	}
	var edge *dto.BomEdgeResponse
	if update {
		edge, err = p.bom.UpdateEdge(ctx, productID, supplyID, amount)
	} else {
		edge, err = p.bom.AddEdge(ctx, productID, supplyID, amount)
	}
	if err != nil {
		return "", err
	}
	verb := "now requires"
	if update {
		verb = "updated to require"
	}
	return fmt.Sprintf("Product %s %s %s of supply %s per unit.",
		edge.ProductID, verb, edge.RequiredAmount, edge.SupplyID), nil
}

func (p *Processor) remSupp(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(2); err != nil {
		return "", err
	}
	productID, err := parseUUID(cmd.arg(0), "product id")
	if err != nil {
		return "", err
	}
	supplyID, err := parseUUID(cmd.arg(1), "supply id")
	if err != nil {
		return "", err
	}
	if err := p.bom.RemoveEdge(ctx, productID, supplyID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Supply %s removed from the bill of materials of product %s.", supplyID, productID), nil
}

func (p *Processor) calRsu(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(2); err != nil {
		return "", err
	}
	productID, err := parseUUID(cmd.arg(0), "product id")
	if err != nil {
		return "", err
	}
	qty, err := parseInt(cmd.arg(1), "quantity")
	if err != nil {
		return "", err
	}
	required, err := p.bom.RequiredFor(ctx, productID, qty)
	if err != nil {
		return "", err
	}
	if len(required) == 0 {
		return fmt.Sprintf("Product %s has no bill of materials.", productID), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Supplies required for %d units of product %s:", qty, productID)
	for _, r := range required {
		fmt.Fprintf(&b, "\n  %s: %s (in stock %s)", r.Supply, r.Required, r.InStock)
	}
	return b.String(), nil
}

func (p *Processor) valSupp(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(2); err != nil {
		return "", err
	}
	productID, err := parseUUID(cmd.arg(0), "product id")
	if err != nil {
		return "", err
	}
	qty, err := parseInt(cmd.arg(1), "quantity")
	if err != nil {
		return "", err
	}
	ok, err := p.bom.IsAvailable(ctx, productID, qty)
	if err != nil {
		return "", err
	}
	if ok {
		return fmt.Sprintf("Stock is sufficient to produce %d units of product %s.", qty, productID), nil
	}
	return fmt.Sprintf("Stock is NOT sufficient to produce %d units of product %s.", qty, productID), nil
}

func (p *Processor) conSupp(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	productID, err := parseUUID(cmd.arg(0), "product id")
	if err != nil {
		return "", err
	}
	qty, err := parseInt(cmd.arg(1), "quantity")
	if err != nil {
		return "", err
	}
	productionOrderID, err := parseUUID(cmd.arg(2), "production order id")
	if err != nil {
		return "", err
	}
	if err := p.bom.Consume(ctx, productID, qty, productionOrderID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Supplies consumed for %d units of product %s (production order %s).",
		qty, productID, productionOrderID), nil
}

func (p *Processor) movSup(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	supplyID, err := parseUUID(cmd.arg(0), "supply id")
	if err != nil {
		return "", err
	}
	qty, err := decimal.NewFromString(cmd.arg(2))
	if err != nil {
		return "", domain.Validation("quantity %q is not a number", cmd.arg(2))
	}
	movement, err := p.supplies.RegisterMovement(ctx, supplyID, dto.RegisterMovementRequest{
		Type:     strings.ToUpper(cmd.arg(1)),
		Quantity: qty,
		Reason:   cmd.arg(3),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s of %s on supply %s: stock %s -> %s.",
		movement.Type, movement.Quantity, supplyID, movement.StockBefore, movement.StockAfter), nil
}

func (p *Processor) movPro(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	productID, err := parseUUID(cmd.arg(0), "product id")
	if err != nil {
		return "", err
	}
	qty, err := decimal.NewFromString(cmd.arg(2))
	if err != nil {
		return "", domain.Validation("quantity %q is not a number", cmd.arg(2))
	}
	movement, err := p.products.RegisterMovement(ctx, productID, dto.RegisterMovementRequest{
		Type:     strings.ToUpper(cmd.arg(1)),
		Quantity: qty,
		Reason:   cmd.arg(3),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s of %d on product %s: stock %d -> %d.",
		movement.Type, movement.Quantity, productID, movement.StockBefore, movement.StockAfter), nil
}

func (p *Processor) insProd(ctx context.Context, cmd *Command) (string, error) {
	if err := cmd.requireArgs(3); err != nil {
		return "", err
	}
	po, err := p.production.CreateForDetail(ctx, dto.CreateProductionOrderRequest{
		OrderDetailID: cmd.arg(0),
		StartDate:     cmd.arg(1),
		EstimatedDate: cmd.arg(2),
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Production order %s created for detail %s: %s to %s, status %s.",
		po.ID, po.OrderDetailID, po.StartDate, po.EstimatedDate, po.Status), nil
}

func formatInstallments(header string, installments []dto.InstallmentResponse) string {
	if len(installments) == 0 {
		return header + ": none."
	}
	var b strings.Builder
	b.WriteString(header + ":")
	for _, inst := range installments {
		fmt.Fprintf(&b, "\n  #%d  %s  due %s  paid %s  %s",
			inst.Number, inst.Amount, inst.DueDate, inst.AmountPaid, inst.State)
	}
	return b.String()
}

func parseUUID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Validation("%s %q is not a valid uuid", what, raw)
	}
	return id, nil
}

func parseInt(raw, what string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validation("%s %q is not an integer", what, raw)
	}
	return n, nil
}

const helpText = `Available commands:
  INSORD["clientCI","userCI","Cash|Credit"]          create an order header
  ADDET["orderId","productId","qty"]                 add a line to a draft order
  CONFORD["orderId","installments"]                  confirm (installments for Credit)
  BUSORD["orderId"]                                  show one order
  LISORD["status?"]                                  list orders
  INSPAG["orderId","amount","type","installmentId?"] record a payment
  BUSPAG["paymentId"]                                show one payment
  LISPAG["orderId"]                                  payments of an order
  LISCUO["orderId"]                                  installments of an order
  LISCES["Pending|Partial|Paid"]                     installments by state
  LISVEN[]                                           overdue installments
  ADDSUPP["productId","supplyId","amount"]           add a BOM requirement
  UPDPSP["productId","supplyId","amount"]            update a BOM requirement
  REMSUPP["productId","supplyId"]                    remove a BOM requirement
  CALRSU["productId","qty"]                          required supplies for qty units
  VALSUPP["productId","qty"]                         check supply availability
  CONSUPP["productId","qty","productionOrderId"]     consume supplies for production
  MOVSUP["supplyId","ENTRY|EXIT|ADJUSTMENT","qty","reason?"]   supply stock movement
  MOVPRO["productId","ENTRY|EXIT|ADJUSTMENT","qty","reason?"]  product stock movement
  INSPROD["orderDetailId","YYYY-MM-DD","YYYY-MM-DD"] create a production order
  HELP[]                                             this text`
