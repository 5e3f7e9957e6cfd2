package infra

// Order confirmation documents rendered with go-pdf/fpdf: an A4 page with the
// order header, its lines, the total, and the installment schedule for credit
// orders. The file lands in storagePath/order_{id}.pdf and is attached to the
// confirmation email by the worker.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateOrderPDF renders the confirmation document for an order. The order
// must carry its Details (with Product) and, for credit orders, Installments.
func GenerateOrderPDF(order *model.Order, companyName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("order_%s.pdf", order.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Order confirmation", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Order %s", order.ID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if order.Client != nil {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Client: %s (CI %s)", order.Client.Name, order.Client.CI), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, order.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Payment condition: %s", order.PaymentCondition), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	col1 := contentW * 0.46
	col2 := contentW * 0.12
	col3 := contentW * 0.21
	col4 := contentW * 0.21

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Line total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for i := range order.Details {
		d := &order.Details[i]
		name := d.ProductID.String()
		if d.Product != nil {
			name = d.Product.Name
		}
		if len(name) > 40 {
			name = name[:39] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", d.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, d.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, d.LineTotal().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "TOTAL:", "T", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, order.TotalAmount.StringFixed(2), "T", 1, "R", false, 0, "")

	if len(order.Installments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Installment schedule", "", 1, "L", false, 0, "")

		icol1 := contentW * 0.15
		icol2 := contentW * 0.45
		icol3 := contentW * 0.40

		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(icol1, 6, "#", "B", 0, "C", false, 0, "")
		pdf.CellFormat(icol2, 6, "Due date", "B", 0, "L", false, 0, "")
		pdf.CellFormat(icol3, 6, "Amount", "B", 1, "R", false, 0, "")

		pdf.SetFont("Helvetica", "", 9)
		for i := range order.Installments {
			inst := &order.Installments[i]
			pdf.CellFormat(icol1, 6, fmt.Sprintf("%d", inst.Number), "", 0, "C", false, 0, "")
			pdf.CellFormat(icol2, 6, inst.DueDate.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(icol3, 6, inst.Amount.StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Thank you for your order.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
