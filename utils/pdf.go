package utils

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Grey-kingreys/restaurant/models"
	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"
)

// ReportPDF renders the activity report: a header, a summary table of
// the aggregated periods and an itemized listing of payments. Pagination
// is handled by gofpdf as cells overflow.
func ReportPDF(rows []models.ReportRow, payments []models.Payment, generated time.Time) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Restaurant Activity Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated on %s", generated.Format("02/01/2006 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Period", "Orders", "Paid", "Revenue", "Expenses", "Net"}
	widths := []float64{32, 22, 22, 38, 38, 38}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		cells := []string{
			row.Period,
			fmt.Sprintf("%d", row.OrderCount),
			fmt.Sprintf("%d", row.PaidCount),
			row.Revenue.StringFixed(2),
			row.Expenses.StringFixed(2),
			row.Net.StringFixed(2),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, "Payments")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	payHeaders := []string{"Date", "Order", "Table", "Amount"}
	payWidths := []float64{45, 30, 60, 55}
	for i, header := range payHeaders {
		pdf.CellFormat(payWidths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, payment := range payments {
		cells := []string{
			payment.CreatedAt.Format("02/01/2006 15:04"),
			fmt.Sprintf("#%d", payment.OrderID),
			payment.Order.Table.Login,
			payment.Amount.StringFixed(2),
		}
		for i, cell := range cells {
			pdf.CellFormat(payWidths[i], 8, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// ReceiptPDF renders the receipt of one order.
func ReceiptPDF(order *models.Order) (*bytes.Buffer, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Receipt - Order #%d", order.ID))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Table: %s", order.Table.Login))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Date: %s", order.CreatedAt.Format("02/01/2006 15:04")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	headers := []string{"Dish", "Qty", "Unit price", "Line total"}
	widths := []float64{80, 20, 45, 45}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		cells := []string{
			item.DishName,
			fmt.Sprintf("%d", item.Quantity),
			item.UnitPrice.StringFixed(2),
			lineTotal.StringFixed(2),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 8, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(145, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 10, order.Total.StringFixed(2), "1", 0, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
