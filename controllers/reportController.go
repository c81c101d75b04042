package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/Grey-kingreys/restaurant/utils"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

func reportRange(ctx *gin.Context) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -7)
	to := now

	if parsed, ok := parseDateQuery(ctx, "from"); ok {
		from = parsed
	}
	if parsed, ok := parseDateQuery(ctx, "to"); ok {
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to
}

// ExportReportCSV streams per-day aggregates over the requested range.
func ExportReportCSV(ctx *gin.Context) {
	from, to := reportRange(ctx)

	rows, err := models.BuildDailyReportRows(initializers.DB, from, to)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to aggregate report", err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=report.csv")
	ctx.Header("Content-Type", "text/csv")

	writer := csv.NewWriter(ctx.Writer)
	writer.Write([]string{"period", "order_count", "paid_order_count", "revenue", "expenses", "net"})
	for _, row := range rows {
		writer.Write([]string{
			row.Period,
			strconv.FormatInt(row.OrderCount, 10),
			strconv.FormatInt(row.PaidCount, 10),
			row.Revenue.StringFixed(2),
			row.Expenses.StringFixed(2),
			row.Net.StringFixed(2),
		})
	}
	writer.Flush()
}

// ExportPaymentsXLSX writes the payment listing of the range as a
// spreadsheet.
func ExportPaymentsXLSX(ctx *gin.Context) {
	from, to := reportRange(ctx)

	var payments []models.Payment
	result := initializers.DB.Preload("Order.Table").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc").
		Find(&payments)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch payments", result.Error)
		return
	}

	file := excelize.NewFile()
	defer file.Close()

	sheet := "Payments"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Order", "Table", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, header)
	}

	for i, payment := range payments {
		rowIndex := i + 2
		file.SetCellValue(sheet, fmt.Sprintf("A%d", rowIndex), payment.CreatedAt.Format("2006-01-02 15:04"))
		file.SetCellValue(sheet, fmt.Sprintf("B%d", rowIndex), payment.OrderID)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", rowIndex), payment.Order.Table.Login)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", rowIndex), payment.Amount.StringFixed(2))
	}

	ctx.Header("Content-Disposition", "attachment; filename=payments.xlsx")
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(ctx.Writer); err != nil {
		initializers.LogError("controllers", "write xlsx", err)
	}
}

// ExportReportPDF renders the summary table and the itemized payment
// listing of the range.
func ExportReportPDF(ctx *gin.Context) {
	from, to := reportRange(ctx)

	rows, err := models.BuildDailyReportRows(initializers.DB, from, to)
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to aggregate report", err)
		return
	}

	var payments []models.Payment
	result := initializers.DB.Preload("Order.Table").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at asc").
		Find(&payments)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch payments", result.Error)
		return
	}

	buf, err := utils.ReportPDF(rows, payments, time.Now())
	if err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to generate PDF", err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=report.pdf")
	ctx.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
