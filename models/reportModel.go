package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReportRow is one aggregated reporting period. It is a read-only
// snapshot derived from payments, expenses and orders; nothing here is
// persisted.
type ReportRow struct {
	Period       string          `json:"period"`
	OrderCount   int64           `json:"orderCount"`
	PaidCount    int64           `json:"paidCount"`
	Revenue      decimal.Decimal `json:"revenue"`
	PaymentCount int64           `json:"paymentCount"`
	Expenses     decimal.Decimal `json:"expenses"`
	ExpenseCount int64           `json:"expenseCount"`
	Net          decimal.Decimal `json:"net"`
}

func sumAmount(query *gorm.DB) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error
	return row.Total, err
}

// BuildReportRow aggregates activity between from (inclusive) and to
// (exclusive) under the given period label.
func BuildReportRow(db *gorm.DB, period string, from, to time.Time) (ReportRow, error) {
	row := ReportRow{Period: period}

	revenue, err := sumAmount(db.Model(&Payment{}).
		Where("created_at >= ? AND created_at < ?", from, to))
	if err != nil {
		return row, err
	}
	row.Revenue = revenue

	if err := db.Model(&Payment{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&row.PaymentCount).Error; err != nil {
		return row, err
	}

	expenses, err := sumAmount(db.Model(&Expense{}).
		Where("expense_date >= ? AND expense_date < ?", from, to))
	if err != nil {
		return row, err
	}
	row.Expenses = expenses

	if err := db.Model(&Expense{}).
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Count(&row.ExpenseCount).Error; err != nil {
		return row, err
	}

	if err := db.Model(&Order{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&row.OrderCount).Error; err != nil {
		return row, err
	}

	if err := db.Model(&Order{}).
		Where("created_at >= ? AND created_at < ? AND status = ?", from, to, StatusPaid).
		Count(&row.PaidCount).Error; err != nil {
		return row, err
	}

	row.Net = row.Revenue.Sub(row.Expenses)
	return row, nil
}

// BuildDailyReportRows produces one row per day between from and to.
func BuildDailyReportRows(db *gorm.DB, from, to time.Time) ([]ReportRow, error) {
	var rows []ReportRow
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		next := day.AddDate(0, 0, 1)
		if next.After(to) {
			next = to
		}
		row, err := BuildReportRow(db, day.Format("2006-01-02"), day, next)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
