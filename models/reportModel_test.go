package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func payNewOrder(t *testing.T, db *gorm.DB, tableID, serverID uint) *Order {
	t.Helper()
	order, err := CreateOrderFromCart(db, tableID, buildCart(t))
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}
	if err := MarkServed(db, order.ID, serverID); err != nil {
		t.Fatalf("MarkServed failed: %v", err)
	}
	if _, err := MarkPaid(db, order.ID); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	return order
}

func TestBuildReportRow(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")
	server := createTestServer(t, db, "server01")

	payNewOrder(t, db, table.ID, server.ID)
	payNewOrder(t, db, table.ID, server.ID)

	// a pending order counts towards order_count but not revenue
	if _, err := CreateOrderFromCart(db, table.ID, buildCart(t)); err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}

	if _, err := RecordExpense(db, "Gaz", decimal.RequireFromString("6.00"), time.Now(), nil); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	row, err := BuildReportRow(db, "today", from, to)
	if err != nil {
		t.Fatalf("BuildReportRow failed: %v", err)
	}

	if row.OrderCount != 3 {
		t.Fatalf("expected 3 orders, got %d", row.OrderCount)
	}
	if row.PaidCount != 2 {
		t.Fatalf("expected 2 paid orders, got %d", row.PaidCount)
	}
	if row.PaymentCount != 2 {
		t.Fatalf("expected 2 payments, got %d", row.PaymentCount)
	}
	if !row.Revenue.Equal(decimal.RequireFromString("26.00")) {
		t.Fatalf("expected revenue 26.00, got %s", row.Revenue)
	}
	if row.ExpenseCount != 1 {
		t.Fatalf("expected 1 expense, got %d", row.ExpenseCount)
	}
	if !row.Expenses.Equal(decimal.RequireFromString("6.00")) {
		t.Fatalf("expected expenses 6.00, got %s", row.Expenses)
	}
	if !row.Net.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected net 20.00, got %s", row.Net)
	}
}

func TestBuildReportRowEmptyPeriod(t *testing.T) {
	db := openTestDB(t)

	from := time.Now().AddDate(0, 0, -14)
	to := time.Now().AddDate(0, 0, -7)
	row, err := BuildReportRow(db, "last week", from, to)
	if err != nil {
		t.Fatalf("BuildReportRow failed: %v", err)
	}

	if row.OrderCount != 0 || row.PaymentCount != 0 || row.ExpenseCount != 0 {
		t.Fatal("empty period should have zero counts")
	}
	if !row.Revenue.IsZero() || !row.Expenses.IsZero() || !row.Net.IsZero() {
		t.Fatal("empty period should aggregate to zero")
	}
}

func TestBuildDailyReportRows(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")
	server := createTestServer(t, db, "server01")

	today := time.Now().Truncate(24 * time.Hour)
	payNewOrder(t, db, table.ID, server.ID)
	rows, err := BuildDailyReportRows(db, today.AddDate(0, 0, -2), today.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("BuildDailyReportRows failed: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 daily rows, got %d", len(rows))
	}
	if rows[0].PaymentCount != 0 || rows[1].PaymentCount != 0 {
		t.Fatal("past days should be empty")
	}
	if rows[2].PaymentCount != 1 {
		t.Fatalf("expected today's payment in the last row, got %d", rows[2].PaymentCount)
	}
	if !rows[2].Revenue.Equal(decimal.RequireFromString("13.00")) {
		t.Fatalf("expected revenue 13.00, got %s", rows[2].Revenue)
	}
}
