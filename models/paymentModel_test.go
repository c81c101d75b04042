package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func seedBalance(t *testing.T, db *gorm.DB, amount string) {
	t.Helper()
	if err := CreditCaisse(db, decimal.RequireFromString(amount)); err != nil {
		t.Fatalf("failed to seed balance: %v", err)
	}
}

func TestRecordExpense(t *testing.T) {
	db := openTestDB(t)
	seedBalance(t, db, "100.00")

	expense, err := RecordExpense(db, "gas bottle", decimal.RequireFromString("40.00"), time.Now(), nil)
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	if expense.ID == 0 {
		t.Fatal("expense was not persisted")
	}

	caisse, _ := GetCaisse(db)
	if !caisse.Balance.Equal(decimal.RequireFromString("60.00")) {
		t.Fatalf("expected balance 60.00, got %s", caisse.Balance)
	}
}

func TestRecordExpenseInsufficientFunds(t *testing.T) {
	db := openTestDB(t)
	seedBalance(t, db, "100.00")

	_, err := RecordExpense(db, "new oven", decimal.RequireFromString("150.00"), time.Now(), nil)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	caisse, _ := GetCaisse(db)
	if !caisse.Balance.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("balance must be unchanged, got %s", caisse.Balance)
	}

	var count int64
	db.Model(&Expense{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected expense left %d rows", count)
	}
}

func TestRecordExpenseRejectsNonPositiveAmounts(t *testing.T) {
	db := openTestDB(t)
	seedBalance(t, db, "100.00")

	for _, amount := range []string{"0", "-5.00"} {
		_, err := RecordExpense(db, "bogus", decimal.RequireFromString(amount), time.Now(), nil)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

// The running balance must always equal payments minus expenses, for
// any sequence of operations.
func TestBalanceMatchesLedger(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")
	server := createTestServer(t, db, "server01")

	totalPaid := decimal.Zero
	for i := 0; i < 3; i++ {
		order, err := CreateOrderFromCart(db, table.ID, buildCart(t))
		if err != nil {
			t.Fatalf("CreateOrderFromCart failed: %v", err)
		}
		if err := MarkServed(db, order.ID, server.ID); err != nil {
			t.Fatalf("MarkServed failed: %v", err)
		}
		if _, err := MarkPaid(db, order.ID); err != nil {
			t.Fatalf("MarkPaid failed: %v", err)
		}
		totalPaid = totalPaid.Add(order.Total)
	}

	spent := decimal.RequireFromString("7.50")
	if _, err := RecordExpense(db, "charcoal", spent, time.Now(), nil); err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	caisse, _ := GetCaisse(db)
	expected := totalPaid.Sub(spent)
	if !caisse.Balance.Equal(expected) {
		t.Fatalf("expected balance %s, got %s", expected, caisse.Balance)
	}
}

func TestGetCaisseCreatesSingleton(t *testing.T) {
	db := openTestDB(t)

	first, err := GetCaisse(db)
	if err != nil {
		t.Fatalf("GetCaisse failed: %v", err)
	}
	if !first.Balance.Equal(decimal.Zero) {
		t.Fatalf("fresh caisse should be zero, got %s", first.Balance)
	}

	second, err := GetCaisse(db)
	if err != nil {
		t.Fatalf("GetCaisse failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("GetCaisse must always return the same row")
	}

	var count int64
	db.Model(&Caisse{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one caisse row, found %d", count)
	}
}
