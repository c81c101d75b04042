package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func buildCart(t *testing.T) *Cart {
	t.Helper()
	cart := NewCart()
	cart.Add(dish(1, "Poulet Yassa", "5.00"), 2, false)
	cart.Add(dish(2, "Alloco", "3.00"), 1, false)
	return cart
}

func TestCreateOrderFromCart(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")

	order, err := CreateOrderFromCart(db, table.ID, buildCart(t))
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}

	if !order.Total.Equal(decimal.RequireFromString("13.00")) {
		t.Fatalf("expected total 13.00, got %s", order.Total)
	}
	if order.Status != StatusPending {
		t.Fatalf("expected status %s, got %s", StatusPending, order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Items))
	}

	for _, item := range order.Items {
		switch item.DishID {
		case 1:
			if item.Quantity != 2 || !item.UnitPrice.Equal(decimal.RequireFromString("5.00")) {
				t.Fatalf("unexpected line for dish 1: qty=%d price=%s", item.Quantity, item.UnitPrice)
			}
		case 2:
			if item.Quantity != 1 || !item.UnitPrice.Equal(decimal.RequireFromString("3.00")) {
				t.Fatalf("unexpected line for dish 2: qty=%d price=%s", item.Quantity, item.UnitPrice)
			}
		default:
			t.Fatalf("unexpected dish id %d", item.DishID)
		}
	}
}

func TestCreateOrderFromEmptyCart(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")

	if _, err := CreateOrderFromCart(db, table.ID, NewCart()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	var count int64
	db.Model(&Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no orders, found %d", count)
	}
}

// The order total is frozen at creation: catalog price changes after the
// cart was filled must not alter it.
func TestOrderTotalImmuneToCatalogChanges(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")

	plate := Dish{Name: "Poulet Yassa", UnitPrice: decimal.RequireFromString("5.00"), Available: true}
	if err := db.Create(&plate).Error; err != nil {
		t.Fatalf("failed to create dish: %v", err)
	}

	cart := NewCart()
	cart.Add(&plate, 2, false)

	plate.UnitPrice = decimal.RequireFromString("8.00")
	if err := db.Save(&plate).Error; err != nil {
		t.Fatalf("failed to update dish: %v", err)
	}

	order, err := CreateOrderFromCart(db, table.ID, cart)
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}
	if !order.Total.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected total 10.00 from add-time price, got %s", order.Total)
	}
}

func TestMarkServed(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")
	server := createTestServer(t, db, "server01")

	order, err := CreateOrderFromCart(db, table.ID, buildCart(t))
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}

	if err := MarkServed(db, order.ID, server.ID); err != nil {
		t.Fatalf("MarkServed failed: %v", err)
	}

	var reloaded Order
	db.First(&reloaded, order.ID)
	if reloaded.Status != StatusServed {
		t.Fatalf("expected status %s, got %s", StatusServed, reloaded.Status)
	}
	if reloaded.ServerID == nil || *reloaded.ServerID != server.ID {
		t.Fatal("expected serving staff to be recorded")
	}

	// second call must be rejected, not silently reapplied
	if err := MarkServed(db, order.ID, server.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestMarkPaidRequiresServed(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")

	order, err := CreateOrderFromCart(db, table.ID, buildCart(t))
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}

	if _, err := MarkPaid(db, order.ID); !errors.Is(err, ErrNotServed) {
		t.Fatalf("expected ErrNotServed, got %v", err)
	}

	var reloaded Order
	db.First(&reloaded, order.ID)
	if reloaded.Status != StatusPending {
		t.Fatalf("order should remain pending, got %s", reloaded.Status)
	}

	var payments int64
	db.Model(&Payment{}).Count(&payments)
	if payments != 0 {
		t.Fatalf("expected no payment rows, found %d", payments)
	}
}

func TestMarkPaid(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")
	server := createTestServer(t, db, "server01")

	order, err := CreateOrderFromCart(db, table.ID, buildCart(t))
	if err != nil {
		t.Fatalf("CreateOrderFromCart failed: %v", err)
	}
	if err := MarkServed(db, order.ID, server.ID); err != nil {
		t.Fatalf("MarkServed failed: %v", err)
	}

	payment, err := MarkPaid(db, order.ID)
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if !payment.Amount.Equal(order.Total) {
		t.Fatalf("payment amount %s does not match order total %s", payment.Amount, order.Total)
	}

	var reloaded Order
	db.First(&reloaded, order.ID)
	if reloaded.Status != StatusPaid {
		t.Fatalf("expected status %s, got %s", StatusPaid, reloaded.Status)
	}

	caisse, err := GetCaisse(db)
	if err != nil {
		t.Fatalf("GetCaisse failed: %v", err)
	}
	if !caisse.Balance.Equal(order.Total) {
		t.Fatalf("expected balance %s, got %s", order.Total, caisse.Balance)
	}
}

func TestMarkPaidTwiceCreatesOnePayment(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")
	server := createTestServer(t, db, "server01")

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

	if _, err := MarkPaid(db, order.ID); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}

	var payments int64
	db.Model(&Payment{}).Where("order_id = ?", order.ID).Count(&payments)
	if payments != 1 {
		t.Fatalf("expected exactly one payment, found %d", payments)
	}

	caisse, _ := GetCaisse(db)
	if !caisse.Balance.Equal(order.Total) {
		t.Fatalf("balance double-incremented: %s", caisse.Balance)
	}
}

// Once paid, nothing ever moves the order backwards.
func TestStatusIsMonotonic(t *testing.T) {
	db := openTestDB(t)
	table := createTestTable(t, db, "table001")
	server := createTestServer(t, db, "server01")

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

	if err := MarkServed(db, order.ID, server.ID); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on paid order, got %v", err)
	}

	var reloaded Order
	db.First(&reloaded, order.ID)
	if reloaded.Status != StatusPaid {
		t.Fatalf("paid order regressed to %s", reloaded.Status)
	}
}
