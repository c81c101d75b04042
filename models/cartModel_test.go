package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dish(id uint, name string, price string) *Dish {
	return &Dish{
		Model:     gorm.Model{ID: id},
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		Available: true,
	}
}

func TestCartAddAccumulatesQuantity(t *testing.T) {
	cart := NewCart()
	plate := dish(1, "Poulet Yassa", "5.00")

	cart.Add(plate, 2, false)
	cart.Add(plate, 3, false)

	if got := cart.Lines[1].Quantity; got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
}

func TestCartAddClampsToRange(t *testing.T) {
	cart := NewCart()
	plate := dish(1, "Poulet Yassa", "5.00")

	cart.Add(plate, 7, false)
	cart.Add(plate, 7, false)
	if got := cart.Lines[1].Quantity; got != CartMaxQuantity {
		t.Fatalf("expected quantity clamped to %d, got %d", CartMaxQuantity, got)
	}

	cart.Add(plate, 0, true)
	if got := cart.Lines[1].Quantity; got != CartMinQuantity {
		t.Fatalf("expected quantity clamped to %d, got %d", CartMinQuantity, got)
	}
}

func TestCartAddReplaceOverwritesQuantity(t *testing.T) {
	cart := NewCart()
	plate := dish(1, "Poulet Yassa", "5.00")

	cart.Add(plate, 4, false)
	cart.Add(plate, 2, true)

	if got := cart.Lines[1].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
}

func TestCartTotalsAndCounts(t *testing.T) {
	cart := NewCart()
	cart.Add(dish(1, "Poulet Yassa", "5.00"), 2, false)
	cart.Add(dish(2, "Alloco", "3.00"), 1, false)

	if got := cart.Total(); !got.Equal(decimal.RequireFromString("13.00")) {
		t.Fatalf("expected total 13.00, got %s", got)
	}
	if got := cart.ItemCount(); got != 2 {
		t.Fatalf("expected 2 distinct dishes, got %d", got)
	}
	if got := cart.LineCount(); got != 3 {
		t.Fatalf("expected 3 articles, got %d", got)
	}
	if cart.IsEmpty() {
		t.Fatal("cart should not be empty")
	}
}

// The unit price is captured at add time: a later catalog price change
// must not leak into an existing cart line.
func TestCartKeepsAddTimePrice(t *testing.T) {
	cart := NewCart()
	plate := dish(1, "Poulet Yassa", "5.00")
	cart.Add(plate, 1, false)

	plate.UnitPrice = decimal.RequireFromString("9.00")
	cart.Add(plate, 1, false)

	if got := cart.Lines[1].UnitPrice; !got.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("expected snapshotted price 5.00, got %s", got)
	}
	if got := cart.Total(); !got.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected total 10.00, got %s", got)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCart()
	cart.Add(dish(1, "Poulet Yassa", "5.00"), 1, false)
	cart.Add(dish(2, "Alloco", "3.00"), 1, false)

	cart.Remove(1)
	if _, ok := cart.Lines[1]; ok {
		t.Fatal("dish 1 should have been removed")
	}

	cart.Clear()
	if !cart.IsEmpty() {
		t.Fatal("cart should be empty after clear")
	}
}
