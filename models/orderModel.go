package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order lifecycle. Transitions are one-directional:
// EN_ATTENTE -> SERVIE -> PAYEE, nothing ever moves backwards.
const (
	StatusPending = "EN_ATTENTE"
	StatusServed  = "SERVIE"
	StatusPaid    = "PAYEE"
)

var (
	ErrEmptyCart   = errors.New("cart is empty")
	ErrNotPending  = errors.New("order is not pending")
	ErrNotServed   = errors.New("order is not served")
	ErrAlreadyPaid = errors.New("order is already paid")
)

type Order struct {
	gorm.Model
	TableID  uint            `json:"tableId" gorm:"index"`
	Table    User            `json:"table" gorm:"foreignKey:TableID"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`
	Status   string          `json:"status" gorm:"size:20;index"`
	ServerID *uint           `json:"serverId"`
	Items    []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem keeps the unit price captured when the order was validated.
// A dish appears at most once per order; repeats aggregate into Quantity.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId" gorm:"uniqueIndex:idx_order_dish"`
	DishID    uint            `json:"dishId" gorm:"uniqueIndex:idx_order_dish"`
	DishName  string          `json:"dishName"`
	UnitPrice decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"`
	Quantity  int             `json:"quantity"`
}

func (o *Order) CanBeServed() bool {
	return o.Status == StatusPending
}

func (o *Order) CanBePaid() bool {
	return o.Status == StatusServed
}

// CreateOrderFromCart validates the cart of a table into a pending order.
// Order and lines are written in one transaction: on any failure nothing
// is created. The caller clears the cart once this returns successfully.
func CreateOrderFromCart(db *gorm.DB, tableID uint, cart *Cart) (*Order, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	order := Order{
		TableID: tableID,
		Total:   cart.Total(),
		Status:  StatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for dishID, line := range cart.Lines {
			item := OrderItem{
				OrderID:   order.ID,
				DishID:    dishID,
				DishName:  line.DishName,
				UnitPrice: line.UnitPrice,
				Quantity:  line.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	db.Preload("Items").First(&order, order.ID)
	return &order, nil
}

// MarkServed advances a pending order to served and records who served
// it. The update is conditional on the current status so two concurrent
// calls cannot both succeed; the loser gets ErrNotPending.
func MarkServed(db *gorm.DB, orderID uint, serverID uint) error {
	result := db.Model(&Order{}).
		Where("id = ? AND status = ?", orderID, StatusPending).
		Updates(map[string]any{"status": StatusServed, "server_id": serverID})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

// MarkPaid settles a served order. In a single transaction it moves the
// order to paid, creates the payment for the order total, credits the
// caisse and stamps the table's active session so it can expire. The
// status update is conditional, which guarantees at-most-once payment
// creation even under concurrent calls.
func MarkPaid(db *gorm.DB, orderID uint) (*Payment, error) {
	var payment Payment

	err := db.Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if order.Status == StatusPaid {
			return ErrAlreadyPaid
		}

		result := tx.Model(&Order{}).
			Where("id = ? AND status = ?", orderID, StatusServed).
			Update("status", StatusPaid)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotServed
		}

		payment = Payment{OrderID: order.ID, Amount: order.Total}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if err := CreditCaisse(tx, order.Total); err != nil {
			return err
		}

		return StampPaidSession(tx, order.TableID, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
