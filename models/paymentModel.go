package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount     = errors.New("amount must be strictly positive")
	ErrInsufficientFunds = errors.New("insufficient funds in the caisse")
)

// Payment records the settlement of exactly one order. It is only ever
// created by MarkPaid; the unique index on OrderID backs the one-to-one.
type Payment struct {
	gorm.Model
	OrderID uint            `json:"orderId" gorm:"uniqueIndex"`
	Order   Order           `json:"order" gorm:"foreignKey:OrderID"`
	Amount  decimal.Decimal `json:"amount" gorm:"type:decimal(10,2)"`
}

// Caisse is the restaurant's running cash balance. There is exactly one
// row (id = 1). The balance equals the sum of payments minus the sum of
// expenses and is maintained incrementally; all mutations go through
// CreditCaisse and the conditional debit in RecordExpense, never through
// a read-then-write.
type Caisse struct {
	gorm.Model
	Balance decimal.Decimal `json:"balance" gorm:"type:decimal(12,2)"`
}

const caisseID = 1

// GetCaisse returns the singleton caisse row, creating it at zero on
// first use.
func GetCaisse(db *gorm.DB) (*Caisse, error) {
	var caisse Caisse
	err := db.Where(Caisse{Model: gorm.Model{ID: caisseID}}).
		Attrs(Caisse{Balance: decimal.Zero}).
		FirstOrCreate(&caisse).Error
	if err != nil {
		return nil, err
	}
	return &caisse, nil
}

// CreditCaisse increments the balance in a single statement. Payments
// are always positive (the amount is copied from a validated order
// total) so there is no rejection path.
func CreditCaisse(tx *gorm.DB, amount decimal.Decimal) error {
	if _, err := GetCaisse(tx); err != nil {
		return err
	}
	return tx.Model(&Caisse{}).
		Where("id = ?", caisseID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}

// Expense is money taken out of the caisse by the accountant. The
// recorder reference survives staff deletion as NULL.
type Expense struct {
	gorm.Model
	Motif        string          `json:"motif" binding:"required"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(10,2)"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	RecordedByID *uint           `json:"recordedById"`
	RecordedBy   *User           `json:"recordedBy" gorm:"foreignKey:RecordedByID;constraint:OnDelete:SET NULL"`
}

// RecordExpense writes an expense and debits the caisse in one
// transaction. The balance check and the decrement are a single
// conditional UPDATE (balance >= amount), so two concurrent expenses can
// never both pass against a stale balance: the statement that matches no
// row loses and the whole transaction rolls back with
// ErrInsufficientFunds.
func RecordExpense(db *gorm.DB, motif string, amount decimal.Decimal, date time.Time, recordedBy *uint) (*Expense, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	expense := Expense{
		Motif:        motif,
		Amount:       amount,
		ExpenseDate:  date,
		RecordedByID: recordedBy,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetCaisse(tx); err != nil {
			return err
		}

		result := tx.Model(&Caisse{}).
			Where("id = ? AND balance >= ?", caisseID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		return tx.Create(&expense).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}
