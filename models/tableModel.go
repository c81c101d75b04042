package models

import (
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultSessionGrace is how long a table stays logged in after its
// order is paid.
const DefaultSessionGrace = time.Minute

// SessionGrace returns the grace window, overridable through
// SESSION_GRACE_SECONDS.
func SessionGrace() time.Duration {
	if raw := os.Getenv("SESSION_GRACE_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return DefaultSessionGrace
}

// RestaurantTable is a physical table of the restaurant, tied one-to-one
// to a user account with the table role.
type RestaurantTable struct {
	gorm.Model
	Number string `json:"number" gorm:"uniqueIndex;size:10" binding:"required"`
	Seats  int    `json:"seats" binding:"required,min=1"`
	UserID uint   `json:"userId" gorm:"uniqueIndex"`
	User   User   `json:"user" gorm:"foreignKey:UserID"`
}

// TableSession tracks one authenticated sitting of a table. When the
// table's order is paid the session gets a payment timestamp and is
// deactivated once the grace window has elapsed, unless the table has
// already started a new order. A deactivated session is never revived;
// the next login creates a fresh one.
type TableSession struct {
	gorm.Model
	TableID          uint       `json:"tableId" gorm:"index"`
	SessionToken     string     `json:"sessionToken" gorm:"uniqueIndex;size:36"`
	PaidOrderID      *uint      `json:"paidOrderId"`
	PaymentTimestamp *time.Time `json:"paymentTimestamp"`
	Active           bool       `json:"active" gorm:"default:true"`
}

// NewTableSession opens a fresh session for a table at login time,
// deactivating whatever session was still active for it.
func NewTableSession(db *gorm.DB, tableID uint) (*TableSession, error) {
	session := TableSession{
		TableID:      tableID,
		SessionToken: uuid.NewString(),
		Active:       true,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&TableSession{}).
			Where("table_id = ? AND active = ?", tableID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// StampPaidSession records the payment moment on the table's active
// session, starting the expiry clock. Called from MarkPaid inside the
// payment transaction.
func StampPaidSession(tx *gorm.DB, tableID uint, orderID uint) error {
	now := time.Now()
	return tx.Model(&TableSession{}).
		Where("table_id = ? AND active = ? AND payment_timestamp IS NULL", tableID, true).
		Updates(map[string]any{"paid_order_id": orderID, "payment_timestamp": now}).Error
}

// IsExpirable reports whether the grace window since payment has fully
// elapsed. Sessions without a payment timestamp never expire.
func (s *TableSession) IsExpirable(grace time.Duration) bool {
	if s.PaymentTimestamp == nil {
		return false
	}
	return time.Since(*s.PaymentTimestamp) > grace
}

// Expire deactivates the session. Irreversible.
func (s *TableSession) Expire(db *gorm.DB) error {
	s.Active = false
	return db.Model(s).Update("active", false).Error
}

// HasActiveOrder reports whether the table currently holds an order that
// is still pending or served. Such a table is mid-order and must not be
// logged out even if its previous payment is past the grace window.
func HasActiveOrder(db *gorm.DB, tableID uint) (bool, error) {
	var count int64
	err := db.Model(&Order{}).
		Where("table_id = ? AND status IN ?", tableID, []string{StatusPending, StatusServed}).
		Count(&count).Error
	return count > 0, err
}

// SweepExpiredSessions bulk-deactivates every session whose grace window
// has elapsed, skipping tables with an order in progress. Invoked by the
// periodic sweeper and defensively on table requests.
func SweepExpiredSessions(db *gorm.DB, grace time.Duration) (int64, error) {
	cutoff := time.Now().Add(-grace)

	activeOrderTables := db.Model(&Order{}).
		Select("table_id").
		Where("status IN ?", []string{StatusPending, StatusServed})

	result := db.Model(&TableSession{}).
		Where("active = ? AND payment_timestamp IS NOT NULL AND payment_timestamp <= ?", true, cutoff).
		Where("table_id NOT IN (?)", activeOrderTables).
		Update("active", false)

	return result.RowsAffected, result.Error
}
