package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrDishReferenced = errors.New("dish is referenced by existing orders")

// Dish is a menu item managed by the cooks. Removing a dish from sale is
// done by toggling Available; a hard delete is refused while any order
// line still references it.
type Dish struct {
	gorm.Model
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice" gorm:"type:decimal(10,2)"`
	Category    string          `json:"category"`
	Tags        datatypes.JSON  `json:"tags"`
	Available   bool            `json:"available" gorm:"default:true"`
}

// DeleteDish removes a dish unless an order line references it.
func DeleteDish(db *gorm.DB, dishID uint) error {
	var count int64
	if err := db.Model(&OrderItem{}).Where("dish_id = ?", dishID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDishReferenced
	}
	return db.Delete(&Dish{}, dishID).Error
}
