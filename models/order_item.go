package models

import "math"

// MaxQuantity is the largest quantity accepted for one line item.
const MaxQuantity = 999

type OrderItem struct {
	ID       uint   `gorm:"column:item_id;primaryKey" json:"item_id"`
	OrderID  uint   `gorm:"column:order_id;not null;index" json:"order_id"`
	ItemName string `gorm:"type:varchar(100);not null" json:"name"`
	Quantity int    `gorm:"not null" json:"quantity"`
	Price    int64  `gorm:"not null" json:"price"`
}

// Subtotal is quantity times unit price. ok is false when the product does
// not fit in an int64.
func (i OrderItem) Subtotal() (total int64, ok bool) {
	if i.Quantity <= 0 || i.Price <= 0 {
		return 0, i.Quantity >= 0 && i.Price >= 0
	}
	if i.Price > math.MaxInt64/int64(i.Quantity) {
		return 0, false
	}
	return int64(i.Quantity) * i.Price, true
}
