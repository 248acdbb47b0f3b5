package models

import (
	"math"
	"time"
)

type Order struct {
	ID        uint        `gorm:"column:order_id;primaryKey" json:"order_id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	User      *User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
	Total     int64       `gorm:"not null;default:0" json:"total"`
	CreatedAt time.Time   `gorm:"not null;index" json:"created_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// Username of the owning user; empty unless the User association was loaded.
func (o Order) Username() string {
	if o.User == nil {
		return ""
	}
	return o.User.Username
}

// ItemsTotal sums quantity times unit price over the line items. ok is false
// when the sum overflows.
func (o Order) ItemsTotal() (total int64, ok bool) {
	for _, item := range o.Items {
		sub, ok := item.Subtotal()
		if !ok || total > math.MaxInt64-sub {
			return 0, false
		}
		total += sub
	}
	return total, true
}

// Quantities maps item name to quantity, used to prefill the edit form.
func (o Order) Quantities() map[string]int {
	out := make(map[string]int, len(o.Items))
	for _, item := range o.Items {
		out[item.ItemName] += item.Quantity
	}
	return out
}
