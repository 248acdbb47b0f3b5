package services

import "github.com/yeremiapane/restaurant-orders/models"

// PageSize is the number of orders shown per page.
const PageSize = 10

// ItemTotal is the summed quantity of one menu item across a set of orders.
type ItemTotal struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// OrderPage is one page of a caller's visible orders. ItemTotals covers every
// visible order, not only the ones on this page.
type OrderPage struct {
	Orders      []models.Order `json:"orders"`
	Page        int            `json:"page"`
	PerPage     int            `json:"per_page"`
	TotalOrders int64          `json:"total_orders"`
	TotalPages  int            `json:"total_pages"`
	ItemTotals  []ItemTotal    `json:"item_totals"`
}

func (p *OrderPage) HasPrev() bool { return p.Page > 1 }
func (p *OrderPage) HasNext() bool { return p.Page < p.TotalPages }
func (p *OrderPage) PrevPage() int { return p.Page - 1 }
func (p *OrderPage) NextPage() int { return p.Page + 1 }

// TotalPages is ceil(total/perPage).
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// Offset is the index of the first order on page (1-based).
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
