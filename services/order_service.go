package services

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/restaurant-orders/menu"
	"github.com/yeremiapane/restaurant-orders/metrics"
	"github.com/yeremiapane/restaurant-orders/models"
	"github.com/yeremiapane/restaurant-orders/utils"
)

// OrderService owns the order lifecycle. Methods that take an owner pointer
// restrict themselves to that user's orders; a nil owner is the administrative
// path and sees everything.
type OrderService struct {
	DB   *gorm.DB
	Menu *menu.Registry
}

func NewOrderService(db *gorm.DB, registry *menu.Registry) *OrderService {
	return &OrderService{DB: db, Menu: registry}
}

// Place prices the items against the menu and stores the order with its line
// items in one transaction. Unknown items are kept at price 0.
func (s *OrderService) Place(ctx context.Context, items map[string]int, ownerID uint) (order *models.Order, err error) {
	defer func() { metrics.ObserveOrder("place", err) }()

	lines := s.lineItems(items)
	total, err := priceLines(lines)
	if err != nil {
		return nil, err
	}

	order = &models.Order{UserID: ownerID, Total: total}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = order.ID
		}
		return tx.Omit(clause.Associations).Create(&lines).Error
	})
	if err != nil {
		logFailure("place", 0, ownerID, err)
		return nil, storageErr("place order", err)
	}

	order.Items = lines
	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  ownerID,
		"total":    order.Total,
	}).Info("order placed")
	return order, nil
}

// Get returns the order with its line items.
func (s *OrderService) Get(ctx context.Context, orderID uint, owner *uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items", orderItemsByID).
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		logFailure("get", orderID, ownerOf(owner), err)
		return nil, storageErr("get order", err)
	}
	if owner != nil && order.UserID != *owner {
		return nil, ErrForbidden
	}
	return &order, nil
}

// Update replaces every line item of the order and recomputes its total. When
// owner is set the order must belong to that user, otherwise nothing changes.
func (s *OrderService) Update(ctx context.Context, orderID uint, items map[string]int, owner *uint) (order *models.Order, err error) {
	defer func() { metrics.ObserveOrder("update", err) }()

	lines := s.lineItems(items)
	var current models.Order
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&current, orderID).Error; err != nil {
			return err
		}
		if owner != nil && current.UserID != *owner {
			return ErrForbidden
		}
		total, err := priceLines(lines)
		if err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderID = orderID
		}
		if err := tx.Omit(clause.Associations).Create(&lines).Error; err != nil {
			return err
		}

		current.Total = total
		return tx.Model(&models.Order{}).
			Where("order_id = ?", orderID).
			Update("total", current.Total).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case errors.Is(err, ErrForbidden):
		utils.InfoLogger.WithFields(logrus.Fields{"order_id": orderID, "user_id": ownerOf(owner)}).
			Warn("update refused: order belongs to another user")
		return nil, ErrForbidden
	case errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrOrderTooLarge):
		return nil, err
	default:
		logFailure("update", orderID, ownerOf(owner), err)
		return nil, storageErr("update order", err)
	}

	current.Items = lines
	return &current, nil
}

// Delete removes the order and its line items. When owner is set, orders
// belonging to someone else are left untouched.
func (s *OrderService) Delete(ctx context.Context, orderID uint, owner *uint) (err error) {
	defer func() { metrics.ObserveOrder("delete", err) }()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Order
		if err := tx.Select("order_id", "user_id").First(&current, orderID).Error; err != nil {
			return err
		}
		if owner != nil && current.UserID != *owner {
			return ErrForbidden
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", orderID).Delete(&models.Order{}).Error
	})

	switch {
	case err == nil:
		utils.InfoLogger.WithFields(logrus.Fields{"order_id": orderID}).Info("order deleted")
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	default:
		logFailure("delete", orderID, ownerOf(owner), err)
		return storageErr("delete order", err)
	}
}

// List returns one page of visible orders, newest first, each with its owner
// and line items, plus per-item totals over every visible order.
func (s *OrderService) List(ctx context.Context, owner *uint, page int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	scope := ownerScope(owner)
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		logFailure("count", 0, ownerOf(owner), err)
		return nil, storageErr("count orders", err)
	}

	orders := []models.Order{}
	err := db.Scopes(scope).
		Joins("User").
		Preload("Items", orderItemsByID).
		Order("orders.created_at DESC").
		Order("orders.order_id DESC").
		Offset(Offset(page, PageSize)).
		Limit(PageSize).
		Find(&orders).Error
	if err != nil {
		logFailure("list", 0, ownerOf(owner), err)
		return nil, storageErr("list orders", err)
	}

	totals, err := s.itemTotals(db, scope)
	if err != nil {
		logFailure("item totals", 0, ownerOf(owner), err)
		return nil, storageErr("sum order items", err)
	}

	return &OrderPage{
		Orders:      orders,
		Page:        page,
		PerPage:     PageSize,
		TotalOrders: total,
		TotalPages:  TotalPages(total, PageSize),
		ItemTotals:  totals,
	}, nil
}

func (s *OrderService) itemTotals(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]ItemTotal, error) {
	totals := []ItemTotal{}
	err := db.Model(&models.OrderItem{}).
		Select("order_items.item_name AS name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.order_id = order_items.order_id").
		Scopes(scope).
		Group("order_items.item_name").
		Order("order_items.item_name").
		Scan(&totals).Error
	return totals, err
}

// lineItems turns name->quantity into priced line items sorted by name.
// Quantities outside 1..models.MaxQuantity are dropped.
func (s *OrderService) lineItems(items map[string]int) []models.OrderItem {
	names := make([]string, 0, len(items))
	for name, qty := range items {
		if qty > 0 && qty <= models.MaxQuantity {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	lines := make([]models.OrderItem, 0, len(names))
	for _, name := range names {
		lines = append(lines, models.OrderItem{
			ItemName: name,
			Quantity: items[name],
			Price:    s.Menu.Price(name),
		})
	}
	return lines
}

// priceLines returns the order total for lines, rejecting empty orders and
// totals that do not fit in an int64.
func priceLines(lines []models.OrderItem) (int64, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyOrder
	}
	total, ok := models.Order{Items: lines}.ItemsTotal()
	if !ok {
		return 0, ErrOrderTooLarge
	}
	return total, nil
}

func ownerScope(owner *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if owner == nil {
			return db
		}
		return db.Where("orders.user_id = ?", *owner)
	}
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.item_id")
}

func ownerOf(owner *uint) uint {
	if owner == nil {
		return 0
	}
	return *owner
}

func logFailure(op string, orderID, userID uint, err error) {
	utils.ErrorLogger.WithFields(logrus.Fields{
		"op":       op,
		"order_id": orderID,
		"user_id":  userID,
	}).Errorf("order storage failure: %v", err)
}
