package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-orders/menu"
	"github.com/yeremiapane/restaurant-orders/services"
	"github.com/yeremiapane/restaurant-orders/session"
	"github.com/yeremiapane/restaurant-orders/utils"
)

const (
	msgChooseItem    = "Please choose at least one item."
	msgOrderTooLarge = "That order is too large."
)

type OrderController struct {
	Orders *services.OrderService
	Menu   *menu.Registry
}

func NewOrderController(orders *services.OrderService, registry *menu.Registry) *OrderController {
	return &OrderController{Orders: orders, Menu: registry}
}

// OrderPage shows the menu with an empty quantity form.
func (oc *OrderController) OrderPage(c *gin.Context) {
	render(c, http.StatusOK, "order.html", gin.H{
		"Title":      "New order",
		"Menu":       oc.Menu.Items(),
		"Quantities": map[string]int{},
	})
}

// CreateOrder places an order for the current user.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	items, err := requestQuantities(c)
	if err != nil {
		utils.AbortWithMessage(c, http.StatusBadRequest, "Invalid order form")
		return
	}

	order, err := oc.Orders.Place(c.Request.Context(), items, identity(c).UserID)
	if err != nil {
		oc.formError(c, "/order", err)
		return
	}

	if utils.WantsJSON(c) {
		utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
		return
	}
	redirectWithFlash(c, "/order", session.Success, "Order placed successfully!")
}

// GetOrders lists the visible orders, ten per page, with item totals over
// all of them.
func (oc *OrderController) GetOrders(c *gin.Context) {
	page, err := oc.Orders.List(c.Request.Context(), identity(c).OwnerScope(), ParsePage(c.Query("page")))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if utils.WantsJSON(c) {
		utils.RespondJSON(c, http.StatusOK, "List of orders", page)
		return
	}
	render(c, http.StatusOK, "orders.html", gin.H{"Title": "Orders", "Page": page})
}

// DeleteOrder is an administrative delete.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID, ok := ParseOrderID(c.Param("order_id"))
	if !ok {
		utils.AbortWithMessage(c, http.StatusNotFound, "Order not found")
		return
	}

	err := oc.Orders.Delete(c.Request.Context(), orderID, identity(c).OwnerScope())
	switch {
	case err == nil:
	case errors.Is(err, services.ErrNotFound) && !utils.WantsJSON(c):
		redirectWithFlash(c, "/orders", session.Danger, "Order not found")
		return
	default:
		abortWithServiceError(c, err)
		return
	}

	message := fmt.Sprintf("Order #%d deleted successfully!", orderID)
	if utils.WantsJSON(c) {
		utils.RespondJSON(c, http.StatusOK, message, gin.H{"order_id": orderID})
		return
	}
	redirectWithFlash(c, "/orders", session.Success, message)
}

// SearchOrder jumps to the edit page of a visible order.
func (oc *OrderController) SearchOrder(c *gin.Context) {
	orderID, ok := ParseOrderID(c.Query("order_id"))
	if !ok {
		redirectWithFlash(c, "/orders", session.Danger, "Please enter a valid order ID.")
		return
	}

	_, err := oc.Orders.Get(c.Request.Context(), orderID, identity(c).OwnerScope())
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, fmt.Sprintf("/update_order/%d", orderID))
	case errors.Is(err, services.ErrNotFound):
		redirectWithFlash(c, "/orders", session.Danger, "Order not found")
	default:
		abortWithServiceError(c, err)
	}
}

// UpdateOrderPage shows a visible order with its quantities prefilled.
func (oc *OrderController) UpdateOrderPage(c *gin.Context) {
	orderID, ok := ParseOrderID(c.Param("order_id"))
	if !ok {
		utils.AbortWithMessage(c, http.StatusNotFound, "Order not found")
		return
	}

	order, err := oc.Orders.Get(c.Request.Context(), orderID, identity(c).OwnerScope())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if utils.WantsJSON(c) {
		utils.RespondJSON(c, http.StatusOK, "Order", order)
		return
	}
	render(c, http.StatusOK, "update_order.html", gin.H{
		"Title":      fmt.Sprintf("Order #%d", order.ID),
		"Menu":       oc.Menu.Items(),
		"Order":      order,
		"Quantities": order.Quantities(),
	})
}

// UpdateOrder replaces the line items of a visible order.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	orderID, ok := ParseOrderID(c.Param("order_id"))
	if !ok {
		utils.AbortWithMessage(c, http.StatusNotFound, "Order not found")
		return
	}

	items, err := requestQuantities(c)
	if err != nil {
		utils.AbortWithMessage(c, http.StatusBadRequest, "Invalid order form")
		return
	}

	order, err := oc.Orders.Update(c.Request.Context(), orderID, items, identity(c).OwnerScope())
	if err != nil {
		oc.formError(c, fmt.Sprintf("/update_order/%d", orderID), err)
		return
	}

	message := fmt.Sprintf("Order %d updated successfully!", orderID)
	if utils.WantsJSON(c) {
		utils.RespondJSON(c, http.StatusOK, message, order)
		return
	}
	redirectWithFlash(c, "/orders", session.Success, message)
}

// formError sends browsers back to the form for recoverable errors and
// renders a status page otherwise.
func (oc *OrderController) formError(c *gin.Context, back string, err error) {
	if !utils.WantsJSON(c) {
		switch {
		case errors.Is(err, services.ErrEmptyOrder):
			redirectWithFlash(c, back, session.Info, msgChooseItem)
			return
		case errors.Is(err, services.ErrOrderTooLarge):
			redirectWithFlash(c, back, session.Danger, msgOrderTooLarge)
			return
		case errors.Is(err, services.ErrUnavailable):
			redirectWithFlash(c, back, session.Danger, msgDatabaseError)
			return
		}
	}
	abortWithServiceError(c, err)
}
