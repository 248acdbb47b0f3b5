package controllers

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-orders/models"
)

// ParseQuantities keeps the form fields whose value is a run of ASCII digits
// between 1 and models.MaxQuantity. Everything else is ignored.
func ParseQuantities(form url.Values) map[string]int {
	items := make(map[string]int)
	for name, values := range form {
		if name == "" || len(values) == 0 {
			continue
		}
		if qty, ok := positiveInt(values[0]); ok && qty <= models.MaxQuantity {
			items[name] = qty
		}
	}
	return items
}

// positiveInt accepts only plain digits: no sign, spaces or decimals.
func positiveInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParsePage reads ?page=, falling back to 1 for anything that is not a
// positive integer.
func ParsePage(raw string) int {
	if page, ok := positiveInt(raw); ok {
		return page
	}
	return 1
}

// ParseOrderID parses an order id from a path or query value.
func ParseOrderID(raw string) (uint, bool) {
	n, ok := positiveInt(raw)
	if !ok || uint64(n) > uint64(^uint32(0)) {
		return 0, false
	}
	return uint(n), true
}

type quantitiesBody struct {
	Items map[string]int `json:"items"`
}

// requestQuantities reads the ordered items from a JSON body
// ({"items": {"pizza": 2}}) or, for browsers, from the posted form.
func requestQuantities(c *gin.Context) (map[string]int, error) {
	if c.ContentType() == gin.MIMEJSON {
		var body quantitiesBody
		if err := c.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		items := make(map[string]int, len(body.Items))
		for name, qty := range body.Items {
			if name != "" && qty > 0 && qty <= models.MaxQuantity {
				items[name] = qty
			}
		}
		return items, nil
	}

	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return ParseQuantities(c.Request.PostForm), nil
}
