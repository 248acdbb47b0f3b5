package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityOwnerScope(t *testing.T) {
	admin := Identity{UserID: 1, Role: RoleAdmin}
	user := Identity{UserID: 7, Role: RoleUser}

	assert.Nil(t, admin.OwnerScope())
	if assert.NotNil(t, user.OwnerScope()) {
		assert.Equal(t, uint(7), *user.OwnerScope())
	}
}

func TestIdentityCanAccess(t *testing.T) {
	admin := Identity{UserID: 1, Role: RoleAdmin}
	user := Identity{UserID: 7, Role: RoleUser}

	assert.True(t, admin.CanAccess(7))
	assert.True(t, user.CanAccess(7))
	assert.False(t, user.CanAccess(8))
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("chef").Valid())
}

func TestOrderTotals(t *testing.T) {
	order := Order{Items: []OrderItem{
		{ItemName: "pizza", Quantity: 2, Price: 1500},
		{ItemName: "burger", Quantity: 1, Price: 500},
	}}

	total, ok := order.ItemsTotal()
	assert.True(t, ok)
	assert.Equal(t, int64(3500), total)
	assert.Equal(t, map[string]int{"pizza": 2, "burger": 1}, order.Quantities())
}

func TestOrderTotalsOverflow(t *testing.T) {
	sub, ok := OrderItem{Quantity: 6148914691236517206, Price: 1500}.Subtotal()
	assert.False(t, ok)
	assert.Zero(t, sub)

	_, ok = Order{Items: []OrderItem{
		{ItemName: "truffle", Quantity: 1, Price: math.MaxInt64},
		{ItemName: "pizza", Quantity: 1, Price: 1500},
	}}.ItemsTotal()
	assert.False(t, ok)

	total, ok := Order{Items: []OrderItem{{ItemName: "tea", Quantity: 3, Price: 0}}}.ItemsTotal()
	assert.True(t, ok)
	assert.Zero(t, total)
}
