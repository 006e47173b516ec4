package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending,
		OrderStatusInPreparation,
		OrderStatusReady,
		OrderStatusDelivered,
		OrderStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	invalid := []OrderStatus{"", "pending", "Shipped", "Unknown", "Pending "}
	for _, s := range invalid {
		assert.False(t, s.Valid(), "expected %q to be invalid", s)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatusInPreparation.Terminal())
	assert.False(t, OrderStatusReady.Terminal())
}

func TestResolveFormulaName(t *testing.T) {
	tests := []struct {
		name        string
		catalogName string
		customName  string
		want        string
	}{
		{"catalog name wins", "Magistral Cream 2%", "", "Magistral Cream 2%"},
		{"catalog name wins over custom", "Magistral Cream 2%", "My Mix", "Magistral Cream 2%"},
		{"custom name when no catalog", "", "My Mix", "My Mix"},
		{"placeholder when neither", "", "", CustomFormulaPlaceholder},
		{"blank catalog falls through", "   ", "My Mix", "My Mix"},
		{"blank both yields placeholder", "   ", "  ", CustomFormulaPlaceholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveFormulaName(tt.catalogName, tt.customName))
		})
	}
}

func TestQuantityWithUnit(t *testing.T) {
	v := &OrderView{Quantity: 5, Unit: "capsules"}
	assert.Equal(t, "5 capsules", v.QuantityWithUnit())

	v = &OrderView{Quantity: 3}
	assert.Equal(t, "3", v.QuantityWithUnit())
}
