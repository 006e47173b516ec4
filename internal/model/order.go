package model

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending       OrderStatus = "Pending"
	OrderStatusInPreparation OrderStatus = "InPreparation"
	OrderStatusReady         OrderStatus = "Ready"
	OrderStatusDelivered     OrderStatus = "Delivered"
	OrderStatusCancelled     OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the five known states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInPreparation, OrderStatusReady,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CustomFormulaPlaceholder is shown when an order resolves to neither a
// catalog formula nor a stored custom name (e.g. the catalog row was
// deleted after the order was placed).
const CustomFormulaPlaceholder = "(custom formula)"

// Order is a persisted fulfillment request. Exactly one of FormulaID
// and CustomFormulaName is set at creation.
type Order struct {
	ID                int64       `json:"id" db:"id"`
	PatientID         int64       `json:"patient_id" db:"patient_id"`
	FormulaID         *int64      `json:"formula_id" db:"formula_id"`
	CustomFormulaName *string     `json:"custom_formula_name" db:"custom_formula_name"`
	Quantity          int         `json:"quantity" db:"quantity"`
	Unit              string      `json:"unit" db:"unit"`
	Notes             string      `json:"notes" db:"notes"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	Status            OrderStatus `json:"status" db:"status"`
}

// OrderView is the read model for listings: one order joined with its
// patient name and the resolved formula display name.
type OrderView struct {
	ID          int64       `json:"id" db:"id"`
	PatientID   int64       `json:"patient_id" db:"patient_id"`
	PatientName string      `json:"patient_name" db:"patient_name"`
	FormulaName string      `json:"formula_name" db:"-"`
	Quantity    int         `json:"quantity" db:"quantity"`
	Unit        string      `json:"unit" db:"unit"`
	Notes       string      `json:"notes" db:"notes"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	Status      OrderStatus `json:"status" db:"status"`
}

// QuantityWithUnit formats quantity and unit for display, e.g. "5 capsules".
func (v *OrderView) QuantityWithUnit() string {
	if v.Unit == "" {
		return fmt.Sprintf("%d", v.Quantity)
	}
	return fmt.Sprintf("%d %s", v.Quantity, v.Unit)
}

// ResolveFormulaName picks the display name for an order at read time:
// the catalog formula name when present, else the custom formula name,
// else the placeholder. Resolution happens on every read, so renaming a
// catalog formula retroactively changes historical listings.
func ResolveFormulaName(catalogName, customName string) string {
	if strings.TrimSpace(catalogName) != "" {
		return catalogName
	}
	if strings.TrimSpace(customName) != "" {
		return customName
	}
	return CustomFormulaPlaceholder
}

type CreateOrderRequest struct {
	FormulaID         *int64  `json:"formula_id"`
	CustomFormulaName *string `json:"custom_formula_name"`
	Quantity          int     `json:"quantity" binding:"required"`
	Unit              string  `json:"unit"`
	Notes             string  `json:"notes"`
}

type SetOrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}
