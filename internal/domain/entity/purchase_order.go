package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	POStatusPending   = "pending"
	POStatusApproved  = "approved"
	POStatusDelivered = "delivered"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder cabecera de una orden de compra persistida.
type PurchaseOrder struct {
	ID          string
	PONumber    string // formato PO-YYYYMMDD-NNN
	SupplierID  string
	TotalAmount decimal.Decimal // unidades menores de moneda (centavos)
	Status      string
	OrderDate   time.Time
	CreatedAt   time.Time
}

// PurchaseOrderItem línea de una orden de compra.
type PurchaseOrderItem struct {
	ID              string
	PurchaseOrderID string
	ItemID          string
	Quantity        int
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
}
