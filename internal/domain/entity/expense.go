package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense types.
const (
	ExpenseTypeStockPurchase = "STOCK_PURCHASE"
)

// Expense is a bookkeeping record. Stock-purchase expenses are derived from IN
// movements and reference the originating movement; deleting an expense never
// touches the ledger.
type Expense struct {
	ID            string
	OutletID      string
	Type          string
	Category      string
	Amount        decimal.Decimal
	Description   string
	ReferenceID   string // originating movement id, when derived
	SupplierID    string
	InvoiceNumber string
	PaidAt        time.Time
	CreatedBy     string
	CreatedAt     time.Time
}
