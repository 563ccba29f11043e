package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement types.
const (
	MovementTypeIN     = "IN"     // purchase / stock received
	MovementTypeOUT    = "OUT"    // consumption / stock issued
	MovementTypeADJUST = "ADJUST" // absolute correction (sets the balance)

	// MovementTypeAdjustmentOut is a legacy outbound correction type still
	// present in historical rows; the variance analyzer counts it as usage.
	MovementTypeAdjustmentOut = "adjustment_out"
)

// Movement is one ledger entry: a recorded change to a stock balance with the
// balance snapshots frozen at creation time. StockBefore/StockAfter are never
// recomputed after the row is written.
type Movement struct {
	ID            string
	OutletID      string
	Target        StockTarget
	Type          string
	Quantity      decimal.Decimal // magnitude for IN/OUT; absolute balance for ADJUST
	UnitPrice     decimal.Decimal
	TotalCost     decimal.Decimal // quantity × unit price; zero for ADJUST
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	SupplierID    string // optional
	Supplier      string // optional free text
	InvoiceNumber string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// MovementTypeValid reports whether t is one of the accepted request types.
// adjustment_out is read-side only and cannot be created through the API.
func MovementTypeValid(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT || t == MovementTypeADJUST
}
