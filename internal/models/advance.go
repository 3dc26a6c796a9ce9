package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Advance kinds. Guest advances feed a bill's AdvanceAmount; settlement
// receipts are audit copies of payments already counted in PaidAmount and
// must never be summed into AdvanceAmount.
const (
	AdvanceKindGuest      = "guest_advance"
	AdvanceKindSettlement = "settlement_receipt"
)

// Advance is money received against a folio or bill.
type Advance struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	ReceiptNo       string          `gorm:"size:60;not null;uniqueIndex" json:"receipt_no"`
	Kind            string          `gorm:"size:30;not null;index" json:"kind"`
	FolioNo         string          `gorm:"size:40;index" json:"folio_no"`
	ReservationNo   string          `gorm:"size:40" json:"reservation_no"`
	BillNo          string          `gorm:"size:40;index" json:"bill_no"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentModeID   uint            `gorm:"not null" json:"payment_mode_id"`
	Narration       string          `gorm:"type:text" json:"narration"`
	CardLast4       string          `gorm:"size:4" json:"card_last4,omitempty"`
	CardHolder      string          `gorm:"size:120" json:"card_holder,omitempty"`
	OnlineReference string          `gorm:"size:120" json:"online_reference,omitempty"`
	ReceivedAt      time.Time       `gorm:"not null;index" json:"received_at"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Advance
func (Advance) TableName() string {
	return "advances"
}

// IsSettlementReceipt returns true for audit copies written by the settlement processor
func (a *Advance) IsSettlementReceipt() bool {
	return a.Kind == AdvanceKindSettlement
}

// SumAdvances adds up advance amounts
func SumAdvances(advances []Advance) decimal.Decimal {
	total := decimal.Zero
	for _, a := range advances {
		total = total.Add(a.Amount)
	}
	return total
}
