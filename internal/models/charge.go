package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Charge is a single posted debit against a folio. BillNo is empty until the
// folio is billed; afterwards it names the bill that currently owns the charge.
type Charge struct {
	ID            uint            `gorm:"primaryKey" json:"transaction_id"`
	FolioNo       string          `gorm:"size:40;not null;index" json:"folio_no"`
	BillNo        string          `gorm:"size:40;index" json:"bill_no"`
	AccountHeadID uint            `gorm:"not null" json:"account_head_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description   string          `gorm:"size:255" json:"description"`
	Reference     string          `gorm:"size:80" json:"reference"`
	PostedAt      time.Time       `gorm:"not null;index" json:"posted_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Charge
func (Charge) TableName() string {
	return "charges"
}

// IsBilled returns true once the charge has been attributed to a bill
func (c *Charge) IsBilled() bool {
	return c.BillNo != ""
}

// ChargeResponse is the JSON response format for charges
type ChargeResponse struct {
	TransactionID uint            `json:"transaction_id"`
	BillNo        string          `json:"bill_no"`
	AccountHeadID uint            `json:"account_head_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PostedAt      time.Time       `json:"posted_at"`
}

// ToResponse converts Charge to ChargeResponse
func (c *Charge) ToResponse() ChargeResponse {
	return ChargeResponse{
		TransactionID: c.ID,
		BillNo:        c.BillNo,
		AccountHeadID: c.AccountHeadID,
		Amount:        c.Amount,
		Description:   c.Description,
		PostedAt:      c.PostedAt,
	}
}

// SumCharges adds up charge amounts
func SumCharges(charges []Charge) decimal.Decimal {
	total := decimal.Zero
	for _, c := range charges {
		total = total.Add(c.Amount)
	}
	return total
}
