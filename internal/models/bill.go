package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is a finalized, payable grouping of charges for one folio. It is either
// an original bill generated at checkout or a split carved out of one.
type Bill struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	BillNo           string          `gorm:"size:40;not null;uniqueIndex" json:"bill_no"`
	FolioNo          string          `gorm:"size:40;not null;index" json:"folio_no"`
	GuestName        string          `gorm:"size:150" json:"guest_name"`
	RoomID           uint            `gorm:"index" json:"room_id"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	AdvanceAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"advance_amount"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"paid_amount"`
	BalanceAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_amount"`
	SettlementStatus string          `gorm:"size:20;not null;index" json:"settlement_status"`
	SettlementDate   *time.Time      `json:"settlement_date"`
	LastPaymentDate  *time.Time      `json:"last_payment_date"`
	IsSplitBill      bool            `gorm:"not null" json:"is_split_bill"`
	OriginalBillNo   string          `gorm:"size:40;index" json:"original_bill_no"`
	SplitSequence    int             `gorm:"not null" json:"split_sequence"`
	Narration        *string         `gorm:"type:text" json:"narration,omitempty"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Associations
	PaymentNotes []PaymentNote `gorm:"foreignKey:BillNo;references:BillNo" json:"payment_notes,omitempty"`
}

// TableName specifies the table name for Bill
func (Bill) TableName() string {
	return "bills"
}

// Settlement status constants
const (
	SettlementStatusPending = "PENDING"
	SettlementStatusPartial = "PARTIAL"
	SettlementStatusSettled = "SETTLED"
)

// OpenSettlementStatuses are the statuses still awaiting money.
var OpenSettlementStatuses = []string{SettlementStatusPending, SettlementStatusPartial}

// RootBillNo returns the bill number at the top of this bill's lineage.
func (b *Bill) RootBillNo() string {
	if b.IsSplitBill && b.OriginalBillNo != "" {
		return b.OriginalBillNo
	}
	return b.BillNo
}

// IsSettled returns true if nothing is owed on the bill
func (b *Bill) IsSettled() bool {
	return b.SettlementStatus == SettlementStatusSettled
}

// BillResponse is the JSON response format for bills
type BillResponse struct {
	BillNo           string           `json:"bill_no"`
	FolioNo          string           `json:"folio_no"`
	GuestName        string           `json:"guest_name"`
	RoomID           uint             `json:"room_id"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	AdvanceAmount    decimal.Decimal  `json:"advance_amount"`
	PaidAmount       decimal.Decimal  `json:"paid_amount"`
	BalanceAmount    decimal.Decimal  `json:"balance_amount"`
	SettlementStatus string           `json:"settlement_status"`
	SettlementDate   *time.Time       `json:"settlement_date"`
	LastPaymentDate  *time.Time       `json:"last_payment_date"`
	IsSplitBill      bool             `json:"is_split_bill"`
	OriginalBillNo   string           `json:"original_bill_no,omitempty"`
	SplitSequence    int              `json:"split_sequence"`
	Narration        *string          `json:"narration,omitempty"`
	Charges          []ChargeResponse `json:"charges,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ToResponse converts Bill to BillResponse
func (b *Bill) ToResponse() BillResponse {
	return BillResponse{
		BillNo:           b.BillNo,
		FolioNo:          b.FolioNo,
		GuestName:        b.GuestName,
		RoomID:           b.RoomID,
		TotalAmount:      b.TotalAmount,
		AdvanceAmount:    b.AdvanceAmount,
		PaidAmount:       b.PaidAmount,
		BalanceAmount:    b.BalanceAmount,
		SettlementStatus: b.SettlementStatus,
		SettlementDate:   b.SettlementDate,
		LastPaymentDate:  b.LastPaymentDate,
		IsSplitBill:      b.IsSplitBill,
		OriginalBillNo:   b.OriginalBillNo,
		SplitSequence:    b.SplitSequence,
		Narration:        b.Narration,
		CreatedAt:        b.CreatedAt,
	}
}

// BillSettlementView is what cashiers see when chasing a bill's payment
type BillSettlementView struct {
	BillNo           string          `json:"bill_no"`
	FolioNo          string          `json:"folio_no"`
	GuestName        string          `json:"guest_name"`
	RoomNo           string          `json:"room_no"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AdvanceAmount    decimal.Decimal `json:"advance_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	BalanceAmount    decimal.Decimal `json:"balance_amount"`
	SettlementStatus string          `json:"settlement_status"`
	SettlementDate   *time.Time      `json:"settlement_date"`
	LastPaymentDate  *time.Time      `json:"last_payment_date"`
	PaymentNotes     []PaymentNote   `json:"payment_notes"`
	PaymentNotesText string          `json:"payment_notes_text"`
	IsSplitBill      bool            `json:"is_split_bill"`
	OriginalBillNo   string          `json:"original_bill_no,omitempty"`
	SplitSequence    int             `json:"split_sequence"`
}

// ToSettlementView builds the settlement view. roomNo comes from the room registry.
func (b *Bill) ToSettlementView(roomNo string) BillSettlementView {
	notes := b.PaymentNotes
	if notes == nil {
		notes = []PaymentNote{}
	}
	return BillSettlementView{
		BillNo:           b.BillNo,
		FolioNo:          b.FolioNo,
		GuestName:        b.GuestName,
		RoomNo:           roomNo,
		TotalAmount:      b.TotalAmount,
		AdvanceAmount:    b.AdvanceAmount,
		PaidAmount:       b.PaidAmount,
		BalanceAmount:    b.BalanceAmount,
		SettlementStatus: b.SettlementStatus,
		SettlementDate:   b.SettlementDate,
		LastPaymentDate:  b.LastPaymentDate,
		PaymentNotes:     notes,
		PaymentNotesText: FormatPaymentNotes(notes),
		IsSplitBill:      b.IsSplitBill,
		OriginalBillNo:   b.OriginalBillNo,
		SplitSequence:    b.SplitSequence,
	}
}
